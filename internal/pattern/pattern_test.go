package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentages(t *testing.T) {
	t.Parallel()

	ms := Percentages("Top customer is 45% of sales, next two are 20 % and 12.5%.")
	require.Len(t, ms, 3)
	assert.InDelta(t, 45, ms[0].Value, 0.001)
	assert.InDelta(t, 20, ms[1].Value, 0.001)
	assert.InDelta(t, 12.5, ms[2].Value, 0.001)
	assert.Equal(t, "45%", ms[0].Raw)

	max, ok := MaxPercent("no numbers here")
	assert.False(t, ok)
	assert.Zero(t, max)

	max, ok = MaxPercent("60% and 80%")
	assert.True(t, ok)
	assert.InDelta(t, 80, max, 0.001)
}

func TestPercentages_NoSumValidation(t *testing.T) {
	t.Parallel()

	// Segments are taken as stated even when they exceed 100 in total.
	vals := PercentValues("70% retail, 60% wholesale")
	assert.Equal(t, []float64{70, 60}, vals)
}

func TestDistinctCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, DistinctCount([]float64{10, 20, 10, 30}))
	assert.Equal(t, 0, DistinctCount(nil))
}

func TestMoneyAmounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want float64
	}{
		{"equipment worth $500K", 500_000},
		{"real estate valued at $1.2M", 1_200_000},
		{"about $2 million in inventory", 2_000_000},
		{"a $1,250,000 building", 1_250_000},
		{"$300 of supplies", 300},
		{"no dollars", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, SumMoney(tt.text), 0.5)
		})
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()

	ms := Durations("I was out for two weeks last year and 3 months before that")
	require.Len(t, ms, 2)
	assert.Equal(t, "two weeks", ms[0].Raw)
	assert.InDelta(t, 0.46, ms[0].Value, 0.01)
	assert.InDelta(t, 3, ms[1].Value, 0.001)
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"7", 7, true},
		{"8/10", 8, true},
		{"about 6.5", 6.5, true},
		{"15", 10, true},
		{"0", 1, true},
		{"pretty good", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseRating(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}

	assert.InDelta(t, 5, RatingOr("n/a", 5), 0.001)
}

func TestFirstInt(t *testing.T) {
	t.Parallel()

	v, ok := FirstInt("roughly 12 years")
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	_, ok = FirstInt("a long time")
	assert.False(t, ok)
}

func TestNumericMentions(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, NumericMentions("We grew 20% to $4M with 35 staff"))
	assert.Equal(t, 0, NumericMentions("lots of loyal customers"))
}

func TestPronounFocus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"highly owner centric", "I do it all. I sign every check, I quote every job and my phone never stops.", FocusHighlyOwnerCentric},
		{"owner focused", "I handle pricing, I approve hires and I sign checks; our bookkeeper does payroll.", FocusOwnerFocused},
		{"team oriented", "Our team runs scheduling and our managers approve purchases.", FocusTeamOriented},
		{"balanced", "I review the numbers with our controller.", FocusBalanced},
		{"empty", "", FocusBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := PronounFocus(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchRules_Order(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		R(`\bbeta\b`, 1, "beta"),
		R(`\balpha\b`, -1, "alpha"),
		R(`\bgamma\b`, 2, "gamma"),
	}
	hits := MatchRules("alpha then beta then beta", rules)
	require.Len(t, hits, 2)
	assert.Equal(t, "beta", hits[0].Label)
	assert.Equal(t, "alpha", hits[1].Label)
	assert.InDelta(t, 0, SumRules("alpha beta", rules), 0.001)
	assert.InDelta(t, 1, WeightedCount("alpha beta beta", rules), 0.001)
	assert.Nil(t, MatchRules("   ", rules))
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("filler words here ", 20) + "TARGET PHRASE" + strings.Repeat(" more trailing words", 20)
	start := strings.Index(text, "TARGET")
	s := Snippet(text, start, start+len("TARGET PHRASE"), 150)
	assert.LessOrEqual(t, len(s), 150)
	assert.Contains(t, s, "TARGET PHRASE")

	assert.Equal(t, "short", Snippet("  short ", 2, 7, 150))
	assert.Equal(t, "", Snippet("anything", 0, 3, 0))
}

func TestMatchKeywords(t *testing.T) {
	t.Parallel()

	got := MatchKeywords([]string{"ISO", "patent", "franchise"}, "We hold an iso 9001 cert", "and two Patents")
	assert.Equal(t, []string{"ISO", "patent"}, got)
	assert.Nil(t, MatchKeywords([]string{"x"}, "", ""))
	assert.Equal(t, 3, CountKeywords("team team TEAM", []string{"team"}))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `I'm "sure" - mostly`, Normalize("I’m  “sure” — mostly "))
	assert.Equal(t, "ISO 9001", Normalize("ＩＳＯ 9001"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "Operations Manager", Title("operations manager"))
}

func TestRolesAndPlaceholders(t *testing.T) {
	t.Parallel()

	text := "[EMPLOYEE_1] is our operations manager and [PERSON_NAME_2] is the lead technician."
	roles := Roles(text)
	require.Len(t, roles, 2)
	assert.Equal(t, "operations manager", roles[0].Title)
	assert.Equal(t, "lead technician", roles[1].Title)

	ph := Placeholders(text)
	require.Len(t, ph, 2)
	assert.Equal(t, "[EMPLOYEE_1]", ph[0].Raw)
	assert.Equal(t, "[PERSON_NAME_2]", ph[1].Raw)
}

func TestCapitalizedNames(t *testing.T) {
	t.Parallel()

	names := CapitalizedNames("The shop runs on Maria Lopez and Dave. Our Sales team is thin.")
	var raws []string
	for _, n := range names {
		raws = append(raws, n.Raw)
	}
	assert.Contains(t, raws, "Maria Lopez")
	assert.Contains(t, raws, "Dave")
	assert.NotContains(t, raws, "The")

	raws = raws[:0]
	for _, n := range CapitalizedNames("Key people stay. Everybody helps.\nAfter hours Dr. Singh covers. Maria handles payroll.") {
		raws = append(raws, n.Raw)
	}
	assert.Equal(t, []string{"Singh", "Maria"}, raws)
}

func TestCertifications(t *testing.T) {
	t.Parallel()

	certs := Certifications("We are ISO 9001:2015 and AS9100D certified, HIPAA compliant.")
	require.Len(t, certs, 3)
	assert.Equal(t, "ISO 9001:2015", certs[0].Raw)
	assert.True(t, MentionsISO("iso certified"))
	assert.False(t, MentionsISO("isolated"))
}

func TestRiskLanguage(t *testing.T) {
	t.Parallel()

	hits := MatchRules("Only I know the pricing and our largest customer is 45% of revenue.", RiskLanguage)
	require.NotEmpty(t, hits)
	assert.Equal(t, "key_person", hits[0].Label)
	assert.Equal(t, "critical", SeverityLabel(hits[0].Delta))

	var labels []string
	for _, h := range hits {
		labels = append(labels, h.Label)
	}
	assert.Contains(t, labels, "customer_concentration")
}

func TestSeverityLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "low", SeverityLabel(SeverityLow))
	assert.Equal(t, "medium", SeverityLabel(SeverityMedium))
	assert.Equal(t, "high", SeverityLabel(SeverityHigh))
	assert.Equal(t, "critical", SeverityLabel(SeverityCritical))
}
