package focus

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/research"
)

func scores(vals map[model.Category]float64) map[model.Category]model.CategoryScoreResult {
	out := make(map[model.Category]model.CategoryScoreResult, len(vals))
	for c, v := range vals {
		out[c] = model.CategoryScoreResult{Category: c, Score: v}
	}
	return out
}

func find(areas []model.FocusArea, c model.Category) model.FocusArea {
	for _, a := range areas {
		if a.Category == c {
			return a
		}
	}
	return model.FocusArea{}
}

func TestPrioritize_SortedDescending(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{
		Scores: scores(map[model.Category]float64{
			model.CategoryOwnerDependence:       5,
			model.CategoryRevenueQuality:        6,
			model.CategoryFinancialReadiness:    4,
			model.CategoryOperationalResilience: 7,
			model.CategoryGrowthValue:           3,
		}),
		ExitTimeline: "1-2 years",
	})
	require.Len(t, areas, 5)
	for i := 1; i < len(areas); i++ {
		assert.GreaterOrEqual(t, areas[i-1].ROIScore, areas[i].ROIScore)
	}
	fa := model.NewFocusAreas(areas)
	require.NotNil(t, fa.Primary)
	assert.Equal(t, areas[0], *fa.Primary)
	assert.NotEmpty(t, areas[0].QuickActions)
	assert.Empty(t, areas[3].QuickActions)
}

func TestPrioritize_ROIFormula(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{
		Scores:       scores(map[model.Category]float64{model.CategoryFinancialReadiness: 4}),
		ExitTimeline: "Already in discussions",
	})
	require.Len(t, areas, 1)
	// (10-4) * 0.12 * 3.0 * (1/(3/6)) * 100
	assert.InDelta(t, 6*0.12*3.0*2*100, areas[0].ROIScore, 0.01)
	assert.InDelta(t, 6, areas[0].ImprovementPotential, 0.001)
	assert.True(t, areas[0].IsQuickWin)
}

func TestPrioritize_QuickWinFromResearch(t *testing.T) {
	t.Parallel()

	data := research.Data{
		"improvement_timeline_months": map[string]any{"growth_value": 2},
		"improvement_impact":          map[string]any{"growth_value": 0.15},
	}
	areas := Prioritize(Input{
		Scores:   scores(map[model.Category]float64{model.CategoryGrowthValue: 6}),
		Research: data,
	})
	require.Len(t, areas, 1)
	assert.True(t, areas[0].IsQuickWin)
	assert.Contains(t, areas[0].Reasoning, "Quick win")

	areas = Prioritize(Input{Scores: scores(map[model.Category]float64{model.CategoryRevenueQuality: 6})})
	assert.False(t, areas[0].IsQuickWin)
}

func TestPrioritize_ValueKillers(t *testing.T) {
	t.Parallel()

	in := Input{Scores: map[model.Category]model.CategoryScoreResult{
		model.CategoryOwnerDependence: {Score: 3.5},
		model.CategoryRevenueQuality: {Score: 6, Gaps: []string{
			"55% revenue concentration (above 30% threshold)",
		}},
		model.CategoryGrowthValue: {Score: 3.5},
	}}
	areas := Prioritize(in)

	owner := find(areas, model.CategoryOwnerDependence)
	assert.True(t, owner.IsValueKiller)
	assert.InDelta(t, 0.40, owner.TypicalImpact, 0.001)
	assert.InDelta(t, 6.5*0.20*1*1*100*2, owner.ROIScore, 0.01)

	rev := find(areas, model.CategoryRevenueQuality)
	assert.True(t, rev.IsValueKiller)
	assert.Contains(t, rev.Reasoning, "55% customer concentration")

	growth := find(areas, model.CategoryGrowthValue)
	assert.False(t, growth.IsValueKiller)
	assert.Equal(t, model.CategoryOwnerDependence, areas[0].Category)
}

func TestPrioritize_ConcentrationAtFortyIsNotKiller(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{Scores: map[model.Category]model.CategoryScoreResult{
		model.CategoryRevenueQuality: {Score: 6, Gaps: []string{"40% revenue concentration (above 30% threshold)"}},
	}})
	assert.False(t, areas[0].IsValueKiller)
}

func TestPrioritize_UnknownCategory(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{Scores: map[model.Category]model.CategoryScoreResult{
		model.Category("tax_strategy"): {Score: 9},
	}})
	require.Len(t, areas, 1)
	assert.InDelta(t, DefaultCurrentScore, areas[0].CurrentScore, 0.001)
	assert.Contains(t, areas[0].Reasoning, "Unrecognized category")
	require.Len(t, areas[0].QuickActions, 2)
	assert.True(t, strings.HasPrefix(areas[0].QuickActions[0], "Address top gap"))
}

func TestPrioritize_Empty(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{})
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestPrioritize_StableTies(t *testing.T) {
	t.Parallel()

	data := research.Data{}
	for _, c := range model.Categories {
		data["improvement_timeline_months."+string(c)] = 6
		data["improvement_impact."+string(c)] = 0.1
	}
	areas := Prioritize(Input{Scores: scores(map[model.Category]float64{
		model.CategoryGrowthValue:     5,
		model.CategoryOwnerDependence: 5,
		model.CategoryRevenueQuality:  5,
	}), Research: data})
	require.Len(t, areas, 3)
	assert.Equal(t, model.CategoryOwnerDependence, areas[0].Category)
	assert.Equal(t, model.CategoryRevenueQuality, areas[1].Category)
	assert.Equal(t, model.CategoryGrowthValue, areas[2].Category)
}

func TestTimelineMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		exit   string
		months float64
		want   float64
	}{
		{model.TimelineInDiscussions, 3, 3.0},
		{model.TimelineInDiscussions, 4, 0.3},
		{model.TimelineWithin6Months, 6, 1.0},
		{model.Timeline1To2Years, 9, 1.3},
		{model.TimelineOver5Years, 18, 1.3},
		{"", 3, 1.0},
		{"someday", 3, 1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TimelineMultiplier(tt.exit, tt.months), 0.001, tt.exit)
	}
}

func TestQuickActions(t *testing.T) {
	t.Parallel()

	actions := QuickActions(model.CategoryOwnerDependence, []string{
		"Owner is the only one who can perform critical tasks",
		"All approvals run through the owner",
		"Customer relationships tied to the owner",
		"No key employees identified",
	})
	assert.Len(t, actions, MaxQuickActions)
	assert.Equal(t, "Document the tasks only you perform and assign a backup for each", actions[0])

	actions = QuickActions(model.CategoryRevenueQuality, []string{"80% revenue concentration (above 30% threshold)"})
	assert.Len(t, actions, 2)

	actions = QuickActions(model.CategoryGrowthValue, []string{"Something unusual"})
	assert.Equal(t, []string{
		"Address top gap: Something unusual",
		"Schedule an exit-planning consultation focused on Growth & Value",
	}, actions)
}

func TestPrioritize_NonFiniteResearchFallsBack(t *testing.T) {
	t.Parallel()

	areas := Prioritize(Input{
		Scores: scores(map[model.Category]float64{
			model.CategoryRevenueQuality:  4,
			model.CategoryGrowthValue:     5,
			model.CategoryOwnerDependence: 6,
		}),
		Research: research.Data{
			research.KeyImprovementTimeline: map[string]any{"growth_value": "NaN"},
			research.KeyImprovementImpact:   map[string]any{"revenue_quality": "Inf", "owner_dependence": "-Inf"},
		},
		ExitTimeline: "1-2 years",
	})
	require.Len(t, areas, 3)
	for _, a := range areas {
		assert.False(t, math.IsNaN(a.ROIScore) || math.IsInf(a.ROIScore, 0), a.Category)
		assert.False(t, math.IsNaN(a.TypicalImpact) || math.IsInf(a.TypicalImpact, 0), a.Category)
	}
	for i := 1; i < len(areas); i++ {
		assert.GreaterOrEqual(t, areas[i-1].ROIScore, areas[i].ROIScore)
	}
	assert.InDelta(t, 0.18, find(areas, model.CategoryRevenueQuality).TypicalImpact, 0.001)
	assert.InDelta(t, 0.20, find(areas, model.CategoryOwnerDependence).TypicalImpact, 0.001)
	assert.InDelta(t, 6, find(areas, model.CategoryGrowthValue).TimelineMonths, 0.001)
}
