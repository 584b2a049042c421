package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/exit-readiness/internal/model"
)

func TestAnalyze_Voices(t *testing.T) {
	t.Parallel()

	distressed := "I am worried and exhausted. I have a health scare and we have a cash flow problem. I need to sell."

	tests := []struct {
		name     string
		text     string
		timeline string
		voice    string
	}{
		{"stressed and urgent", distressed, "Within 6 months", VoiceSupportiveUrgent},
		{"stressed with time", distressed, "5+ years", VoiceReassuring},
		{
			"confident and urgent",
			"We are confident in the business and have a strong, proven team with excellent customers and a buyer ready.",
			"Within 6 months",
			VoiceDirectUrgent,
		},
		{
			"financially fluent",
			"We are confident our EBITDA is steady and our valuation multiple looks strong; recast add-backs are documented for due diligence.",
			"2-3 years",
			VoiceTechnicalPeer,
		},
		{
			"proud owner",
			"We are a proven market leader with excellent margins and strong growth. I am proud of what we have and confident about the future.",
			"3-5 years",
			VoiceCelebratory,
		},
		{
			"uncertain owner",
			"I am not sure what the business is worth and I feel uncertain about what comes next for me.",
			"",
			VoiceEmpathetic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Analyze(model.Responses{"q10": tt.text}, tt.timeline)
			assert.Equal(t, tt.voice, p.RecommendedVoice)
			assert.Equal(t, Guidelines[tt.voice], p.VoiceGuidelines)
		})
	}
}

func TestAnalyze_Distressed(t *testing.T) {
	t.Parallel()

	p := Analyze(model.Responses{
		"q1": "I am worried and exhausted. I have a health scare and we have a cash flow problem. I need to sell.",
	}, "Within 6 months")

	assert.Equal(t, model.StressCritical, p.OwnerStressLevel)
	assert.Equal(t, []string{"worry", "health", "cash", "burnout"}, p.Concerns)
	assert.InDelta(t, 10.0, p.UrgencyLevel, 0.001)
	assert.InDelta(t, 4.5, p.OverallConfidence, 0.001)
	assert.Equal(t, "anxious", p.EmotionalTone)
	assert.Equal(t, 1, p.EmotionCounts["anxiety"])
	assert.Equal(t, 1, p.EmotionCounts["fatigue"])
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	p := Analyze(nil, "")
	assert.InDelta(t, BaseConfidence, p.OverallConfidence, 0.001)
	assert.InDelta(t, DefaultUrgency, p.UrgencyLevel, 0.001)
	assert.Equal(t, NeutralTone, p.EmotionalTone)
	assert.Equal(t, model.StressLow, p.OwnerStressLevel)
	assert.NotNil(t, p.Concerns)
	assert.Empty(t, p.Concerns)
	assert.Equal(t, SophisticationBasic, p.Sophistication)
	assert.Equal(t, VoiceEducational, p.RecommendedVoice)
}

func TestConfidence_Bounds(t *testing.T) {
	t.Parallel()

	worried := ""
	for i := 0; i < 30; i++ {
		worried += "worried struggling concerned "
	}
	assert.InDelta(t, 0, Confidence(worried), 0.001)

	glowing := ""
	for i := 0; i < 30; i++ {
		glowing += "excellent confident strong "
	}
	assert.InDelta(t, 10, Confidence(glowing), 0.001)

	assert.InDelta(t, 4.5, Confidence("fine"), 0.001)
}

func TestUrgency_Timelines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeline string
		want     float64
	}{
		{"Already in discussions", 10},
		{"Within 6 months", 9},
		{"6–12 months", 7.5},
		{"1-2 years", 6},
		{"5+ years", 1.5},
		{"Not sure", 0.5},
		{"someday", DefaultUrgency},
		{"", DefaultUrgency},
	}
	for _, tt := range tests {
		t.Run(tt.timeline, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Urgency("", tt.timeline), 0.001)
		})
	}

	assert.InDelta(t, 10, Urgency("we need to sell asap", "Within 6 months"), 0.001)
}

func TestStressLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.StressLow, StressLevel(0))
	assert.Equal(t, model.StressLow, StressLevel(3.9))
	assert.Equal(t, model.StressModerate, StressLevel(4))
	assert.Equal(t, model.StressHigh, StressLevel(7))
	assert.Equal(t, model.StressCritical, StressLevel(10))
}

func TestSophistication(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SophisticationBasic, Sophistication(""))
	assert.Equal(t, SophisticationIntermediate, Sophistication("our ebitda is growing"))
	assert.Equal(t, SophisticationAdvanced, Sophistication("ebitda, working capital and an earn-out"))
}

func TestSelectVoice_Fallback(t *testing.T) {
	t.Parallel()

	p := model.SentimentProfile{
		OverallConfidence: 5.5,
		UrgencyLevel:      5,
		EmotionalTone:     NeutralTone,
		OwnerStressLevel:  model.StressLow,
		Sophistication:    SophisticationIntermediate,
	}
	assert.Equal(t, VoiceConsultative, SelectVoice(p))
}

func TestGuidelines_CoverEveryVoice(t *testing.T) {
	t.Parallel()

	voices := []string{VoiceConsultative}
	for _, r := range VoiceRules {
		voices = append(voices, r.Voice)
	}
	for _, v := range voices {
		g, ok := Guidelines[v]
		require.True(t, ok, v)
		assert.NotEmpty(t, g.Opening, v)
		assert.NotEmpty(t, g.Emphasis, v)
	}
}
