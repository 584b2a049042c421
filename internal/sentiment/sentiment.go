// Package sentiment profiles an owner's confidence, urgency, and stress from
// their answers and picks a narrative voice for report writing.
package sentiment

import (
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Confidence scoring.
const (
	BaseConfidence  = 5.0
	LongAnswerWords = 50
	ShortAnswerWord = 10
	LengthDelta     = 0.5
)

// Stress composite thresholds and tier bonuses.
const (
	StressCriticalAt = 10.0
	StressHighAt     = 7.0
	StressModerateAt = 4.0
	CriticalWeight   = 2.0
)

// Analyze builds a SentimentProfile from free-text answers and the exit
// timeline. It never fails; empty input yields a neutral profile.
func Analyze(r model.Responses, exitTimeline string) model.SentimentProfile {
	text := pattern.Normalize(r.Combined())

	p := model.SentimentProfile{
		OverallConfidence: Confidence(text),
		UrgencyLevel:      Urgency(text, exitTimeline),
		Sophistication:    Sophistication(text),
	}
	p.EmotionCounts, p.EmotionalTone = Tone(text)
	p.Concerns, p.StressScore = Stress(text, p.UrgencyLevel, p.OverallConfidence)
	p.OwnerStressLevel = StressLevel(p.StressScore)
	p.RecommendedVoice = SelectVoice(p)
	p.VoiceGuidelines = Guidelines[p.RecommendedVoice]
	return p
}

// Confidence scores positive against negative language, starting from
// BaseConfidence, with a bonus for long answers and a penalty for terse ones.
// Empty text stays at BaseConfidence.
func Confidence(text string) float64 {
	score := BaseConfidence
	score += pattern.WeightedCount(text, pattern.PositiveConfidence)
	score += pattern.WeightedCount(text, pattern.NegativeConfidence)
	switch words := pattern.WordCount(text); {
	case words == 0:
	case words > LongAnswerWords:
		score += LengthDelta
	case words < ShortAnswerWord:
		score -= LengthDelta
	}
	return pattern.Round2(pattern.Clamp(score, 0, 10))
}

// Urgency starts from the exit timeline table and adds urgency cues.
func Urgency(text, exitTimeline string) float64 {
	score := DefaultUrgency
	if t, ok := model.ParseExitTimeline(exitTimeline); ok {
		score = UrgencyBase[t]
	}
	score += pattern.SumRules(text, pattern.UrgencyCues)
	return pattern.Round2(pattern.Clamp(score, 0, 10))
}

// Tone tallies emotions and maps the most frequent one to a tone. Ties go
// to the emotion listed first.
func Tone(text string) (map[string]int, string) {
	counts := make(map[string]int, len(Emotions))
	best, bestCount := "", 0
	for _, e := range Emotions {
		n := e.Count(text)
		counts[e.Label] = n
		if n > bestCount {
			best, bestCount = e.Label, n
		}
	}
	if best == "" {
		return counts, NeutralTone
	}
	return counts, ToneMap[best]
}

// Stress returns the matched concern labels and the composite stress score:
// concern count, critical concerns weighted by CriticalWeight, and tier
// bonuses for high urgency and low confidence.
func Stress(text string, urgency, confidence float64) ([]string, float64) {
	concerns := []string{}
	var score float64
	for _, c := range pattern.MatchRules(text, pattern.ConcernCues) {
		concerns = append(concerns, c.Label)
		score++
		if c.Delta >= 2 {
			score += CriticalWeight
		}
	}
	switch {
	case urgency > 7:
		score += 2
	case urgency > 5:
		score++
	}
	switch {
	case confidence < 4:
		score += 2
	case confidence < 5:
		score++
	}
	return concerns, score
}

// StressLevel buckets a composite stress score.
func StressLevel(score float64) model.StressLevel {
	switch {
	case score >= StressCriticalAt:
		return model.StressCritical
	case score >= StressHighAt:
		return model.StressHigh
	case score >= StressModerateAt:
		return model.StressModerate
	default:
		return model.StressLow
	}
}

// Sophistication grades familiarity with transaction vocabulary.
func Sophistication(text string) string {
	switch n := len(pattern.MatchRules(text, FinancialVocabulary)); {
	case n >= 3:
		return SophisticationAdvanced
	case n >= 1:
		return SophisticationIntermediate
	default:
		return SophisticationBasic
	}
}

// SelectVoice walks VoiceRules and returns the first matching voice.
func SelectVoice(p model.SentimentProfile) string {
	for _, rule := range VoiceRules {
		if rule.When(p) {
			return rule.Voice
		}
	}
	return VoiceConsultative
}
