package sentiment

import (
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// UrgencyBase is the starting urgency for each canonical exit timeline.
var UrgencyBase = map[string]float64{
	model.TimelineInDiscussions: 10.0,
	model.TimelineWithin6Months: 9.0,
	model.Timeline6To12Months:   7.5,
	model.Timeline1To2Years:     6.0,
	model.Timeline2To3Years:     4.5,
	model.Timeline3To5Years:     3.0,
	model.TimelineOver5Years:    1.5,
	model.TimelineNotSure:       0.5,
}

// DefaultUrgency applies when the exit timeline is missing or unrecognized.
const DefaultUrgency = 5.0

// Emotions tallied across all answers. Label is the emotion name.
var Emotions = []pattern.Rule{
	pattern.R(`\b(proud|pride|accomplish(?:ed|ment)|built (?:this|it)|achievement)\b`, 1, "pride"),
	pattern.R(`\b(worr(?:y|ied|ies)|anxious|nervous|afraid|scared|fear)\b`, 1, "anxiety"),
	pattern.R(`\b(frustrat(?:ed|ing|ion)|annoy(?:ed|ing)|fed up|sick of)\b`, 1, "frustration"),
	pattern.R(`\b(tired|exhausted|burn(?:ed|t)? out|worn out|ready to (?:retire|step back|move on))\b`, 1, "fatigue"),
	pattern.R(`\b(excited|optimistic|opportunit(?:y|ies)|bright future|potential)\b`, 1, "optimism"),
	pattern.R(`\b(legacy|family|my baby|life's work|employees are like)\b`, 1, "attachment"),
	pattern.R(`\b(not sure|unsure|uncertain|don't know|no idea|confus(?:ed|ing))\b`, 1, "uncertainty"),
	pattern.R(`\b(determined|committed|focused|will do whatever|ready to work)\b`, 1, "determination"),
}

// ToneMap collapses an emotion into a narrative tone.
var ToneMap = map[string]string{
	"pride":         "proud",
	"attachment":    "proud",
	"anxiety":       "anxious",
	"frustration":   "frustrated",
	"fatigue":       "weary",
	"optimism":      "optimistic",
	"uncertainty":   "uncertain",
	"determination": "determined",
}

// NeutralTone is reported when no emotion fires.
const NeutralTone = "neutral"

// Sophistication levels.
const (
	SophisticationBasic        = "basic"
	SophisticationIntermediate = "intermediate"
	SophisticationAdvanced     = "sophisticated"
)

// FinancialVocabulary signals familiarity with transaction language.
var FinancialVocabulary = []pattern.Rule{
	pattern.R(`\bebitda\b`, 1, "ebitda"),
	pattern.R(`\bsde\b|\bseller'?s discretionary earnings\b`, 1, "sde"),
	pattern.R(`\b(multiples?|valuation)\b`, 1, "valuation"),
	pattern.R(`\b(add-?backs?|recast)\b`, 1, "recast"),
	pattern.R(`\bworking capital\b`, 1, "working_capital"),
	pattern.R(`\bdue diligence\b`, 1, "diligence"),
	pattern.R(`\b(loi|letter of intent|earn-?out|seller financing|escrow)\b`, 1, "deal_terms"),
	pattern.R(`\b(gross margin|net margin|recurring revenue|cash flow)\b`, 1, "metrics"),
	pattern.R(`\b(private equity|strategic buyer|esop|management buyout|mbo)\b`, 1, "buyers"),
}

// Voice labels.
const (
	VoiceSupportiveUrgent = "supportive_urgent"
	VoiceReassuring       = "reassuring"
	VoiceDirectUrgent     = "direct_urgent"
	VoiceTechnicalPeer    = "technical_peer"
	VoiceCelebratory      = "celebratory"
	VoiceEmpathetic       = "empathetic"
	VoiceMotivational     = "motivational"
	VoiceEducational      = "educational"
	VoiceConsultative     = "consultative"
)

// VoiceRule selects a voice when When returns true.
type VoiceRule struct {
	Voice string
	When  func(p model.SentimentProfile) bool
}

func stressed(p model.SentimentProfile) bool {
	return p.OwnerStressLevel == model.StressHigh || p.OwnerStressLevel == model.StressCritical
}

func toneIn(p model.SentimentProfile, tones ...string) bool {
	for _, t := range tones {
		if p.EmotionalTone == t {
			return true
		}
	}
	return false
}

// VoiceRules are evaluated in order; the first match wins and
// VoiceConsultative is the fallback.
var VoiceRules = []VoiceRule{
	{VoiceSupportiveUrgent, func(p model.SentimentProfile) bool { return stressed(p) && p.UrgencyLevel > 7 }},
	{VoiceReassuring, stressed},
	{VoiceDirectUrgent, func(p model.SentimentProfile) bool { return p.UrgencyLevel > 7 && p.OverallConfidence >= 6 }},
	{VoiceTechnicalPeer, func(p model.SentimentProfile) bool {
		return p.Sophistication == SophisticationAdvanced && p.OverallConfidence >= 6
	}},
	{VoiceCelebratory, func(p model.SentimentProfile) bool {
		return toneIn(p, "proud", "optimistic") && p.OverallConfidence >= 7
	}},
	{VoiceEmpathetic, func(p model.SentimentProfile) bool { return toneIn(p, "anxious", "frustrated", "weary", "uncertain") }},
	{VoiceMotivational, func(p model.SentimentProfile) bool { return toneIn(p, "determined") || p.OverallConfidence < 5 }},
	{VoiceEducational, func(p model.SentimentProfile) bool { return p.Sophistication == SophisticationBasic }},
}

// Guidelines is the static guideline record for each voice.
var Guidelines = map[string]model.VoiceGuidelines{
	VoiceSupportiveUrgent: {
		Opening:   "Acknowledge the pressure the owner is under before any findings",
		Tone:      "Calm and steady with a clear sense of priority",
		Structure: "Lead with the two or three actions that matter most this quarter",
		Language:  "Plain, short sentences; avoid alarming terms",
		Emphasis:  "Immediate, achievable steps that reduce risk quickly",
	},
	VoiceReassuring: {
		Opening:   "Recognize the owner's concerns and what is already working",
		Tone:      "Warm and reassuring",
		Structure: "Strengths first, then gaps framed as solvable",
		Language:  "Encouraging and free of jargon",
		Emphasis:  "Stability and a manageable path forward",
	},
	VoiceDirectUrgent: {
		Opening:   "State the readiness result and the time available",
		Tone:      "Direct and businesslike",
		Structure: "Priorities ranked by impact within the exit window",
		Language:  "Concise with specific deadlines",
		Emphasis:  "What must be done before going to market",
	},
	VoiceTechnicalPeer: {
		Opening:   "Open with the valuation implications of the scores",
		Tone:      "Peer-to-peer and analytical",
		Structure: "Metrics, benchmarks, then recommendations",
		Language:  "Transaction terminology is fine",
		Emphasis:  "Multiple expansion and diligence readiness",
	},
	VoiceCelebratory: {
		Opening:   "Celebrate what the owner has built",
		Tone:      "Upbeat and affirming",
		Structure: "Strengths, then refinements that protect value",
		Language:  "Positive and forward-looking",
		Emphasis:  "Maximizing the value already created",
	},
	VoiceEmpathetic: {
		Opening:   "Reflect the owner's feelings back in their own terms",
		Tone:      "Empathetic and patient",
		Structure: "One theme at a time with clear next steps",
		Language:  "Gentle and personal",
		Emphasis:  "Support available and small wins",
	},
	VoiceMotivational: {
		Opening:   "Frame the assessment as a starting line",
		Tone:      "Energizing and confident",
		Structure: "Goal, plan, milestones",
		Language:  "Action verbs and concrete targets",
		Emphasis:  "Momentum and measurable progress",
	},
	VoiceEducational: {
		Opening:   "Explain how buyers evaluate a business",
		Tone:      "Clear and instructive",
		Structure: "Concept, what it means for this business, what to do",
		Language:  "Define every financial term",
		Emphasis:  "Understanding the drivers of value",
	},
	VoiceConsultative: {
		Opening:   "Summarize the overall readiness picture",
		Tone:      "Professional and balanced",
		Structure: "Findings by category followed by priorities",
		Language:  "Straightforward business language",
		Emphasis:  "Balanced view of strengths and gaps",
	},
}
