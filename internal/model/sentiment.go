package model

// StressLevel is the ordinal owner stress classification.
type StressLevel string

// Stress levels.
const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
	StressCritical StressLevel = "critical"
)

// VoiceGuidelines describes how narrative text should address the owner.
type VoiceGuidelines struct {
	Opening   string `json:"opening" yaml:"opening"`
	Tone      string `json:"tone" yaml:"tone"`
	Structure string `json:"structure" yaml:"structure"`
	Language  string `json:"language" yaml:"language"`
	Emphasis  string `json:"emphasis" yaml:"emphasis"`
}

// SentimentProfile summarises confidence, urgency, and stress signals.
type SentimentProfile struct {
	OverallConfidence float64         `json:"overall_confidence" yaml:"overall_confidence"`
	UrgencyLevel      float64         `json:"urgency_level" yaml:"urgency_level"`
	EmotionalTone     string          `json:"emotional_tone" yaml:"emotional_tone"`
	EmotionCounts     map[string]int  `json:"emotion_counts" yaml:"emotion_counts"`
	OwnerStressLevel  StressLevel     `json:"owner_stress_level" yaml:"owner_stress_level"`
	StressScore       float64         `json:"stress_score" yaml:"stress_score"`
	Sophistication    string          `json:"sophistication" yaml:"sophistication"`
	Concerns          []string        `json:"concerns" yaml:"concerns"`
	RecommendedVoice  string          `json:"recommended_voice" yaml:"recommended_voice"`
	VoiceGuidelines   VoiceGuidelines `json:"voice_guidelines" yaml:"voice_guidelines"`
}
