package model

import (
	"encoding/json"
	"time"
)

// Submission is one questionnaire submission with its business profile.
type Submission struct {
	ID              string    `json:"id" yaml:"id"`
	Industry        string    `json:"industry" yaml:"industry"`
	RevenueRange    string    `json:"revenue_range" yaml:"revenue_range"`
	YearsInBusiness string    `json:"years_in_business" yaml:"years_in_business"`
	ExitTimeline    string    `json:"exit_timeline" yaml:"exit_timeline"`
	Location        string    `json:"location,omitempty" yaml:"location,omitempty"`
	Responses       Responses `json:"responses" yaml:"responses"`
}

// AssessmentRecord is the persisted summary of a scored assessment. It
// carries derived scores only; answer text is never stored.
type AssessmentRecord struct {
	ID             string          `json:"id"`
	SubmissionID   string          `json:"submission_id,omitempty"`
	Industry       string          `json:"industry"`
	OverallScore   float64         `json:"overall_score"`
	ReadinessLevel ReadinessLevel  `json:"readiness_level"`
	Result         json.RawMessage `json:"result"`
	CreatedAt      time.Time       `json:"created_at"`
}
