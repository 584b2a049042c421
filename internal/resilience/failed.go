package resilience

import (
	"time"
)

// Error classes reported by ClassifyError.
const (
	ErrorTransient = "transient"
	ErrorPermanent = "permanent"
)

// Batch stages a submission can fail in.
const (
	StageScore = "score"
	StageSave  = "save"
)

// FailedSubmission records a batch submission that could not be scored or
// persisted, so it can be resubmitted later.
type FailedSubmission struct {
	SubmissionID string    `json:"submission_id"`
	Stage        string    `json:"stage"`
	Error        string    `json:"error"`
	ErrorType    string    `json:"error_type"`
	Attempts     int       `json:"attempts"`
	FailedAt     time.Time `json:"failed_at"`
}

// NewFailedSubmission builds a failure record for err.
func NewFailedSubmission(submissionID, stage string, attempts int, err error) FailedSubmission {
	f := FailedSubmission{
		SubmissionID: submissionID,
		Stage:        stage,
		ErrorType:    ClassifyError(err),
		Attempts:     attempts,
		FailedAt:     time.Now().UTC(),
	}
	if err != nil {
		f.Error = err.Error()
	}
	return f
}

// Resubmittable reports whether a later run could reasonably succeed.
func (f FailedSubmission) Resubmittable() bool {
	return f.ErrorType == ErrorTransient
}
