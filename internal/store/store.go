// Package store persists scored assessment records.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/model"
)

// DefaultListLimit caps ListAssessments when no limit is given.
const DefaultListLimit = 100

// ErrNotFound is returned when an assessment id has no record.
var ErrNotFound = eris.New("store: assessment not found")

// ListFilter specifies criteria for listing assessments.
type ListFilter struct {
	Industry       string               `json:"industry,omitempty"`
	ReadinessLevel model.ReadinessLevel `json:"readiness_level,omitempty"`
	Limit          int                  `json:"limit,omitempty"`
	Offset         int                  `json:"offset,omitempty"`
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store defines the persistence interface for assessment results.
type Store interface {
	SaveAssessment(ctx context.Context, rec *model.AssessmentRecord) error
	GetAssessment(ctx context.Context, id string) (*model.AssessmentRecord, error)
	ListAssessments(ctx context.Context, filter ListFilter) ([]model.AssessmentRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store for driver. An empty sqlite DSN defaults to
// "assessments.db".
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "assessments.db"
		}
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
}
