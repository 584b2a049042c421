package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/exit-readiness/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

var assessmentColumns = []string{"id", "submission_id", "industry", "overall_score", "readiness_level", "result", "created_at"}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS assessments`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	rec := testRecord("a1", "HVAC", 6.5, model.ReadinessApproachingReady, time.Now().UTC())

	mock.ExpectExec(`INSERT INTO assessments .* ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("a1", pgxmock.AnyArg(), "HVAC", 6.5, "Approaching Ready", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveAssessment(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessment_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WillReturnError(eris.New("connection reset by peer"))

	err := s.SaveAssessment(context.Background(), &model.AssessmentRecord{ID: "a1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: save assessment a1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()
	sub := "sub-1"

	mock.ExpectQuery(`SELECT id, submission_id, industry, overall_score, readiness_level, result, created_at FROM assessments WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows(assessmentColumns).
			AddRow("a1", &sub, "HVAC", 8.2, "Exit Ready", []byte(`{"overall_score":8.2}`), now))

	got, err := s.GetAssessment(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "sub-1", got.SubmissionID)
	assert.Equal(t, model.ReadinessExitReady, got.ReadinessLevel)
	assert.JSONEq(t, `{"overall_score":8.2}`, string(got.Result))
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM assessments WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAssessment(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM assessments WHERE 1=1 AND industry = \$1 AND readiness_level = \$2 ORDER BY created_at DESC, id LIMIT \$3 OFFSET \$4`).
		WithArgs("HVAC", "Needs Work", 10, 20).
		WillReturnRows(pgxmock.NewRows(assessmentColumns).
			AddRow("a1", nil, "HVAC", 4.5, "Needs Work", []byte(`{}`), now).
			AddRow("a2", nil, "HVAC", 5.0, "Needs Work", []byte(`{}`), now))

	recs, err := s.ListAssessments(context.Background(), ListFilter{
		Industry:       "HVAC",
		ReadinessLevel: model.ReadinessNeedsWork,
		Limit:          10,
		Offset:         20,
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a2", recs[1].ID)
	assert.Empty(t, recs[0].SubmissionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM assessments WHERE 1=1 ORDER BY created_at DESC, id LIMIT \$1$`).
		WithArgs(DefaultListLimit).
		WillReturnRows(pgxmock.NewRows(assessmentColumns))

	recs, err := s.ListAssessments(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
