package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/exit-readiness/internal/model"
)

func newMockSQLiteStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	return &SQLiteStore{db: db}, mock
}

func TestSQLiteMock_SaveError(t *testing.T) {
	st, mock := newMockSQLiteStore(t)

	mock.ExpectExec("INSERT INTO assessments").
		WillReturnError(errors.New("database is locked"))

	err := st.SaveAssessment(context.Background(), &model.AssessmentRecord{ID: "a1", ReadinessLevel: model.ReadinessNeedsWork})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: save assessment a1")
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteMock_SaveNullSubmission(t *testing.T) {
	st, mock := newMockSQLiteStore(t)

	mock.ExpectExec("INSERT INTO assessments").
		WithArgs("a1", sql.NullString{}, "HVAC", 6.5, "Approaching Ready", "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := &model.AssessmentRecord{ID: "a1", Industry: "HVAC", OverallScore: 6.5, ReadinessLevel: model.ReadinessApproachingReady}
	require.NoError(t, st.SaveAssessment(context.Background(), rec))
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteMock_GetNotFound(t *testing.T) {
	st, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`FROM assessments WHERE id = \?`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := st.GetAssessment(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteMock_GetQueryError(t *testing.T) {
	st, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`FROM assessments WHERE id = \?`).
		WithArgs("a1").
		WillReturnError(errors.New("disk I/O error"))

	_, err := st.GetAssessment(context.Background(), "a1")
	require.Error(t, err)
	assert.False(t, eris.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "sqlite: get assessment a1")
}

func TestSQLiteMock_ListErrors(t *testing.T) {
	cols := []string{"id", "submission_id", "industry", "overall_score", "readiness_level", "result", "created_at"}

	t.Run("query", func(t *testing.T) {
		st, mock := newMockSQLiteStore(t)
		mock.ExpectQuery("FROM assessments").WillReturnError(errors.New("no such table: assessments"))

		_, err := st.ListAssessments(context.Background(), ListFilter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite: list assessments")
	})

	t.Run("scan", func(t *testing.T) {
		st, mock := newMockSQLiteStore(t)
		mock.ExpectQuery("FROM assessments").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", nil, "HVAC", 6.5, "Needs Work", "{}", "not a time"))

		_, err := st.ListAssessments(context.Background(), ListFilter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite: scan assessment")
	})

	t.Run("iterate", func(t *testing.T) {
		st, mock := newMockSQLiteStore(t)
		mock.ExpectQuery("FROM assessments").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("a1", nil, "HVAC", 6.5, "Needs Work", "{}", time.Now()).
				RowError(0, errors.New("connection reset by peer")))

		_, err := st.ListAssessments(context.Background(), ListFilter{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite: list assessments iterate")
	})

	t.Run("filters and offset", func(t *testing.T) {
		st, mock := newMockSQLiteStore(t)
		mock.ExpectQuery(`AND industry = \? AND readiness_level = \? ORDER BY created_at DESC, id LIMIT \? OFFSET \?`).
			WithArgs("Dental", "Exit Ready", 5, 10).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("a1", "sub-1", "Dental", 8.2, "Exit Ready", "{}", time.Now()))

		recs, err := st.ListAssessments(context.Background(), ListFilter{
			Industry:       "Dental",
			ReadinessLevel: model.ReadinessExitReady,
			Limit:          5,
			Offset:         10,
		})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "sub-1", recs[0].SubmissionID)
		assert.Equal(t, []byte("{}"), []byte(recs[0].Result))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
