package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/exit-readiness/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id              TEXT PRIMARY KEY,
	submission_id   TEXT,
	industry        TEXT NOT NULL DEFAULT '',
	overall_score   REAL NOT NULL,
	readiness_level TEXT NOT NULL,
	result          TEXT NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_industry ON assessments(industry);
CREATE INDEX IF NOT EXISTS idx_assessments_readiness ON assessments(readiness_level);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAssessment inserts rec, replacing any record with the same id. A
// missing id or timestamp is filled in.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, rec *model.AssessmentRecord) error {
	prepareRecord(rec)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, submission_id, industry, overall_score, readiness_level, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   submission_id = excluded.submission_id,
		   industry = excluded.industry,
		   overall_score = excluded.overall_score,
		   readiness_level = excluded.readiness_level,
		   result = excluded.result`,
		rec.ID, nullString(rec.SubmissionID), rec.Industry, rec.OverallScore,
		string(rec.ReadinessLevel), string(rec.Result), rec.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: save assessment %s", rec.ID)
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, submission_id, industry, overall_score, readiness_level, result, created_at
		 FROM assessments WHERE id = ?`,
		id,
	)
	rec, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get assessment %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get assessment %s", id)
	}
	return rec, nil
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter ListFilter) ([]model.AssessmentRecord, error) {
	query := `SELECT id, submission_id, industry, overall_score, readiness_level, result, created_at
		FROM assessments WHERE 1=1`
	var args []any

	if filter.Industry != "" {
		query += ` AND industry = ?`
		args = append(args, filter.Industry)
	}
	if filter.ReadinessLevel != "" {
		query += ` AND readiness_level = ?`
		args = append(args, string(filter.ReadinessLevel))
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close() //nolint:errcheck

	recs := []model.AssessmentRecord{}
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan assessment")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (*model.AssessmentRecord, error) {
	var rec model.AssessmentRecord
	var submissionID sql.NullString
	var readiness, result string

	err := row.Scan(&rec.ID, &submissionID, &rec.Industry, &rec.OverallScore, &readiness, &result, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.SubmissionID = submissionID.String
	rec.ReadinessLevel = model.ReadinessLevel(readiness)
	rec.Result = []byte(result)
	return &rec, nil
}

// prepareRecord fills in a missing id and creation time.
func prepareRecord(rec *model.AssessmentRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if len(rec.Result) == 0 {
		rec.Result = []byte("{}")
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
