package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/model"
)

// Pool is the subset of pgxpool.Pool the Postgres store needs.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const (
	insertAssessmentSQL = `INSERT INTO assessments (id, submission_id, industry, overall_score, readiness_level, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	submission_id = EXCLUDED.submission_id,
	industry = EXCLUDED.industry,
	overall_score = EXCLUDED.overall_score,
	readiness_level = EXCLUDED.readiness_level,
	result = EXCLUDED.result`
	selectAssessmentSQL = `SELECT id, submission_id, industry, overall_score, readiness_level, result, created_at FROM assessments`
)

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	submission_id   TEXT,
	industry        TEXT NOT NULL DEFAULT '',
	overall_score   DOUBLE PRECISION NOT NULL,
	readiness_level TEXT NOT NULL,
	result          JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_industry ON assessments(industry);
CREATE INDEX IF NOT EXISTS idx_assessments_readiness ON assessments(readiness_level);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveAssessment upserts rec. A missing id or timestamp is filled in.
func (s *PostgresStore) SaveAssessment(ctx context.Context, rec *model.AssessmentRecord) error {
	prepareRecord(rec)
	var submissionID *string
	if rec.SubmissionID != "" {
		submissionID = &rec.SubmissionID
	}
	_, err := s.pool.Exec(ctx, insertAssessmentSQL,
		rec.ID, submissionID, rec.Industry, rec.OverallScore,
		string(rec.ReadinessLevel), []byte(rec.Result), rec.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: save assessment %s", rec.ID)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.AssessmentRecord, error) {
	row := s.pool.QueryRow(ctx, selectAssessmentSQL+` WHERE id = $1`, id)
	rec, err := scanPgAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get assessment %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get assessment %s", id)
	}
	return rec, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter ListFilter) ([]model.AssessmentRecord, error) {
	query := selectAssessmentSQL + ` WHERE 1=1`
	var args []any
	argN := 1

	if filter.Industry != "" {
		query += fmt.Sprintf(` AND industry = $%d`, argN)
		args = append(args, filter.Industry)
		argN++
	}
	if filter.ReadinessLevel != "" {
		query += fmt.Sprintf(` AND readiness_level = $%d`, argN)
		args = append(args, string(filter.ReadinessLevel))
		argN++
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d`, argN)
	args = append(args, filter.limit())
	argN++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argN)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	recs := []model.AssessmentRecord{}
	for rows.Next() {
		rec, err := scanPgAssessment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func scanPgAssessment(row pgx.Row) (*model.AssessmentRecord, error) {
	var rec model.AssessmentRecord
	var submissionID *string
	var readiness string
	var result []byte

	if err := row.Scan(&rec.ID, &submissionID, &rec.Industry, &rec.OverallScore, &readiness, &result, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if submissionID != nil {
		rec.SubmissionID = *submissionID
	}
	rec.ReadinessLevel = model.ReadinessLevel(readiness)
	rec.Result = result
	return &rec, nil
}
