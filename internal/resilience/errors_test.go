package resilience

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"explicit", NewTransientError(errors.New("overloaded")), true},
		{"wrapped explicit", eris.Wrap(NewTransientError(errors.New("x")), "store: save"), true},
		{"plain", errors.New("invalid input: missing field"), false},
		{"connection reset", fmt.Errorf("write tcp: %w", syscall.ECONNRESET), true},
		{"connection refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"net timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, true},
		{"sqlite busy", errors.New("sqlite: save assessment a1: database is locked (5) (SQLITE_BUSY)"), true},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, true},
		{"pg deadlock", eris.Wrap(&pgconn.PgError{Code: "40P01"}, "postgres: save"), true},
		{"pg connection class", &pgconn.PgError{Code: "08006"}, true},
		{"pg too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"pg syntax", &pgconn.PgError{Code: "42601"}, false},
		{"breaker open", ErrBreakerOpen, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsTransientSQLState(t *testing.T) {
	for code, want := range map[string]bool{
		"40001": true,
		"40P01": true,
		"57P03": true,
		"08001": true,
		"40002": false,
		"22P02": false,
		"":      false,
		"0":     false,
	} {
		if got := IsTransientSQLState(code); got != want {
			t.Errorf("IsTransientSQLState(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	if got := ClassifyError(NewTransientError(errors.New("x"))); got != ErrorTransient {
		t.Errorf("expected transient, got %s", got)
	}
	if got := ClassifyError(errors.New("bad record")); got != ErrorPermanent {
		t.Errorf("expected permanent, got %s", got)
	}
}

func TestNewFailedSubmission(t *testing.T) {
	f := NewFailedSubmission("sub-1", StageSave, 3, errors.New("database is locked"))
	if f.SubmissionID != "sub-1" || f.Stage != StageSave || f.Attempts != 3 {
		t.Errorf("unexpected record: %+v", f)
	}
	if !f.Resubmittable() {
		t.Error("busy database should be resubmittable")
	}
	if f.FailedAt.IsZero() {
		t.Error("expected FailedAt to be set")
	}

	p := NewFailedSubmission("sub-2", StageScore, 1, errors.New("context canceled"))
	if p.Resubmittable() {
		t.Error("permanent failure should not be resubmittable")
	}
}
