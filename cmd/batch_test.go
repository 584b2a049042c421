//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/exit-readiness/internal/assessment"
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/resilience"
)

func testSubmissions(n int) []model.Submission {
	subs := make([]model.Submission, n)
	for i := range subs {
		subs[i] = model.Submission{
			ID:           "sub-" + string(rune('a'+i)),
			Industry:     "HVAC",
			ExitTimeline: "1-2 years",
			Responses: model.Responses{
				"q1": "Our operations manager handles scheduling and most approvals.",
				"q2": "2-4 weeks",
				"q4": "40-60%",
				"q5": "7",
				"q8": "6",
			},
		}
	}
	return subs
}

func testBatchOptions() batchOptions {
	return batchOptions{
		Concurrency: 3,
		Retry: resilience.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
		},
		Breaker: resilience.BreakerConfig{FailureThreshold: 100, ResetTimeout: time.Minute},
	}
}

func TestProcessBatch_ScoreOnly(t *testing.T) {
	subs := testSubmissions(4)

	rows, failed, err := processBatch(context.Background(), assessment.New(nil, nil), subs, testBatchOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, rows, 4)

	for i, r := range rows {
		assert.Equal(t, subs[i].ID, r.SubmissionID)
		assert.Equal(t, statusScored, r.Status)
		assert.NotEmpty(t, r.RequestID)
		assert.NotEmpty(t, r.PrimaryFocus)
		assert.Positive(t, r.OverallScore)
	}
}

func TestProcessBatch_SavesEachResult(t *testing.T) {
	var mu sync.Mutex
	saved := make(map[string]*model.AssessmentRecord)
	save := func(_ context.Context, rec *model.AssessmentRecord) error {
		mu.Lock()
		defer mu.Unlock()
		saved[rec.SubmissionID] = rec
		return nil
	}

	opts := testBatchOptions()
	opts.SaveRate = 1000
	rows, failed, err := processBatch(context.Background(), assessment.New(nil, nil), testSubmissions(3), opts, save)
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, saved, 3)

	for _, r := range rows {
		assert.Equal(t, statusSaved, r.Status)
		rec := saved[r.SubmissionID]
		require.NotNil(t, rec)
		assert.Equal(t, r.RequestID, rec.ID)
		assert.NotContains(t, string(rec.Result), "operations manager handles scheduling")
	}
}

func TestProcessBatch_RetriesTransientSave(t *testing.T) {
	var mu sync.Mutex
	calls := make(map[string]int)
	save := func(_ context.Context, rec *model.AssessmentRecord) error {
		mu.Lock()
		defer mu.Unlock()
		calls[rec.SubmissionID]++
		if calls[rec.SubmissionID] == 1 {
			return eris.New("sqlite: save assessment: database is locked")
		}
		return nil
	}

	rows, failed, err := processBatch(context.Background(), assessment.New(nil, nil), testSubmissions(2), testBatchOptions(), save)
	require.NoError(t, err)
	assert.Empty(t, failed)
	for _, r := range rows {
		assert.Equal(t, statusSaved, r.Status)
		assert.Equal(t, 2, calls[r.SubmissionID])
	}
}

func TestProcessBatch_PermanentSaveFailure(t *testing.T) {
	save := func(_ context.Context, rec *model.AssessmentRecord) error {
		if rec.SubmissionID == "sub-b" {
			return eris.New("CHECK constraint failed: overall_score")
		}
		return nil
	}

	rows, failed, err := processBatch(context.Background(), assessment.New(nil, nil), testSubmissions(3), testBatchOptions(), save)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, statusSaved, rows[0].Status)
	assert.Equal(t, statusFailed, rows[1].Status)
	assert.Contains(t, rows[1].Error, "CHECK constraint failed")
	assert.Equal(t, statusSaved, rows[2].Status)

	require.Len(t, failed, 1)
	assert.Equal(t, "sub-b", failed[0].SubmissionID)
	assert.Equal(t, resilience.StageSave, failed[0].Stage)
	assert.Equal(t, resilience.ErrorPermanent, failed[0].ErrorType)
	assert.Equal(t, 1, failed[0].Attempts)
}

func TestProcessBatch_BreakerStopsSaves(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	save := func(_ context.Context, _ *model.AssessmentRecord) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return eris.New("constraint failed")
	}

	opts := testBatchOptions()
	opts.Concurrency = 1
	opts.Breaker.FailureThreshold = 2

	_, failed, err := processBatch(context.Background(), assessment.New(nil, nil), testSubmissions(5), opts, save)
	require.NoError(t, err)
	require.Len(t, failed, 5)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, failed[4].Attempts)
	assert.True(t, failed[4].Resubmittable())
}

func TestProcessBatch_LimitAndEmpty(t *testing.T) {
	opts := testBatchOptions()
	opts.Limit = 2
	rows, _, err := processBatch(context.Background(), assessment.New(nil, nil), testSubmissions(5), opts, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, failed, err := processBatch(context.Background(), assessment.New(nil, nil), nil, opts, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, failed)
}

func TestWriteSummary(t *testing.T) {
	rows := []batchRow{
		{SubmissionID: "s1", RequestID: "r1", OverallScore: 6.54, ReadinessLevel: model.ReadinessApproachingReady,
			PrimaryFocus: model.CategoryOwnerDependence, Status: statusSaved},
		{SubmissionID: "s2", Status: statusFailed, Error: "context canceled"},
		{SubmissionID: "s3", RequestID: "r3", OverallScore: 7, ReadinessLevel: model.ReadinessApproachingReady,
			PrimaryFocus: model.CategoryGrowthValue, Status: statusSaved},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, rows))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, summaryHeader, records[0])
	assert.Equal(t, []string{"s1", "r1", "6.54", "Approaching Ready", string(model.CategoryOwnerDependence), "saved", ""}, records[1])
	assert.Equal(t, []string{"s2", "", "", "", "", "failed", "context canceled"}, records[2])
	assert.Equal(t, "7.00", records[3][2])
}

func TestReadSubmissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subs.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,industry,q1\nx,HVAC,I do everything\n"), 0o644))

	subs, err := readSubmissions(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "x", subs[0].ID)

	_, err = readSubmissions(context.Background(), filepath.Join(dir, "subs.txt"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input")
}
