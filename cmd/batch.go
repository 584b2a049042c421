package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/exit-readiness/internal/assessment"
	"github.com/sells-group/exit-readiness/internal/intake"
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/resilience"
)

// Batch row statuses.
const (
	statusScored = "scored"
	statusSaved  = "saved"
	statusFailed = "failed"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of submissions from CSV or XLSX",
	Long: `Score every submission in a CSV or XLSX export concurrently and write a
CSV summary. The header row names the columns: id, industry, revenue_range,
years_in_business, exit_timeline, location, and q1..q10. Unknown columns are
ignored.

Examples:
  # Score a CSV export and print the summary
  batch --input responses.csv

  # Score a spreadsheet sheet, persist results, and keep failures for resubmission
  batch --input survey.xlsx --sheet Responses --save --output summary.csv --failed failed.json`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringP("input", "i", "", "submissions file (.csv or .xlsx)")
	f.String("sheet", "", "xlsx sheet name (default: first sheet)")
	f.StringP("output", "o", "", "summary CSV path (default: stdout)")
	f.String("failed", "", "write failed submissions as JSON to this path")
	f.Bool("save", false, "persist results to the configured store")
	f.Int("limit", 0, "max number of submissions to score (0 = all)")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("batch"); err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	sheet, _ := cmd.Flags().GetString("sheet")
	output, _ := cmd.Flags().GetString("output")
	failedPath, _ := cmd.Flags().GetString("failed")
	save, _ := cmd.Flags().GetBool("save")
	limit, _ := cmd.Flags().GetInt("limit")

	subs, err := readSubmissions(ctx, input, sheet)
	if err != nil {
		return err
	}

	svc, err := initService(cfg)
	if err != nil {
		return err
	}

	opts := batchOptions{
		Limit:       limit,
		Concurrency: cfg.Batch.MaxConcurrency,
		SaveRate:    cfg.Batch.SaveRatePerSec,
		Retry: resilience.FromRetryConfig(cfg.Retry.MaxAttempts, cfg.Retry.InitialBackoffMs,
			cfg.Retry.MaxBackoffMs, cfg.Retry.Multiplier, cfg.Retry.JitterFraction),
		Breaker: resilience.FromBreakerConfig(cfg.Breaker.FailureThreshold, cfg.Breaker.ResetTimeoutSecs),
	}

	var saver saveFunc
	if save {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		saver = st.SaveAssessment
	}

	rows, failed, err := processBatch(ctx, svc, subs, opts, saver)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrap(err, "batch: create summary")
		}
		defer f.Close() //nolint:errcheck
		w = f
	}
	if err := writeSummary(w, rows); err != nil {
		return err
	}

	if failedPath != "" && len(failed) > 0 {
		raw, err := json.MarshalIndent(failed, "", "  ")
		if err != nil {
			return eris.Wrap(err, "batch: marshal failed submissions")
		}
		if err := os.WriteFile(failedPath, raw, 0o644); err != nil {
			return eris.Wrap(err, "batch: write failed submissions")
		}
	}
	return nil
}

// readSubmissions reads a CSV or XLSX submissions file by extension.
func readSubmissions(ctx context.Context, path, sheet string) ([]model.Submission, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return intake.ReadXLSXSheet(path, sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "batch: open input")
		}
		defer f.Close() //nolint:errcheck
		return intake.ReadCSV(ctx, f)
	default:
		return nil, eris.Errorf("batch: unsupported input %q (want .csv or .xlsx)", path)
	}
}

// saveFunc persists one assessment record.
type saveFunc func(ctx context.Context, rec *model.AssessmentRecord) error

type batchOptions struct {
	Limit       int
	Concurrency int
	SaveRate    float64 // saves per second, 0 = unlimited
	Retry       resilience.RetryConfig
	Breaker     resilience.BreakerConfig
}

// batchRow is one line of the batch summary.
type batchRow struct {
	SubmissionID   string
	RequestID      string
	OverallScore   float64
	ReadinessLevel model.ReadinessLevel
	PrimaryFocus   model.Category
	Status         string
	Error          string
}

// processBatch scores subs concurrently and, when save is non-nil, persists
// each result through a rate limiter, retry, and circuit breaker. Individual
// failures do not abort the batch. Rows come back in input order.
func processBatch(ctx context.Context, svc *assessment.Service, subs []model.Submission, opts batchOptions, save saveFunc) ([]batchRow, []resilience.FailedSubmission, error) {
	if opts.Limit > 0 && len(subs) > opts.Limit {
		subs = subs[:opts.Limit]
	}
	if len(subs) == 0 {
		zap.L().Info("batch: no submissions found")
		return []batchRow{}, nil, nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	limit := rate.Inf
	if opts.SaveRate > 0 {
		limit = rate.Limit(opts.SaveRate)
	}
	limiter := rate.NewLimiter(limit, 1)
	breaker := resilience.NewBreaker("store", opts.Breaker)

	zap.L().Info("batch: processing",
		zap.Int("submissions", len(subs)),
		zap.Int("concurrency", opts.Concurrency),
		zap.Bool("save", save != nil),
	)

	rows := make([]batchRow, len(subs))
	var (
		mu     sync.Mutex
		failed []resilience.FailedSubmission
	)
	fail := func(i int, stage string, attempts int, err error) {
		rows[i].Status = statusFailed
		rows[i].Error = err.Error()
		mu.Lock()
		failed = append(failed, resilience.NewFailedSubmission(subs[i].ID, stage, attempts, err))
		mu.Unlock()
	}

	var succeeded, errored atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range subs {
		sub := subs[i]
		rows[i].SubmissionID = sub.ID
		g.Go(func() error {
			log := zap.L().With(zap.String("submission_id", sub.ID))

			res, err := svc.Score(gctx, assessment.ScoreRequest{
				Responses:       sub.Responses,
				Industry:        sub.Industry,
				RevenueRange:    sub.RevenueRange,
				YearsInBusiness: sub.YearsInBusiness,
				ExitTimeline:    sub.ExitTimeline,
			})
			if err != nil {
				errored.Add(1)
				fail(i, resilience.StageScore, 1, err)
				log.Error("batch: score failed", zap.Error(err))
				return nil
			}

			rows[i].RequestID = res.RequestID
			rows[i].OverallScore = res.OverallScore
			rows[i].ReadinessLevel = res.ReadinessLevel
			if res.FocusAreas.Primary != nil {
				rows[i].PrimaryFocus = res.FocusAreas.Primary.Category
			}
			rows[i].Status = statusScored

			if save != nil {
				attempts, err := saveResult(gctx, res, sub.ID, limiter, breaker, opts.Retry, save)
				if err != nil {
					errored.Add(1)
					fail(i, resilience.StageSave, attempts, err)
					log.Error("batch: save failed", zap.Int("attempts", attempts), zap.Error(err))
					return nil
				}
				rows[i].Status = statusSaved
			}

			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, eris.Wrap(err, "batch: processing")
	}

	zap.L().Info("batch: complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", errored.Load()),
	)
	return rows, failed, nil
}

// saveResult persists res and returns the number of store attempts made.
func saveResult(ctx context.Context, res *assessment.ScoreResult, submissionID string, limiter *rate.Limiter, breaker *resilience.Breaker, retry resilience.RetryConfig, save saveFunc) (int, error) {
	rec, err := res.Record(submissionID)
	if err != nil {
		return 0, err
	}

	retry.OnRetry = resilience.RetryLogger("save", submissionID)
	attempts := 0
	err = breaker.Execute(ctx, func(ctx context.Context) error {
		n, err := resilience.Do(ctx, retry, func(ctx context.Context) error {
			if err := limiter.Wait(ctx); err != nil {
				return eris.Wrap(err, "batch: rate limit")
			}
			return save(ctx, rec)
		})
		attempts = n
		return err
	})
	return attempts, err
}

var summaryHeader = []string{
	"submission_id", "request_id", "overall_score", "readiness_level", "primary_focus", "status", "error",
}

// writeSummary writes rows as CSV.
func writeSummary(w io.Writer, rows []batchRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return eris.Wrap(err, "batch: write summary header")
	}
	for _, r := range rows {
		score := ""
		if r.Status != statusFailed || r.RequestID != "" {
			score = strconv.FormatFloat(r.OverallScore, 'f', 2, 64)
		}
		if err := cw.Write([]string{
			r.SubmissionID,
			r.RequestID,
			score,
			string(r.ReadinessLevel),
			string(r.PrimaryFocus),
			r.Status,
			r.Error,
		}); err != nil {
			return eris.Wrap(err, "batch: write summary row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "batch: flush summary")
}
