// Package assessment runs the scoring and personalization branches for a
// single questionnaire submission.
package assessment

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/exit-readiness/internal/aggregate"
	"github.com/sells-group/exit-readiness/internal/focus"
	"github.com/sells-group/exit-readiness/internal/insight"
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/research"
	"github.com/sells-group/exit-readiness/internal/scorer"
	"github.com/sells-group/exit-readiness/internal/sentiment"
)

// TopFindings caps the strengths and critical gaps surfaced in a result.
const TopFindings = 5

// ScoreRequest is the input of the scoring branch.
type ScoreRequest struct {
	Responses       model.Responses `json:"responses" yaml:"responses"`
	Industry        string          `json:"industry" yaml:"industry"`
	RevenueRange    string          `json:"revenue_range" yaml:"revenue_range"`
	YearsInBusiness string          `json:"years_in_business" yaml:"years_in_business"`
	ExitTimeline    string          `json:"exit_timeline" yaml:"exit_timeline"`
	ResearchData    research.Data   `json:"research_data,omitempty" yaml:"research_data,omitempty"`
}

// IndustryContext echoes the business profile alongside the benchmarks used.
type IndustryContext struct {
	Industry        string            `json:"industry" yaml:"industry"`
	RevenueRange    string            `json:"revenue_range" yaml:"revenue_range"`
	YearsInBusiness int               `json:"years_in_business" yaml:"years_in_business"`
	ExitTimeline    string            `json:"exit_timeline" yaml:"exit_timeline"`
	Benchmarks      map[string]string `json:"benchmarks" yaml:"benchmarks"`
}

// ScoreResult is the output of the scoring branch.
type ScoreResult struct {
	RequestID       string                                       `json:"request_id" yaml:"request_id"`
	CategoryScores  map[model.Category]model.CategoryScoreResult `json:"category_scores" yaml:"category_scores"`
	OverallScore    float64                                      `json:"overall_score" yaml:"overall_score"`
	ReadinessLevel  model.ReadinessLevel                         `json:"readiness_level" yaml:"readiness_level"`
	Aggregate       model.AggregateResult                        `json:"aggregate" yaml:"aggregate"`
	FocusAreas      model.FocusAreas                             `json:"focus_areas" yaml:"focus_areas"`
	Strengths       []string                                     `json:"strengths" yaml:"strengths"`
	CriticalGaps    []string                                     `json:"critical_gaps" yaml:"critical_gaps"`
	IndustryContext IndustryContext                              `json:"industry_context" yaml:"industry_context"`
}

// PersonalizeRequest is the input of the personalization branch. Responses
// must already be anonymized.
type PersonalizeRequest struct {
	Responses       model.Responses `json:"anonymized_responses" yaml:"anonymized_responses"`
	Industry        string          `json:"industry" yaml:"industry"`
	YearsInBusiness string          `json:"years_in_business" yaml:"years_in_business"`
	RevenueRange    string          `json:"revenue_range" yaml:"revenue_range"`
	Location        string          `json:"location,omitempty" yaml:"location,omitempty"`
	ExitTimeline    string          `json:"exit_timeline" yaml:"exit_timeline"`
}

// PersonalizeResult is the output of the personalization branch.
type PersonalizeResult struct {
	RequestID     string                 `json:"request_id" yaml:"request_id"`
	MinedInsights *model.MinedInsights   `json:"mined_insights" yaml:"mined_insights"`
	Sentiment     model.SentimentProfile `json:"sentiment" yaml:"sentiment"`
}

// Service scores and personalizes submissions. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	scorer   *scorer.Scorer
	research research.Data
}

// New creates a Service. Defaults is the benchmark data every request
// starts from; request research data is applied on top.
func New(sc *scorer.Scorer, defaults research.Data) *Service {
	if sc == nil {
		sc = scorer.New(nil)
	}
	if defaults == nil {
		defaults = research.Data{}
	}
	return &Service{scorer: sc, research: defaults}
}

// Score runs the category scorers, aggregation, and focus-area ranking.
func (s *Service) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "assessment: score")
	}

	id := uuid.NewString()
	log := zap.L().With(zap.String("request_id", id), zap.String("industry", req.Industry))
	start := time.Now()

	data := research.Merge(s.research, req.ResearchData)
	scores := s.scorer.ScoreAll(req.Responses, data)
	agg := aggregate.Aggregate(scores)
	areas := focus.Prioritize(focus.Input{
		Scores:       scores,
		Research:     data,
		ExitTimeline: req.ExitTimeline,
		Responses:    req.Responses,
	})

	res := &ScoreResult{
		RequestID:      id,
		CategoryScores: scores,
		OverallScore:   agg.OverallScore,
		ReadinessLevel: agg.ReadinessLevel,
		Aggregate:      agg,
		FocusAreas:     model.NewFocusAreas(areas),
		Strengths:      TopStrengths(scores, TopFindings),
		CriticalGaps:   TopGaps(scores, TopFindings),
		IndustryContext: IndustryContext{
			Industry:        req.Industry,
			RevenueRange:    req.RevenueRange,
			YearsInBusiness: ParseYearsInBusiness(req.YearsInBusiness),
			ExitTimeline:    req.ExitTimeline,
			Benchmarks:      data.Context(),
		},
	}

	log.Info("assessment: scored",
		zap.Float64("overall_score", res.OverallScore),
		zap.String("readiness", string(res.ReadinessLevel)),
		zap.Int("active_risks", agg.ActiveRiskCount),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return res, nil
}

// Personalize mines insights and profiles sentiment.
func (s *Service) Personalize(ctx context.Context, req PersonalizeRequest) (*PersonalizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "assessment: personalize")
	}

	id := uuid.NewString()
	mi := insight.Mine(req.Responses)
	prof := sentiment.Analyze(req.Responses, req.ExitTimeline)

	zap.L().Info("assessment: personalized",
		zap.String("request_id", id),
		zap.Int("insights", mi.Total()),
		zap.Int("quotes", len(mi.Quotes)),
		zap.String("voice", prof.RecommendedVoice),
		zap.String("stress", string(prof.OwnerStressLevel)),
	)
	return &PersonalizeResult{RequestID: id, MinedInsights: mi, Sentiment: prof}, nil
}

// Record converts a score result into its persisted form. Answer text is not
// part of the record.
func (r *ScoreResult) Record(submissionID string) (*model.AssessmentRecord, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, eris.Wrap(err, "assessment: marshal result")
	}
	return &model.AssessmentRecord{
		ID:             r.RequestID,
		SubmissionID:   submissionID,
		Industry:       r.IndustryContext.Industry,
		OverallScore:   r.OverallScore,
		ReadinessLevel: r.ReadinessLevel,
		Result:         raw,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// TopStrengths collects up to n strengths, best-scoring categories first.
func TopStrengths(scores map[model.Category]model.CategoryScoreResult, n int) []string {
	cats := rankCategories(scores, func(a, b float64) bool { return a > b })
	return collect(scores, cats, n, func(r model.CategoryScoreResult) []string { return r.Strengths })
}

// TopGaps collects up to n gaps, lowest-scoring categories first.
func TopGaps(scores map[model.Category]model.CategoryScoreResult, n int) []string {
	cats := rankCategories(scores, func(a, b float64) bool { return a < b })
	return collect(scores, cats, n, func(r model.CategoryScoreResult) []string { return r.Gaps })
}

func rankCategories(scores map[model.Category]model.CategoryScoreResult, less func(a, b float64) bool) []model.Category {
	var cats []model.Category
	for _, c := range model.Categories {
		if _, ok := scores[c]; ok {
			cats = append(cats, c)
		}
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return less(scores[cats[i]].Score, scores[cats[j]].Score)
	})
	return cats
}

func collect(scores map[model.Category]model.CategoryScoreResult, cats []model.Category, n int, pick func(model.CategoryScoreResult) []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, c := range cats {
		for _, s := range pick(scores[c]) {
			if len(out) >= n {
				return out
			}
			if placeholder(s) || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// placeholder reports whether s is a scorer's "nothing found" entry.
func placeholder(s string) bool {
	return strings.HasPrefix(s, "No specific ") && strings.HasSuffix(s, " strengths identified") ||
		strings.HasPrefix(s, "No critical ") && strings.HasSuffix(s, " gaps identified")
}
