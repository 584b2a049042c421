package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// Financial scoring constants.
const (
	RatingWeight          = 0.6
	ConsistencyGap        = 4.0
	ConsistencyCorrection = 0.10
)

// ScoreFinancialReadiness scores record confidence and margin trend, then
// cross-checks confidence against the documentation rating.
func ScoreFinancialReadiness(r model.Responses, d research.Data) model.CategoryScoreResult {
	b := newBuilder(model.CategoryFinancialReadiness, NeutralScore)

	confidence, ok := pattern.ParseRating(r.Get("q5"))
	if !ok {
		confidence = NeutralScore
		b.gap(neutralNote("financial records confidence", r.Get("q5")))
	}
	switch {
	case ok && confidence >= 8:
		b.strength("High confidence in financial records")
	case ok && confidence <= 4:
		b.gap("Low confidence in financial records")
	}

	impact := DefaultMarginImpact
	trend := r.Get("q6")
	if bk, ok := lookupBucket(trend, MarginTrendBuckets); ok {
		impact = bk.Value
		lower := strings.ToLower(bk.Answer)
		switch {
		case strings.HasPrefix(lower, "declining"):
			b.gap(fmt.Sprintf("Declining profit margins (%s)", strings.ToLower(bk.Answer)))
		case strings.HasPrefix(lower, "growing"):
			b.strength(fmt.Sprintf("Growing profit margins (%s)", strings.ToLower(bk.Answer)))
		}
	} else {
		b.gap(neutralNote("profit margin trend", trend))
	}

	b.base = confidence*RatingWeight + impact

	if documentation, ok := pattern.ParseRating(r.Get("q8")); ok {
		switch {
		case confidence-documentation >= ConsistencyGap:
			b.add(-b.base*ConsistencyCorrection, "Financial confidence not backed by process documentation")
		case documentation-confidence >= ConsistencyGap:
			b.add(b.base*ConsistencyCorrection, "Documentation suggests records are stronger than the owner believes")
		}
	}

	res := b.result()
	low, high := d.EBITDAMultiples()
	res.IndustryContext = map[string]string{
		"ebitda_multiple_range": formatNum(low) + "-" + formatNum(high) + "x",
	}
	return res
}
