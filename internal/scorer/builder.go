package scorer

import (
	"fmt"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Score bounds for every category.
const (
	MinScore     = 1.0
	MaxScore     = 10.0
	NeutralScore = 5.0
)

// builder accumulates a category score as a base plus an ordered trail of
// adjustments. It is local to one scorer call.
type builder struct {
	category    model.Category
	base        float64
	adjustments []model.Adjustment
	strengths   []string
	gaps        []string
}

func newBuilder(c model.Category, base float64) *builder {
	return &builder{category: c, base: base}
}

// adjust records a delta without classifying it as a strength or gap.
func (b *builder) adjust(delta float64, reason string) {
	if delta == 0 {
		return
	}
	b.adjustments = append(b.adjustments, model.Adjustment{Delta: pattern.Round2(delta), Reason: reason})
}

// add records a delta and files the reason as a strength when positive or a
// gap when negative.
func (b *builder) add(delta float64, reason string) {
	if delta == 0 {
		return
	}
	b.adjust(delta, reason)
	if delta > 0 {
		b.strength(reason)
	} else {
		b.gap(reason)
	}
}

// rule records a matched rule-table entry.
func (b *builder) rule(r pattern.Rule) {
	b.add(r.Delta, r.Label)
}

func (b *builder) strength(s string) {
	for _, x := range b.strengths {
		if x == s {
			return
		}
	}
	b.strengths = append(b.strengths, s)
}

func (b *builder) gap(s string) {
	for _, x := range b.gaps {
		if x == s {
			return
		}
	}
	b.gaps = append(b.gaps, s)
}

// total is the unclamped running score.
func (b *builder) total() float64 {
	t := b.base
	for _, a := range b.adjustments {
		t += a.Delta
	}
	return t
}

// result clamps to [MinScore, MaxScore], rounds to one decimal, and fills
// empty strength/gap lists with a placeholder. Clamping and rounding are
// recorded as their own adjustments, so base plus the trail equals the final
// score.
func (b *builder) result() model.CategoryScoreResult {
	raw := b.total()
	clamped := pattern.Clamp(raw, MinScore, MaxScore)
	if clamped != raw {
		b.adjustments = append(b.adjustments, model.Adjustment{
			Delta:  pattern.Round2(clamped - raw),
			Reason: fmt.Sprintf("Score clamped to %.0f-%.0f range", MinScore, MaxScore),
		})
	}
	final := pattern.Round1(clamped)

	explained := pattern.Round2(b.base)
	for _, a := range b.adjustments {
		explained += a.Delta
	}
	if residual := pattern.Round2(final - explained); residual != 0 {
		b.adjustments = append(b.adjustments, model.Adjustment{
			Delta:  residual,
			Reason: "Rounded to one decimal",
		})
	}

	strengths := b.strengths
	if len(strengths) == 0 {
		strengths = []string{fmt.Sprintf("No specific %s strengths identified", b.category.Label())}
	}
	gaps := b.gaps
	if len(gaps) == 0 {
		gaps = []string{fmt.Sprintf("No critical %s gaps identified", b.category.Label())}
	}
	adjustments := b.adjustments
	if adjustments == nil {
		adjustments = []model.Adjustment{}
	}

	return model.CategoryScoreResult{
		Category: b.category,
		Score:    final,
		Breakdown: model.ScoreBreakdown{
			BaseScore:   pattern.Round2(b.base),
			Adjustments: adjustments,
			FinalScore:  final,
		},
		Strengths: strengths,
		Gaps:      gaps,
	}
}
