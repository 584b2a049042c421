package scorer

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/research"
)

// Func scores one category. Implementations are total: malformed or missing
// answers degrade to documented neutral values and never error.
type Func func(model.Responses, research.Data) model.CategoryScoreResult

// registry is the closed dispatch table from category to scorer.
var registry = map[model.Category]Func{
	model.CategoryOwnerDependence:       ScoreOwnerDependence,
	model.CategoryRevenueQuality:        ScoreRevenueQuality,
	model.CategoryFinancialReadiness:    ScoreFinancialReadiness,
	model.CategoryOperationalResilience: ScoreOperationalResilience,
	model.CategoryGrowthValue:           ScoreGrowthValue,
}

// ErrUnknownCategory is returned when a category has no scorer.
var ErrUnknownCategory = eris.New("scorer: unknown category")

// Scorer runs the category scorers with a fixed set of weights.
type Scorer struct {
	weights Weights
}

// New creates a Scorer. A nil weights map uses DefaultWeights.
func New(weights Weights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{weights: weights}
}

// Weights returns the weights the scorer applies.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score runs the scorer for c. Unknown categories are rejected.
func (s *Scorer) Score(c model.Category, r model.Responses, d research.Data) (model.CategoryScoreResult, error) {
	fn, ok := registry[c]
	if !ok {
		return model.CategoryScoreResult{}, eris.Wrapf(ErrUnknownCategory, "category %q", c)
	}
	res := fn(r, d)
	res.Weight = s.weights.Weight(c)
	return res, nil
}

// ScoreAll runs every category scorer.
func (s *Scorer) ScoreAll(r model.Responses, d research.Data) map[model.Category]model.CategoryScoreResult {
	out := make(map[model.Category]model.CategoryScoreResult, len(model.Categories))
	for _, c := range model.Categories {
		res := registry[c](r, d)
		res.Weight = s.weights.Weight(c)
		out[c] = res
	}
	return out
}

// neutralNote explains why a neutral default replaced an answer.
func neutralNote(what, answer string) string {
	if answer == "" {
		return "No answer for " + what + "; neutral value used"
	}
	return "Unrecognized " + what + " answer; neutral value used"
}
