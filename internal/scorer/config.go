// Package scorer implements the five rule-based exit readiness category
// scorers.
package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/config"
	"github.com/sells-group/exit-readiness/internal/model"
)

// Weights holds the aggregation weight of each category.
type Weights map[model.Category]float64

// DefaultWeights returns the declared category weights. Weights sum to 1.
func DefaultWeights() Weights {
	return Weights{
		model.CategoryOwnerDependence:       0.25,
		model.CategoryRevenueQuality:        0.25,
		model.CategoryFinancialReadiness:    0.20,
		model.CategoryOperationalResilience: 0.15,
		model.CategoryGrowthValue:           0.15,
	}
}

// Weight returns the weight for c, falling back to the default.
func (w Weights) Weight(c model.Category) float64 {
	if v, ok := w[c]; ok {
		return v
	}
	return DefaultWeights()[c]
}

// WeightsFromConfig overlays configured weights on the defaults. Keys may be
// category keys or display labels; unknown keys are ignored here and
// reported by ValidateConfig.
func WeightsFromConfig(c config.ScoringConfig) Weights {
	w := DefaultWeights()
	for k, v := range c.Weights {
		if cat, ok := model.ParseCategory(k); ok {
			w[cat] = v
		}
	}
	return w
}

// WeightSum returns the sum of all category weights.
func WeightSum(w Weights) float64 {
	var sum float64
	for _, c := range model.Categories {
		sum += w.Weight(c)
	}
	return sum
}

// ValidateWeights checks that weights are non-negative and sum to 1.
func ValidateWeights(w Weights) error {
	if errs := weightErrors(w); len(errs) > 0 {
		return eris.Errorf("scorer: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func weightErrors(w Weights) []string {
	var errs []string

	for _, c := range model.Categories {
		if w.Weight(c) < 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be >= 0", c))
		}
	}

	sum := WeightSum(w)
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	// Allow tolerance for floating-point.
	if math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}
	return errs
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	var unknown []string
	for k := range c.Weights {
		if _, ok := model.ParseCategory(k); !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, fmt.Sprintf("unknown category weight %q", k))
	}

	errs = append(errs, weightErrors(WeightsFromConfig(c))...)

	if c.ConcentrationThreshold < 0 || c.ConcentrationThreshold > 100 {
		errs = append(errs, "concentration_threshold must be between 0 and 100")
	}
	if c.RecurringThreshold < 0 || c.RecurringThreshold > 100 {
		errs = append(errs, "recurring_threshold must be between 0 and 100")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
