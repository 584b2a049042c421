// Package aggregate combines category scores into an overall readiness
// score, tier, and compound risk adjustment.
package aggregate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// DefaultScore is reported when nothing can be aggregated.
const DefaultScore = 5.0

// Tier is a lower bound on the pre-risk weighted mean.
type Tier struct {
	Min   float64
	Level model.ReadinessLevel
}

// Tiers are checked in order; the first with Min <= score wins.
var Tiers = []Tier{
	{8.1, model.ReadinessExitReady},
	{6.6, model.ReadinessApproachingReady},
	{4.1, model.ReadinessNeedsWork},
	{0, model.ReadinessNotReady},
}

// Multiplier maps an active risk count to the compound risk adjustment.
type Multiplier struct {
	Matches func(active int) bool
	Factor  float64
}

// Multipliers are checked in order; no match leaves the score unchanged.
var Multipliers = []Multiplier{
	{func(n int) bool { return n >= 4 }, 0.90},
	{func(n int) bool { return n == 3 }, 0.95},
	{func(n int) bool { return n == 0 }, 1.05},
}

// RiskThreshold is the category score below which a score-based risk fires.
const RiskThreshold = 4.0

// Predicate evaluates one named risk factor.
type Predicate struct {
	Name  string
	Check func(scores map[model.Category]model.CategoryScoreResult) bool
}

var (
	concentrationGapRe = regexp.MustCompile(`\d+(?:\.\d+)?%[^%]*concentration`)
	declineRe          = regexp.MustCompile(`(?i)declin`)
)

// RiskPredicates are the fixed risk factors in evaluation order.
var RiskPredicates = []Predicate{
	{model.RiskHighOwnerDependence, scoreBelow(model.CategoryOwnerDependence)},
	{model.RiskCustomerConcentration, gapMatches(model.CategoryRevenueQuality, concentrationGapRe)},
	{model.RiskWeakOperations, scoreBelow(model.CategoryOperationalResilience)},
	{model.RiskDecliningFinancials, gapMatches(model.CategoryFinancialReadiness, declineRe)},
	{model.RiskLimitedGrowth, scoreBelow(model.CategoryGrowthValue)},
}

func scoreBelow(c model.Category) func(map[model.Category]model.CategoryScoreResult) bool {
	return func(scores map[model.Category]model.CategoryScoreResult) bool {
		res, ok := scores[c]
		return ok && res.Score < RiskThreshold
	}
}

func gapMatches(c model.Category, re *regexp.Regexp) func(map[model.Category]model.CategoryScoreResult) bool {
	return func(scores map[model.Category]model.CategoryScoreResult) bool {
		res, ok := scores[c]
		if !ok {
			return false
		}
		for _, g := range res.Gaps {
			if re.MatchString(g) {
				return true
			}
		}
		return false
	}
}

// Aggregate computes the weighted mean, classifies the readiness tier from
// that mean, and then applies the compound risk multiplier to the reported
// overall score. The tier is never recomputed after risk adjustment.
func Aggregate(scores map[model.Category]model.CategoryScoreResult) model.AggregateResult {
	res := model.AggregateResult{
		RiskMultiplier: 1.0,
		RiskFactors:    make(map[string]bool, len(RiskPredicates)),
	}

	known := make(map[model.Category]model.CategoryScoreResult, len(scores))
	var unknown []string
	for c, s := range scores {
		if !c.Valid() {
			unknown = append(unknown, string(c))
			continue
		}
		known[c] = s
	}
	sort.Strings(unknown)
	for _, c := range unknown {
		res.Notes = append(res.Notes, fmt.Sprintf("Unknown category %q skipped", c))
	}

	var weighted, total float64
	for _, c := range model.Categories {
		s, ok := known[c]
		if !ok {
			continue
		}
		if s.Weight < 0 {
			res.Notes = append(res.Notes, fmt.Sprintf("Negative weight for %s ignored", c))
			continue
		}
		weighted += s.Score * s.Weight
		total += s.Weight
	}

	for _, p := range RiskPredicates {
		active := p.Check(known)
		res.RiskFactors[p.Name] = active
		if active {
			res.ActiveRiskCount++
		}
	}

	if total == 0 {
		res.RawScore = DefaultScore
		res.OverallScore = DefaultScore
		res.ReadinessLevel = model.ReadinessUnknown
		res.Notes = append(res.Notes, "No weighted category scores; default score used")
		return res
	}

	mean := weighted / total
	res.RawScore = pattern.Round2(mean)
	res.ReadinessLevel = Classify(mean)
	res.RiskMultiplier = RiskMultiplier(res.ActiveRiskCount)
	res.OverallScore = pattern.Round2(mean * res.RiskMultiplier)
	return res
}

// Classify maps a pre-risk weighted mean to a readiness tier.
func Classify(score float64) model.ReadinessLevel {
	for _, t := range Tiers {
		if score >= t.Min {
			return t.Level
		}
	}
	return model.ReadinessNotReady
}

// RiskMultiplier returns the compound adjustment for an active risk count.
func RiskMultiplier(active int) float64 {
	for _, m := range Multipliers {
		if m.Matches(active) {
			return m.Factor
		}
	}
	return 1.0
}

// ActiveRisks returns the names of active risk factors in evaluation order.
func ActiveRisks(res model.AggregateResult) []string {
	var out []string
	for _, p := range RiskPredicates {
		if res.RiskFactors[p.Name] {
			out = append(out, p.Name)
		}
	}
	return out
}

// Describe renders a one-line summary for logs and CLI output.
func Describe(res model.AggregateResult) string {
	risks := ActiveRisks(res)
	if len(risks) == 0 {
		risks = []string{"none"}
	}
	return fmt.Sprintf("%.2f (%s, raw %.2f x%.2f, risks: %s)",
		res.OverallScore, res.ReadinessLevel, res.RawScore, res.RiskMultiplier, strings.Join(risks, ", "))
}
