package scorer

import (
	"fmt"
	"strconv"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// ConcentrationPenaltyRate is the penalty per percentage point of customer
// concentration above the threshold.
const ConcentrationPenaltyRate = 0.05

// ContractRules score how revenue is contracted.
var ContractRules = []pattern.Rule{
	pattern.R(`\b(multi-year|long-term|\d+-year) (contracts?|agreements?)\b`, 1.0, "Long-term customer contracts"),
	pattern.R(`\b(subscriptions?|retainers?|maintenance (agreements?|contracts?)|service agreements?)\b`, 0.8, "Recurring service agreements"),
	pattern.R(`\bauto-?renew(al|als|s|ing)?\b`, 0.5, "Auto-renewing agreements"),
	pattern.R(`\b(master service agreements?|msas?)\b`, 0.5, "Master service agreements in place"),
	pattern.R(`\bmonth-to-month\b`, -0.5, "Month-to-month customer arrangements"),
	pattern.R(`\b(no (formal )?contracts?|handshake (deals?|agreements?))\b`, -0.8, "No formal customer contracts"),
	pattern.R(`\b(project-based|one-off|one-time|transactional)\b`, -0.5, "Project-based or transactional revenue"),
}

// Sectors whose sole presence signals industry dependence.
var Sectors = []pattern.Rule{
	pattern.R(`\bautomotive\b`, -0.5, "automotive"),
	pattern.R(`\baerospace\b`, -0.5, "aerospace"),
	pattern.R(`\bdefen[cs]e\b`, -0.5, "defense"),
	pattern.R(`\bgovernment\b`, -0.5, "government"),
	pattern.R(`\bhealthcare\b`, -0.5, "healthcare"),
	pattern.R(`\bretail\b`, -0.5, "retail"),
	pattern.R(`\bfinancial\b`, -0.5, "financial"),
}

// Diversification adjustments keyed on distinct revenue percentages.
const (
	DiversifiedSegments = 4
	DiversifiedBonus    = 0.5
	SingleSegmentDelta  = -1.0
)

// ScoreRevenueQuality scores recurring revenue, concentration, and contract
// quality.
func ScoreRevenueQuality(r model.Responses, d research.Data) model.CategoryScoreResult {
	b := newBuilder(model.CategoryRevenueQuality, NeutralScore)

	recurring := r.Get("q4")
	if bk, ok := lookupBucket(recurring, RecurringRevenueBuckets); ok {
		b.base = bk.Value
		benchmark := d.RecurringThreshold()
		if recurringFloors[bk.Answer] >= benchmark {
			b.strength(fmt.Sprintf("Recurring revenue of %s meets the %s%% benchmark", bk.Answer, formatNum(benchmark)))
		} else {
			b.gap(fmt.Sprintf("Recurring revenue of %s is below the %s%% benchmark", bk.Answer, formatNum(benchmark)))
		}
	} else {
		b.gap(neutralNote("recurring revenue share", recurring))
	}

	mix := pattern.Normalize(r.Get("q3"))
	pcts := pattern.PercentValues(mix)
	if len(pcts) > 0 {
		maxPct := pcts[0]
		for _, p := range pcts[1:] {
			maxPct = max(maxPct, p)
		}
		threshold := d.ConcentrationThreshold()
		if maxPct > threshold {
			penalty := (maxPct - threshold) * ConcentrationPenaltyRate
			b.add(-penalty, fmt.Sprintf("%s%% revenue concentration (above %s%% threshold)",
				formatNum(maxPct), formatNum(threshold)))
		}
	}

	for _, rule := range pattern.MatchRules(mix, ContractRules) {
		b.rule(rule)
	}

	switch distinct := pattern.DistinctCount(pcts); {
	case distinct >= DiversifiedSegments:
		b.add(DiversifiedBonus, "Revenue diversified across multiple segments")
	case distinct == 1:
		b.add(SingleSegmentDelta, "Revenue mix described by a single segment")
	}

	if sectors := pattern.MatchRules(mix, Sectors); len(sectors) == 1 {
		b.add(sectors[0].Delta, "Dependence on the "+sectors[0].Label+" sector")
	}

	res := b.result()
	ctx := d.Context()
	res.IndustryContext = map[string]string{
		research.KeyConcentrationThreshold: ctx[research.KeyConcentrationThreshold],
		research.KeyRecurringThreshold:     ctx[research.KeyRecurringThreshold],
		research.KeySource:                 ctx[research.KeySource],
	}
	return res
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
