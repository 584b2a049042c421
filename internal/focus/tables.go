package focus

import (
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
)

// Improvement timeline bands in months. A category falls into the first
// band whose bound is >= its typical timeline.
var timelineBands = []float64{3, 6, 12}

// TimelineMultipliers scale ROI by how well an improvement's typical
// timeline fits the exit timeline. Columns follow timelineBands plus a
// final column for longer timelines.
var TimelineMultipliers = map[string][4]float64{
	model.TimelineInDiscussions: {3.0, 0.3, 0.3, 0.3},
	model.TimelineWithin6Months: {2.5, 1.0, 0.3, 0.2},
	model.Timeline6To12Months:   {2.0, 1.8, 0.8, 0.4},
	model.Timeline1To2Years:     {1.5, 1.5, 1.3, 0.8},
	model.Timeline2To3Years:     {1.2, 1.2, 1.2, 1.1},
	model.Timeline3To5Years:     {1.0, 1.0, 1.0, 1.2},
	model.TimelineOver5Years:    {1.0, 1.0, 1.0, 1.3},
	model.TimelineNotSure:       {1.0, 1.0, 1.0, 1.0},
}

// TimelineMultiplier looks up the multiplier for a canonical exit timeline
// and a typical improvement timeline. Unknown timelines are neutral.
func TimelineMultiplier(exitTimeline string, months float64) float64 {
	row, ok := TimelineMultipliers[exitTimeline]
	if !ok {
		return 1.0
	}
	for i, bound := range timelineBands {
		if months <= bound {
			return row[i]
		}
	}
	return row[len(timelineBands)]
}

// ActionRule suggests actions when a category gap contains any of Match.
type ActionRule struct {
	Category model.Category
	Match    []string
	Actions  []string
}

// ActionRules are evaluated in order; matching rules contribute actions
// until MaxQuickActions is reached.
var ActionRules = []ActionRule{
	{model.CategoryOwnerDependence, []string{"only one", "no one else", "personally"},
		[]string{"Document the tasks only you perform and assign a backup for each"}},
	{model.CategoryOwnerDependence, []string{"approvals"},
		[]string{"Set approval limits so managers can sign off without you"}},
	{model.CategoryOwnerDependence, []string{"customer relationships"},
		[]string{"Introduce key customers to a second point of contact"}},
	{model.CategoryOwnerDependence, []string{"key employees"},
		[]string{"Name and develop a second-in-command"}},
	{model.CategoryOwnerDependence, []string{"without the owner", "owner-centric", "owner-focused"},
		[]string{"Plan a two-week absence and track what breaks"}},

	{model.CategoryRevenueQuality, []string{"concentration"},
		[]string{"Build a customer acquisition plan to shrink the largest account's share", "Lock the largest customer into a multi-year agreement"}},
	{model.CategoryRevenueQuality, []string{"contracts", "month-to-month", "transactional"},
		[]string{"Convert top customers to written multi-year agreements"}},
	{model.CategoryRevenueQuality, []string{"below the"},
		[]string{"Package services into maintenance or subscription plans"}},
	{model.CategoryRevenueQuality, []string{"sector", "single segment"},
		[]string{"Pursue one adjacent market to reduce dependence"}},

	{model.CategoryFinancialReadiness, []string{"declin"},
		[]string{"Review pricing and cost structure to stabilize margins"}},
	{model.CategoryFinancialReadiness, []string{"low confidence"},
		[]string{"Engage a CPA for reviewed or audited financial statements"}},
	{model.CategoryFinancialReadiness, []string{"not backed"},
		[]string{"Close the books monthly and document accounting procedures"}},

	{model.CategoryOperationalResilience, []string{"key-person"},
		[]string{"Cross-train staff on every critical role"}},
	{model.CategoryOperationalResilience, []string{"poorly documented"},
		[]string{"Write SOPs for the most frequent processes"}},
	{model.CategoryOperationalResilience, []string{"informal", "manual"},
		[]string{"Adopt a system of record for core workflows"}},

	{model.CategoryGrowthValue, []string{"no distinctive"},
		[]string{"Articulate and quantify what competitors cannot replicate"}},
	{model.CategoryGrowthValue, []string{"limited"},
		[]string{"Write a three-year growth plan with quantified targets"}},
}

// QuickActions selects up to MaxQuickActions actions for a category from its
// gaps. When no rule matches it falls back to the top gap plus a
// consultation prompt.
func QuickActions(c model.Category, gaps []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rule := range ActionRules {
		if rule.Category != c || !gapsContain(gaps, rule.Match) {
			continue
		}
		for _, a := range rule.Actions {
			if len(out) >= MaxQuickActions {
				return out
			}
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	top := "the most significant gap"
	if len(gaps) > 0 && gaps[0] != "" {
		top = gaps[0]
	}
	return []string{
		"Address top gap: " + top,
		"Schedule an exit-planning consultation focused on " + c.Label(),
	}
}

func gapsContain(gaps, match []string) bool {
	for _, g := range gaps {
		lower := strings.ToLower(g)
		for _, m := range match {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}
