// Package focus ranks categories by the return on improving them before an
// exit.
package focus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// Prioritization constants.
const (
	DefaultCurrentScore     = 5.0
	EffortBaselineMonths    = 6.0
	ValueKillerOwnerScore   = 4.0
	ValueKillerConcentrated = 40.0
	ValueKillerFactor       = 2.0
	QuickWinMaxMonths       = 3.0
	QuickWinMinImpact       = 0.10
	QuickActionAreas        = 3
	MaxQuickActions         = 3
)

// Input carries everything the prioritizer needs.
type Input struct {
	Scores       map[model.Category]model.CategoryScoreResult
	Research     research.Data
	ExitTimeline string
	Responses    model.Responses
}

// Prioritize returns a FocusArea per scored category, sorted by ROI
// descending with ties broken by canonical category order.
func Prioritize(in Input) []model.FocusArea {
	exit, _ := model.ParseExitTimeline(in.ExitTimeline)

	var areas []model.FocusArea
	for _, c := range orderedCategories(in.Scores) {
		areas = append(areas, evaluate(c, in, exit))
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].ROIScore > areas[j].ROIScore
	})

	for i := range areas {
		if i >= QuickActionAreas {
			break
		}
		areas[i].QuickActions = QuickActions(areas[i].Category, in.Scores[areas[i].Category].Gaps)
	}
	if areas == nil {
		areas = []model.FocusArea{}
	}
	return areas
}

// orderedCategories returns known categories in canonical order followed by
// unknown ones sorted by name.
func orderedCategories(scores map[model.Category]model.CategoryScoreResult) []model.Category {
	var out []model.Category
	for _, c := range model.Categories {
		if _, ok := scores[c]; ok {
			out = append(out, c)
		}
	}
	var unknown []model.Category
	for c := range scores {
		if !c.Valid() {
			unknown = append(unknown, c)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(out, unknown...)
}

func evaluate(c model.Category, in Input, exit string) model.FocusArea {
	current := DefaultCurrentScore
	var notes []string
	if c.Valid() {
		current = in.Scores[c].Score
	} else {
		notes = append(notes, fmt.Sprintf("Unrecognized category %q; default score of %.1f assumed.", c, DefaultCurrentScore))
	}

	months := in.Research.TimelineMonths(c)
	impact := in.Research.Impact(c)
	potential := max(0, 10-current)
	multiplier := TimelineMultiplier(exit, months)
	effort := 1 / (months / EffortBaselineMonths)
	roi := potential * impact * multiplier * effort * 100

	area := model.FocusArea{
		Category:             c,
		CurrentScore:         current,
		ImprovementPotential: pattern.Round2(potential),
		TimelineMonths:       months,
		IsQuickWin:           months <= QuickWinMaxMonths && impact >= QuickWinMinImpact,
	}

	if reason, ok := valueKiller(c, in.Scores[c]); ok {
		area.IsValueKiller = true
		roi *= ValueKillerFactor
		impact *= ValueKillerFactor
		notes = append(notes, reason)
	}
	area.ROIScore = pattern.Round2(roi)
	area.TypicalImpact = pattern.Round2(impact)

	reasoning := fmt.Sprintf("%s scores %.1f/10 with %.1f points of improvement potential; typical improvement takes %s months and affects about %.0f%% of value.",
		c.Label(), current, potential, trimFloat(months), impact*100)
	if area.IsQuickWin {
		notes = append(notes, "Quick win: achievable within the exit window at modest effort.")
	}
	if exit == "" && strings.TrimSpace(in.ExitTimeline) != "" {
		notes = append(notes, "Exit timeline not recognized; neutral timing assumed.")
	}
	area.Reasoning = strings.Join(append([]string{reasoning}, notes...), " ")
	return area
}

// valueKiller reports whether a category condition overrides normal ranking.
func valueKiller(c model.Category, res model.CategoryScoreResult) (string, bool) {
	switch c {
	case model.CategoryOwnerDependence:
		if res.Score < ValueKillerOwnerScore {
			return "Value killer: heavy owner dependence drives steep buyer discounts.", true
		}
	case model.CategoryRevenueQuality:
		if pct, ok := concentrationPercent(res.Gaps); ok && pct > ValueKillerConcentrated {
			return fmt.Sprintf("Value killer: %s%% customer concentration drives steep buyer discounts.", trimFloat(pct)), true
		}
	}
	return "", false
}

// concentrationPercent returns the largest percentage stated in a
// concentration gap.
func concentrationPercent(gaps []string) (float64, bool) {
	var best float64
	var found bool
	for _, g := range gaps {
		if !strings.Contains(strings.ToLower(g), "concentration") {
			continue
		}
		ms := pattern.Percentages(g)
		if len(ms) == 0 {
			continue
		}
		// The stated concentration is the first percentage; the threshold follows.
		if !found || ms[0].Value > best {
			best = ms[0].Value
			found = true
		}
	}
	return best, found
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", v), "0"), ".")
}
