package scorer

import (
	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// ISOBonus applies when ISO certification is mentioned with a documentation
// rating of at least ISOMinRating.
const (
	ISOBonus     = 0.5
	ISOMinRating = 8.0
)

// DependencyRules measure key-person dependency depth over q1 and q7.
var DependencyRules = []pattern.Rule{
	pattern.R(`\bonly person\b`, -1.0, "only person"),
	pattern.R(`\bnobody else\b`, -1.0, "nobody else"),
	pattern.R(`\bsingle point\b`, -0.8, "single point"),
	pattern.R(`\bwould struggle\b`, -0.6, "would struggle"),
	pattern.R(`\bcross-trained\b`, 0.8, "cross-trained"),
	pattern.R(`\bbackups?\b`, 0.6, "backup"),
}

// DependencyTier maps a dependency-depth sum below Below to a component score.
type DependencyTier struct {
	Below    float64
	Delta    float64
	Label    string
	Strength bool
}

// DependencyTiers are checked in order; the last tier catches everything.
var DependencyTiers = []DependencyTier{
	{Below: -2, Delta: 0.5, Label: "Severe key-person dependency"},
	{Below: -1, Delta: 2.0, Label: "Moderate key-person dependency"},
	{Below: 1e9, Delta: 3.5, Label: "Limited key-person dependency", Strength: true},
}

// Operational maturity language counted across all answers.
var (
	MaturityPositive = []pattern.Rule{
		pattern.R(`\bdocumented\b`, 1, "documented"),
		pattern.R(`\b(procedures?|sops?)\b`, 1, "procedures"),
		pattern.R(`\b(systems?|software|erp|crm)\b`, 1, "systems"),
		pattern.R(`\bautomat(ed|ion)\b`, 1, "automation"),
		pattern.R(`\bchecklists?\b`, 1, "checklists"),
		pattern.R(`\b(kpis?|dashboards?|metrics)\b`, 1, "metrics"),
		pattern.R(`\b(trained|training)\b`, 1, "training"),
	}
	MaturityNegative = []pattern.Rule{
		pattern.R(`\bin my head\b`, 1, "in my head"),
		pattern.R(`\bmanual(ly)?\b`, 1, "manual"),
		pattern.R(`\b(chaotic|chaos)\b`, 1, "chaotic"),
		pattern.R(`\bad hoc\b`, 1, "ad hoc"),
		pattern.R(`\bundocumented\b`, 1, "undocumented"),
		pattern.R(`\b(paper|sticky notes)\b`, 1, "paper"),
		pattern.R(`\bfirefighting\b`, 1, "firefighting"),
		pattern.R(`\binformal\b`, 1, "informal"),
	}
)

// Maturity adjustment applies when one side leads by MaturityMargin hits.
const (
	MaturityMargin = 2.0
	MaturityDelta  = 0.5
)

// ScoreOperationalResilience scores documentation, key-person dependency,
// and operational maturity.
func ScoreOperationalResilience(r model.Responses, _ research.Data) model.CategoryScoreResult {
	b := newBuilder(model.CategoryOperationalResilience, NeutralScore*RatingWeight)

	documentation, ok := pattern.ParseRating(r.Get("q8"))
	if !ok {
		documentation = NeutralScore
		b.gap(neutralNote("process documentation rating", r.Get("q8")))
	}
	b.base = documentation * RatingWeight
	switch {
	case ok && documentation >= 8:
		b.strength("Well-documented processes")
	case ok && documentation <= 4:
		b.gap("Processes are poorly documented")
	}

	all := pattern.Normalize(r.Combined())
	if documentation >= ISOMinRating && pattern.MentionsISO(all) {
		b.add(ISOBonus, "ISO certification backs documented processes")
	}

	depth := pattern.WeightedCount(pattern.Normalize(r.Get("q1")+" "+r.Get("q7")), DependencyRules)
	for _, tier := range DependencyTiers {
		if depth < tier.Below {
			b.adjust(tier.Delta, tier.Label)
			if tier.Strength {
				b.strength(tier.Label)
			} else {
				b.gap(tier.Label)
			}
			break
		}
	}

	pos := pattern.WeightedCount(all, MaturityPositive)
	neg := pattern.WeightedCount(all, MaturityNegative)
	switch {
	case pos-neg >= MaturityMargin:
		b.add(MaturityDelta, "Mature operational systems and procedures")
	case neg-pos >= MaturityMargin:
		b.add(-MaturityDelta, "Informal or manual operations")
	}

	return b.result()
}
