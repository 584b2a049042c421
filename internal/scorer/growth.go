package scorer

import (
	"fmt"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// Growth scoring constants.
const (
	GrowthRatingWeight   = 0.3
	ValueDriverCap       = 4.0
	QuantifiedMentions   = 2
	QuantifiedBonus      = 0.5
	TangibleAssetFloor   = 1_000_000.0
	TangibleAssetBonus   = 0.5
	GeographicBonus      = 0.8
	HardToReplicateBonus = 0.5
)

// ValueDrivers are the keyword-driven sources of buyer value, scored over
// q10 and q3. Each driver counts once.
var ValueDrivers = []pattern.Rule{
	pattern.R(`\bproprietary\b`, 1.0, "Proprietary technology or processes"),
	pattern.R(`\bpatent(s|ed)?\b`, 1.0, "Patented intellectual property"),
	pattern.R(`\b(trademarks?|brand recognition|well-known brand)\b`, 0.6, "Recognized brand"),
	pattern.R(`\bexclusive (contracts?|rights|distribution|territory|agreements?)\b`, 1.0, "Exclusive rights or agreements"),
	pattern.R(`\b(licen[cs]es?|licensed|permits?)\b`, 0.6, "Licenses or permits that are hard to obtain"),
	pattern.R(`\b(recurring|subscriptions?)\b`, 0.8, "Recurring revenue model"),
	pattern.R(`\blong-term (contracts?|agreements?)\b`, 0.8, "Long-term contracts"),
	pattern.R(`(\bmarket leader\b|\bleading provider\b|\bnumber one\b|#1\b)`, 0.8, "Market leadership"),
	pattern.R(`\b(niche|specialized|specialty)\b`, 0.6, "Specialized niche"),
	pattern.R(`\bcertif(ied|ication|ications)\b`, 0.5, "Industry certifications"),
	pattern.R(`\breputation\b`, 0.5, "Strong reputation"),
	pattern.R(`\b(loyal customers|customer loyalty|repeat customers)\b`, 0.6, "Loyal customer base"),
	pattern.R(`\bbarriers? to entry\b`, 0.8, "Barriers to entry"),
	pattern.R(`\b(real estate|property|building)\b`, 0.5, "Real estate holdings"),
	pattern.R(`\b(equipment|fleet|machinery)\b`, 0.4, "Equipment and fleet"),
	pattern.R(`\bgovernment contracts?\b`, 0.6, "Government contracts"),
	pattern.R(`\b(skilled|experienced|tenured) (team|staff|workforce|employees)\b`, 0.6, "Experienced workforce"),
	pattern.R(`\b(expansion|expand|new markets?|untapped)\b`, 0.5, "Expansion opportunities"),
	pattern.R(`\b(e-?commerce|online sales|digital)\b`, 0.4, "Digital sales channels"),
	pattern.R(`\bfranchis(e|es|ing)\b`, 0.5, "Franchise potential"),
}

var (
	geographicMonopoly = pattern.R(`\b(only (provider|company|business|shop|one) in (the |our )?(area|region|county|town|city|state|market)|no (local |direct )?competit(ion|ors)|sole provider|only game in town)\b`,
		GeographicBonus, "Geographic monopoly position")
	hardToReplicate = pattern.R(`\b((competitors?|others|nobody|no one) (can't|cannot|could not|couldn't|can not) (replicate|copy|duplicate|match)|(hard|difficult|impossible) to (replicate|copy|duplicate))\b`,
		HardToReplicateBonus, "Competitors cannot easily replicate the business")
)

// ScoreGrowthValue scores growth potential and the drivers of buyer value.
func ScoreGrowthValue(r model.Responses, _ research.Data) model.CategoryScoreResult {
	b := newBuilder(model.CategoryGrowthValue, NeutralScore*GrowthRatingWeight)

	potential, ok := pattern.ParseRating(r.Get("q9"))
	if !ok {
		potential = NeutralScore
		b.gap(neutralNote("growth potential rating", r.Get("q9")))
	}
	b.base = potential * GrowthRatingWeight
	switch {
	case ok && potential >= 8:
		b.strength("Strong self-assessed growth potential")
	case ok && potential <= 3:
		b.gap("Limited self-assessed growth potential")
	}

	text := pattern.Normalize(r.Get("q10") + " " + r.Get("q3"))

	drivers := pattern.MatchRules(text, ValueDrivers)
	var sum float64
	for _, d := range drivers {
		b.rule(d)
		sum += d.Delta
	}
	if sum > ValueDriverCap {
		b.adjust(ValueDriverCap-sum, fmt.Sprintf("Value driver bonus capped at +%.1f", ValueDriverCap))
		b.strength("Multiple strong value drivers")
	}
	if len(drivers) == 0 && text != "" {
		b.gap("No distinctive value drivers described")
	}

	if pattern.NumericMentions(text) >= QuantifiedMentions {
		b.add(QuantifiedBonus, "Value claims backed by specific numbers")
	}

	if assets := pattern.SumMoney(text); assets >= TangibleAssetFloor {
		b.add(TangibleAssetBonus, fmt.Sprintf("Tangible assets of about $%.1fM", assets/1_000_000))
	}

	if geographicMonopoly.Matches(text) {
		b.rule(geographicMonopoly)
	}
	if hardToReplicate.Matches(text) {
		b.rule(hardToReplicate)
	}

	return b.result()
}
