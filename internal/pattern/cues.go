package pattern

// Severity weights used by RiskLanguage. The Delta of a risk rule is its
// severity weight, not a score adjustment.
const (
	SeverityLow      = 1.0
	SeverityMedium   = 2.0
	SeverityHigh     = 3.0
	SeverityCritical = 4.0
)

// SeverityLabel maps a severity weight to its label.
func SeverityLabel(w float64) string {
	switch {
	case w >= SeverityCritical:
		return "critical"
	case w >= SeverityHigh:
		return "high"
	case w >= SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// RiskLanguage flags phrases that signal exposure. Label is the risk kind.
var RiskLanguage = []Rule{
	R(`\b(only i|only me|nobody else|no one else|no-one else)\b`, SeverityCritical, "key_person"),
	R(`\b(single point of failure|if (?:i|he|she|they) (?:left|leave|got sick|were hit))\b`, SeverityCritical, "key_person"),
	R(`\b(largest|biggest|top|single|one|main) (customer|client|account)\b[^.]{0,40}?\d+(?:\.\d+)?\s*%`, SeverityHigh, "customer_concentration"),
	R(`\b(depend(?:s|ent|ence)? (?:on|upon)|reliant on|rely on)\b`, SeverityMedium, "dependency"),
	R(`\b(declin(?:e|ed|ing)|shrinking|down \d+%|losing (?:money|customers|market share))\b`, SeverityHigh, "decline"),
	R(`\b(lawsuit|litigation|legal dispute|audit finding|regulatory (?:issue|action|fine))\b`, SeverityCritical, "legal"),
	R(`\b(cash flow (?:problem|issue|crunch)|behind on (?:payments|taxes)|line of credit maxed|heavy debt)\b`, SeverityHigh, "financial_stress"),
	R(`\b(turnover|quit|resign(?:ed)?|hard to hire|can't find (?:good )?(?:people|workers|staff))\b`, SeverityMedium, "staffing"),
	R(`\b(month-to-month|no (?:formal )?contracts?|handshake (?:deal|agreement))\b`, SeverityMedium, "contract"),
	R(`\b(outdated|legacy system|old equipment|deferred maintenance)\b`, SeverityLow, "technology"),
	R(`\b(in my head|not written down|undocumented|tribal knowledge)\b`, SeverityHigh, "documentation"),
	R(`\b(health (?:issue|problem|scare)|burn(?:ed|t)? out|exhausted)\b`, SeverityMedium, "owner_wellbeing"),
}

// PositiveConfidence are language cues that raise the confidence score.
var PositiveConfidence = []Rule{
	R(`\bexcellent\b`, 0.5, "excellent"),
	R(`\bstrong(?:ly)?\b`, 0.4, "strong"),
	R(`\bconfident\b`, 0.5, "confident"),
	R(`\b(?:definitely|certainly)\b`, 0.3, "certainty"),
	R(`\b(?:proven|established|track record)\b`, 0.4, "proven"),
	R(`\b(?:growing|grew|growth)\b`, 0.3, "growth"),
	R(`\b(?:loyal|long-term|long standing|longstanding)\b`, 0.3, "loyalty"),
	R(`\b(?:profitable|record year|best year)\b`, 0.4, "profitability"),
	R(`\b(?:documented|systematized|streamlined)\b`, 0.3, "systems"),
	R(`\b(?:leader|leading|dominant|market leader)\b`, 0.3, "leadership"),
}

// NegativeConfidence are hedging or worried cues that lower confidence.
var NegativeConfidence = []Rule{
	R(`\bstruggl(?:e|es|ed|ing)\b`, -0.5, "struggling"),
	R(`\bworr(?:y|ied|ies|ying)\b`, -0.5, "worried"),
	R(`\bmaybe\b`, -0.3, "maybe"),
	R(`\b(?:not sure|unsure|uncertain)\b`, -0.4, "unsure"),
	R(`\b(?:i think|i guess|probably|hopefully)\b`, -0.2, "hedging"),
	R(`\b(?:difficult|hard|tough|challenging)\b`, -0.3, "difficulty"),
	R(`\b(?:concern(?:ed)?|afraid|scared|nervous)\b`, -0.4, "fear"),
	R(`\b(?:behind|overwhelmed|stretched thin)\b`, -0.4, "overload"),
	R(`\b(?:don't know|no idea|no clue)\b`, -0.4, "unknown"),
}

// UrgencyCues raise the urgency score.
var UrgencyCues = []Rule{
	R(`\b(?:asap|as soon as possible|immediately|urgent(?:ly)?)\b`, 1.5, "immediate"),
	R(`\b(?:need to sell|have to sell|must sell)\b`, 1.5, "forced_sale"),
	R(`\b(?:retir(?:e|ing|ement)|health)\b`, 0.5, "life_event"),
	R(`\b(?:offer|buyer|letter of intent|loi|broker)\b`, 1.0, "active_buyer"),
	R(`\b(?:deadline|this year|next few months|soon)\b`, 0.5, "deadline"),
	R(`\b(?:tired|burn(?:ed|t)? out|ready to move on)\b`, 0.5, "fatigue"),
}

// ConcernCues count distinct owner concerns for stress scoring. Rules with
// Delta >= 2 are critical concerns.
var ConcernCues = []Rule{
	R(`\bworr(?:y|ied|ies|ying)\b`, 1, "worry"),
	R(`\b(?:concern(?:ed|s)?|afraid|nervous|anxious)\b`, 1, "concern"),
	R(`\b(?:struggl(?:e|es|ed|ing)|difficult|tough)\b`, 1, "struggle"),
	R(`\b(?:overwhelmed|stretched thin|no time)\b`, 1, "overload"),
	R(`\b(?:declin(?:e|ed|ing)|losing)\b`, 1, "decline"),
	R(`\b(?:health (?:issue|problem|scare)|sick|illness)\b`, 2, "health"),
	R(`\b(?:lawsuit|litigation|bankrupt(?:cy)?)\b`, 2, "legal"),
	R(`\b(?:cash flow (?:problem|issue|crunch)|can't make payroll|behind on (?:payments|taxes))\b`, 2, "cash"),
	R(`\b(?:burn(?:ed|t)? out|exhausted|can't keep (?:going|doing this))\b`, 2, "burnout"),
	R(`\b(?:divorce|partner dispute|family conflict)\b`, 2, "personal"),
}
