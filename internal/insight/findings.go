package insight

import (
	"regexp"
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Advantage strengths derived from rule weight.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthEmerging = "emerging"
)

// AdvantageRules classify competitive strengths. Delta is the strength
// weight (3 strong, 2 moderate, 1 emerging); Label is the kind.
var AdvantageRules = []pattern.Rule{
	pattern.R(`\b(proprietary|patent(?:s|ed)?|trade secrets?|custom-built (?:software|tools?|equipment))\b`, 3, "technology"),
	pattern.R(`\b(exclusive (?:contracts?|rights|distribution|territory|agreements?)|sole source)\b`, 3, "contract"),
	pattern.R(`\b(market leader|leading provider|number one|only provider|no (?:local |direct )?competit(?:ion|ors))\b`, 3, "market_position"),
	pattern.R(`\b(niche|specialized|specialty|hard to find)\b`, 2, "specialization"),
	pattern.R(`\b(reputation|brand|known for|word of mouth|referrals?)\b`, 2, "brand"),
	pattern.R(`\b(real estate|own (?:the|our) (?:building|property|facility)|fleet|equipment|machinery)\b`, 2, "tangible_asset"),
	pattern.R(`\b(licensed|licen[cs]es?|permits?|bonded)\b`, 1, "license"),
	pattern.R(`\b(experienced|skilled|tenured|long-tenured) (?:team|staff|crew|workforce|employees)\b`, 2, "workforce"),
	pattern.R(`\b(systems?|software|automation|crm|erp)\b`, 1, "systems"),
}

// StrengthLabel maps an advantage weight to its label.
func StrengthLabel(w float64) string {
	switch {
	case w >= 3:
		return StrengthStrong
	case w >= 2:
		return StrengthModerate
	default:
		return StrengthEmerging
	}
}

// TimeReferences returns duration phrases with their length in months.
func TimeReferences(id, text string) []model.TimeReference {
	var out []model.TimeReference
	for _, m := range pattern.Durations(text) {
		out = append(out, model.TimeReference{
			Provenance: prov(id, text, m.Start, m.End),
			Text:       m.Raw,
			Months:     pattern.Round2(m.Value),
		})
	}
	return out
}

// Advantages returns competitive strengths, one per rule and matched phrase.
func Advantages(id, text string) []model.Advantage {
	var out []model.Advantage
	for _, r := range AdvantageRules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			out = append(out, model.Advantage{
				Provenance: prov(id, text, loc[0], loc[1]),
				Kind:       r.Label,
				Text:       strings.ToLower(text[loc[0]:loc[1]]),
				Strength:   StrengthLabel(r.Delta),
			})
		}
	}
	return out
}

// Risks returns risk-language findings. Each risk kind is reported once per
// answer, at its first occurrence.
func Risks(id, text string) []model.RiskFinding {
	var out []model.RiskFinding
	seen := make(map[string]bool)
	for _, r := range pattern.RiskLanguage {
		if seen[r.Label] {
			continue
		}
		loc := r.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		seen[r.Label] = true
		out = append(out, model.RiskFinding{
			Provenance: prov(id, text, loc[0], loc[1]),
			Kind:       r.Label,
			Text:       text[loc[0]:loc[1]],
			Severity:   pattern.SeverityLabel(r.Delta),
		})
	}
	return out
}

var countRe = regexp.MustCompile(`(?i)\b(\d[\d,]*)\s+(employees|staff|people|customers|clients|accounts|locations|trucks|vehicles|technicians|crews|stores|branches)\b`)

// Numbers returns percentages, money amounts, and headcount-style counts.
func Numbers(id, text string) []model.NumberMention {
	var out []model.NumberMention
	for _, m := range pattern.Percentages(text) {
		out = append(out, model.NumberMention{Provenance: prov(id, text, m.Start, m.End), Kind: "percent", Raw: m.Raw, Value: m.Value})
	}
	for _, m := range pattern.MoneyAmounts(text) {
		out = append(out, model.NumberMention{Provenance: prov(id, text, m.Start, m.End), Kind: "money", Raw: m.Raw, Value: m.Value})
	}
	for _, loc := range countRe.FindAllStringSubmatchIndex(text, -1) {
		v, ok := pattern.ParseFloat(strings.ReplaceAll(text[loc[2]:loc[3]], ",", ""))
		if !ok {
			continue
		}
		out = append(out, model.NumberMention{
			Provenance: prov(id, text, loc[0], loc[1]),
			Kind:       "count_" + strings.ToLower(text[loc[4]:loc[5]]),
			Raw:        text[loc[0]:loc[1]],
			Value:      v,
		})
	}
	return out
}

// Certifications returns quality and compliance credentials.
func Certifications(id, text string) []model.Certification {
	var out []model.Certification
	for _, m := range pattern.Certifications(text) {
		out = append(out, model.Certification{
			Provenance: prov(id, text, m.Start, m.End),
			Name:       strings.ToUpper(m.Raw[:1]) + m.Raw[1:],
		})
	}
	return out
}

var (
	customerRe     = regexp.MustCompile(`(?i)\b(largest|biggest|top|single|one|main|key|\d+) (customers?|clients?|accounts?)\b`)
	retentionRe    = regexp.MustCompile(`(?i)\b(repeat|recurring|loyal|long-term|long-standing|returning) (customers?|clients?|accounts?)\b`)
	customerBaseRe = regexp.MustCompile(`(?i)\b(\d[\d,]*)\+?\s+(active\s+)?(customers|clients|accounts)\b`)
)

// Customer info kinds.
const (
	CustomerConcentration = "concentration"
	CustomerRetention     = "retention"
	CustomerBase          = "base_size"
)

// CustomerInfo finds concentration, retention, and customer-base statements.
func CustomerInfo(id, text string) []model.CustomerInfo {
	var out []model.CustomerInfo
	for _, s := range sentences(text) {
		if customerRe.MatchString(s.Text) {
			if pct, ok := pattern.MaxPercent(s.Text); ok {
				out = append(out, model.CustomerInfo{
					Provenance: prov(id, text, s.Start, s.End),
					Kind:       CustomerConcentration,
					Text:       s.Text,
					Percent:    pct,
				})
				continue
			}
		}
		if retentionRe.MatchString(s.Text) {
			out = append(out, model.CustomerInfo{
				Provenance: prov(id, text, s.Start, s.End),
				Kind:       CustomerRetention,
				Text:       s.Text,
			})
			continue
		}
		if customerBaseRe.MatchString(s.Text) {
			out = append(out, model.CustomerInfo{
				Provenance: prov(id, text, s.Start, s.End),
				Kind:       CustomerBase,
				Text:       s.Text,
			})
		}
	}
	return out
}

var (
	relationshipRe = regexp.MustCompile(`(?i)\b(?:relationships? with|partnership with|partnered with|worked with|working with|supplier to|vendor to|preferred vendor for|contract with)\s+((?:the\s+)?[\w&\[\]\-']+(?:\s+[\w&\[\]\-']+){0,3})`)
	partyStopRe    = regexp.MustCompile(`(?i)\s+(?:for|since|and|who|that|over|because|in|on|at|to|through)\b.*$`)
)

// Relationships returns named external relationships.
func Relationships(id, text string) []model.Relationship {
	var out []model.Relationship
	for _, loc := range relationshipRe.FindAllStringSubmatchIndex(text, -1) {
		party := strings.TrimSpace(partyStopRe.ReplaceAllString(text[loc[2]:loc[3]], ""))
		if party == "" {
			continue
		}
		out = append(out, model.Relationship{
			Provenance: prov(id, text, loc[0], loc[1]),
			Party:      party,
			Text:       text[loc[0]:loc[1]],
		})
	}
	return out
}

var ownerActionRe = regexp.MustCompile(`(?i)\bI\s+(?:personally\s+|still\s+|also\s+|usually\s+|always\s+|currently\s+)?(handle|do|manage|run|approve|sign|quote|estimate|price|negotiate|oversee|review|meet|train|hire|order|schedule|write|answer|close|sell|bid)\b([^.,;!?\n]{0,80})`)

// OwnerActions returns what the owner says they personally do.
func OwnerActions(id, text string) []model.OwnerAction {
	var out []model.OwnerAction
	for _, loc := range ownerActionRe.FindAllStringSubmatchIndex(text, -1) {
		action := strings.ToLower(text[loc[2]:loc[3]]) + strings.TrimRight(text[loc[4]:loc[5]], " ,")
		out = append(out, model.OwnerAction{
			Provenance: prov(id, text, loc[0], loc[1]),
			Action:     strings.TrimSpace(action),
		})
	}
	return out
}

// appendUnique appends the entries of add whose key is not yet present.
func appendUnique[T any](base, add []T, keyOf func(T) string) []T {
	seen := make(map[string]bool, len(base)+len(add))
	for _, x := range base {
		seen[keyOf(x)] = true
	}
	for _, x := range add {
		k := keyOf(x)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		base = append(base, x)
	}
	return base
}

func appendTimeRefs(base, add []model.TimeReference) []model.TimeReference {
	return appendUnique(base, add, func(x model.TimeReference) string { return key(x.Text) })
}

func appendAdvantages(base, add []model.Advantage) []model.Advantage {
	return appendUnique(base, add, func(x model.Advantage) string { return x.Kind + "|" + key(x.Text) })
}

func appendRisks(base, add []model.RiskFinding) []model.RiskFinding {
	return appendUnique(base, add, func(x model.RiskFinding) string { return x.Kind + "|" + key(x.Text) })
}

func appendNumbers(base, add []model.NumberMention) []model.NumberMention {
	return appendUnique(base, add, func(x model.NumberMention) string { return x.Kind + "|" + key(x.Raw) })
}

// Certifications fold together regardless of spacing ("ISO9001", "ISO 9001").
func appendCertifications(base, add []model.Certification) []model.Certification {
	return appendUnique(base, add, func(x model.Certification) string {
		return strings.ReplaceAll(key(x.Name), " ", "")
	})
}

func appendCustomerInfo(base, add []model.CustomerInfo) []model.CustomerInfo {
	return appendUnique(base, add, func(x model.CustomerInfo) string { return x.Kind + "|" + key(x.Text) })
}

func appendRelationships(base, add []model.Relationship) []model.Relationship {
	return appendUnique(base, add, func(x model.Relationship) string { return key(x.Party) })
}

func appendOwnerActions(base, add []model.OwnerAction) []model.OwnerAction {
	return appendUnique(base, add, func(x model.OwnerAction) string { return key(x.Action) })
}
