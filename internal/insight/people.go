package insight

import (
	"regexp"
	"sort"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Personnel risk levels.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

var (
	keyPersonRe = regexp.MustCompile(`(?i)\b(key|critical|essential|irreplaceable|can't replace|cannot replace|right hand|depend(?:s|ent)? on|relies on|rely on|backbone|runs (?:the|everything))\b`)
	highRiskRe  = regexp.MustCompile(`(?i)\b(only (?:one|person)|nobody else|no one else|single point|irreplaceable|can't replace|cannot replace|would (?:struggle|collapse|be lost)|retir(?:e|ing)|leaving|thinking of leaving)\b`)
)

type mention struct {
	name  string
	start int
	end   int
}

// Personnel finds people in text: anonymization placeholders always, and
// capitalized names when aggressive is set. Roles without a named holder are
// reported under the title-cased role.
func Personnel(id, text string, aggressive bool) []model.Personnel {
	spans := sentences(text)

	var mentions []mention
	for _, m := range pattern.Placeholders(text) {
		mentions = append(mentions, mention{m.Raw, m.Start, m.End})
	}
	if aggressive {
		for _, m := range pattern.CapitalizedNames(text) {
			if overlaps(mentions, m.Start, m.End) {
				continue
			}
			mentions = append(mentions, mention{m.Raw, m.Start, m.End})
		}
	}
	sort.SliceStable(mentions, func(i, j int) bool { return mentions[i].start < mentions[j].start })

	roles := pattern.Roles(text)
	claimed := make(map[int]bool)

	var out []model.Personnel
	for _, m := range mentions {
		sent := sentenceAt(spans, m.start)
		p := model.Personnel{
			Provenance: prov(id, text, sent.Start, sent.End),
			Name:       m.name,
		}
		if i, ok := nearestRole(roles, sent, m.start); ok {
			p.Role = pattern.Title(roles[i].Title)
			claimed[i] = true
		}
		classify(&p, id, sent.Text)
		out = append(out, p)
	}

	for i, r := range roles {
		if claimed[i] {
			continue
		}
		sent := sentenceAt(spans, r.Start)
		p := model.Personnel{
			Provenance: prov(id, text, r.Start, r.End),
			Name:       pattern.Title(r.Title),
			Role:       pattern.Title(r.Title),
		}
		classify(&p, id, sent.Text)
		out = append(out, p)
	}
	return mergePersonnel(nil, out)
}

func classify(p *model.Personnel, id, sentence string) {
	if tenure, ok := pattern.Tenure(sentence); ok {
		p.Tenure = tenure
	}
	p.KeyPerson = id == KeyPersonQuestion || keyPersonRe.MatchString(sentence)
	switch {
	case highRiskRe.MatchString(sentence):
		p.RiskLevel = RiskHigh
	case p.KeyPerson:
		p.RiskLevel = RiskMedium
	default:
		p.RiskLevel = RiskLow
	}
}

// nearestRole returns the role inside sent closest to pos.
func nearestRole(roles []pattern.Role, sent span, pos int) (int, bool) {
	best, bestDist := -1, 0
	for i, r := range roles {
		if r.Start < sent.Start || r.End > sent.End {
			continue
		}
		d := r.Start - pos
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func overlaps(ms []mention, start, end int) bool {
	for _, m := range ms {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}

// mergePersonnel appends add to base, folding entries with the same name
// together and keeping the first non-empty role and tenure.
func mergePersonnel(base, add []model.Personnel) []model.Personnel {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[key(p.Name)] = i
	}
	for _, p := range add {
		k := key(p.Name)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			index[k] = len(base)
			base = append(base, p)
			continue
		}
		cur := &base[i]
		if cur.Role == "" {
			cur.Role = p.Role
		}
		if cur.Tenure == "" {
			cur.Tenure = p.Tenure
		}
		cur.KeyPerson = cur.KeyPerson || p.KeyPerson
		if riskRank(p.RiskLevel) > riskRank(cur.RiskLevel) {
			cur.RiskLevel = p.RiskLevel
		}
	}
	return base
}

func riskRank(level string) int {
	switch level {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}
