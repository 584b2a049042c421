package scorer

import (
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
	"github.com/sells-group/exit-readiness/internal/research"
)

// OwnerControlRules flag language showing critical work is held by the owner.
var OwnerControlRules = []pattern.Rule{
	pattern.R(`\b(only i|only me)\b`, -1.5, "Owner is the only one who can perform critical tasks"),
	pattern.R(`\b(nobody else|no one else|no-one else)\b`, -1.0, "No one else can handle critical tasks"),
	pattern.R(`\b(i personally|i handle (all|every)|i do (it )?all|i do everything)\b`, -1.0, "Owner personally handles critical work"),
	pattern.R(`\b(all approvals|i approve (all|every)|must approve|sign off on everything)\b`, -0.8, "All approvals run through the owner"),
	pattern.R(`\b(relationships? (are|is) with me|customers (only )?(want|call|deal with) me|know me personally)\b`, -1.0, "Customer relationships tied to the owner"),
	pattern.R(`\b(in my head|not written down)\b`, -0.5, "Critical knowledge held only by the owner"),
}

// OwnerDelegationRules credit language showing work is shared.
var OwnerDelegationRules = []pattern.Rule{
	pattern.R(`\b(delegat\w*|empowered)\b`, 0.8, "Owner delegates key responsibilities"),
	pattern.R(`\b(manager|managers|team|staff|supervisor) (handles|handle|runs|run|manages|manage|oversees|oversee)\b`, 1.0, "Management team runs day-to-day operations"),
	pattern.R(`\b(trained|cross-trained)\b`, 0.5, "Staff trained on critical tasks"),
	pattern.R(`\b(documented|sops?|standard operating procedures|playbook)\b`, 0.5, "Critical tasks are documented"),
	pattern.R(`\bcould (run|handle) (it|the business|things) without me\b`, 1.0, "Team can operate without the owner"),
}

// PronounBuckets score first-person versus team language in q1.
var PronounBuckets = map[string]model.Adjustment{
	pattern.FocusHighlyOwnerCentric: {Delta: -1.0, Reason: "Highly owner-centric language describing critical tasks"},
	pattern.FocusOwnerFocused:       {Delta: -0.5, Reason: "Owner-focused language describing critical tasks"},
	pattern.FocusTeamOriented:       {Delta: 0.5, Reason: "Team-oriented language describing critical tasks"},
	pattern.FocusBalanced:           {},
}

// SuccessionPair links a critical-task area (q1) to the key-employee terms
// (q7) that show someone can take it over.
type SuccessionPair struct {
	Area       string
	Task       []string
	Successors []string
}

// SuccessionPairs is the cross-reference table between q1 and q7.
var SuccessionPairs = []SuccessionPair{
	{"sales", []string{"sales"}, []string{"sales"}},
	{"operations", []string{"operations"}, []string{"operations"}},
	{"finance", []string{"financ"}, []string{"accounting", "bookkeep"}},
	{"customer", []string{"customer"}, []string{"client", "account manager"}},
	{"production", []string{"production"}, []string{"production", "plant"}},
	{"technical", []string{"technical"}, []string{"engineer", "technical"}},
}

// SuccessionBonus applies when any pair overlaps.
const SuccessionBonus = 0.5

// ScoreOwnerDependence scores how well the business runs without its owner.
func ScoreOwnerDependence(r model.Responses, _ research.Data) model.CategoryScoreResult {
	b := newBuilder(model.CategoryOwnerDependence, NeutralScore)

	absence := r.Get("q2")
	if bk, ok := lookupBucket(absence, OwnerAbsenceBuckets); ok {
		b.base = bk.Value
		switch {
		case bk.Value >= 7.5:
			b.strength("Business operates " + strings.ToLower(bk.Answer) + " without the owner")
		case bk.Value <= 4.0:
			b.gap("Business can only operate " + strings.ToLower(bk.Answer) + " without the owner")
		}
	} else {
		b.gap(neutralNote("owner absence tolerance", absence))
	}

	tasks := pattern.Normalize(r.Get("q1"))
	for _, rule := range pattern.MatchRules(tasks, OwnerControlRules) {
		b.rule(rule)
	}
	for _, rule := range pattern.MatchRules(tasks, OwnerDelegationRules) {
		b.rule(rule)
	}

	if tasks != "" {
		bucket, _ := pattern.PronounFocus(tasks)
		if adj := PronounBuckets[bucket]; adj.Delta != 0 {
			b.add(adj.Delta, adj.Reason)
		}
	}

	keyPeople := pattern.Normalize(r.Get("q7"))
	if keyPeople == "" {
		b.gap("No key employees identified")
	} else if area, ok := successionOverlap(tasks, keyPeople); ok {
		b.add(SuccessionBonus, "Key employees can cover "+area+" responsibilities")
	}

	return b.result()
}

// successionOverlap returns the first area where the owner's critical tasks
// and the key-employee description overlap.
func successionOverlap(tasks, keyPeople string) (string, bool) {
	if tasks == "" || keyPeople == "" {
		return "", false
	}
	for _, p := range SuccessionPairs {
		if pattern.ContainsAny(tasks, p.Task...) && pattern.ContainsAny(keyPeople, p.Successors...) {
			return p.Area, true
		}
	}
	return "", false
}
