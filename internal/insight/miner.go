// Package insight mines structured findings from free-text questionnaire
// answers. Every extractor is a deterministic scan over fixed rule tables;
// answers are assumed to be anonymized already.
package insight

import (
	"regexp"
	"strings"

	"github.com/sells-group/exit-readiness/internal/model"
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// ContextLen bounds every provenance snippet.
const ContextLen = 150

// KeyPersonQuestion gets aggressive personnel extraction.
const KeyPersonQuestion = "q7"

// Mine extracts insights from every answered question. Unknown question ids
// are mined into no category but may still contribute quotes.
func Mine(r model.Responses) *model.MinedInsights {
	mi := model.NewMinedInsights()
	for _, id := range r.IDs() {
		text := pattern.Normalize(r.Get(id))
		if text == "" {
			continue
		}
		q, ok := model.QuestionByID(id)
		if !ok || q.Kind != model.KindFreeText {
			continue
		}
		bucket := mi.Categories[q.Category]
		mineAnswer(bucket, id, text)
	}
	mi.Quotes = Quotes(r, MaxQuotes)
	return mi
}

func mineAnswer(ci *model.CategoryInsights, id, text string) {
	ci.Personnel = mergePersonnel(ci.Personnel, Personnel(id, text, id == KeyPersonQuestion))
	ci.TimeReferences = appendTimeRefs(ci.TimeReferences, TimeReferences(id, text))
	ci.Advantages = appendAdvantages(ci.Advantages, Advantages(id, text))
	ci.Risks = appendRisks(ci.Risks, Risks(id, text))
	ci.Numbers = appendNumbers(ci.Numbers, Numbers(id, text))
	ci.Certifications = appendCertifications(ci.Certifications, Certifications(id, text))
	ci.CustomerInfo = appendCustomerInfo(ci.CustomerInfo, CustomerInfo(id, text))
	ci.Relationships = appendRelationships(ci.Relationships, Relationships(id, text))
	ci.OwnerActions = appendOwnerActions(ci.OwnerActions, OwnerActions(id, text))
}

func prov(id, text string, start, end int) model.Provenance {
	return model.Provenance{QuestionID: id, Context: pattern.Snippet(text, start, end, ContextLen)}
}

// span is a sentence located in an answer.
type span struct {
	Text  string
	Start int
	End   int
}

var sentenceRe = regexp.MustCompile(`[^.!?;\n]+[.!?]*`)

// sentences splits text on terminal punctuation, semicolons, and newlines.
func sentences(text string) []span {
	var out []span
	for _, loc := range sentenceRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[loc[0]:loc[1]])
		if s == "" {
			continue
		}
		out = append(out, span{Text: s, Start: loc[0], End: loc[1]})
	}
	return out
}

// sentenceAt returns the sentence containing offset pos.
func sentenceAt(spans []span, pos int) span {
	for _, s := range spans {
		if pos >= s.Start && pos < s.End {
			return s
		}
	}
	return span{}
}

func key(s string) string {
	return pattern.Fold(strings.Trim(s, " .,;:!?\"'()[]{}"))
}
