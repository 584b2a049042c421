package model

import (
	"sort"
	"strings"
)

// QuestionKind describes how a questionnaire answer is interpreted.
type QuestionKind string

// Question kinds.
const (
	KindFreeText    QuestionKind = "free_text"
	KindCategorical QuestionKind = "categorical"
	KindRating      QuestionKind = "rating"
)

// Question is one entry of the exit readiness questionnaire.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Kind     QuestionKind `json:"kind" yaml:"kind"`
	Category Category     `json:"category" yaml:"category"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Questionnaire is the fixed question registry. Keys q1..q10 are stable.
var Questionnaire = []Question{
	{ID: "q1", Kind: KindFreeText, Category: CategoryOwnerDependence,
		Text: "What critical tasks or decisions can only you handle?"},
	{ID: "q2", Kind: KindCategorical, Category: CategoryOwnerDependence,
		Text:    "How long could the business run smoothly without you?",
		Options: []string{"Less than 3 days", "3-7 days", "1-2 weeks", "2-4 weeks", "More than a month"}},
	{ID: "q3", Kind: KindFreeText, Category: CategoryRevenueQuality,
		Text: "Describe your revenue mix, largest customers, and contract terms."},
	{ID: "q4", Kind: KindCategorical, Category: CategoryRevenueQuality,
		Text:    "What share of revenue is recurring or contracted?",
		Options: []string{"0-20%", "20-40%", "40-60%", "60-80%", "80-100%"}},
	{ID: "q5", Kind: KindRating, Category: CategoryFinancialReadiness,
		Text: "On a scale of 1-10, how confident are you in your financial records?"},
	{ID: "q6", Kind: KindCategorical, Category: CategoryFinancialReadiness,
		Text: "How have profit margins trended over the last three years?",
		Options: []string{"Declining significantly", "Declining slightly", "Stable",
			"Growing slightly", "Growing significantly"}},
	{ID: "q7", Kind: KindFreeText, Category: CategoryOwnerDependence,
		Text: "Who are your key employees, and could any of them run the business?"},
	{ID: "q8", Kind: KindRating, Category: CategoryOperationalResilience,
		Text: "On a scale of 1-10, how well are your processes documented?"},
	{ID: "q9", Kind: KindRating, Category: CategoryGrowthValue,
		Text: "On a scale of 1-10, how much growth potential does the business have?"},
	{ID: "q10", Kind: KindFreeText, Category: CategoryGrowthValue,
		Text: "What makes your business valuable and hard for competitors to replicate?"},
}

// QuestionByID returns the registry entry for id.
func QuestionByID(id string) (Question, bool) {
	for _, q := range Questionnaire {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionsFor returns the question ids that feed a category, in registry order.
func QuestionsFor(c Category) []string {
	var ids []string
	for _, q := range Questionnaire {
		if q.Category == c {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Responses maps question id to the raw answer string. Missing keys are
// treated as absent answers.
type Responses map[string]string

// Get returns the trimmed answer for id, or "" when absent.
func (r Responses) Get(id string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r[id])
}

// Has reports whether id has a non-empty answer.
func (r Responses) Has(id string) bool {
	return r.Get(id) != ""
}

// IDs returns the answered question ids in registry order followed by any
// unknown ids in lexical order.
func (r Responses) IDs() []string {
	var ids []string
	seen := make(map[string]bool, len(r))
	for _, q := range Questionnaire {
		if r.Has(q.ID) {
			ids = append(ids, q.ID)
			seen[q.ID] = true
		}
	}
	var extra []string
	for id := range r {
		if !seen[id] && r.Has(id) {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

// Combined joins every non-empty answer with a space, in IDs order.
func (r Responses) Combined() string {
	var parts []string
	for _, id := range r.IDs() {
		parts = append(parts, r.Get(id))
	}
	return strings.Join(parts, " ")
}
