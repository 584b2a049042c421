package pattern

import (
	"regexp"
	"strings"
)

// MatchKeywords returns all keywords that appear (case-insensitive) in the
// given texts, in keyword order.
func MatchKeywords(keywords []string, texts ...string) []string {
	var combined string
	for _, t := range texts {
		if t != "" {
			combined += " " + strings.ToLower(t)
		}
	}
	if combined == "" {
		return nil
	}

	var matched []string
	for _, kw := range keywords {
		if strings.Contains(combined, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// ContainsAny reports whether text contains any keyword (case-insensitive).
func ContainsAny(text string, keywords ...string) bool {
	return len(MatchKeywords(keywords, text)) > 0
}

// CountKeywords counts every occurrence of every keyword in text.
func CountKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		n += strings.Count(lower, strings.ToLower(kw))
	}
	return n
}

var (
	firstPersonRe = regexp.MustCompile(`(?i)\b(i|me|my|mine|myself|i'm|i've|i'd|i'll)\b`)
	teamRe        = regexp.MustCompile(`(?i)\b(we|us|our|ours|team|staff|employees|crew|managers?)\b`)
)

// PronounCounts returns the number of first-person singular references and
// team/collective references in text.
func PronounCounts(text string) (first, team int) {
	return len(firstPersonRe.FindAllString(text, -1)), len(teamRe.FindAllString(text, -1))
}

// Pronoun focus buckets.
const (
	FocusHighlyOwnerCentric = "highly_owner_centric"
	FocusOwnerFocused       = "owner_focused"
	FocusTeamOriented       = "team_oriented"
	FocusBalanced           = "balanced"
)

// PronounFocus classifies text by its first-person to team-language ratio:
// ratio > 3 is highly owner-centric, > 1.5 owner-focused, more team than
// first-person language is team-oriented, anything else balanced.
func PronounFocus(text string) (bucket string, ratio float64) {
	first, team := PronounCounts(text)
	if first == 0 && team == 0 {
		return FocusBalanced, 0
	}
	ratio = float64(first) / float64(max(team, 1))
	switch {
	case ratio > 3:
		return FocusHighlyOwnerCentric, ratio
	case ratio > 1.5:
		return FocusOwnerFocused, ratio
	case team > first:
		return FocusTeamOriented, ratio
	default:
		return FocusBalanced, ratio
	}
}
