// Package pattern holds the reusable matchers shared by the scorers, the
// insight miner, and the sentiment analyzer: numbers, percentages, money,
// durations, roles, certifications, risk language, and sentiment cues.
package pattern

import (
	"regexp"
	"strings"
)

// Rule is a single weighted matcher. Rules are kept in ordered slices so a
// rule table can be audited and tested entry by entry.
type Rule struct {
	Pattern *regexp.Regexp
	Delta   float64
	Label   string
}

// R compiles a case-insensitive rule. It panics on a bad expression, which
// only happens at package init for the static tables.
func R(expr string, delta float64, label string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + expr), Delta: delta, Label: label}
}

// Matches reports whether the rule fires on text.
func (r Rule) Matches(text string) bool {
	return r.Pattern.MatchString(text)
}

// Count returns how many non-overlapping times the rule fires on text.
func (r Rule) Count(text string) int {
	return len(r.Pattern.FindAllStringIndex(text, -1))
}

// MatchRules returns the rules that fire on text, in table order. Each rule
// contributes at most once.
func MatchRules(text string, rules []Rule) []Rule {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var hits []Rule
	for _, r := range rules {
		if r.Matches(text) {
			hits = append(hits, r)
		}
	}
	return hits
}

// SumRules returns the sum of deltas for every rule that fires on text.
func SumRules(text string, rules []Rule) float64 {
	var sum float64
	for _, r := range MatchRules(text, rules) {
		sum += r.Delta
	}
	return sum
}

// WeightedCount sums Delta × occurrence count over all rules.
func WeightedCount(text string, rules []Rule) float64 {
	var sum float64
	for _, r := range rules {
		if n := r.Count(text); n > 0 {
			sum += r.Delta * float64(n)
		}
	}
	return sum
}

// Snippet returns up to maxLen characters of text centred on [start,end),
// trimmed to word boundaries where possible.
func Snippet(text string, start, end, maxLen int) string {
	if maxLen <= 0 || text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}
	if len(text) <= maxLen {
		return strings.TrimSpace(text)
	}

	span := end - start
	if span >= maxLen {
		return strings.TrimSpace(truncateRunes(text[start:], maxLen))
	}
	pad := (maxLen - span) / 2
	lo := start - pad
	hi := end + pad
	if lo < 0 {
		hi -= lo
		lo = 0
	}
	if hi > len(text) {
		lo -= hi - len(text)
		hi = len(text)
		if lo < 0 {
			lo = 0
		}
	}
	// Step forward to a word boundary so the snippet never opens mid-word.
	if lo > 0 {
		if i := strings.IndexByte(text[lo:start], ' '); i >= 0 {
			lo += i + 1
		}
	}
	if hi < len(text) {
		if i := strings.LastIndexByte(text[end:hi], ' '); i >= 0 {
			hi = end + i
		}
	}
	return strings.TrimSpace(truncateRunes(text[lo:hi], maxLen))
}

// truncateRunes cuts s to at most n bytes without splitting a UTF-8 rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
