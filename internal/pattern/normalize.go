package pattern

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var multiSpaceRe = regexp.MustCompile(`\s+`)

var quoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "“", `"`, "”", `"`,
	"–", "-", "—", "-", "\u00a0", " ",
)

// Normalize folds compatibility characters (NFKC), straightens typographic
// quotes and dashes, and collapses runs of whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = quoteReplacer.Replace(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Title converts a role or name to English title case ("operations manager"
// becomes "Operations Manager").
func Title(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// Fold lower-cases s with Unicode case folding for key comparisons.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Words splits s into whitespace-separated tokens.
func Words(s string) []string {
	return strings.Fields(s)
}

// WordCount returns the number of whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
