package pattern

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	percentRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	numberRe   = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	intRe      = regexp.MustCompile(`\d+`)
	moneyRe    = regexp.MustCompile(`(?i)\$\s?(\d[\d,]*(?:\.\d+)?)\s*(k|m|mm|million|thousand|b|billion)?\b`)
	durationRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?|a|an|one|two|three|four|five|six|seven|eight|nine|ten|twelve|fifteen|twenty)\s*(?:\+\s*)?(days?|weeks?|months?|years?|decades?)\b`)
	numericRe  = regexp.MustCompile(`\$?\d[\d,]*(?:\.\d+)?\s*(?:%|[kKmM]\b)?`)
)

// Match is a located numeric mention.
type Match struct {
	Raw   string
	Value float64
	Start int
	End   int
}

// Percentages returns every `N%` mention in order of appearance. No attempt
// is made to check that the values sum to 100.
func Percentages(text string) []Match {
	var out []Match
	for _, loc := range percentRe.FindAllStringSubmatchIndex(text, -1) {
		v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil {
			continue
		}
		out = append(out, Match{Raw: text[loc[0]:loc[1]], Value: v, Start: loc[0], End: loc[1]})
	}
	return out
}

// PercentValues returns just the values of Percentages.
func PercentValues(text string) []float64 {
	ms := Percentages(text)
	out := make([]float64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Value)
	}
	return out
}

// MaxPercent returns the largest percentage in text and whether any was found.
func MaxPercent(text string) (float64, bool) {
	vals := PercentValues(text)
	if len(vals) == 0 {
		return 0, false
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

// DistinctCount returns the number of distinct values.
func DistinctCount(vals []float64) int {
	seen := make(map[float64]bool, len(vals))
	for _, v := range vals {
		seen[v] = true
	}
	return len(seen)
}

var moneyMultipliers = map[string]float64{
	"":         1,
	"k":        1_000,
	"thousand": 1_000,
	"m":        1_000_000,
	"mm":       1_000_000,
	"million":  1_000_000,
	"b":        1_000_000_000,
	"billion":  1_000_000_000,
}

// MoneyAmounts returns every `$N[K|M]` mention with its dollar value.
func MoneyAmounts(text string) []Match {
	var out []Match
	for _, loc := range moneyRe.FindAllStringSubmatchIndex(text, -1) {
		digits := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}
		suffix := ""
		if loc[4] >= 0 {
			suffix = strings.ToLower(text[loc[4]:loc[5]])
		}
		out = append(out, Match{
			Raw:   strings.TrimSpace(text[loc[0]:loc[1]]),
			Value: v * moneyMultipliers[suffix],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}

// SumMoney totals every dollar amount mentioned in text.
func SumMoney(text string) float64 {
	var total float64
	for _, m := range MoneyAmounts(text) {
		total += m.Value
	}
	return total
}

var wordNumbers = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "twelve": 12,
	"fifteen": 15, "twenty": 20,
}

var unitMonths = map[string]float64{
	"day":    1.0 / 30,
	"week":   12.0 / 52,
	"month":  1,
	"year":   12,
	"decade": 120,
}

// Durations returns time-span mentions ("3 weeks", "two years") with their
// length in months.
func Durations(text string) []Match {
	var out []Match
	for _, loc := range durationRe.FindAllStringSubmatchIndex(text, -1) {
		qty := strings.ToLower(text[loc[2]:loc[3]])
		n, ok := wordNumbers[qty]
		if !ok {
			v, err := strconv.ParseFloat(qty, 64)
			if err != nil {
				continue
			}
			n = v
		}
		unit := strings.TrimSuffix(strings.ToLower(text[loc[4]:loc[5]]), "s")
		out = append(out, Match{
			Raw:   text[loc[0]:loc[1]],
			Value: math.Round(n*unitMonths[unit]*100) / 100,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}

// NumericMentions counts quantified statements: plain numbers, percentages,
// and dollar amounts.
func NumericMentions(text string) int {
	return len(numericRe.FindAllString(text, -1))
}

// ParseFloat returns the first number in s.
func ParseFloat(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstInt returns the first run of digits in s.
func FirstInt(s string) (int, bool) {
	m := intRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseRating reads a 1-10 self-rating such as "7", "8/10", or "about 6".
// Values outside the scale are clamped; text without a number is not a rating.
func ParseRating(s string) (float64, bool) {
	v, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	return Clamp(v, 1, 10), true
}

// RatingOr returns ParseRating(s) or def when s holds no number.
func RatingOr(s string, def float64) float64 {
	if v, ok := ParseRating(s); ok {
		return v
	}
	return def
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
