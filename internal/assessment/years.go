package assessment

import (
	"strings"

	"github.com/sells-group/exit-readiness/internal/pattern"
)

// DefaultYearsInBusiness is used when the label carries no number.
const DefaultYearsInBusiness = 5

var yearsBuckets = map[string]int{
	"under 2": 1,
	"2-5":     3,
	"5-10":    7,
	"10-20":   15,
	"over 20": 25,
}

// ParseYearsInBusiness maps a years-in-business range label to a
// representative number of years. Unknown labels fall back to the first
// integer in the label, then DefaultYearsInBusiness.
func ParseYearsInBusiness(label string) int {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer("–", "-", "—", "-", " years", "", " yrs", "").Replace(key)
	if v, ok := yearsBuckets[key]; ok {
		return v
	}
	if v, ok := pattern.FirstInt(label); ok {
		return v
	}
	return DefaultYearsInBusiness
}
