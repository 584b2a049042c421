package scorer

import (
	"github.com/sells-group/exit-readiness/internal/pattern"
)

// Bucket maps an exact categorical answer to a value.
type Bucket struct {
	Answer string
	Value  float64
}

// Owner absence tolerance (q2).
var OwnerAbsenceBuckets = []Bucket{
	{"Less than 3 days", 2.0},
	{"3-7 days", 4.0},
	{"1-2 weeks", 6.0},
	{"2-4 weeks", 7.5},
	{"More than a month", 9.0},
}

// Recurring revenue share (q4).
var RecurringRevenueBuckets = []Bucket{
	{"0-20%", 2.0},
	{"20-40%", 4.0},
	{"40-60%", 6.0},
	{"60-80%", 8.0},
	{"80-100%", 9.5},
}

// recurringFloors is the lower bound of each q4 bucket, compared against the
// recurring-revenue benchmark.
var recurringFloors = map[string]float64{
	"0-20%":   0,
	"20-40%":  20,
	"40-60%":  40,
	"60-80%":  60,
	"80-100%": 80,
}

// Profit margin trend impact (q6), added to the financial base.
var MarginTrendBuckets = []Bucket{
	{"Declining significantly", 0.5},
	{"Declining slightly", 1.5},
	{"Stable", 2.5},
	{"Growing slightly", 3.2},
	{"Growing significantly", 4.0},
}

// DefaultMarginImpact applies when the margin trend is missing or unknown.
const DefaultMarginImpact = 2.0

// lookupBucket matches answer against table case-insensitively after
// normalizing dashes and whitespace. ok is false when nothing matched.
func lookupBucket(answer string, table []Bucket) (Bucket, bool) {
	key := pattern.Fold(pattern.Normalize(answer))
	if key == "" {
		return Bucket{}, false
	}
	for _, b := range table {
		if pattern.Fold(b.Answer) == key {
			return b, true
		}
	}
	return Bucket{}, false
}
