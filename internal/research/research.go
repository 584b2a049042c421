// Package research exposes industry benchmark data used by the scorers and
// the focus-area prioritizer. Every lookup has a hardcoded fallback so the
// engine runs with no external research data at all.
package research

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/sells-group/exit-readiness/internal/model"
)

// Benchmark keys.
const (
	KeyRecurringThreshold     = "recurring_revenue_threshold"
	KeyConcentrationThreshold = "concentration_threshold"
	KeyEBITDAMultipleLow      = "ebitda_multiple_low"
	KeyEBITDAMultipleHigh     = "ebitda_multiple_high"
	KeyRevenueMultipleLow     = "revenue_multiple_low"
	KeyRevenueMultipleHigh    = "revenue_multiple_high"
	KeyImprovementTimeline    = "improvement_timeline_months"
	KeyImprovementImpact      = "improvement_impact"
	KeySource                 = "source"
)

// Fallback values applied when research data is absent or malformed.
const (
	DefaultRecurringThreshold     = 60.0
	DefaultConcentrationThreshold = 30.0
	DefaultEBITDAMultipleLow      = 3.0
	DefaultEBITDAMultipleHigh     = 5.0
	DefaultRevenueMultipleLow     = 0.5
	DefaultRevenueMultipleHigh    = 1.2
	DefaultTimelineMonths         = 6.0
	DefaultImpact                 = 0.10
)

// Improvement benchmarks per category: typical months to move the needle and
// the typical fraction of enterprise value recovered.
var (
	defaultTimelines = map[model.Category]float64{
		model.CategoryOwnerDependence:       6,
		model.CategoryRevenueQuality:        9,
		model.CategoryFinancialReadiness:    3,
		model.CategoryOperationalResilience: 4,
		model.CategoryGrowthValue:           6,
	}
	defaultImpacts = map[model.Category]float64{
		model.CategoryOwnerDependence:       0.20,
		model.CategoryRevenueQuality:        0.18,
		model.CategoryFinancialReadiness:    0.12,
		model.CategoryOperationalResilience: 0.10,
		model.CategoryGrowthValue:           0.15,
	}
)

// Data is a loosely typed benchmark map. Values may be numbers, numeric
// strings, or nested maps keyed by category. Values that do not coerce to a
// finite number fall back to the documented defaults.
type Data map[string]any

// Float returns the numeric value at key, or def when missing or malformed.
// Dotted keys ("improvement_impact.revenue_quality") are resolved either as
// a flat key or through one level of nesting.
func (d Data) Float(key string, def float64) float64 {
	v, ok := d.lookup(key)
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// String returns the string value at key, or def.
func (d Data) String(key, def string) string {
	v, ok := d.lookup(key)
	if !ok || v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func (d Data) lookup(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	if v, ok := d[key]; ok {
		return v, true
	}
	head, tail, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	nested, ok := nestedMap(d[head])
	if !ok {
		return nil, false
	}
	v, ok := nested[tail]
	return v, ok
}

// nestedMap accepts decoded YAML/JSON maps, typed maps, and JSON object
// strings.
func nestedMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case Data:
		return m, true
	case map[string]float64:
		out := make(map[string]any, len(m))
		for k, f := range m {
			out[k] = f
		}
		return out, true
	}
	if m, err := cast.ToStringMapE(v); err == nil {
		return m, true
	}
	sm, err := cast.ToStringMapStringE(v)
	if err != nil {
		return nil, false
	}
	out := make(map[string]any, len(sm))
	for k, s := range sm {
		out[k] = s
	}
	return out, true
}

// ConcentrationThreshold is the customer-concentration percentage above
// which revenue quality is penalised.
func (d Data) ConcentrationThreshold() float64 {
	return d.Float(KeyConcentrationThreshold, DefaultConcentrationThreshold)
}

// RecurringThreshold is the recurring-revenue percentage buyers treat as strong.
func (d Data) RecurringThreshold() float64 {
	return d.Float(KeyRecurringThreshold, DefaultRecurringThreshold)
}

// EBITDAMultiples returns the low/high EBITDA multiple range.
func (d Data) EBITDAMultiples() (low, high float64) {
	return d.Float(KeyEBITDAMultipleLow, DefaultEBITDAMultipleLow),
		d.Float(KeyEBITDAMultipleHigh, DefaultEBITDAMultipleHigh)
}

// TimelineMonths is the typical improvement timeline for a category.
func (d Data) TimelineMonths(c model.Category) float64 {
	def, ok := defaultTimelines[c]
	if !ok {
		def = DefaultTimelineMonths
	}
	v := d.Float(KeyImprovementTimeline+"."+string(c), def)
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Impact is the typical value-impact fraction for a category. Percent-style
// values (e.g. 15) are converted to fractions.
func (d Data) Impact(c model.Category) float64 {
	def, ok := defaultImpacts[c]
	if !ok {
		def = DefaultImpact
	}
	v := d.Float(KeyImprovementImpact+"."+string(c), def)
	if v > 1 {
		v /= 100
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Context returns the benchmark values reported alongside category scores.
func (d Data) Context() map[string]string {
	low, high := d.EBITDAMultiples()
	return map[string]string{
		KeyConcentrationThreshold: formatFloat(d.ConcentrationThreshold()),
		KeyRecurringThreshold:     formatFloat(d.RecurringThreshold()),
		"ebitda_multiple_range":   formatFloat(low) + "-" + formatFloat(high) + "x",
		KeySource:                 d.String(KeySource, "default benchmarks"),
	}
}

// toFloat coerces v to a finite number. Percent suffixes are dropped;
// booleans, nulls, blanks, NaN and infinities are rejected.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		n = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%"))
		if n == "" {
			return 0, false
		}
		v = n
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
