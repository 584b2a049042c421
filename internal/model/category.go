package model

import "strings"

// Category is one of the five fixed assessment dimensions.
type Category string

// Assessment categories.
const (
	CategoryOwnerDependence       Category = "owner_dependence"
	CategoryRevenueQuality        Category = "revenue_quality"
	CategoryFinancialReadiness    Category = "financial_readiness"
	CategoryOperationalResilience Category = "operational_resilience"
	CategoryGrowthValue           Category = "growth_value"
)

// Categories lists every category in canonical order. The order is used as
// the tie-break wherever results are ranked.
var Categories = []Category{
	CategoryOwnerDependence,
	CategoryRevenueQuality,
	CategoryFinancialReadiness,
	CategoryOperationalResilience,
	CategoryGrowthValue,
}

var categoryLabels = map[Category]string{
	CategoryOwnerDependence:       "Owner Dependence",
	CategoryRevenueQuality:        "Revenue Quality",
	CategoryFinancialReadiness:    "Financial Readiness",
	CategoryOperationalResilience: "Operational Resilience",
	CategoryGrowthValue:           "Growth & Value",
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Index returns the canonical position of c, or len(Categories) if unknown.
func (c Category) Index() int {
	for i, k := range Categories {
		if k == c {
			return i
		}
	}
	return len(Categories)
}

// ParseCategory resolves a category from its key or display label.
func ParseCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_", "&", "").Replace(key)
	key = strings.ReplaceAll(key, "__", "_")
	c := Category(key)
	if c.Valid() {
		return c, true
	}
	return "", false
}
