package model

// Adjustment is a signed delta applied on top of a category base score.
type Adjustment struct {
	Delta  float64 `json:"delta" yaml:"delta"`
	Reason string  `json:"reason" yaml:"reason"`
}

// ScoreBreakdown explains how a category score was reached. The sum of
// adjustment deltas equals FinalScore - BaseScore once clamping is recorded
// as its own adjustment.
type ScoreBreakdown struct {
	BaseScore   float64      `json:"base_score" yaml:"base_score"`
	Adjustments []Adjustment `json:"adjustments" yaml:"adjustments"`
	FinalScore  float64      `json:"final_score" yaml:"final_score"`
}

// CategoryScoreResult is the output of one category scorer.
type CategoryScoreResult struct {
	Category        Category          `json:"category" yaml:"category"`
	Score           float64           `json:"score" yaml:"score"`
	Weight          float64           `json:"weight" yaml:"weight"`
	Breakdown       ScoreBreakdown    `json:"breakdown" yaml:"breakdown"`
	Strengths       []string          `json:"strengths" yaml:"strengths"`
	Gaps            []string          `json:"gaps" yaml:"gaps"`
	IndustryContext map[string]string `json:"industry_context,omitempty" yaml:"industry_context,omitempty"`
}

// ReadinessLevel is the ordinal classification of overall exit preparedness.
type ReadinessLevel string

// Readiness tiers.
const (
	ReadinessNotReady         ReadinessLevel = "Not Ready"
	ReadinessNeedsWork        ReadinessLevel = "Needs Work"
	ReadinessApproachingReady ReadinessLevel = "Approaching Ready"
	ReadinessExitReady        ReadinessLevel = "Exit Ready"
	ReadinessUnknown          ReadinessLevel = "Unable to Calculate"
)

// Risk factor names evaluated by the aggregator.
const (
	RiskHighOwnerDependence   = "high_owner_dependence"
	RiskCustomerConcentration = "customer_concentration"
	RiskWeakOperations        = "weak_operations"
	RiskDecliningFinancials   = "declining_financials"
	RiskLimitedGrowth         = "limited_growth"
)

// AggregateResult combines category scores into an overall readiness view.
type AggregateResult struct {
	RawScore        float64         `json:"raw_score" yaml:"raw_score"`
	OverallScore    float64         `json:"overall_score" yaml:"overall_score"`
	RiskMultiplier  float64         `json:"risk_multiplier" yaml:"risk_multiplier"`
	ReadinessLevel  ReadinessLevel  `json:"readiness_level" yaml:"readiness_level"`
	RiskFactors     map[string]bool `json:"risk_factors" yaml:"risk_factors"`
	ActiveRiskCount int             `json:"active_risk_count" yaml:"active_risk_count"`
	Notes           []string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// FocusArea is one ranked improvement opportunity.
type FocusArea struct {
	Category             Category `json:"category" yaml:"category"`
	ROIScore             float64  `json:"roi_score" yaml:"roi_score"`
	CurrentScore         float64  `json:"current_score" yaml:"current_score"`
	ImprovementPotential float64  `json:"improvement_potential" yaml:"improvement_potential"`
	TypicalImpact        float64  `json:"typical_impact" yaml:"typical_impact"`
	TimelineMonths       float64  `json:"timeline_months" yaml:"timeline_months"`
	IsValueKiller        bool     `json:"is_value_killer" yaml:"is_value_killer"`
	IsQuickWin           bool     `json:"is_quick_win" yaml:"is_quick_win"`
	Reasoning            string   `json:"reasoning" yaml:"reasoning"`
	QuickActions         []string `json:"quick_actions,omitempty" yaml:"quick_actions,omitempty"`
}

// FocusAreas groups the ranked list with its top three entries.
type FocusAreas struct {
	Primary   *FocusArea  `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary *FocusArea  `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Tertiary  *FocusArea  `json:"tertiary,omitempty" yaml:"tertiary,omitempty"`
	All       []FocusArea `json:"all" yaml:"all"`
}

// NewFocusAreas builds a FocusAreas view over an already ranked list.
func NewFocusAreas(ranked []FocusArea) FocusAreas {
	fa := FocusAreas{All: ranked}
	if fa.All == nil {
		fa.All = []FocusArea{}
	}
	if len(ranked) > 0 {
		fa.Primary = &fa.All[0]
	}
	if len(ranked) > 1 {
		fa.Secondary = &fa.All[1]
	}
	if len(ranked) > 2 {
		fa.Tertiary = &fa.All[2]
	}
	return fa
}
