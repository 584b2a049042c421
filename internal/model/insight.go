package model

// Provenance ties a mined finding back to the answer it came from.
type Provenance struct {
	QuestionID string `json:"question_id" yaml:"question_id"`
	Context    string `json:"context" yaml:"context"`
}

// Personnel is a person or role mentioned in an answer.
type Personnel struct {
	Provenance `yaml:",inline"`
	Name       string `json:"name" yaml:"name"`
	Role       string `json:"role,omitempty" yaml:"role,omitempty"`
	Tenure     string `json:"tenure,omitempty" yaml:"tenure,omitempty"`
	KeyPerson  bool   `json:"key_person" yaml:"key_person"`
	RiskLevel  string `json:"risk_level" yaml:"risk_level"`
}

// TimeReference is a duration or date phrase.
type TimeReference struct {
	Provenance `yaml:",inline"`
	Text       string  `json:"text" yaml:"text"`
	Months     float64 `json:"months,omitempty" yaml:"months,omitempty"`
}

// Advantage is a competitive strength or technical asset.
type Advantage struct {
	Provenance `yaml:",inline"`
	Kind       string `json:"kind" yaml:"kind"`
	Text       string `json:"text" yaml:"text"`
	Strength   string `json:"strength" yaml:"strength"`
}

// RiskFinding is a phrase signalling exposure or fragility.
type RiskFinding struct {
	Provenance `yaml:",inline"`
	Kind       string `json:"kind" yaml:"kind"`
	Text       string `json:"text" yaml:"text"`
	Severity   string `json:"severity" yaml:"severity"`
}

// NumberMention is a quantified statement (percentages, money, counts).
type NumberMention struct {
	Provenance `yaml:",inline"`
	Kind       string  `json:"kind" yaml:"kind"`
	Raw        string  `json:"raw" yaml:"raw"`
	Value      float64 `json:"value" yaml:"value"`
}

// Certification is a quality or compliance credential.
type Certification struct {
	Provenance `yaml:",inline"`
	Name       string `json:"name" yaml:"name"`
}

// CustomerInfo describes customer concentration or mix.
type CustomerInfo struct {
	Provenance `yaml:",inline"`
	Kind       string  `json:"kind" yaml:"kind"`
	Text       string  `json:"text" yaml:"text"`
	Percent    float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// Relationship is a long-standing external relationship.
type Relationship struct {
	Provenance `yaml:",inline"`
	Party      string `json:"party" yaml:"party"`
	Text       string `json:"text" yaml:"text"`
}

// OwnerAction is something the owner personally does.
type OwnerAction struct {
	Provenance `yaml:",inline"`
	Action     string `json:"action" yaml:"action"`
}

// Quote is a memorable sentence lifted from an answer.
type Quote struct {
	Provenance `yaml:",inline"`
	Text       string  `json:"text" yaml:"text"`
	Score      float64 `json:"score" yaml:"score"`
}

// CategoryInsights holds every finding mined for one category.
type CategoryInsights struct {
	Personnel      []Personnel     `json:"personnel" yaml:"personnel"`
	TimeReferences []TimeReference `json:"time_references" yaml:"time_references"`
	Advantages     []Advantage     `json:"advantages" yaml:"advantages"`
	Risks          []RiskFinding   `json:"risks" yaml:"risks"`
	Numbers        []NumberMention `json:"numbers" yaml:"numbers"`
	Certifications []Certification `json:"certifications" yaml:"certifications"`
	CustomerInfo   []CustomerInfo  `json:"customer_info" yaml:"customer_info"`
	Relationships  []Relationship  `json:"relationships" yaml:"relationships"`
	OwnerActions   []OwnerAction   `json:"owner_actions" yaml:"owner_actions"`
}

// Count returns the total number of findings.
func (c *CategoryInsights) Count() int {
	if c == nil {
		return 0
	}
	return len(c.Personnel) + len(c.TimeReferences) + len(c.Advantages) +
		len(c.Risks) + len(c.Numbers) + len(c.Certifications) +
		len(c.CustomerInfo) + len(c.Relationships) + len(c.OwnerActions)
}

// MinedInsights is the structured output of the insight miner.
type MinedInsights struct {
	Categories map[Category]*CategoryInsights `json:"categories" yaml:"categories"`
	Quotes     []Quote                        `json:"quotes" yaml:"quotes"`
}

// NewMinedInsights returns an insight set with an empty bucket per category.
func NewMinedInsights() *MinedInsights {
	mi := &MinedInsights{
		Categories: make(map[Category]*CategoryInsights, len(Categories)),
		Quotes:     []Quote{},
	}
	for _, c := range Categories {
		mi.Categories[c] = &CategoryInsights{}
	}
	return mi
}

// Total returns the number of findings across all categories, quotes excluded.
func (m *MinedInsights) Total() int {
	n := 0
	for _, c := range m.Categories {
		n += c.Count()
	}
	return n
}
