package domain

import "time"

// InteractionSeverity grades a drug-interaction entry.
type InteractionSeverity string

const (
	// SeverityMild is a mild interaction.
	SeverityMild InteractionSeverity = "mild"
	// SeverityModerate is a moderate interaction.
	SeverityModerate InteractionSeverity = "moderate"
	// SeveritySevere is a severe interaction.
	SeveritySevere InteractionSeverity = "severe"
	// SeverityContraindicated marks a contraindicated combination.
	SeverityContraindicated InteractionSeverity = "contraindicated"
)

// Rank orders severities for sorting; higher is more severe.
func (s InteractionSeverity) Rank() int {
	switch s {
	case SeverityContraindicated:
		return 4
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMild:
		return 1
	}
	return 0
}

// DrugInteraction is one static reference entry for an unordered drug pair.
type DrugInteraction struct {
	DrugA      string              `json:"drug_a" yaml:"drug_a"`
	DrugB      string              `json:"drug_b" yaml:"drug_b"`
	Severity   InteractionSeverity `json:"severity" yaml:"severity"`
	Mechanism  string              `json:"mechanism" yaml:"mechanism"`
	Effect     string              `json:"effect" yaml:"effect"`
	Management string              `json:"management" yaml:"management"`
}

// InteractionHit is a matched interaction for a concrete medication pair.
type InteractionHit struct {
	DrugInteraction
	// MatchedA and MatchedB are the caller's medication names that matched.
	MatchedA string `json:"matched_a"`
	MatchedB string `json:"matched_b"`
	// Source is "table" for reference-store hits, "oracle" for supplements.
	Source string `json:"source"`
}

// Gender scopes a lab reference range.
type Gender string

const (
	// GenderBoth applies to any patient.
	GenderBoth Gender = "both"
	// GenderMale applies to male patients.
	GenderMale Gender = "male"
	// GenderFemale applies to female patients.
	GenderFemale Gender = "female"
)

// LabRange is a reference range for one lab parameter.
type LabRange struct {
	Parameter   string  `json:"parameter" yaml:"parameter"`
	Unit        string  `json:"unit" yaml:"unit"`
	NormalMin   float64 `json:"normal_min" yaml:"normal_min"`
	NormalMax   float64 `json:"normal_max" yaml:"normal_max"`
	CriticalMin float64 `json:"critical_min" yaml:"critical_min"`
	CriticalMax float64 `json:"critical_max" yaml:"critical_max"`
	Gender      Gender  `json:"gender" yaml:"gender"`
}

// Guideline maps a condition to its first-line therapy.
type Guideline struct {
	Condition string `json:"condition" yaml:"condition"`
	FirstLine string `json:"first_line" yaml:"first_line"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// TrendDirection classifies the directional behavior of a series.
type TrendDirection string

const (
	// TrendImproving marks a moderate rise of the recent mean.
	TrendImproving TrendDirection = "improving"
	// TrendStable marks a near-flat series.
	TrendStable TrendDirection = "stable"
	// TrendDeclining marks a falling recent mean.
	TrendDeclining TrendDirection = "declining"
	// TrendFluctuating marks a large swing of the recent mean.
	TrendFluctuating TrendDirection = "fluctuating"
)

// RiskLevel buckets a value against its reference range.
type RiskLevel string

const (
	// RiskLow is inside the normal range (or no range known).
	RiskLow RiskLevel = "low"
	// RiskModerate is outside the normal range.
	RiskModerate RiskLevel = "moderate"
	// RiskHigh is well outside the normal range.
	RiskHigh RiskLevel = "high"
	// RiskCritical is dangerously outside the normal range.
	RiskCritical RiskLevel = "critical"
)

// Rank orders risk levels; higher is worse.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskModerate:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// SeriesPoint is one dated measurement of a parameter.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Unit  string    `json:"unit,omitempty"`
}

// VitalTrend is the classified behavior of one parameter's series.
// Recomputed fresh on each analysis call, never cached.
type VitalTrend struct {
	Parameter   string         `json:"parameter"`
	Points      []SeriesPoint  `json:"points"`
	Direction   TrendDirection `json:"direction"`
	ChangePct   float64        `json:"change_pct"`
	TargetRange *LabRange      `json:"target_range,omitempty"`
	Risk        RiskLevel      `json:"risk"`
	// Note carries the "no reference range" marker when Risk defaults.
	Note string `json:"note,omitempty"`
}

// AlertSeverity grades a clinical alert.
type AlertSeverity string

const (
	// AlertInfo is informational.
	AlertInfo AlertSeverity = "info"
	// AlertWarning needs attention.
	AlertWarning AlertSeverity = "warning"
	// AlertCritical needs immediate attention.
	AlertCritical AlertSeverity = "critical"
)

// Rank orders alert severities; higher sorts first.
func (s AlertSeverity) Rank() int {
	switch s {
	case AlertCritical:
		return 3
	case AlertWarning:
		return 2
	case AlertInfo:
		return 1
	}
	return 0
}

// ClinicalAlert is one prioritized, actionable notice.
type ClinicalAlert struct {
	Type           string        `json:"type"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation,omitempty"`
	DocumentIDs    []string      `json:"document_ids,omitempty"`
	Due            *time.Time    `json:"due,omitempty"`
}

// Analysis is the full output of one reasoning-engine invocation.
type Analysis struct {
	Interactions    []InteractionHit `json:"interactions"`
	Trends          []VitalTrend     `json:"trends"`
	Alerts          []ClinicalAlert  `json:"alerts"`
	Recommendations []string         `json:"recommendations"`
	Narrative       string           `json:"narrative"`
}
