package reasoning

import "github.com/kaira-health/medkb/internal/domain"

// noRangeNote marks a trend whose parameter has no reference range.
const noRangeNote = "no reference range"

// AssessRisk buckets the latest value against the parameter's normal range
// by multiples of its bounds. A nil range defaults to low risk; the caller
// attaches the explicit no-range note.
func AssessRisk(value float64, r *domain.LabRange) domain.RiskLevel {
	if r == nil {
		return domain.RiskLow
	}

	switch {
	case value < 0.5*r.NormalMin || value > 1.5*r.NormalMax:
		return domain.RiskCritical
	case value < 0.8*r.NormalMin || value > 1.2*r.NormalMax:
		return domain.RiskHigh
	case value < r.NormalMin || value > r.NormalMax:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}
