package reasoning

import (
	"fmt"
	"sort"
	"time"

	"github.com/kaira-health/medkb/internal/domain"
)

// buildAlerts collects alerts from interaction hits and risky trends, then
// ranks them: severity first, most-recent due date on ties, input order
// otherwise. The ordering is deterministic for identical inputs.
func buildAlerts(interactions []domain.InteractionHit, trends []domain.VitalTrend) []domain.ClinicalAlert {
	alerts := []domain.ClinicalAlert{}

	for _, hit := range interactions {
		if hit.Severity != domain.SeveritySevere && hit.Severity != domain.SeverityContraindicated {
			continue
		}
		alerts = append(alerts, domain.ClinicalAlert{
			Type:     "drug_interaction",
			Severity: domain.AlertCritical,
			Message: fmt.Sprintf("%s interaction between %s and %s: %s",
				hit.Severity, hit.MatchedA, hit.MatchedB, hit.Effect),
			Recommendation: hit.Management,
		})
	}

	for _, trend := range trends {
		if trend.Risk != domain.RiskHigh && trend.Risk != domain.RiskCritical {
			continue
		}
		severity := domain.AlertWarning
		if trend.Risk == domain.RiskCritical {
			severity = domain.AlertCritical
		}

		alert := domain.ClinicalAlert{
			Type:     "abnormal_value",
			Severity: severity,
			Message: fmt.Sprintf("%s latest value %.4g is at %s risk",
				trend.Parameter, latestValue(trend), trend.Risk),
		}
		if trend.TargetRange != nil {
			alert.Recommendation = fmt.Sprintf("Target range %.4g-%.4g %s; repeat measurement and review therapy",
				trend.TargetRange.NormalMin, trend.TargetRange.NormalMax, trend.TargetRange.Unit)
		}
		if n := len(trend.Points); n > 0 {
			due := trend.Points[n-1].Date
			alert.Due = &due
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return dueOf(alerts[i]).After(dueOf(alerts[j]))
	})
	return alerts
}

func latestValue(t domain.VitalTrend) float64 {
	if len(t.Points) == 0 {
		return 0
	}
	return t.Points[len(t.Points)-1].Value
}

func dueOf(a domain.ClinicalAlert) time.Time {
	if a.Due == nil {
		return time.Time{}
	}
	return *a.Due
}
