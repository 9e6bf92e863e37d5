package medkb

import (
	"reflect"
	"testing"
	"time"

	"github.com/kaira-health/medkb/internal/domain"
)

func TestDocumentConversionRoundTrip(t *testing.T) {
	in := Document{
		ID:       "d1",
		Name:     "Discharge summary",
		Category: CategoryTestReport,
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Content:  "ECG normal",
		Summary:  "Routine checkup",
		Doctor:   "Dr. Iyer",
		Hospital: "City Hospital",
		Tags:     []string{"cardiology"},
	}

	out := fromDomainDocument(toDomainDocument(in))
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the document:\n in: %+v\nout: %+v", in, out)
	}
}

func TestAnalysisConversionFlattensHits(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	in := domain.Analysis{
		Interactions: []domain.InteractionHit{{
			DrugInteraction: domain.DrugInteraction{
				DrugA: "warfarin", DrugB: "aspirin",
				Severity: domain.SeveritySevere, Effect: "bleeding", Management: "avoid",
			},
			MatchedA: "Warfarin 5mg", MatchedB: "aspirin", Source: "table",
		}},
		Trends: []domain.VitalTrend{{
			Parameter: "gfr", Direction: domain.TrendDeclining, ChangePct: -15, Risk: domain.RiskHigh,
		}},
		Alerts: []domain.ClinicalAlert{{
			Type: "abnormal_value", Severity: domain.AlertWarning, Message: "gfr low", Due: &due,
		}},
		Recommendations: []string{"review therapy"},
		Narrative:       "summary",
	}

	out := fromDomainAnalysis(in)

	if out.Interactions[0].DrugA != "Warfarin 5mg" || out.Interactions[0].Severity != "severe" {
		t.Errorf("interaction mapping: %+v", out.Interactions[0])
	}
	if out.Trends[0].Direction != "declining" || out.Trends[0].Risk != "high" {
		t.Errorf("trend mapping: %+v", out.Trends[0])
	}
	if out.Alerts[0].Due == nil || !out.Alerts[0].Due.Equal(due) {
		t.Errorf("alert due mapping: %+v", out.Alerts[0])
	}
	if out.Narrative != "summary" || len(out.Recommendations) != 1 {
		t.Errorf("analysis mapping: %+v", out)
	}
}

func TestEventConversion(t *testing.T) {
	events := fromDomainEvents([]domain.TimelineEvent{{
		Date:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Description: "Lisinopril started",
		Type:        domain.EventMedication,
		DocumentID:  "d1",
	}})
	if events[0].Type != "medication" || events[0].DocumentID != "d1" {
		t.Errorf("event mapping: %+v", events[0])
	}
}
