package reasoning

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/knowledge"
)

// --- Mocks ---

type mockPairChecker struct {
	entry *domain.DrugInteraction
	err   error
	pairs [][2]string
}

func (m *mockPairChecker) CheckPair(_ context.Context, a, b string) (*domain.DrugInteraction, error) {
	m.pairs = append(m.pairs, [2]string{a, b})
	return m.entry, m.err
}

type mockText struct {
	out    string
	err    error
	called int
}

func (m *mockText) GenerateText(_ context.Context, _ string) (string, error) {
	m.called++
	return m.out, m.err
}

func newService(pairs PairChecker, text TextGenerator) *Service {
	return New(knowledge.Default(), pairs, text, zap.NewNop())
}

// --- Tests ---

func TestAnalyze_WarfarinAspirin(t *testing.T) {
	svc := newService(nil, nil)

	for _, meds := range [][]string{
		{"warfarin", "aspirin"},
		{"Aspirin", "WARFARIN"},
		{"aspirin 81mg", "Warfarin Sodium"},
	} {
		analysis := svc.Analyze(context.Background(), Request{Medications: meds})

		if len(analysis.Interactions) != 1 {
			t.Fatalf("meds %v: expected 1 interaction, got %d", meds, len(analysis.Interactions))
		}
		hit := analysis.Interactions[0]
		if hit.Severity != domain.SeveritySevere || hit.Source != "table" {
			t.Errorf("meds %v: unexpected hit %+v", meds, hit)
		}

		// Severe interactions escalate to a critical alert.
		if len(analysis.Alerts) != 1 || analysis.Alerts[0].Severity != domain.AlertCritical {
			t.Errorf("meds %v: expected one critical alert, got %+v", meds, analysis.Alerts)
		}
	}
}

func TestAnalyze_SingleMedicationNoInteractions(t *testing.T) {
	svc := newService(nil, nil)

	analysis := svc.Analyze(context.Background(), Request{Medications: []string{"acetaminophen"}})

	if len(analysis.Interactions) != 0 {
		t.Errorf("expected zero interactions, got %d", len(analysis.Interactions))
	}
	if len(analysis.Alerts) != 0 {
		t.Errorf("expected zero alerts, got %d", len(analysis.Alerts))
	}
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	svc := newService(nil, nil)

	analysis := svc.Analyze(context.Background(), Request{})

	if len(analysis.Interactions) != 0 || len(analysis.Trends) != 0 || len(analysis.Alerts) != 0 {
		t.Errorf("empty request must yield empty structured results: %+v", analysis)
	}
	if analysis.Narrative == "" {
		t.Error("narrative must never be empty")
	}
}

func TestAnalyze_OracleSupplementsButNeverOverrides(t *testing.T) {
	oracleEntry := &domain.DrugInteraction{
		DrugA:    "niacin",
		DrugB:    "atorvastatin",
		Severity: domain.SeverityModerate,
		Effect:   "myopathy risk",
	}
	pairs := &mockPairChecker{entry: oracleEntry}
	svc := newService(pairs, nil)

	analysis := svc.Analyze(context.Background(), Request{
		Medications: []string{"warfarin", "aspirin", "niacin"},
	})

	// warfarin+aspirin hits the table; the two table misses go to the oracle.
	if len(pairs.pairs) != 2 {
		t.Fatalf("expected 2 oracle-checked pairs, got %d: %v", len(pairs.pairs), pairs.pairs)
	}

	var tableHits, oracleHits int
	for _, h := range analysis.Interactions {
		switch h.Source {
		case "table":
			tableHits++
		case "oracle":
			oracleHits++
		}
	}
	if tableHits != 1 || oracleHits != 2 {
		t.Errorf("expected 1 table hit and 2 oracle hits, got %d/%d", tableHits, oracleHits)
	}
}

func TestAnalyze_OraclePairCheckFailureIsIgnored(t *testing.T) {
	pairs := &mockPairChecker{err: errors.New("timeout")}
	svc := newService(pairs, nil)

	analysis := svc.Analyze(context.Background(), Request{
		Medications: []string{"acetaminophen", "vitamin d"},
	})

	if len(analysis.Interactions) != 0 {
		t.Errorf("oracle failure must not fabricate interactions: %+v", analysis.Interactions)
	}
}

func TestAnalyze_TrendsWithRiskAndAlerts(t *testing.T) {
	svc := newService(nil, nil)

	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	series := map[string][]domain.SeriesPoint{
		"gfr": {
			{Date: base, Value: 50},
			{Date: base.AddDate(0, 0, 7), Value: 45},
			{Date: base.AddDate(0, 0, 14), Value: 40},
		},
	}

	analysis := svc.Analyze(context.Background(), Request{Series: series})

	if len(analysis.Trends) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(analysis.Trends))
	}
	trend := analysis.Trends[0]
	if trend.Direction != domain.TrendDeclining {
		t.Errorf("expected declining, got %s", trend.Direction)
	}
	// Latest GFR 40 is below 0.5x90=45, so the bottom bucket applies.
	if trend.Risk != domain.RiskCritical {
		t.Errorf("expected critical risk, got %s", trend.Risk)
	}
	if trend.TargetRange == nil || trend.TargetRange.NormalMin != 90 {
		t.Errorf("expected gfr target range, got %+v", trend.TargetRange)
	}

	if len(analysis.Alerts) != 1 || analysis.Alerts[0].Severity != domain.AlertCritical {
		t.Fatalf("expected one critical alert for the critical-risk trend, got %+v", analysis.Alerts)
	}
	if analysis.Alerts[0].Due == nil || !analysis.Alerts[0].Due.Equal(base.AddDate(0, 0, 14)) {
		t.Error("trend alert must carry the latest point date")
	}
}

func TestAnalyze_UnknownParameterGetsNote(t *testing.T) {
	svc := newService(nil, nil)

	series := map[string][]domain.SeriesPoint{
		"quantum_flux": seriesOf(1, 2),
	}

	analysis := svc.Analyze(context.Background(), Request{Series: series})

	if len(analysis.Trends) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(analysis.Trends))
	}
	trend := analysis.Trends[0]
	if trend.Risk != domain.RiskLow {
		t.Errorf("unknown parameter must default to low risk, got %s", trend.Risk)
	}
	if trend.Note != noRangeNote {
		t.Errorf("expected explicit no-range note, got %q", trend.Note)
	}
}

func TestAnalyze_GenderAwareRange(t *testing.T) {
	svc := newService(nil, nil)

	series := map[string][]domain.SeriesPoint{
		"hemoglobin": seriesOf(13.0, 13.0),
	}

	male := svc.Analyze(context.Background(), Request{Series: series, Gender: domain.GenderMale})
	female := svc.Analyze(context.Background(), Request{Series: series, Gender: domain.GenderFemale})

	// 13.0 g/dL is below the male minimum (13.5) but inside the female range.
	if male.Trends[0].Risk != domain.RiskModerate {
		t.Errorf("male risk: got %s, want moderate", male.Trends[0].Risk)
	}
	if female.Trends[0].Risk != domain.RiskLow {
		t.Errorf("female risk: got %s, want low", female.Trends[0].Risk)
	}
}

func TestAnalyze_Recommendations(t *testing.T) {
	svc := newService(nil, nil)

	analysis := svc.Analyze(context.Background(), Request{
		Medications: []string{"warfarin", "aspirin"},
		Conditions:  []string{"Hypertension"},
	})

	if len(analysis.Recommendations) < 2 {
		t.Fatalf("expected guideline and management recommendations, got %v", analysis.Recommendations)
	}
}

func TestAnalyze_NarrativeDegradesToPlaceholder(t *testing.T) {
	text := &mockText{err: errors.New("oracle down")}
	svc := newService(nil, text)

	analysis := svc.Analyze(context.Background(), Request{Medications: []string{"warfarin", "aspirin"}})

	if analysis.Narrative != placeholderNarrative {
		t.Errorf("expected placeholder narrative, got %q", analysis.Narrative)
	}
	// Structured facts survive narrative failure.
	if len(analysis.Interactions) != 1 {
		t.Error("structured results must not depend on the oracle")
	}
}

func TestAnalyze_NarrativeFromOracle(t *testing.T) {
	text := &mockText{out: "Patient has a severe interaction."}
	svc := newService(nil, text)

	analysis := svc.Analyze(context.Background(), Request{Medications: []string{"warfarin", "aspirin"}})

	if analysis.Narrative != "Patient has a severe interaction." {
		t.Errorf("unexpected narrative %q", analysis.Narrative)
	}
	if text.called != 1 {
		t.Errorf("expected 1 oracle call, got %d", text.called)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	svc := newService(nil, nil)
	req := Request{
		Medications: []string{"warfarin", "aspirin", "sildenafil", "nitroglycerin"},
		Series: map[string][]domain.SeriesPoint{
			"gfr":     seriesOf(50, 45, 40),
			"glucose": seriesOf(90, 95, 92),
		},
	}

	a := svc.Analyze(context.Background(), req)
	b := svc.Analyze(context.Background(), req)

	if len(a.Alerts) != len(b.Alerts) {
		t.Fatal("alert count differs between identical runs")
	}
	for i := range a.Alerts {
		if a.Alerts[i].Message != b.Alerts[i].Message {
			t.Fatalf("alert order differs at %d: %q vs %q", i, a.Alerts[i].Message, b.Alerts[i].Message)
		}
	}
}
