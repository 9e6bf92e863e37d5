package timeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
)

type mockEvents struct {
	mu     sync.Mutex
	events map[string][]domain.TimelineEvent // keyed by document text
	errs   map[string]error
	calls  int
}

func (m *mockEvents) GenerateEvents(_ context.Context, text string, _ time.Time) ([]domain.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err, ok := m.errs[text]; ok {
		return nil, err
	}
	return m.events[text], nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_MergesAndSortsAscending(t *testing.T) {
	events := &mockEvents{events: map[string][]domain.TimelineEvent{
		"doc a": {
			{Date: day(2024, 3, 10), Description: "Lab drawn", Type: domain.EventLabResult},
		},
		"doc b": {
			{Date: day(2024, 1, 5), Description: "Visit", Type: domain.EventVisit},
			{Date: day(2024, 6, 1), Description: "Procedure", Type: domain.EventProcedure},
		},
	}}
	svc := New(events, zap.NewNop())

	docs := []domain.Document{
		{ID: "a", Content: "doc a", Date: day(2024, 3, 10)},
		{ID: "b", Content: "doc b", Date: day(2024, 1, 5)},
	}

	timeline := svc.Build(context.Background(), docs)

	if len(timeline) != 3 {
		t.Fatalf("expected 3 events, got %d", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Date.Before(timeline[i-1].Date) {
			t.Fatal("timeline must be sorted ascending by date")
		}
	}
	if timeline[0].DocumentID != "b" {
		t.Errorf("oracle events must be pinned to their source document, got %q", timeline[0].DocumentID)
	}
}

func TestBuild_OneFailureDegradesOnlyThatDocument(t *testing.T) {
	events := &mockEvents{
		events: map[string][]domain.TimelineEvent{
			"good": {{Date: day(2024, 2, 1), Description: "Extracted", Type: domain.EventVisit}},
		},
		errs: map[string]error{
			"bad": errors.New("oracle timeout"),
		},
	}
	svc := New(events, zap.NewNop())

	docs := []domain.Document{
		{ID: "g", Content: "good", Date: day(2024, 2, 1)},
		{ID: "b", Content: "bad", Date: day(2024, 4, 1), Category: domain.CategoryPrescription, Summary: "Metformin refill"},
	}

	timeline := svc.Build(context.Background(), docs)

	if len(timeline) != 2 {
		t.Fatalf("expected 2 events, got %d", len(timeline))
	}
	// The failed document contributes exactly its fallback event.
	fallback := timeline[1]
	if fallback.DocumentID != "b" || fallback.Type != domain.EventMedication {
		t.Errorf("unexpected fallback event: %+v", fallback)
	}
	if fallback.Description != "Metformin refill" {
		t.Errorf("fallback must use the document summary, got %q", fallback.Description)
	}
}

func TestBuild_NilOracleUsesFallbackOnly(t *testing.T) {
	svc := New(nil, zap.NewNop())

	docs := []domain.Document{
		{ID: "l", Category: domain.CategoryLabReport, Date: day(2024, 1, 1), Summary: "CBC panel"},
		{ID: "t", Category: domain.CategoryTestReport, Date: day(2024, 1, 2), Summary: "X-ray"},
		{ID: "o", Category: domain.CategoryBill, Date: day(2024, 1, 3), Summary: "Invoice"},
	}

	timeline := svc.Build(context.Background(), docs)

	wantTypes := []domain.EventType{domain.EventLabResult, domain.EventLabResult, domain.EventVisit}
	if len(timeline) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d", len(wantTypes), len(timeline))
	}
	for i, want := range wantTypes {
		if timeline[i].Type != want {
			t.Errorf("event %d: type %s, want %s", i, timeline[i].Type, want)
		}
	}
}

func TestBuild_EmptyDocs(t *testing.T) {
	svc := New(nil, zap.NewNop())
	if got := svc.Build(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected empty timeline, got %d events", len(got))
	}
}

func TestFallbackEvent_EmptySummaryUsesName(t *testing.T) {
	ev := FallbackEvent(domain.Document{ID: "d", Name: "Discharge note", Date: day(2023, 5, 5)})
	if ev.Description != "Discharge note" {
		t.Errorf("expected name as description, got %q", ev.Description)
	}
	if ev.Type != domain.EventVisit {
		t.Errorf("expected visit type, got %s", ev.Type)
	}
}

func TestGroupByDay(t *testing.T) {
	events := []domain.TimelineEvent{
		{Date: day(2024, 1, 1), Description: "a"},
		{Date: time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), Description: "b"},
		{Date: day(2024, 1, 2), Description: "c"},
	}

	days := GroupByDay(events)

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if len(days[0].Events) != 2 {
		t.Errorf("expected 2 events on first day, got %d", len(days[0].Events))
	}
	if days[1].Events[0].Description != "c" {
		t.Errorf("unexpected second day event: %+v", days[1].Events[0])
	}
}
