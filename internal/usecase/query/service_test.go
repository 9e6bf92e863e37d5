package query

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/usecase/search"
)

type mockRetriever struct {
	hits  []domain.ScoredDocument
	err   error
	calls int
}

func (m *mockRetriever) Search(_ context.Context, _ string, _ int, _ search.Mode) ([]domain.ScoredDocument, error) {
	m.calls++
	return m.hits, m.err
}

type mockTimeline struct {
	events []domain.TimelineEvent
	calls  int
}

func (m *mockTimeline) Build(_ context.Context, _ []domain.Document) []domain.TimelineEvent {
	m.calls++
	return m.events
}

type mockText struct {
	out    string
	err    error
	prompt string
	calls  int
}

func (m *mockText) GenerateText(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	return m.out, m.err
}

func hit(id, name, content string, score float32) domain.ScoredDocument {
	return domain.ScoredDocument{
		Document: domain.Document{
			ID: id, Name: name, Content: content,
			Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		Score: score,
	}
}

func TestAnswer_EmptyRetrievalShortCircuits(t *testing.T) {
	text := &mockText{out: "should never be called"}
	svc := New(&mockRetriever{}, &mockTimeline{}, text, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "what is my blood pressure?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if ans.Text != insufficientAnswer {
		t.Errorf("got %q", ans.Text)
	}
	if ans.Confidence != 0 {
		t.Errorf("confidence must be 0, got %f", ans.Confidence)
	}
	if text.calls != 0 {
		t.Error("oracle must not be consulted on empty retrieval")
	}
}

func TestAnswer_ZeroScoreHitsDoNotCount(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "note", "irrelevant", 0),
	}}
	text := &mockText{out: "x"}
	svc := New(retriever, &mockTimeline{}, text, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != insufficientAnswer || text.calls != 0 {
		t.Errorf("zero-score hits must short-circuit: %+v", ans)
	}
}

func TestAnswer_ConfidenceGrowsAndSaturates(t *testing.T) {
	cases := []struct {
		sources int
		want    float32
	}{
		{1, 0.40},
		{2, 0.55},
		{3, 0.70},
		{5, 0.95},
		{10, 0.95},
	}
	for _, tc := range cases {
		got := confidence(tc.sources)
		if diff := got - tc.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("confidence(%d) = %f, want %f", tc.sources, got, tc.want)
		}
	}
}

func TestAnswer_OracleAnswerUsed(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "Visit note", "BP 150/95, lisinopril started", 0.8),
	}}
	text := &mockText{out: "Your blood pressure was 150/95."}
	svc := New(retriever, &mockTimeline{}, text, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "what is my blood pressure?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if ans.Text != "Your blood pressure was 150/95." {
		t.Errorf("got %q", ans.Text)
	}
	if len(ans.Sources) != 1 || ans.Sources[0].Document.ID != "d1" {
		t.Errorf("sources must list the retrieved documents: %+v", ans.Sources)
	}
	if !strings.Contains(text.prompt, "lisinopril") {
		t.Error("prompt must carry source excerpts")
	}
}

func TestAnswer_OracleFailureFallsBackToExtracts(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "Visit note", "BP 150/95, lisinopril started", 0.8),
		hit("d2", "Lab report", "HbA1c 7.2", 0.5),
	}}
	text := &mockText{err: errors.New("oracle down")}
	svc := New(retriever, &mockTimeline{}, text, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "summarize my results")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !strings.Contains(ans.Text, "BP 150/95") || !strings.Contains(ans.Text, "HbA1c 7.2") {
		t.Errorf("extractive fallback must include excerpts, got %q", ans.Text)
	}
	// Degraded phrasing does not change retrieval confidence.
	if ans.Confidence != confidence(2) {
		t.Errorf("confidence = %f", ans.Confidence)
	}
}

func TestAnswer_NilTextGeneratorIsExtractive(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "Visit note", "BP 150/95", 0.8),
	}}
	svc := New(retriever, &mockTimeline{}, nil, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "bp?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(ans.Text, "BP 150/95") {
		t.Errorf("got %q", ans.Text)
	}
}

func TestAnswer_TemporalCueBuildsTimeline(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "Lab report", "glucose 110", 0.7),
	}}
	timeline := &mockTimeline{events: []domain.TimelineEvent{
		{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Glucose 110", Type: domain.EventLabResult},
	}}
	text := &mockText{out: "Glucose has been stable."}
	svc := New(retriever, timeline, text, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "how did my glucose change over time?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if timeline.calls != 1 {
		t.Fatalf("temporal cue must trigger timeline, calls=%d", timeline.calls)
	}
	if len(ans.Timeline) != 1 {
		t.Errorf("answer must carry the timeline, got %+v", ans.Timeline)
	}
	if !strings.Contains(text.prompt, "Chronology:") {
		t.Error("prompt must include the chronology section")
	}
}

func TestAnswer_NonTemporalSkipsTimeline(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{
		hit("d1", "Lab report", "glucose 110", 0.7),
	}}
	timeline := &mockTimeline{}
	svc := New(retriever, timeline, &mockText{out: "110."}, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "what was my last glucose value?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if timeline.calls != 0 || ans.Timeline != nil {
		t.Error("non-temporal question must not build a timeline")
	}
}

func TestAnswer_BlankQuestion(t *testing.T) {
	retriever := &mockRetriever{hits: []domain.ScoredDocument{hit("d1", "n", "c", 0.9)}}
	svc := New(retriever, &mockTimeline{}, nil, zap.NewNop())

	ans, err := svc.Answer(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if ans.Text != insufficientAnswer || retriever.calls != 0 {
		t.Error("blank question must short-circuit before retrieval")
	}
}

func TestAnswer_RetrieverErrorPropagates(t *testing.T) {
	retriever := &mockRetriever{err: errors.New("corpus locked")}
	svc := New(retriever, &mockTimeline{}, nil, zap.NewNop())

	if _, err := svc.Answer(context.Background(), "anything"); err == nil {
		t.Fatal("expected error")
	}
}
