// Package query answers questions over the ingested corpus: retrieval,
// optional timeline grounding, and oracle-phrased answers with an
// extractive fallback.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
	"github.com/kaira-health/medkb/internal/usecase/search"
)

// insufficientAnswer is returned when retrieval finds nothing usable. The
// oracle is never consulted in that case.
const insufficientAnswer = "Insufficient information in the ingested documents to answer this question."

// excerptLen bounds the per-source excerpt included in prompts and the
// extractive fallback.
const excerptLen = 240

// temporalCues mark questions that need timeline grounding.
var temporalCues = []string{
	"trend", "over time", "history", "progression", "change", "improvement", "worse",
}

// Service orchestrates question answering.
type Service struct {
	retriever Retriever
	timeline  TimelineBuilder
	text      TextGenerator // nil forces the extractive path
	logger    *zap.Logger
	topK      int
}

// New creates a query service. text may be nil.
func New(retriever Retriever, timeline TimelineBuilder, text TextGenerator, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		timeline:  timeline,
		text:      text,
		logger:    logger,
		topK:      search.DefaultTopK,
	}
}

// WithTopK overrides the retrieval depth.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Answer retrieves the most relevant documents and phrases an answer
// grounded in them. Zero usable retrieval short-circuits with confidence 0
// and no oracle call. Temporal questions additionally carry a timeline
// built from the source documents.
func (s *Service) Answer(ctx context.Context, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{Text: insufficientAnswer}, nil
	}

	// Hybrid retrieval: cosine alone misses paraphrased questions whose
	// surface tokens differ from the note text, keyword overlap covers those.
	hits, err := s.retriever.Search(ctx, question, s.topK, search.ModeHybrid)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve sources: %w", err)
	}

	sources := usable(hits)
	if len(sources) == 0 {
		return domain.Answer{Text: insufficientAnswer, Sources: []domain.ScoredDocument{}}, nil
	}

	answer := domain.Answer{
		Sources:    sources,
		Confidence: confidence(len(sources)),
	}

	if isTemporal(question) && s.timeline != nil {
		docs := make([]domain.Document, len(sources))
		for i, h := range sources {
			docs[i] = h.Document
		}
		answer.Timeline = s.timeline.Build(ctx, docs)
	}

	answer.Text = s.phrase(ctx, question, sources, answer.Timeline)
	return answer, nil
}

// usable drops zero-score hits so irrelevant corpus padding never counts
// as a source.
func usable(hits []domain.ScoredDocument) []domain.ScoredDocument {
	out := make([]domain.ScoredDocument, 0, len(hits))
	for _, h := range hits {
		if h.Score <= 0 {
			continue
		}
		out = append(out, h)
	}
	return out
}

// confidence grows with source count and saturates below certainty.
func confidence(sources int) float32 {
	c := 0.25 + 0.15*float32(sources)
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func isTemporal(question string) bool {
	q := strings.ToLower(question)
	for _, cue := range temporalCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

// phrase asks the oracle to answer from the retrieved excerpts, degrading
// to the extractive fallback.
func (s *Service) phrase(
	ctx context.Context,
	question string,
	sources []domain.ScoredDocument,
	timeline []domain.TimelineEvent,
) string {
	if s.text == nil {
		return extractive(sources)
	}

	out, err := s.text.GenerateText(ctx, answerPrompt(question, sources, timeline))
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			s.logger.Warn("answer generation failed, using extractive fallback", zap.Error(err))
		}
		metrics.FallbackTotal.WithLabelValues("text").Inc()
		return extractive(sources)
	}
	return strings.TrimSpace(out)
}

// extractive concatenates source excerpts, most relevant first.
func extractive(sources []domain.ScoredDocument) string {
	var b strings.Builder
	b.WriteString("Most relevant excerpts from the ingested documents:\n")
	for _, h := range sources {
		fmt.Fprintf(&b, "- [%s] %s\n", h.Document.Name, h.Document.Excerpt(excerptLen))
	}
	return strings.TrimRight(b.String(), "\n")
}

// answerPrompt grounds the oracle strictly in the retrieved material.
func answerPrompt(question string, sources []domain.ScoredDocument, timeline []domain.TimelineEvent) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the excerpts below. ")
	b.WriteString("If they do not contain the answer, say so.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nExcerpts:\n", question)
	for _, h := range sources {
		fmt.Fprintf(&b, "- [%s, %s] %s\n",
			h.Document.Name, h.Document.Date.Format("2006-01-02"), h.Document.Excerpt(excerptLen))
	}

	if len(timeline) > 0 {
		b.WriteString("\nChronology:\n")
		events := append([]domain.TimelineEvent(nil), timeline...)
		sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
		for _, e := range events {
			fmt.Fprintf(&b, "- %s: %s\n", e.Date.Format("2006-01-02"), e.Description)
		}
	}
	return b.String()
}
