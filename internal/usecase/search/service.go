// Package search retrieves corpus documents and chunks relevant to a query,
// in semantic and hybrid modes.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/kaira-health/medkb/internal/domain"
)

// Mode selects the ranking strategy.
type Mode string

const (
	// ModeSemantic ranks by embedding cosine similarity only.
	ModeSemantic Mode = "semantic"
	// ModeHybrid fuses semantic and keyword-overlap rankings via RRF.
	ModeHybrid Mode = "hybrid"
)

// DefaultTopK is the retrieval depth used when the caller passes k <= 0.
const DefaultTopK = 5

// Service ranks corpus content against query text.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Search returns the top-k documents for a query. k <= 0 uses DefaultTopK.
func (s *Service) Search(ctx context.Context, query string, k int, mode Mode) ([]domain.ScoredDocument, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vec, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	semantic := s.repo.Search(vec, k)
	if mode != ModeHybrid {
		return semantic, nil
	}

	// In hybrid mode a zero cosine carries no evidence; dropping those
	// entries keeps RRF credit for documents at least one ranker supports.
	supported := semantic[:0:0]
	for _, sd := range semantic {
		if sd.Score > 0 {
			supported = append(supported, sd)
		}
	}

	keyword := s.keywordRank(query, k)
	return fuseRRF(supported, keyword, k), nil
}

// SearchChunks returns the top-k chunks for a query, always semantic.
func (s *Service) SearchChunks(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	vec, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	return s.repo.SearchChunks(vec, k), nil
}

// keywordRank scores documents by query-term overlap. Terms are split on
// any non-alphanumeric rune so "prescribed?" still matches "prescribed".
// Zero-overlap documents are excluded so they cannot gain RRF credit.
func (s *Service) keywordRank(query string, k int) []domain.ScoredDocument {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	var ranked []domain.ScoredDocument
	for _, doc := range s.repo.All() {
		text := strings.ToLower(doc.Content + " " + doc.Name + " " + strings.Join(doc.Tags, " "))
		var overlap int
		for _, t := range terms {
			if strings.Contains(text, t) {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		ranked = append(ranked, domain.ScoredDocument{
			Document: doc,
			Score:    float32(overlap) / float32(len(terms)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
