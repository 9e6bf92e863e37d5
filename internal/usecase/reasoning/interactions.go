package reasoning

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
)

// checkInteractions tests every unordered pair of distinct medications
// against the reference table, then lets the optional oracle checker
// supplement pairs with no table hit. A table hit is never overridden.
func (s *Service) checkInteractions(ctx context.Context, medications []string) []domain.InteractionHit {
	meds := dedupe(medications)
	hits := []domain.InteractionHit{}

	var misses [][2]string
	for i := 0; i < len(meds); i++ {
		for j := i + 1; j < len(meds); j++ {
			entry, ok := s.ref.Interaction(meds[i], meds[j])
			if !ok {
				misses = append(misses, [2]string{meds[i], meds[j]})
				continue
			}
			hits = append(hits, domain.InteractionHit{
				DrugInteraction: entry,
				MatchedA:        meds[i],
				MatchedB:        meds[j],
				Source:          "table",
			})
		}
	}

	if s.pairs == nil {
		return hits
	}

	for _, pair := range misses {
		entry, err := s.pairs.CheckPair(ctx, pair[0], pair[1])
		if err != nil {
			s.logger.Warn("oracle interaction check failed",
				zap.String("drug_a", pair[0]),
				zap.String("drug_b", pair[1]),
				zap.Error(err),
			)
			continue
		}
		if entry == nil {
			continue
		}
		hits = append(hits, domain.InteractionHit{
			DrugInteraction: *entry,
			MatchedA:        pair[0],
			MatchedB:        pair[1],
			Source:          "oracle",
		})
	}

	return hits
}

// dedupe removes duplicate medication names case-insensitively, keeping
// first occurrence and original casing.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
