package search

import (
	"sort"

	"github.com/kaira-health/medkb/internal/domain"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseRRF merges the semantic and keyword rankings via Reciprocal Rank
// Fusion. score(d) = sum of 1/(k + rank_i(d)) for each ranking where d
// appears. A document in both lists keeps the semantic copy.
func fuseRRF(semantic, keyword []domain.ScoredDocument, topK int) []domain.ScoredDocument {
	type scored struct {
		doc   domain.Document
		score float32
		order int
	}

	merged := make(map[string]*scored)
	order := 0

	for rank, r := range semantic {
		merged[r.Document.ID] = &scored{
			doc:   r.Document,
			score: 1.0 / float32(rrfK+rank+1),
			order: order,
		}
		order++
	}

	for rank, r := range keyword {
		s := 1.0 / float32(rrfK+rank+1)
		if existing, ok := merged[r.Document.ID]; ok {
			existing.score += s
			continue
		}
		merged[r.Document.ID] = &scored{doc: r.Document, score: s, order: order}
		order++
	}

	results := make([]domain.ScoredDocument, 0, len(merged))
	orders := make(map[string]int, len(merged))
	for id, s := range merged {
		orders[id] = s.order
		results = append(results, domain.ScoredDocument{Document: s.doc, Score: s.score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return orders[results[i].Document.ID] < orders[results[j].Document.ID]
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
