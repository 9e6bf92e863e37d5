package corpus

import (
	"math"
	"sort"

	"github.com/kaira-health/medkb/internal/domain"
)

// CosineSimilarity computes dot(a,b) / (|a| * |b|). Mismatched lengths or a
// zero-norm operand yield 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// Search returns the top-k documents by cosine similarity to the query
// vector, descending. Ties keep insertion order (stable sort). An empty
// corpus or k <= 0 returns an empty slice.
func (c *Corpus) Search(query []float32, k int) []domain.ScoredDocument {
	if k <= 0 {
		return []domain.ScoredDocument{}
	}

	c.mu.RLock()
	results := make([]domain.ScoredDocument, 0, len(c.docs))
	for _, doc := range c.docs {
		results = append(results, domain.ScoredDocument{
			Document: doc,
			Score:    CosineSimilarity(query, doc.Embedding),
		})
	}
	c.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// SearchChunks returns the top-k chunks across all documents by cosine
// similarity, descending, ties in document/position order.
func (c *Corpus) SearchChunks(query []float32, k int) []domain.ScoredChunk {
	if k <= 0 {
		return []domain.ScoredChunk{}
	}

	c.mu.RLock()
	var results []domain.ScoredChunk
	for _, doc := range c.docs {
		for _, ch := range doc.Chunks {
			results = append(results, domain.ScoredChunk{
				Chunk: ch,
				Score: CosineSimilarity(query, ch.Embedding),
			})
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	if results == nil {
		results = []domain.ScoredChunk{}
	}
	return results
}
