// Package embedding provides the text vectorization chain: an oracle-backed
// primary path with a deterministic hashing fallback, so retrieval keeps
// working when no oracle is configured or reachable.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/kaira-health/medkb/internal/domain"
)

// FallbackEmbedder is the deterministic hashing embedder. Identical text
// always yields a bit-identical vector, independent of prior calls or
// process state: tokens are lower-cased, FNV-1a hashed into one of
// domain.EmbeddingDimensions buckets, and the counts are L2-normalized.
type FallbackEmbedder struct {
	dimensions int
}

// NewFallback creates the deterministic embedder at the shared dimension.
func NewFallback() *FallbackEmbedder {
	return &FallbackEmbedder{dimensions: domain.EmbeddingDimensions}
}

// Embed implements domain.Embedder. Never fails.
func (e *FallbackEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimensions)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum64()%uint64(e.dimensions)]++
	}

	return l2Normalize(vec), nil
}

// l2Normalize scales the vector to unit length. An all-zero vector stays
// zero; there is no division by zero.
func l2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
