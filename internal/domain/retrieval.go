package domain

// ScoredDocument pairs a document with its query similarity.
type ScoredDocument struct {
	Document Document
	Score    float32
}

// ScoredChunk pairs a chunk with its query similarity.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// Answer is the result of one question against the corpus.
type Answer struct {
	Text       string           `json:"text"`
	Confidence float32          `json:"confidence"`
	Sources    []ScoredDocument `json:"sources"`
	Timeline   []TimelineEvent  `json:"timeline,omitempty"`
}
