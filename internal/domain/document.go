package domain

import (
	"time"
	"unicode/utf8"
)

// Category is the ingestion category of a medical document.
type Category string

const (
	// CategoryPrescription is a prescription document.
	CategoryPrescription Category = "prescription"
	// CategoryLabReport is a laboratory report.
	CategoryLabReport Category = "lab_report"
	// CategoryTestReport is a diagnostic test report.
	CategoryTestReport Category = "test_report"
	// CategoryBill is a billing document.
	CategoryBill Category = "bill"
	// CategoryOther is any other document.
	CategoryOther Category = "other"
)

// ChunkType classifies a contiguous slice of document text.
type ChunkType string

const (
	// ChunkMedication marks medication/prescription lines.
	ChunkMedication ChunkType = "medication"
	// ChunkDiagnosis marks diagnosis/condition lines.
	ChunkDiagnosis ChunkType = "diagnosis"
	// ChunkLabResult marks laboratory result lines.
	ChunkLabResult ChunkType = "lab_result"
	// ChunkVitalSigns marks vital sign lines.
	ChunkVitalSigns ChunkType = "vital_signs"
	// ChunkProcedure marks procedure/treatment lines.
	ChunkProcedure ChunkType = "procedure"
	// ChunkGeneral is the catch-all chunk type.
	ChunkGeneral ChunkType = "general"
)

// Chunk is a contiguous, type-tagged slice of a document's text.
// Chunks back-reference their document by ID and never own it.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	Type       ChunkType `json:"type"`
	Embedding  []float32 `json:"-"`
	Position   int       `json:"position"`
}

// Document is one ingested medical document. Immutable after ingestion;
// owned exclusively by the session corpus it was ingested into.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Doctor    string    `json:"doctor,omitempty"`
	Hospital  string    `json:"hospital,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Embedding []float32 `json:"-"`
	Chunks    []Chunk   `json:"chunks,omitempty"`
}

// Excerpt returns the document summary, falling back to a content prefix.
// Truncation never splits a multi-byte rune.
func (d *Document) Excerpt(maxLen int) string {
	text := d.Summary
	if text == "" {
		text = d.Content
	}
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
