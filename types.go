package medkb

import "time"

// Category classifies an ingested document.
type Category string

// Document categories.
const (
	CategoryPrescription Category = "prescription"
	CategoryLabReport    Category = "lab_report"
	CategoryTestReport   Category = "test_report"
	CategoryBill         Category = "bill"
	CategoryOther        Category = "other"
)

// Document is one medical record to ingest. ID is optional; a missing ID
// is assigned on ingestion. Content is required.
type Document struct {
	ID       string
	Name     string
	Category Category
	Date     time.Time
	Content  string
	Summary  string
	Doctor   string
	Hospital string
	Tags     []string
}

// SearchResult pairs a document with its relevance score.
type SearchResult struct {
	Document Document
	Score    float32
}

// TimelineEvent is one dated clinical event.
type TimelineEvent struct {
	Date        time.Time
	Description string
	Type        string
	Value       string
	Doctor      string
	Hospital    string
	DocumentID  string
}

// SeriesPoint is one dated measurement of a clinical parameter.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// AnalysisRequest describes one clinical analysis.
type AnalysisRequest struct {
	Medications []string
	Conditions  []string
	Series      map[string][]SeriesPoint
	Gender      string // "male", "female", or empty
}

// Interaction is one detected drug-drug interaction.
type Interaction struct {
	DrugA      string
	DrugB      string
	Severity   string
	Effect     string
	Management string
	Source     string // "table" or "oracle"
}

// Trend summarizes the movement of one measured parameter.
type Trend struct {
	Parameter string
	Direction string
	ChangePct float64
	Risk      string
	Note      string
}

// Alert is one prioritized clinical notice.
type Alert struct {
	Type           string
	Severity       string
	Message        string
	Recommendation string
	Due            *time.Time
}

// Analysis is the full structured output of one clinical analysis.
type Analysis struct {
	Interactions    []Interaction
	Trends          []Trend
	Alerts          []Alert
	Recommendations []string
	Narrative       string
}

// Answer is the result of one question against the ingested corpus.
type Answer struct {
	Text       string
	Confidence float32
	Sources    []SearchResult
	Timeline   []TimelineEvent
}
