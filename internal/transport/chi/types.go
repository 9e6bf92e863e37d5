package chi

import (
	"time"

	"github.com/kaira-health/medkb/internal/domain"
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeDocumentNotFound  = "document_not_found"
	codeSessionNotFound   = "session_not_found"
	codeOracleUnavailable = "oracle_unavailable"
	codeBudgetExhausted   = "oracle_budget_exhausted"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ingestDocumentRequest struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Date     string   `json:"date,omitempty"` // YYYY-MM-DD
	Content  string   `json:"content"`
	Summary  string   `json:"summary,omitempty"`
	Doctor   string   `json:"doctor,omitempty"`
	Hospital string   `json:"hospital,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type documentResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Date     string   `json:"date,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Doctor   string   `json:"doctor,omitempty"`
	Hospital string   `json:"hospital,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Chunks   int      `json:"chunks"`
}

type ingestBatchRequest struct {
	Documents []ingestDocumentRequest `json:"documents"`
}

type batchResultItem struct {
	Status   string            `json:"status"` // "ok" / "error"
	Document *documentResponse `json:"document,omitempty"`
	Error    *errorResponse    `json:"error,omitempty"`
}

type ingestBatchResponse struct {
	Items     []batchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

type searchRequest struct {
	Query  string `json:"query"`
	TopK   int    `json:"top_k,omitempty"`
	Mode   string `json:"mode,omitempty"`   // "semantic" (default) / "hybrid"
	Chunks bool   `json:"chunks,omitempty"` // chunk-level results instead of documents
}

type searchResultItem struct {
	Score    float32           `json:"score"`
	Document *documentResponse `json:"document,omitempty"`
	Chunk    *chunkResponse    `json:"chunk,omitempty"`
}

type chunkResponse struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Type       string `json:"type"`
	Content    string `json:"content"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

type timelineEventResponse struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Value       string `json:"value,omitempty"`
	Doctor      string `json:"doctor,omitempty"`
	Hospital    string `json:"hospital,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
}

type timelineResponse struct {
	Events []timelineEventResponse `json:"events"`
}

type seriesPointRequest struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

type analyzeRequest struct {
	Medications []string                        `json:"medications,omitempty"`
	Conditions  []string                        `json:"conditions,omitempty"`
	Series      map[string][]seriesPointRequest `json:"series,omitempty"`
	Gender      string                          `json:"gender,omitempty"`
}

type interactionResponse struct {
	DrugA      string `json:"drug_a"`
	DrugB      string `json:"drug_b"`
	Severity   string `json:"severity"`
	Effect     string `json:"effect,omitempty"`
	Management string `json:"management,omitempty"`
	Source     string `json:"source"`
}

type trendResponse struct {
	Parameter string  `json:"parameter"`
	Direction string  `json:"direction"`
	ChangePct float64 `json:"change_pct"`
	Risk      string  `json:"risk"`
	Note      string  `json:"note,omitempty"`
}

type alertResponse struct {
	Type           string     `json:"type"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	Recommendation string     `json:"recommendation,omitempty"`
	Due            *time.Time `json:"due,omitempty"`
}

type analyzeResponse struct {
	Interactions    []interactionResponse `json:"interactions"`
	Trends          []trendResponse       `json:"trends"`
	Alerts          []alertResponse       `json:"alerts"`
	Recommendations []string              `json:"recommendations"`
	Narrative       string                `json:"narrative"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer     string                  `json:"answer"`
	Confidence float32                 `json:"confidence"`
	Sources    []searchResultItem      `json:"sources"`
	Timeline   []timelineEventResponse `json:"timeline,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- Converters ---

func documentToResponse(d domain.Document) *documentResponse {
	resp := &documentResponse{
		ID:       d.ID,
		Name:     d.Name,
		Category: string(d.Category),
		Summary:  d.Summary,
		Doctor:   d.Doctor,
		Hospital: d.Hospital,
		Tags:     d.Tags,
		Chunks:   len(d.Chunks),
	}
	if !d.Date.IsZero() {
		resp.Date = d.Date.Format("2006-01-02")
	}
	return resp
}

func documentFromRequest(req ingestDocumentRequest) (domain.Document, error) {
	doc := domain.Document{
		ID:       req.ID,
		Name:     req.Name,
		Category: domain.Category(req.Category),
		Content:  req.Content,
		Summary:  req.Summary,
		Doctor:   req.Doctor,
		Hospital: req.Hospital,
		Tags:     req.Tags,
	}
	if req.Date != "" {
		date, err := domain.ParseEventDate(req.Date)
		if err != nil {
			return domain.Document{}, err
		}
		doc.Date = date
	}
	return doc, nil
}

func eventsToResponse(events []domain.TimelineEvent) []timelineEventResponse {
	out := make([]timelineEventResponse, len(events))
	for i, e := range events {
		out[i] = timelineEventResponse{
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Description,
			Type:        string(e.Type),
			Value:       e.Value,
			Doctor:      e.Doctor,
			Hospital:    e.Hospital,
			DocumentID:  e.DocumentID,
		}
	}
	return out
}

func scoredDocsToResponse(hits []domain.ScoredDocument) []searchResultItem {
	out := make([]searchResultItem, len(hits))
	for i, h := range hits {
		out[i] = searchResultItem{Score: h.Score, Document: documentToResponse(h.Document)}
	}
	return out
}

func scoredChunksToResponse(hits []domain.ScoredChunk) []searchResultItem {
	out := make([]searchResultItem, len(hits))
	for i, h := range hits {
		out[i] = searchResultItem{
			Score: h.Score,
			Chunk: &chunkResponse{
				ID:         h.Chunk.ID,
				DocumentID: h.Chunk.DocumentID,
				Type:       string(h.Chunk.Type),
				Content:    h.Chunk.Content,
			},
		}
	}
	return out
}

func analysisToResponse(a domain.Analysis) analyzeResponse {
	resp := analyzeResponse{
		Interactions:    make([]interactionResponse, len(a.Interactions)),
		Trends:          make([]trendResponse, len(a.Trends)),
		Alerts:          make([]alertResponse, len(a.Alerts)),
		Recommendations: a.Recommendations,
		Narrative:       a.Narrative,
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	for i, h := range a.Interactions {
		resp.Interactions[i] = interactionResponse{
			DrugA:      h.MatchedA,
			DrugB:      h.MatchedB,
			Severity:   string(h.Severity),
			Effect:     h.Effect,
			Management: h.Management,
			Source:     h.Source,
		}
	}
	for i, t := range a.Trends {
		resp.Trends[i] = trendResponse{
			Parameter: t.Parameter,
			Direction: string(t.Direction),
			ChangePct: t.ChangePct,
			Risk:      string(t.Risk),
			Note:      t.Note,
		}
	}
	for i, al := range a.Alerts {
		resp.Alerts[i] = alertResponse{
			Type:           al.Type,
			Severity:       string(al.Severity),
			Message:        al.Message,
			Recommendation: al.Recommendation,
			Due:            al.Due,
		}
	}
	return resp
}

func seriesFromRequest(series map[string][]seriesPointRequest) (map[string][]domain.SeriesPoint, error) {
	if series == nil {
		return nil, nil
	}
	out := make(map[string][]domain.SeriesPoint, len(series))
	for param, points := range series {
		ps := make([]domain.SeriesPoint, len(points))
		for i, p := range points {
			date, err := domain.ParseEventDate(p.Date)
			if err != nil {
				return nil, err
			}
			ps[i] = domain.SeriesPoint{Date: date, Value: p.Value}
		}
		out[param] = ps
	}
	return out, nil
}
