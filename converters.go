package medkb

import "github.com/kaira-health/medkb/internal/domain"

func toDomainDocument(d Document) domain.Document {
	return domain.Document{
		ID:       d.ID,
		Name:     d.Name,
		Category: domain.Category(d.Category),
		Date:     d.Date,
		Content:  d.Content,
		Summary:  d.Summary,
		Doctor:   d.Doctor,
		Hospital: d.Hospital,
		Tags:     d.Tags,
	}
}

func fromDomainDocument(d domain.Document) Document {
	return Document{
		ID:       d.ID,
		Name:     d.Name,
		Category: Category(d.Category),
		Date:     d.Date,
		Content:  d.Content,
		Summary:  d.Summary,
		Doctor:   d.Doctor,
		Hospital: d.Hospital,
		Tags:     d.Tags,
	}
}

func fromScoredDocuments(hits []domain.ScoredDocument) []SearchResult {
	out := make([]SearchResult, len(hits))
	for i, h := range hits {
		out[i] = SearchResult{Document: fromDomainDocument(h.Document), Score: h.Score}
	}
	return out
}

func fromDomainEvents(events []domain.TimelineEvent) []TimelineEvent {
	out := make([]TimelineEvent, len(events))
	for i, e := range events {
		out[i] = TimelineEvent{
			Date:        e.Date,
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

func toDomainSeries(series map[string][]SeriesPoint) map[string][]domain.SeriesPoint {
	if series == nil {
		return nil
	}
	out := make(map[string][]domain.SeriesPoint, len(series))
	for param, points := range series {
		ps := make([]domain.SeriesPoint, len(points))
		for i, p := range points {
			ps[i] = domain.SeriesPoint{Date: p.Date, Value: p.Value}
		}
		out[param] = ps
	}
	return out
}

func fromDomainAnalysis(a domain.Analysis) Analysis {
	out := Analysis{
		Interactions:    make([]Interaction, len(a.Interactions)),
		Trends:          make([]Trend, len(a.Trends)),
		Alerts:          make([]Alert, len(a.Alerts)),
		Recommendations: a.Recommendations,
		Narrative:       a.Narrative,
	}
	for i, h := range a.Interactions {
		out.Interactions[i] = Interaction{
			DrugA:      h.MatchedA,
			DrugB:      h.MatchedB,
			Severity:   string(h.Severity),
			Effect:     h.Effect,
			Management: h.Management,
			Source:     h.Source,
		}
	}
	for i, t := range a.Trends {
		out.Trends[i] = Trend{
			Parameter: t.Parameter,
			Direction: string(t.Direction),
			ChangePct: t.ChangePct,
			Risk:      string(t.Risk),
			Note:      t.Note,
		}
	}
	for i, al := range a.Alerts {
		out.Alerts[i] = Alert{
			Type:           al.Type,
			Severity:       string(al.Severity),
			Message:        al.Message,
			Recommendation: al.Recommendation,
			Due:            al.Due,
		}
	}
	return out
}

func fromDomainAnswer(a domain.Answer) Answer {
	return Answer{
		Text:       a.Text,
		Confidence: a.Confidence,
		Sources:    fromScoredDocuments(a.Sources),
		Timeline:   fromDomainEvents(a.Timeline),
	}
}
