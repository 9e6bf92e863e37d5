// Package reasoning is the clinical decision-support engine: deterministic
// drug-interaction matching, trend classification, risk bucketing, and
// alert prioritization, with oracle-generated narrative on top. Structured
// results never depend on the oracle.
package reasoning

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
)

// placeholderNarrative is returned when no narrative can be generated.
const placeholderNarrative = "Automated summary unavailable. Review the structured findings below."

// Service runs clinical analyses. Stateless; safe for concurrent use.
type Service struct {
	ref    Reference
	pairs  PairChecker   // optional
	text   TextGenerator // optional
	logger *zap.Logger
}

// New creates a reasoning service. pairs and text may be nil.
func New(ref Reference, pairs PairChecker, text TextGenerator, logger *zap.Logger) *Service {
	return &Service{ref: ref, pairs: pairs, text: text, logger: logger}
}

// Analyze computes interactions, trends, risk levels, alerts, and
// recommendations for one request. Invalid or empty inputs produce empty
// results, never errors; only narrative generation touches the oracle and
// its failure degrades to a placeholder.
func (s *Service) Analyze(ctx context.Context, req Request) domain.Analysis {
	interactions := s.checkInteractions(ctx, req.Medications)
	trends := s.classifySeries(req.Series, req.Gender)
	alerts := buildAlerts(interactions, trends)
	recommendations := s.recommend(req.Conditions, interactions)

	analysis := domain.Analysis{
		Interactions:    interactions,
		Trends:          trends,
		Alerts:          alerts,
		Recommendations: recommendations,
		Narrative:       s.narrative(ctx, interactions, trends, alerts),
	}
	return analysis
}

// classifySeries computes one VitalTrend per named series, in parameter
// name order for deterministic output.
func (s *Service) classifySeries(series map[string][]domain.SeriesPoint, gender domain.Gender) []domain.VitalTrend {
	if gender == "" {
		gender = domain.GenderBoth
	}

	params := make([]string, 0, len(series))
	for p := range series {
		params = append(params, p)
	}
	sort.Strings(params)

	trends := []domain.VitalTrend{}
	for _, param := range params {
		points := sortSeries(series[param])
		if len(points) == 0 {
			continue
		}

		direction, change := ClassifyTrend(points)

		trend := domain.VitalTrend{
			Parameter: param,
			Points:    points,
			Direction: direction,
			ChangePct: change,
		}

		latest := points[len(points)-1].Value
		if r, ok := s.ref.Range(param, gender); ok {
			trend.TargetRange = &r
			trend.Risk = AssessRisk(latest, &r)
		} else {
			trend.Risk = AssessRisk(latest, nil)
			trend.Note = noRangeNote
		}

		trends = append(trends, trend)
	}
	return trends
}

// recommend derives recommendation lines from condition guidelines and
// interaction management texts.
func (s *Service) recommend(conditions []string, interactions []domain.InteractionHit) []string {
	recs := []string{}

	for _, cond := range conditions {
		g, ok := s.ref.Guideline(cond)
		if !ok {
			continue
		}
		rec := fmt.Sprintf("%s: first-line therapy is %s", strings.TrimSpace(cond), g.FirstLine)
		if g.Notes != "" {
			rec += ". " + g.Notes
		}
		recs = append(recs, rec)
	}

	for _, hit := range interactions {
		if hit.Management == "" {
			continue
		}
		recs = append(recs, fmt.Sprintf("%s + %s: %s", hit.MatchedA, hit.MatchedB, hit.Management))
	}

	return recs
}

// narrative asks the oracle for a prose summary of the structured facts,
// degrading to a fixed placeholder.
func (s *Service) narrative(
	ctx context.Context,
	interactions []domain.InteractionHit,
	trends []domain.VitalTrend,
	alerts []domain.ClinicalAlert,
) string {
	if s.text == nil {
		return placeholderNarrative
	}

	prompt := narrativePrompt(interactions, trends, alerts)
	out, err := s.text.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			s.logger.Warn("narrative generation failed, using placeholder", zap.Error(err))
		}
		metrics.FallbackTotal.WithLabelValues("text").Inc()
		return placeholderNarrative
	}
	return strings.TrimSpace(out)
}

// narrativePrompt serializes the structured findings for the oracle. The
// oracle only rephrases; it is never the source of the findings.
func narrativePrompt(
	interactions []domain.InteractionHit,
	trends []domain.VitalTrend,
	alerts []domain.ClinicalAlert,
) string {
	var b strings.Builder
	b.WriteString("Write a short clinical summary for a patient, strictly restating these findings without adding new claims.\n")

	b.WriteString("Drug interactions:\n")
	if len(interactions) == 0 {
		b.WriteString("- none\n")
	}
	for _, h := range interactions {
		fmt.Fprintf(&b, "- %s + %s (%s): %s\n", h.MatchedA, h.MatchedB, h.Severity, h.Effect)
	}

	b.WriteString("Trends:\n")
	if len(trends) == 0 {
		b.WriteString("- none\n")
	}
	for _, t := range trends {
		fmt.Fprintf(&b, "- %s: %s (%.1f%%), risk %s\n", t.Parameter, t.Direction, t.ChangePct, t.Risk)
	}

	b.WriteString("Alerts:\n")
	if len(alerts) == 0 {
		b.WriteString("- none\n")
	}
	for _, a := range alerts {
		fmt.Fprintf(&b, "- [%s] %s\n", a.Severity, a.Message)
	}

	return b.String()
}
