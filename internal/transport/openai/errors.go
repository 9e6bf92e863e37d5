package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kaira-health/medkb/internal/domain"
)

// parseAPIError extracts a human-readable error from the API response.
// All transport errors wrap domain.ErrOracleUnavailable so callers can
// trigger the deterministic fallback with one errors.Is check.
func parseAPIError(capability string, err error) error {
	wrap := domain.ErrOracleUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("oracle %s error %d: %s: %w",
			capability, reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("oracle %s error %d: %s: %w",
			capability, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("oracle %s request failed: %w", capability, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

// pairVerdict is the expected JSON shape of a drug-pair check.
type pairVerdict struct {
	Interacts  bool   `json:"interacts"`
	Severity   string `json:"severity"`
	Effect     string `json:"effect"`
	Management string `json:"management"`
}

// parsePairVerdict validates a pair-check completion. A non-interacting
// verdict returns (nil, nil); an interacting one must carry a known
// severity or the whole verdict is rejected.
func parsePairVerdict(raw, drugA, drugB string) (*domain.DrugInteraction, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var v pairVerdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, fmt.Errorf("pair verdict: %w: %w", err, domain.ErrOracleMalformed)
	}
	if !v.Interacts {
		return nil, nil
	}

	severity := domain.InteractionSeverity(v.Severity)
	switch severity {
	case domain.SeverityMild, domain.SeverityModerate, domain.SeveritySevere, domain.SeverityContraindicated:
	default:
		return nil, fmt.Errorf("pair verdict severity %q: %w", v.Severity, domain.ErrOracleMalformed)
	}

	return &domain.DrugInteraction{
		DrugA:      drugA,
		DrugB:      drugB,
		Severity:   severity,
		Effect:     v.Effect,
		Management: v.Management,
	}, nil
}
