package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// rawEvent is the JSON shape the oracle is asked to emit.
type rawEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Value       string `json:"value,omitempty"`
	Doctor      string `json:"doctor,omitempty"`
	Hospital    string `json:"hospital,omitempty"`
}

// ParseOracleEvents validates a JSON event array from the oracle. Any shape
// violation rejects the whole batch with ErrOracleMalformed: a half-valid
// extraction is worse than the deterministic fallback.
func ParseOracleEvents(data []byte, docID string) ([]TimelineEvent, error) {
	trimmed := strings.TrimSpace(string(data))
	// Tolerate a fenced code block around the JSON.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var raw []rawEvent
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleMalformed, err)
	}

	events := make([]TimelineEvent, 0, len(raw))
	for i, r := range raw {
		date, err := ParseEventDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrOracleMalformed, i, err)
		}
		if strings.TrimSpace(r.Description) == "" {
			return nil, fmt.Errorf("%w: event %d: empty description", ErrOracleMalformed, i)
		}
		evType := EventType(r.Type)
		if !ValidEventType(evType) {
			return nil, fmt.Errorf("%w: event %d: unknown type %q", ErrOracleMalformed, i, r.Type)
		}
		events = append(events, TimelineEvent{
			Date:        date,
			Description: strings.TrimSpace(r.Description),
			Type:        evType,
			Value:       strings.TrimSpace(r.Value),
			Doctor:      strings.TrimSpace(r.Doctor),
			Hospital:    strings.TrimSpace(r.Hospital),
			DocumentID:  docID,
		})
	}
	return events, nil
}

var eventDateLayouts = []string{"2006-01-02", time.RFC3339, "2006/01/02", "02.01.2006"}

// ParseEventDate parses the date formats the oracle is known to emit.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
