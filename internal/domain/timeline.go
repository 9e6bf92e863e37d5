package domain

import "time"

// EventType classifies a timeline event.
type EventType string

const (
	// EventMedication is a medication start/change event.
	EventMedication EventType = "medication"
	// EventDiagnosis is a diagnosis event.
	EventDiagnosis EventType = "diagnosis"
	// EventLabResult is a laboratory result event.
	EventLabResult EventType = "lab_result"
	// EventVitalSigns is a vital signs measurement event.
	EventVitalSigns EventType = "vital_signs"
	// EventProcedure is a procedure event.
	EventProcedure EventType = "procedure"
	// EventVisit is a generic visit event.
	EventVisit EventType = "visit"
)

// ValidEventType reports whether t is a known event type.
func ValidEventType(t EventType) bool {
	switch t {
	case EventMedication, EventDiagnosis, EventLabResult,
		EventVitalSigns, EventProcedure, EventVisit:
		return true
	}
	return false
}

// TimelineEvent is one dated clinical event extracted from a document.
// Events are derived values, never mutated after creation.
type TimelineEvent struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Value       string    `json:"value,omitempty"`
	Doctor      string    `json:"doctor,omitempty"`
	Hospital    string    `json:"hospital,omitempty"`
	DocumentID  string    `json:"document_id"`
}

// TimelineDay is a display projection: all events sharing one calendar date.
type TimelineDay struct {
	Date   time.Time       `json:"date"`
	Events []TimelineEvent `json:"events"`
}
