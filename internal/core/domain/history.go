package domain

import "time"

// HistoryEvent is a step of the workflow recorded for a document.
type HistoryEvent string

// Recorded events.
const (
	EventSubmitted HistoryEvent = "submitted"
	EventCompleted HistoryEvent = "completed"
	EventFailed    HistoryEvent = "failed"
	EventVerified  HistoryEvent = "verified"
	EventExported  HistoryEvent = "exported"
)

// String returns the string representation.
func (e HistoryEvent) String() string {
	return string(e)
}

// HistoryEntry records one workflow event for a document.
type HistoryEntry struct {
	// ID is the unique identifier (UUID).
	ID string

	// DocumentID is the server-issued job identifier.
	DocumentID string

	// FileName is the local name of the submitted file, when known.
	FileName string

	// Event is what happened.
	Event HistoryEvent

	// Detail carries a failure kind or export format.
	Detail string

	// CreatedAt is when the event was recorded.
	CreatedAt time.Time
}
