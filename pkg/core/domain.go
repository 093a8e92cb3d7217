package core

// EventType represents the type of change in the note directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a stored note.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
