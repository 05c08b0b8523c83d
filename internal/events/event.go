// Package events provides the typed event bus the playback core publishes on.
package events

import "time"

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	ContentID() string // id of the content the event concerns; may be empty
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"content_id,omitempty"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) ContentID() string     { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, contentID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		ID:        contentID,
		Timestamp: time.Now(),
	}
}
