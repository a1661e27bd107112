// Package events carries host lifecycle notifications from the host to the
// observer loop, with optional persistence to SQLite.
package events

import "time"

// Entity types.
const (
	EntityProvider = "provider"
	EntityImport   = "import"
)

// Event is one host lifecycle notification.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() string
	OccurredAt() time.Time
}

// Meta identifies an event and the provider or import it is about.
type Meta struct {
	Type   string    `json:"type"`
	Entity string    `json:"entity_type"`
	ID     string    `json:"entity_id"`
	At     time.Time `json:"occurred_at"`
}

func (m Meta) EventType() string     { return m.Type }
func (m Meta) EntityType() string    { return m.Entity }
func (m Meta) EntityID() string      { return m.ID }
func (m Meta) OccurredAt() time.Time { return m.At }

func newMeta(eventType, entityType, entityID string) Meta {
	return Meta{Type: eventType, Entity: entityType, ID: entityID, At: time.Now()}
}
