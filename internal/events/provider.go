package events

import "github.com/vmunix/mediaimport/internal/host"

// Provider lifecycle event types.
const (
	EventProviderAdded       = "provider.added"
	EventProviderUpdated     = "provider.updated"
	EventProviderRemoved     = "provider.removed"
	EventProviderActivated   = "provider.activated"
	EventProviderDeactivated = "provider.deactivated"
)

// ProviderEvent reports a change to a provider registered with the host.
type ProviderEvent struct {
	Meta
	Provider host.Provider `json:"provider"`
}

// NewProviderEvent creates a provider event of the given type.
func NewProviderEvent(eventType string, p host.Provider) *ProviderEvent {
	return &ProviderEvent{
		Meta:     newMeta(eventType, EntityProvider, p.ID),
		Provider: p,
	}
}
