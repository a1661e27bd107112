package events

import (
	"encoding/json"
	"fmt"
)

var decoders = map[string]func() Event{
	EventProviderAdded:       func() Event { return &ProviderEvent{} },
	EventProviderUpdated:     func() Event { return &ProviderEvent{} },
	EventProviderRemoved:     func() Event { return &ProviderEvent{} },
	EventProviderActivated:   func() Event { return &ProviderEvent{} },
	EventProviderDeactivated: func() Event { return &ProviderEvent{} },
	EventImportAdded:         func() Event { return &ImportEvent{} },
	EventImportUpdated:       func() Event { return &ImportEvent{} },
	EventImportRemoved:       func() Event { return &ImportEvent{} },
}

// Known reports whether eventType is a lifecycle event type.
func Known(eventType string) bool {
	_, ok := decoders[eventType]
	return ok
}

// Decode restores the concrete event stored in rec.
func Decode(rec Record) (Event, error) {
	newEvent, ok := decoders[rec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, rec.Type)
	}
	e := newEvent()
	if err := json.Unmarshal([]byte(rec.Payload), e); err != nil {
		return nil, fmt.Errorf("decode %s event %d: %w", rec.Type, rec.ID, err)
	}
	return e, nil
}
