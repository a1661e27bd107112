package events

import "github.com/vmunix/mediaimport/internal/host"

// Import lifecycle event types.
const (
	EventImportAdded   = "import.added"
	EventImportUpdated = "import.updated"
	EventImportRemoved = "import.removed"
)

// ImportEvent reports a change to an import registered with the host.
type ImportEvent struct {
	Meta
	Import host.Import `json:"import"`
}

// NewImportEvent creates an import event of the given type.
// The entity id is the import key.
func NewImportEvent(eventType string, imp host.Import) *ImportEvent {
	return &ImportEvent{
		Meta:   newMeta(eventType, EntityImport, imp.Key()),
		Import: imp,
	}
}
