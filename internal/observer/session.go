package observer

import (
	"context"

	"github.com/vmunix/mediaimport/internal/host"
)

// Session is a live connection to the remote server behind a provider.
type Session interface {
	// Changes returns the items changed since the previous call.
	Changes(ctx context.Context) ([]host.ChangedItem, error)
	Close() error
}

// Connector opens sessions for providers.
type Connector interface {
	Connect(ctx context.Context, p host.Provider, settings host.Settings) (Session, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, p host.Provider, settings host.Settings) (Session, error)

// Connect calls f.
func (f ConnectorFunc) Connect(ctx context.Context, p host.Provider, settings host.Settings) (Session, error) {
	return f(ctx, p, settings)
}
