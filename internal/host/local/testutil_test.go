package local

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/events"
	"github.com/vmunix/mediaimport/internal/host"
)

var testProvider = host.Provider{
	ID:           "p1",
	FriendlyName: "Den",
	IconURL:      "icon.png",
	MediaTypes:   []string{"movie", "set"},
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

// setupTestHost returns a host publishing to a bus with one all-event subscriber.
func setupTestHost(t *testing.T, cfg Config) (*Host, <-chan events.Event) {
	t.Helper()
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { _ = bus.Close() })
	ch := bus.Subscribe(64)
	return New(setupTestStore(t), bus, cfg, testLogger()), ch
}

// drain returns the types of the events published so far.
func drain(ch <-chan events.Event) []string {
	var types []string
	for {
		select {
		case e := <-ch:
			types = append(types, e.EventType())
		default:
			return types
		}
	}
}
