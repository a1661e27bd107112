package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	ch    chan Event
	types []string // empty matches every type
}

func (s *subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// Bus fans lifecycle events out to subscribers.
//
// Lifecycle events must not be lost: a subscriber whose channel is full
// blocks Publish until it catches up or ctx is done.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	log    *EventLog
	logger *slog.Logger
	closed bool
}

// NewBus creates a bus. The event log is optional.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish persists e when a log is attached, then delivers it to every
// matching subscriber in subscription order.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, s := range b.subs {
		if !s.wants(e.EventType()) {
			continue
		}
		select {
		case s.ch <- e:
			continue
		default:
		}
		b.logger.Debug("subscriber channel full, waiting",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_id", e.EntityID())
		select {
		case s.ch <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of the given types, or of
// every type when none are given.
func (b *Bus) Subscribe(bufferSize int, types ...string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &subscription{ch: make(chan Event, bufferSize), types: slices.Clone(types)}
	if b.closed {
		close(s.ch)
		return s.ch
	}
	b.subs = append(b.subs, s)
	return s.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.ch == ch {
			b.subs = slices.Delete(b.subs, i, i+1)
			close(s.ch)
			return
		}
	}
}

// Close closes every subscription. Later publishes are dropped.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
