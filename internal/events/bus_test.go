package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func providerEvent(eventType, id string) Event {
	return NewProviderEvent(eventType, host.Provider{ID: id})
}

func TestBus_PublishPersistsAndDelivers(t *testing.T) {
	db := setupTestDB(t)
	bus := NewBus(NewEventLog(db), nil)
	defer bus.Close()

	ch := bus.Subscribe(10)
	require.NoError(t, bus.Publish(context.Background(), providerEvent(EventProviderAdded, "p1")))

	e := receive(t, ch)
	assert.Equal(t, EventProviderAdded, e.EventType())
	assert.Equal(t, "p1", e.EntityID())

	records, err := NewEventLog(db).ForEntity(EntityProvider, "p1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBus_TypeFilter(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	removals := bus.Subscribe(10, EventProviderRemoved, EventImportRemoved)
	all := bus.Subscribe(10)

	ctx := context.Background()
	imp := host.Import{Provider: host.Provider{ID: "p1"}, MediaTypes: []string{host.MediaTypeMovie}}
	require.NoError(t, bus.Publish(ctx, providerEvent(EventProviderActivated, "p1")))
	require.NoError(t, bus.Publish(ctx, NewImportEvent(EventImportRemoved, imp)))
	require.NoError(t, bus.Publish(ctx, providerEvent(EventProviderRemoved, "p1")))

	assert.Equal(t, EventProviderActivated, receive(t, all).EventType())
	assert.Equal(t, EventImportRemoved, receive(t, all).EventType())
	assert.Equal(t, EventProviderRemoved, receive(t, all).EventType())

	e := receive(t, removals)
	assert.Equal(t, EventImportRemoved, e.EventType())
	assert.Equal(t, "p1|movie", e.EntityID())
	assert.Equal(t, EventProviderRemoved, receive(t, removals).EventType())
	assert.Empty(t, removals)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(10)
	bus.Unsubscribe(ch)
	bus.Unsubscribe(ch)

	require.NoError(t, bus.Publish(context.Background(), providerEvent(EventProviderRemoved, "p1")))
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}

func TestBus_FullSubscriberBlocksUntilDrained(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(1)
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, providerEvent(EventProviderAdded, "p1")))

	done := make(chan error, 1)
	go func() { done <- bus.Publish(ctx, providerEvent(EventProviderActivated, "p1")) }()

	select {
	case <-done:
		t.Fatal("publish should wait for a slot")
	case <-time.After(20 * time.Millisecond):
	}

	assert.Equal(t, EventProviderAdded, receive(t, ch).EventType())
	require.NoError(t, <-done)
	assert.Equal(t, EventProviderActivated, receive(t, ch).EventType())
}

func TestBus_PublishHonoursContext(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()
	_ = bus.Subscribe(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := bus.Publish(ctx, providerEvent(EventProviderAdded, "p1"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()
	ch := bus.Subscribe(100)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), providerEvent(EventProviderUpdated, "p"))
		}()
	}
	wg.Wait()
	assert.Len(t, ch, 10)
}

func TestBus_Closed(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe(1)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	require.NoError(t, bus.Publish(context.Background(), providerEvent(EventProviderAdded, "p1")))
	_, ok := <-ch
	assert.False(t, ok)

	late := bus.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok, "subscribing after close yields a closed channel")
}
