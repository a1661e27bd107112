package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRemoteServer_IsExpired(t *testing.T) {
	tests := []struct {
		name       string
		registered bool
		age        time.Duration
		want       bool
	}{
		{"registered fresh", true, 5 * time.Second, false},
		{"registered at timeout", true, 10 * time.Second, true},
		{"registered past timeout", true, 11 * time.Second, true},
		{"unregistered old", false, time.Hour, false},
		{"unregistered at timeout", false, 10 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := RemoteServer{ID: "s1", Registered: tt.registered, LastSeen: t0}
			assert.Equal(t, tt.want, s.IsExpired(t0.Add(tt.age), DefaultExpiry))
		})
	}
}

func TestRegistry_RecordSighting_New(t *testing.T) {
	r := NewRegistry()

	needs := r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: t0})
	assert.True(t, needs, "unknown server needs registration")
	assert.Equal(t, 1, r.Len())

	s, ok := r.Get("s1")
	require.True(t, ok)
	assert.False(t, s.Registered)
}

func TestRegistry_RecordSighting_UnchangedOnlyAdvancesLastSeen(t *testing.T) {
	r := NewRegistry()
	r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: t0})
	r.MarkRegistered("s1", true)

	for i := 1; i <= 5; i++ {
		seen := t0.Add(time.Duration(i) * time.Second)
		needs := r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: seen})
		assert.False(t, needs)

		s, _ := r.Get("s1")
		assert.True(t, s.Registered)
		assert.Equal(t, seen, s.LastSeen)
	}
}

func TestRegistry_RecordSighting_ChangedFieldsReRegister(t *testing.T) {
	tests := []struct {
		name    string
		sighted RemoteServer
	}{
		{"name changed", RemoteServer{ID: "s1", Name: "B", Address: "1.2.3.4"}},
		{"address changed", RemoteServer{ID: "s1", Name: "A", Address: "5.6.7.8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: t0})
			r.MarkRegistered("s1", true)

			assert.True(t, r.RecordSighting(tt.sighted))
			s, _ := r.Get("s1")
			assert.False(t, s.Registered)
			assert.Equal(t, tt.sighted.Name, s.Name)
			assert.Equal(t, tt.sighted.Address, s.Address)
		})
	}
}

func TestRegistry_RecordSighting_UnregisteredRetries(t *testing.T) {
	r := NewRegistry()
	r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: t0})
	r.MarkRegistered("s1", false)

	assert.True(t, r.RecordSighting(RemoteServer{ID: "s1", Name: "A", Address: "1.2.3.4", LastSeen: t0.Add(time.Second)}))
}

func TestRegistry_SweepExpired(t *testing.T) {
	r := NewRegistry()
	r.RecordSighting(RemoteServer{ID: "old", LastSeen: t0})
	r.RecordSighting(RemoteServer{ID: "fresh", LastSeen: t0.Add(9 * time.Second)})
	r.RecordSighting(RemoteServer{ID: "unregistered", LastSeen: t0})
	r.MarkRegistered("old", true)
	r.MarkRegistered("fresh", true)

	expired := r.SweepExpired(t0.Add(10*time.Second), DefaultExpiry)
	require.Len(t, expired, 1)
	assert.Equal(t, "old", expired[0].ID)
	assert.False(t, expired[0].Registered)

	s, _ := r.Get("old")
	assert.False(t, s.Registered)
	assert.Equal(t, 3, r.Len(), "expired servers stay known")

	assert.Empty(t, r.SweepExpired(t0.Add(time.Minute), time.Hour))
	assert.Equal(t, 1, r.RegisteredCount())
}

func TestRegistry_ServersAndClear(t *testing.T) {
	r := NewRegistry()
	r.RecordSighting(RemoteServer{ID: "b"})
	r.RecordSighting(RemoteServer{ID: "a"})

	servers := r.Servers()
	require.Len(t, servers, 2)
	assert.Equal(t, "a", servers[0].ID)
	assert.Equal(t, "b", servers[1].ID)

	r.Clear()
	assert.Zero(t, r.Len())
	_, ok := r.Get("a")
	assert.False(t, ok)
}
