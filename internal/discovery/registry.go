package discovery

import (
	"sort"
	"sync"
	"time"
)

// Registry tracks every server sighted since it was created or last cleared.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*RemoteServer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{servers: make(map[string]*RemoteServer)}
}

// RecordSighting stores a sighting and reports whether the server has to be
// (re-)registered with the host. A known, registered server whose name and
// address are unchanged only has its LastSeen advanced.
func (r *Registry) RecordSighting(s RemoteServer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if known, ok := r.servers[s.ID]; ok && known.Registered && known.Name == s.Name && known.Address == s.Address {
		known.LastSeen = s.LastSeen
		return false
	}

	s.Registered = false
	r.servers[s.ID] = &s
	return true
}

// MarkRegistered records the outcome of a registration attempt.
func (r *Registry) MarkRegistered(id string, registered bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.servers[id]; ok {
		s.Registered = registered
	}
}

// SweepExpired unregisters every expired server and returns them. This is
// the only path from registered to unregistered caused by silence.
func (r *Registry) SweepExpired(now time.Time, timeout time.Duration) []RemoteServer {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []RemoteServer
	for _, s := range r.servers {
		if !s.IsExpired(now, timeout) {
			continue
		}
		s.Registered = false
		expired = append(expired, *s)
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ID < expired[j].ID })
	return expired
}

// Get returns a copy of the server with the given id.
func (r *Registry) Get(id string) (RemoteServer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.servers[id]
	if !ok {
		return RemoteServer{}, false
	}
	return *s, true
}

// Servers returns a snapshot of all servers ordered by id.
func (r *Registry) Servers() []RemoteServer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RemoteServer, 0, len(r.servers))
	for _, s := range r.servers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of known servers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.servers)
}

// RegisteredCount returns the number of servers currently registered.
func (r *Registry) RegisteredCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.servers {
		if s.Registered {
			n++
		}
	}
	return n
}

// Clear forgets every server.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = make(map[string]*RemoteServer)
}
