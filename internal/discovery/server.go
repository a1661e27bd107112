// Package discovery finds remote media servers and keeps the host's provider
// registry in step with what is currently reachable.
package discovery

import "time"

const (
	// DefaultInterval is the time between two discovery ticks.
	DefaultInterval = time.Second

	// DefaultExpiry is how long a registered server may stay silent before
	// its provider is deactivated. Ten missed probes tolerate transient
	// network loss without flapping the registration.
	DefaultExpiry = 10 * DefaultInterval
)

// RemoteServer is one discovered media server. Identity is ID.
type RemoteServer struct {
	ID         string
	Name       string
	Address    string
	Registered bool
	LastSeen   time.Time
}

// IsExpired reports whether the server is registered and has not been seen
// for at least timeout. Unregistered servers never expire.
func (s *RemoteServer) IsExpired(now time.Time, timeout time.Duration) bool {
	return s.Registered && now.Sub(s.LastSeen) >= timeout
}
