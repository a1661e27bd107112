package discovery

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sighting is what a probe reports about one reachable server.
type Sighting struct {
	ID      string
	Name    string
	Address string
}

// Prober looks for servers. It is called once per discovery tick.
type Prober interface {
	Probe(ctx context.Context) ([]Sighting, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) ([]Sighting, error)

// Probe calls f(ctx).
func (f ProberFunc) Probe(ctx context.Context) ([]Sighting, error) {
	return f(ctx)
}

// DefaultProbeTimeout bounds a single reachability check.
const DefaultProbeTimeout = 500 * time.Millisecond

// maxConcurrentProbes bounds the dials of one tick.
const maxConcurrentProbes = 8

// StaticProber reports configured servers as sighted while a TCP connection
// to their address can be established.
type StaticProber struct {
	servers []Sighting
	timeout time.Duration
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewStaticProber creates a prober for a fixed list of servers.
func NewStaticProber(servers []Sighting, timeout time.Duration) *StaticProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	d := &net.Dialer{}
	return &StaticProber{
		servers: servers,
		timeout: timeout,
		dial:    d.DialContext,
	}
}

// Probe dials every configured server in parallel and returns the reachable ones
// in configuration order.
func (p *StaticProber) Probe(ctx context.Context) ([]Sighting, error) {
	reachable := make([]bool, len(p.servers))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProbes)
	for i, s := range p.servers {
		g.Go(func() error {
			reachable[i] = p.reachable(ctx, s.Address)
			return nil
		})
	}
	_ = g.Wait()

	var seen []Sighting
	for i, s := range p.servers {
		if reachable[i] {
			seen = append(seen, s)
		}
	}
	return seen, nil
}

func (p *StaticProber) reachable(ctx context.Context, address string) bool {
	hostport, err := dialAddress(address)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, "tcp", hostport)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// dialAddress turns a server address (URL or host:port) into host:port.
func dialAddress(address string) (string, error) {
	if !strings.Contains(address, "://") {
		if _, _, err := net.SplitHostPort(address); err != nil {
			return "", err
		}
		return address, nil
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
