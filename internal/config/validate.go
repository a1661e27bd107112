// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"

	"github.com/vmunix/mediaimport/internal/host"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Server.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("server.listen: must be host:port, got %q", c.Server.Listen))
		}
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path: required")
	}
	if c.Database.EventRetention < 0 {
		errs = append(errs, fmt.Sprintf("database.event_retention: must be positive, got %s", c.Database.EventRetention))
	}

	// Discovery validation
	d := c.Discovery
	if d.Interval < 0 {
		errs = append(errs, fmt.Sprintf("discovery.interval: must be positive, got %s", d.Interval))
	}
	if d.Expiry < d.Interval {
		errs = append(errs, fmt.Sprintf("discovery.expiry: must be at least discovery.interval (%s), got %s", d.Interval, d.Expiry))
	}
	if d.ProbeTimeout < 0 {
		errs = append(errs, fmt.Sprintf("discovery.probe_timeout: must be positive, got %s", d.ProbeTimeout))
	}
	for _, mt := range d.MediaTypes {
		if !slices.Contains(host.DefaultMediaTypes, mt) {
			errs = append(errs, fmt.Sprintf("discovery.media_types: unknown media type %q", mt))
		}
	}
	seen := make(map[string]bool)
	for i, s := range d.Servers {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("discovery.servers[%d].id: required", i))
		} else if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("discovery.servers[%d].id: duplicate %q", i, s.ID))
		}
		seen[s.ID] = true
		if s.Address == "" {
			errs = append(errs, fmt.Sprintf("discovery.servers[%d].address: required", i))
		} else if !validAddress(s.Address) {
			errs = append(errs, fmt.Sprintf("discovery.servers[%d].address: must be a URL or host:port, got %q", i, s.Address))
		}
	}

	if c.Observer.Interval < 0 {
		errs = append(errs, fmt.Sprintf("observer.interval: must be positive, got %s", c.Observer.Interval))
	}
	if c.Remote.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("remote.timeout: must be positive, got %s", c.Remote.Timeout))
	}

	if c.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Metrics.Listen); err != nil {
			errs = append(errs, fmt.Sprintf("metrics.listen: must be host:port, got %q", c.Metrics.Listen))
		}
	}

	return errs
}

func validAddress(addr string) bool {
	if u, err := url.Parse(addr); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return u.Host != ""
	}
	_, _, err := net.SplitHostPort(addr)
	return err == nil
}
