// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied by Load.
const (
	DefaultLogLevel          = "info"
	DefaultDatabasePath      = "./data/mediaimport.db"
	DefaultDiscoveryInterval = time.Second
	DefaultProbeTimeout      = 500 * time.Millisecond
	DefaultObserverInterval  = time.Second
	DefaultRemoteTimeout     = 10 * time.Second
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Discovery DiscoveryConfig `toml:"discovery"`
	Observer  ObserverConfig  `toml:"observer"`
	Remote    RemoteConfig    `toml:"remote"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type ServerConfig struct {
	LogLevel string `toml:"log_level"`
	// Listen is the address of the REST API; empty disables it.
	Listen string `toml:"listen"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
	// EventRetention prunes older event log entries; zero keeps them all.
	EventRetention time.Duration `toml:"event_retention"`
}

type DiscoveryConfig struct {
	Interval     time.Duration `toml:"interval"`
	Expiry       time.Duration `toml:"expiry"`
	ProbeTimeout time.Duration `toml:"probe_timeout"`
	IconURL      string        `toml:"icon_url"`
	MediaTypes   []string      `toml:"media_types"`
	Servers      []ServerEntry `toml:"servers"`
}

// ServerEntry is one remote server the static prober looks for.
type ServerEntry struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Address string `toml:"address"`
}

type ObserverConfig struct {
	Interval time.Duration `toml:"interval"`
	// AutoImport adds an import of all media types for each new provider.
	AutoImport *bool `toml:"auto_import"`
}

type RemoteConfig struct {
	Timeout time.Duration `toml:"timeout"`
}

type MetricsConfig struct {
	// Listen is the address of the /metrics endpoint; empty disables it.
	Listen string `toml:"listen"`
}

// AutoImportEnabled reports whether new providers get a default import.
func (c ObserverConfig) AutoImportEnabled() bool {
	return c.AutoImport == nil || *c.AutoImport
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Discovery.Interval == 0 {
		c.Discovery.Interval = DefaultDiscoveryInterval
	}
	if c.Discovery.Expiry == 0 {
		c.Discovery.Expiry = 10 * c.Discovery.Interval
	}
	if c.Discovery.ProbeTimeout == 0 {
		c.Discovery.ProbeTimeout = DefaultProbeTimeout
	}
	if c.Observer.Interval == 0 {
		c.Observer.Interval = DefaultObserverInterval
	}
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = DefaultRemoteTimeout
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables are left in place and returned, each once.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		if !slices.Contains(missing, varName) {
			missing = append(missing, varName)
		}
		return match
	})
	return result, missing
}
