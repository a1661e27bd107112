package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/mediaimport/internal/config"
	"github.com/vmunix/mediaimport/internal/discovery"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/server"
)

// runnerConfig maps the file configuration onto the runner's.
func runnerConfig(cfg *config.Config) server.Config {
	servers := make([]discovery.Sighting, 0, len(cfg.Discovery.Servers))
	for _, s := range cfg.Discovery.Servers {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		servers = append(servers, discovery.Sighting{ID: s.ID, Name: name, Address: s.Address})
	}

	return server.Config{
		Discovery: discovery.Config{
			Interval:   cfg.Discovery.Interval,
			Expiry:     cfg.Discovery.Expiry,
			IconURL:    cfg.Discovery.IconURL,
			MediaTypes: cfg.Discovery.MediaTypes,
		},
		Servers:          servers,
		ProbeTimeout:     cfg.Discovery.ProbeTimeout,
		ObserverInterval: cfg.Observer.Interval,
		RemoteTimeout:    cfg.Remote.Timeout,
		AutoImport:       cfg.Observer.AutoImportEnabled(),
		APIListen:        cfg.Server.Listen,
		Version:          version,
		MetricsListen:    cfg.Metrics.Listen,
		EventRetention:   cfg.Database.EventRetention,
	}
}

// openDatabase opens the configured database, creating its directory.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := local.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// setup loads config, opens the database and builds a runner.
// The returned close function releases the database.
func setup(mutate func(*server.Config)) (*server.Runner, *slog.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg)

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	rc := runnerConfig(cfg)
	if mutate != nil {
		mutate(&rc)
	}
	r := server.NewRunner(db, rc, logger)
	return r, logger, func() { _ = db.Close() }, nil
}
