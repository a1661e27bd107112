// Package server wires the discovery loop, the observer loop and the local
// host into one process.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/vmunix/mediaimport/internal/api/v1"
	"github.com/vmunix/mediaimport/internal/discovery"
	"github.com/vmunix/mediaimport/internal/events"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/host/local"
	"github.com/vmunix/mediaimport/internal/importer"
	"github.com/vmunix/mediaimport/internal/metrics"
	"github.com/vmunix/mediaimport/internal/observer"
	"github.com/vmunix/mediaimport/internal/remote"
	"golang.org/x/sync/errgroup"
)

// eventBuffer is the observer's lifecycle event backlog.
const eventBuffer = 256

// Config for the runner.
type Config struct {
	Discovery    discovery.Config
	Servers      []discovery.Sighting
	ProbeTimeout time.Duration

	ObserverInterval time.Duration
	RemoteTimeout    time.Duration
	AutoImport       bool

	// APIListen serves the REST API when set.
	APIListen string
	// Version is reported by the status endpoint.
	Version string
	// MetricsListen serves /metrics when set.
	MetricsListen string
	// EventRetention prunes the event log; zero keeps every event.
	EventRetention time.Duration

	// DisableDiscovery and DisableObserver turn off one of the loops.
	DisableDiscovery bool
	DisableObserver  bool
}

// Runner manages the long-running components.
type Runner struct {
	config    Config
	logger    *slog.Logger
	prober    discovery.Prober
	connector observer.Connector

	host       *local.Host
	dispatcher *importer.Dispatcher
	eventLog   *events.EventLog
	bus        *events.Bus
}

// NewRunner creates a runner on a migrated database.
func NewRunner(db *sql.DB, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		config: cfg,
		logger: logger,
		prober: discovery.NewStaticProber(cfg.Servers, cfg.ProbeTimeout),
	}
	r.connector = RemoteConnector(cfg.RemoteTimeout, logger.With("component", "remote"))

	r.eventLog = events.NewEventLog(db)
	r.bus = events.NewBus(r.eventLog, logger.With("component", "bus"))
	r.host = local.New(local.NewStore(db), r.bus, local.Config{AutoImport: cfg.AutoImport}, logger.With("component", "host"))
	r.dispatcher = importer.NewDispatcher(r.host, importer.Config{
		Prober:     discovery.ProberFunc(func(ctx context.Context) ([]discovery.Sighting, error) { return r.prober.Probe(ctx) }),
		IconURL:    cfg.Discovery.IconURL,
		MediaTypes: cfg.Discovery.MediaTypes,
		Timeout:    cfg.RemoteTimeout,
	}, logger.With("component", "importer"))
	r.host.SetInvoker(r.dispatcher)
	return r
}

// SetProber replaces the prober used by discovery.
func (r *Runner) SetProber(p discovery.Prober) {
	r.prober = p
}

// SetConnector replaces the connector observers open sessions with.
func (r *Runner) SetConnector(c observer.Connector) {
	r.connector = c
}

// Host returns the local host.
func (r *Runner) Host() *local.Host {
	return r.host
}

// EventLog returns the persistent log of host lifecycle events.
func (r *Runner) EventLog() *events.EventLog {
	return r.eventLog
}

// Dispatcher returns the command dispatcher answering through the local host.
func (r *Runner) Dispatcher() *importer.Dispatcher {
	return r.dispatcher
}

// Run starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	defer r.bus.Close()

	g, ctx := errgroup.WithContext(ctx)

	if !r.config.DisableObserver {
		ch := r.bus.Subscribe(eventBuffer)
		svc := observer.NewService(r.host, r.connector, observer.Config{
			Interval: r.config.ObserverInterval,
		}, r.logger.With("component", "observer"))
		g.Go(func() error {
			defer r.bus.Unsubscribe(ch)
			return svc.Run(ctx, ch)
		})

		g.Go(func() error {
			if err := r.host.Replay(ctx); err != nil {
				return fmt.Errorf("replay host state: %w", err)
			}
			return nil
		})
	}

	if !r.config.DisableDiscovery {
		svc := discovery.NewService(r.prober, r.host, r.config.Discovery, r.logger.With("component", "discovery"))
		g.Go(func() error {
			return svc.Run(ctx)
		})
	}

	if r.config.APIListen != "" {
		r.serveHTTP(ctx, g, "api", r.config.APIListen, r.apiHandler())
	}
	if r.config.MetricsListen != "" {
		r.serveHTTP(ctx, g, "metrics", r.config.MetricsListen, metricsMux())
	}

	if r.config.EventRetention > 0 {
		g.Go(func() error {
			r.pruneEvents(ctx)
			return nil
		})
	}

	return g.Wait()
}

// serveHTTP runs an HTTP server in g until ctx is done.
func (r *Runner) serveHTTP(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		r.logger.Info("serving "+name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func (r *Runner) apiHandler() http.Handler {
	mux := http.NewServeMux()
	v1.New(v1.Deps{
		Host:       r.host,
		Dispatcher: r.dispatcher,
		EventLog:   r.eventLog,
	}, r.config.Version, r.logger.With("component", "api")).RegisterRoutes(mux)
	return v1.LogRequests(mux, r.logger.With("component", "http"))
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

func (r *Runner) pruneEvents(ctx context.Context) {
	eventLog := r.eventLog
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		n, err := eventLog.Prune(r.config.EventRetention)
		if err != nil {
			r.logger.Warn("failed to prune event log", "error", err)
		} else if n > 0 {
			r.logger.Debug("pruned event log", "removed", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RemoteConnector opens change feeds on the URL stored in a provider's settings.
func RemoteConnector(timeout time.Duration, logger *slog.Logger) observer.Connector {
	return observer.ConnectorFunc(func(ctx context.Context, p host.Provider, settings host.Settings) (observer.Session, error) {
		u, err := host.URL(settings)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.String(), err)
		}
		feed, err := remote.OpenFeed(ctx, u, timeout, logger)
		if err != nil {
			return nil, err
		}
		return feed, nil
	})
}
