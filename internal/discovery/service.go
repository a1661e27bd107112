package discovery

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/metrics"
)

// providerNamespace scopes provider identifiers derived from server ids.
var providerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vmunix/mediaimport"))

// ProviderID returns the host provider identifier for a server id. The same
// server always maps to the same provider.
func ProviderID(serverID string) string {
	return uuid.NewSHA1(providerNamespace, []byte(serverID)).String()
}

// Config for the discovery service.
type Config struct {
	Interval   time.Duration
	Expiry     time.Duration
	IconURL    string
	MediaTypes []string

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Service runs the discovery loop: probe, reconcile the registry, expire
// silent servers, then wait for the next tick or cancellation.
type Service struct {
	prober    Prober
	registrar host.Registrar
	registry  *Registry
	config    Config
	logger    *slog.Logger
}

// NewService creates a discovery service.
func NewService(prober Prober, registrar host.Registrar, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}
	if len(cfg.MediaTypes) == 0 {
		cfg.MediaTypes = host.DefaultMediaTypes
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		prober:    prober,
		registrar: registrar,
		registry:  NewRegistry(),
		config:    cfg,
		logger:    logger,
	}
}

// Registry returns the service's server registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Run ticks until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("looking for servers", "interval", s.config.Interval, "expiry", s.config.Expiry)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		s.Tick(ctx)

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	s.logger.Info("discovery stopped")
	return nil
}

// Tick performs one discovery pass.
func (s *Service) Tick(ctx context.Context) {
	sightings, err := s.prober.Probe(ctx)
	if err != nil {
		s.logger.Warn("discovery failed", "error", err)
	}

	now := s.config.Now()
	for _, sighting := range sightings {
		if sighting.ID == "" {
			s.logger.Warn("ignoring server without identifier", "name", sighting.Name, "address", sighting.Address)
			continue
		}
		server := RemoteServer{
			ID:       sighting.ID,
			Name:     sighting.Name,
			Address:  sighting.Address,
			LastSeen: now,
		}
		if s.registry.RecordSighting(server) {
			s.register(ctx, server)
		}
	}

	s.expire(ctx, now)
	metrics.ServersRegistered.Set(float64(s.registry.RegisteredCount()))
}

// Provider builds the host provider descriptor for a server.
func (s *Service) Provider(server RemoteServer) host.Provider {
	return host.Provider{
		ID:           ProviderID(server.ID),
		FriendlyName: server.Name,
		IconURL:      s.config.IconURL,
		MediaTypes:   slices.Clone(s.config.MediaTypes),
	}
}

func (s *Service) register(ctx context.Context, server RemoteServer) {
	provider := s.Provider(server)
	log := s.logger.With("server", server.Name, "server_id", server.ID, "provider", provider.ID)

	settings, err := s.registrar.PrepareProviderSettings(ctx, provider)
	if err != nil || settings == nil {
		log.Error("cannot prepare media provider settings", "error", err)
		return
	}
	if err := host.SetURL(settings, server.Address); err != nil {
		log.Error("cannot store server address in provider settings", "address", server.Address, "error", err)
		return
	}

	if err := s.registrar.AddAndActivateProvider(ctx, provider); err != nil {
		s.registry.MarkRegistered(server.ID, false)
		metrics.RecordRegistration(false)
		log.Warn("failed to add and/or activate server", "error", err)
		return
	}

	s.registry.MarkRegistered(server.ID, true)
	metrics.RecordRegistration(true)
	log.Info("server successfully added and activated", "address", server.Address)
}

func (s *Service) expire(ctx context.Context, now time.Time) {
	for _, server := range s.registry.SweepExpired(now, s.config.Expiry) {
		metrics.Deactivations.Inc()
		if err := s.registrar.DeactivateProvider(ctx, ProviderID(server.ID)); err != nil {
			s.logger.Warn("failed to deactivate server", "server", server.Name, "server_id", server.ID, "error", err)
			continue
		}
		s.logger.Info("server deactivated due to inactivity",
			"server", server.Name,
			"server_id", server.ID,
			"last_seen", server.LastSeen)
	}
}
