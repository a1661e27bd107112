package observer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/vmunix/mediaimport/internal/events"
	"github.com/vmunix/mediaimport/internal/host"
)

// DefaultInterval is the observer tick.
const DefaultInterval = time.Second

// Config for the observer service.
type Config struct {
	Interval time.Duration
}

// Service owns one ProviderObserver per provider known to the host.
type Service struct {
	catalog   host.Catalog
	connector Connector
	config    Config
	logger    *slog.Logger

	mu        sync.Mutex
	observers map[string]*ProviderObserver
}

// NewService creates an observer service.
func NewService(catalog host.Catalog, connector Connector, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Service{
		catalog:   catalog,
		connector: connector,
		config:    cfg,
		logger:    logger,
		observers: make(map[string]*ProviderObserver),
	}
}

// Len returns the number of observed providers.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// Observer returns the observer for the provider id.
func (s *Service) Observer(id string) (*ProviderObserver, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.observers[id]
	return o, ok
}

func (s *Service) ensure(p host.Provider) *ProviderObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.observers[p.ID]
	if !ok {
		o = NewProviderObserver(p.ID, s.catalog, s.connector, s.logger)
		s.observers[p.ID] = o
	}
	return o
}

func (s *Service) snapshot() []*ProviderObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := slices.Sorted(maps.Keys(s.observers))
	list := make([]*ProviderObserver, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.observers[id])
	}
	return list
}

// OnProviderAdded creates an observer for p unless one exists.
func (s *Service) OnProviderAdded(p host.Provider) error {
	if !p.Valid() {
		return ErrInvalidProvider
	}
	s.ensure(p)
	return nil
}

// OnProviderUpdated creates an observer for p if needed and queues a start
// or stop depending on whether p is active.
func (s *Service) OnProviderUpdated(p host.Provider) error {
	if !p.Valid() {
		return ErrInvalidProvider
	}
	o := s.ensure(p)
	if p.Active {
		return o.Start(p)
	}
	o.Stop()
	return nil
}

// OnProviderRemoved stops and forgets the observer for p.
func (s *Service) OnProviderRemoved(p host.Provider) error {
	if !p.Valid() {
		return ErrInvalidProvider
	}

	s.mu.Lock()
	o, ok := s.observers[p.ID]
	delete(s.observers, p.ID)
	s.mu.Unlock()

	if ok {
		o.Close()
	}
	return nil
}

// OnProviderActivated queues a start on the existing observer for p.
func (s *Service) OnProviderActivated(p host.Provider) error {
	o, err := s.known(p, "activated")
	if err != nil {
		return err
	}
	return o.Start(p)
}

// OnProviderDeactivated queues a stop on the existing observer for p.
func (s *Service) OnProviderDeactivated(p host.Provider) error {
	o, err := s.known(p, "deactivated")
	if err != nil {
		return err
	}
	o.Stop()
	return nil
}

// known returns the observer for p. The host must announce a provider before
// changing its activation, so a missing observer is a protocol error. The
// caller reports it.
func (s *Service) known(p host.Provider, what string) (*ProviderObserver, error) {
	if !p.Valid() {
		return nil, ErrInvalidProvider
	}
	o, ok := s.Observer(p.ID)
	if !ok {
		return nil, fmt.Errorf("%s %s before it was added: %w", p.String(), what, ErrUnknownProvider)
	}
	return o, nil
}

// OnImportAdded adds imp to its provider's observer.
func (s *Service) OnImportAdded(imp host.Import) error {
	o, ok, err := s.importObserver(imp, "added")
	if !ok {
		return err
	}
	return o.AddImport(imp)
}

// OnImportUpdated replaces imp on its provider's observer.
func (s *Service) OnImportUpdated(imp host.Import) error {
	o, ok, err := s.importObserver(imp, "updated")
	if !ok {
		return err
	}
	return o.AddImport(imp)
}

// OnImportRemoved removes imp from its provider's observer.
func (s *Service) OnImportRemoved(imp host.Import) error {
	o, ok, err := s.importObserver(imp, "removed")
	if !ok {
		return err
	}
	return o.RemoveImport(imp)
}

// importObserver returns the observer owning imp. Imports for unknown
// providers are dropped with a warning.
func (s *Service) importObserver(imp host.Import, what string) (*ProviderObserver, bool, error) {
	if !imp.Valid() {
		return nil, false, ErrInvalidImport
	}
	o, ok := s.Observer(imp.Provider.ID)
	if !ok {
		s.logger.Warn("cannot handle "+what+" media import of unknown provider", "import", imp.String())
		return nil, false, nil
	}
	return o, true, nil
}

// HandleEvent dispatches a host lifecycle event to the matching handler.
func (s *Service) HandleEvent(e events.Event) error {
	switch ev := e.(type) {
	case *events.ProviderEvent:
		switch ev.EventType() {
		case events.EventProviderAdded:
			return s.OnProviderAdded(ev.Provider)
		case events.EventProviderUpdated:
			return s.OnProviderUpdated(ev.Provider)
		case events.EventProviderRemoved:
			return s.OnProviderRemoved(ev.Provider)
		case events.EventProviderActivated:
			return s.OnProviderActivated(ev.Provider)
		case events.EventProviderDeactivated:
			return s.OnProviderDeactivated(ev.Provider)
		}
	case *events.ImportEvent:
		switch ev.EventType() {
		case events.EventImportAdded:
			return s.OnImportAdded(ev.Import)
		case events.EventImportUpdated:
			return s.OnImportUpdated(ev.Import)
		case events.EventImportRemoved:
			return s.OnImportRemoved(ev.Import)
		}
	}
	s.logger.Debug("ignoring event", "type", e.EventType())
	return nil
}

// Tick processes every observer once.
func (s *Service) Tick(ctx context.Context) {
	for _, o := range s.snapshot() {
		if err := o.Process(ctx); err != nil {
			s.logger.Error("failed to process provider observer", "provider_id", o.ID(), "error", err)
		}
	}
}

// Run ticks until ctx is canceled, handling host lifecycle events from ch
// between ticks. Every observer is stopped before Run returns.
func (s *Service) Run(ctx context.Context, ch <-chan events.Event) error {
	s.logger.Info("observing media providers", "interval", s.config.Interval)
	defer s.stopAll()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		s.Tick(ctx)

	wait:
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				break wait
			case e, ok := <-ch:
				if !ok {
					ch = nil
					continue
				}
				if err := s.HandleEvent(e); err != nil {
					s.logger.Error("failed to handle event", "type", e.EventType(), "entity_id", e.EntityID(), "error", err)
				}
			}
		}
	}
}

func (s *Service) stopAll() {
	for _, o := range s.snapshot() {
		o.Close()
	}
	s.logger.Info("stopped observing media providers")
}
