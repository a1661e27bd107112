// Package local is a self-contained media host: a sqlite-backed registry of
// providers, imports, settings and imported items that announces lifecycle
// changes on the event bus and answers dispatcher invocations by handle.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vmunix/mediaimport/internal/events"
	"github.com/vmunix/mediaimport/internal/host"
)

// Invoker runs a dispatcher action for an open invocation.
type Invoker interface {
	Dispatch(ctx context.Context, h host.Handle, rawPath, query string) error
}

// ImportPath is the invocation path of the import action.
const ImportPath = "plugin://mediaimport/import"

// Config for the local host.
type Config struct {
	// AutoImport creates an import covering all of a provider's media types
	// when the provider is first added.
	AutoImport bool
}

// Host implements host.Registrar, host.Catalog and host.Bridge.
type Host struct {
	store  *Store
	bus    *events.Bus
	config Config
	logger *slog.Logger

	mu          sync.Mutex
	invoker     Invoker
	settings    map[string]*Settings
	invocations map[host.Handle]*Result
	nextHandle  host.Handle
}

var (
	_ host.Registrar = (*Host)(nil)
	_ host.Catalog   = (*Host)(nil)
	_ host.Bridge    = (*Host)(nil)
)

// New creates a local host. The bus is optional.
func New(store *Store, bus *events.Bus, cfg Config, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		store:       store,
		bus:         bus,
		config:      cfg,
		logger:      logger,
		settings:    make(map[string]*Settings),
		invocations: make(map[host.Handle]*Result),
	}
}

// Store returns the host's store.
func (h *Host) Store() *Store {
	return h.store
}

// SetInvoker attaches the dispatcher used for synchronisations.
func (h *Host) SetInvoker(inv Invoker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.invoker = inv
}

func (h *Host) publish(ctx context.Context, e events.Event) {
	if h.bus == nil {
		return
	}
	if err := h.bus.Publish(ctx, e); err != nil {
		h.logger.Warn("failed to publish event", "type", e.EventType(), "entity_id", e.EntityID(), "error", err)
	}
}

func (h *Host) settingsFor(scope, owner string) *Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := scope + "/" + owner
	s, ok := h.settings[key]
	if !ok {
		s = newSettings(h.store, scope, owner)
		h.settings[key] = s
	}
	return s
}

// Replay announces every stored provider and import, so observers started
// after a restart see the same state as before it.
func (h *Host) Replay(ctx context.Context) error {
	providers, err := h.store.ListProviders()
	if err != nil {
		return err
	}
	for _, p := range providers {
		h.publish(ctx, events.NewProviderEvent(events.EventProviderAdded, p))
		imports, err := h.store.ListImports(p.ID)
		if err != nil {
			return err
		}
		for _, imp := range imports {
			h.publish(ctx, events.NewImportEvent(events.EventImportAdded, imp))
		}
		if p.Active {
			h.publish(ctx, events.NewProviderEvent(events.EventProviderActivated, p))
		}
	}
	h.logger.Debug("replayed host state", "providers", len(providers))
	return nil
}

// PrepareProviderSettings returns the settings of p, which need not be added yet.
func (h *Host) PrepareProviderSettings(_ context.Context, p host.Provider) (host.Settings, error) {
	if !p.Valid() {
		return nil, host.ErrNotFound
	}
	return h.settingsFor(scopeProvider, p.ID), nil
}

// ProviderSettings returns the settings of an added provider.
func (h *Host) ProviderSettings(_ context.Context, p host.Provider) (host.Settings, error) {
	if _, err := h.store.GetProvider(p.ID); err != nil {
		return nil, err
	}
	return h.settingsFor(scopeProvider, p.ID), nil
}

// PrepareImportSettings returns the settings of imp, which need not be added yet.
func (h *Host) PrepareImportSettings(_ context.Context, imp host.Import) (host.Settings, error) {
	if !imp.Valid() {
		return nil, host.ErrNotFound
	}
	return h.settingsFor(scopeImport, imp.Key()), nil
}

// ImportSettings returns the settings of an added import.
func (h *Host) ImportSettings(_ context.Context, imp host.Import) (host.Settings, error) {
	if _, err := h.store.GetImport(imp.Key()); err != nil {
		return nil, err
	}
	return h.settingsFor(scopeImport, imp.Key()), nil
}

// AddAndActivateProvider adds p as an active provider, or refreshes it.
func (h *Host) AddAndActivateProvider(ctx context.Context, p host.Provider) error {
	if !p.Valid() {
		return host.ErrNotFound
	}
	p.Active = true
	created, err := h.store.SaveProvider(p)
	if err != nil {
		return err
	}

	if !created {
		h.logger.Info("media provider refreshed", "provider", p.String())
		h.publish(ctx, events.NewProviderEvent(events.EventProviderUpdated, p))
		return nil
	}

	h.logger.Info("media provider added", "provider", p.String())
	h.publish(ctx, events.NewProviderEvent(events.EventProviderAdded, p))
	if h.config.AutoImport && len(p.MediaTypes) > 0 {
		if _, err := h.AddImport(ctx, p.ID, p.MediaTypes); err != nil {
			h.logger.Warn("failed to add default media import", "provider", p.String(), "error", err)
		}
	}
	h.publish(ctx, events.NewProviderEvent(events.EventProviderActivated, p))
	return nil
}

// DeactivateProvider marks a provider inactive.
func (h *Host) DeactivateProvider(ctx context.Context, providerID string) error {
	if err := h.store.SetProviderActive(providerID, false); err != nil {
		return err
	}
	p, err := h.store.GetProvider(providerID)
	if err != nil {
		return err
	}
	h.logger.Info("media provider deactivated", "provider", p.String())
	h.publish(ctx, events.NewProviderEvent(events.EventProviderDeactivated, *p))
	return nil
}

// RemoveProvider deletes a provider with its imports.
func (h *Host) RemoveProvider(ctx context.Context, providerID string) error {
	p, err := h.store.GetProvider(providerID)
	if err != nil {
		return err
	}
	imports, err := h.store.ListImports(providerID)
	if err != nil {
		return err
	}
	if err := h.store.DeleteProvider(providerID); err != nil {
		return err
	}

	for _, imp := range imports {
		h.publish(ctx, events.NewImportEvent(events.EventImportRemoved, imp))
	}
	h.logger.Info("media provider removed", "provider", p.String())
	h.publish(ctx, events.NewProviderEvent(events.EventProviderRemoved, *p))
	return nil
}

// Providers returns every provider.
func (h *Host) Providers() ([]host.Provider, error) {
	return h.store.ListProviders()
}

// Imports returns the imports of a provider.
func (h *Host) Imports(providerID string) ([]host.Import, error) {
	return h.store.ListImports(providerID)
}

// AddImport adds an import of the given media types to a provider.
// Adding an existing import is a no-op.
func (h *Host) AddImport(ctx context.Context, providerID string, mediaTypes []string) (host.Import, error) {
	p, err := h.store.GetProvider(providerID)
	if err != nil {
		return host.Import{}, err
	}
	imp := host.Import{Provider: *p, MediaTypes: slices.Clone(mediaTypes)}
	created, err := h.store.SaveImport(imp)
	if err != nil {
		return host.Import{}, err
	}
	if created {
		h.logger.Info("media import added", "import", imp.String())
		h.publish(ctx, events.NewImportEvent(events.EventImportAdded, imp))
	}
	return imp, nil
}

// RemoveImport deletes an import and its items.
func (h *Host) RemoveImport(ctx context.Context, imp host.Import) error {
	if err := h.store.DeleteImport(imp.Key()); err != nil {
		return err
	}
	h.logger.Info("media import removed", "import", imp.String())
	h.publish(ctx, events.NewImportEvent(events.EventImportRemoved, imp))
	return nil
}

// ChangeImportedItems applies a changeset to the items of imp.
func (h *Host) ChangeImportedItems(_ context.Context, imp host.Import, changes []host.ChangedItem) error {
	key := imp.Key()
	if _, err := h.store.GetImport(key); err != nil {
		return err
	}

	tx, err := h.store.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range changes {
		if c.Item == nil {
			continue
		}
		if c.Type == host.ChangesetRemoved {
			err = tx.DeleteItem(key, c.Item.ID)
		} else {
			err = tx.SaveItem(key, *c.Item)
		}
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit changes of %s: %w", imp.String(), err)
	}
	return h.store.MarkSynced(key, time.Now())
}

// Synchronise runs the import action for imp through the attached invoker.
func (h *Host) Synchronise(ctx context.Context, imp host.Import) error {
	h.mu.Lock()
	inv := h.invoker
	h.mu.Unlock()
	if inv == nil {
		return ErrNoInvoker
	}

	handle := h.Begin(Invocation{ProviderID: imp.Provider.ID, ImportKey: imp.Key()})
	defer h.End(handle)

	q := url.Values{"mediatypes": {strings.Join(imp.MediaTypes, ",")}}
	if err := inv.Dispatch(ctx, handle, ImportPath, q.Encode()); err != nil {
		return err
	}
	res, _ := h.Result(handle)
	if !res.Finished {
		return fmt.Errorf("import of %s did not finish", imp.String())
	}
	return nil
}
