// Package observer keeps one observer per host media provider, connects it
// to the provider's remote server while the provider is active, and forwards
// changed items to the host grouped by import.
package observer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/metrics"
)

// ProviderObserver coordinates the connection to one provider and the
// imports synchronised from it.
//
// Start and Stop only queue actions; Process applies them on the next tick.
// Process and Close are serialised, the import list may be modified
// concurrently by host callbacks.
type ProviderObserver struct {
	id        string
	catalog   host.Catalog
	connector Connector
	logger    *slog.Logger

	actions ActionQueue

	run      sync.Mutex // serialises Process and Close
	provider *host.Provider
	settings host.Settings
	session  Session

	mu      sync.Mutex
	state   State
	imports []host.Import
}

// NewProviderObserver creates a disconnected observer for the provider with
// the given identifier. A nil connector connects without a remote session.
func NewProviderObserver(id string, catalog host.Catalog, connector Connector, logger *slog.Logger) *ProviderObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderObserver{
		id:        id,
		catalog:   catalog,
		connector: connector,
		logger:    logger.With("provider_id", id),
	}
}

// ID returns the identifier of the observed provider.
func (o *ProviderObserver) ID() string {
	return o.id
}

// State returns the current connection state.
func (o *ProviderObserver) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *ProviderObserver) setState(s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = s
}

// Start queues a connection to p.
func (o *ProviderObserver) Start(p host.Provider) error {
	if !p.Valid() {
		return ErrInvalidProvider
	}
	o.actions.Push(StartAction(p))
	return nil
}

// Stop queues a disconnection.
func (o *ProviderObserver) Stop() {
	o.actions.Push(StopAction())
}

// Pending returns the number of queued actions.
func (o *ProviderObserver) Pending() int {
	return o.actions.Len()
}

// AddImport adds imp, or replaces the import with the same identity.
func (o *ProviderObserver) AddImport(imp host.Import) error {
	if !imp.Valid() {
		return ErrInvalidImport
	}

	o.mu.Lock()
	i := o.findImport(imp)
	if i >= 0 {
		o.imports[i] = imp
	} else {
		o.imports = append(o.imports, imp)
	}
	o.mu.Unlock()

	if i >= 0 {
		o.logger.Info("media import updated", "import", imp.String())
	} else {
		o.logger.Info("media import added", "import", imp.String())
	}
	return nil
}

// RemoveImport removes the import with the same identity as imp, if any.
func (o *ProviderObserver) RemoveImport(imp host.Import) error {
	if !imp.Valid() {
		return ErrInvalidImport
	}

	o.mu.Lock()
	i := o.findImport(imp)
	if i >= 0 {
		o.imports = slices.Delete(o.imports, i, i+1)
	}
	o.mu.Unlock()

	if i >= 0 {
		o.logger.Info("media import removed", "import", imp.String())
	}
	return nil
}

// Imports returns a snapshot of the observed imports.
func (o *ProviderObserver) Imports() []host.Import {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.imports)
}

// findImport returns the index of the first import matching imp's identity.
// Callers must hold o.mu.
func (o *ProviderObserver) findImport(imp host.Import) int {
	return slices.IndexFunc(o.imports, func(candidate host.Import) bool {
		return candidate.Matches(&imp)
	})
}

// Process applies the queued actions in order and, when connected,
// synchronises the provider's changed items once.
func (o *ProviderObserver) Process(ctx context.Context) error {
	o.run.Lock()
	defer o.run.Unlock()

	var errs []error
	for _, action := range o.actions.Drain() {
		switch action.Kind {
		case ActionStart:
			if err := o.startAction(ctx, action.Provider); err != nil {
				errs = append(errs, err)
			}
		case ActionStop:
			o.stopAction(false)
		default:
			o.logger.Warn("unknown action to process", "action", action.Kind)
		}
	}

	if o.State() == Connected {
		o.synchronise(ctx)
	}

	return errors.Join(errs...)
}

// Close stops the observer immediately, discarding queued actions.
func (o *ProviderObserver) Close() {
	o.run.Lock()
	defer o.run.Unlock()

	o.actions.Drain()
	o.stopAction(false)
}

func (o *ProviderObserver) startAction(ctx context.Context, p host.Provider) error {
	if o.State() == Connected {
		return nil
	}

	// restart without a user-visible stop notice
	o.stopAction(true)
	o.setState(Connecting)
	o.provider = &p

	settings, err := o.catalog.PrepareProviderSettings(ctx, p)
	if err != nil || settings == nil {
		o.reset()
		if err == nil {
			return fmt.Errorf("%s: %w", p.String(), ErrSettingsUnavailable)
		}
		return fmt.Errorf("%s: %w: %w", p.String(), ErrSettingsUnavailable, err)
	}

	var session Session
	if o.connector != nil {
		session, err = o.connector.Connect(ctx, p, settings)
		if err != nil {
			o.reset()
			return fmt.Errorf("connect to %s: %w", p.String(), err)
		}
	}

	o.settings = settings
	o.session = session
	o.setState(Connected)
	metrics.ObserversConnected.Inc()

	o.logger.Info("successfully connected to provider to observe media imports", "provider", p.String())
	return nil
}

func (o *ProviderObserver) stopAction(restart bool) {
	if o.State() == Disconnected {
		return
	}

	if !restart {
		o.logger.Info("stopped observing media imports", "provider", o.provider.String())
	}

	if o.session != nil {
		if err := o.session.Close(); err != nil {
			o.logger.Warn("failed to close session", "provider", o.provider.String(), "error", err)
		}
	}
	if o.State() == Connected {
		metrics.ObserversConnected.Dec()
	}
	o.reset()
}

func (o *ProviderObserver) reset() {
	o.provider = nil
	o.settings = nil
	o.session = nil
	o.setState(Disconnected)
}

func (o *ProviderObserver) synchronise(ctx context.Context) {
	if o.session == nil {
		return
	}

	changes, err := o.session.Changes(ctx)
	if err != nil {
		o.logger.Warn("failed to retrieve changed items", "provider", o.provider.String(), "error", err)
		return
	}
	if len(changes) == 0 {
		return
	}

	o.changeItems(ctx, changes)
}

// changeset is the part of a change batch belonging to one import.
type changeset struct {
	imp     host.Import
	changes []host.ChangedItem
}

// changeItems groups changed items by the import handling their media type
// and passes each group to the host. Items no import handles are dropped:
// an import may be removed while its items are still being reported.
func (o *ProviderObserver) changeItems(ctx context.Context, changes []host.ChangedItem) {
	imports := o.Imports()

	var groups []*changeset
	byKey := make(map[string]*changeset)
	unmatched := 0
	for _, change := range changes {
		if change.Item == nil {
			continue
		}

		imp, ok := importForItem(imports, change.Item)
		if !ok {
			unmatched++
			o.logger.Warn("failed to determine media import for changed item",
				"item_id", change.Item.ID,
				"media_type", change.Item.MediaType,
				"provider", o.provider.String())
			continue
		}

		key := imp.Key()
		group, ok := byKey[key]
		if !ok {
			group = &changeset{imp: imp}
			byKey[key] = group
			groups = append(groups, group)
		}
		group.changes = append(group.changes, change)
	}
	metrics.RecordChangedItems("unmatched", unmatched)

	for _, group := range groups {
		if err := o.catalog.ChangeImportedItems(ctx, group.imp, group.changes); err != nil {
			metrics.RecordChangedItems("failed", len(group.changes))
			o.logger.Warn("failed to change imported items",
				"count", len(group.changes),
				"import", group.imp.String(),
				"error", err)
			continue
		}
		metrics.RecordChangedItems("forwarded", len(group.changes))
		o.logger.Info("changed imported items", "count", len(group.changes), "import", group.imp.String())
	}
}

// importForItem returns the first import whose media types include the
// item's media type.
func importForItem(imports []host.Import, item *host.Item) (host.Import, bool) {
	if !item.IsVideo() {
		return host.Import{}, false
	}
	for _, imp := range imports {
		if imp.Handles(item.MediaType) {
			return imp, true
		}
	}
	return host.Import{}, false
}
