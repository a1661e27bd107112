package local

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/vmunix/mediaimport/internal/host"
)

// Invocation names the host objects a dispatcher call works on.
type Invocation struct {
	ProviderID string
	ImportKey  string
	// Item is the item of an updateonprovider call.
	Item *host.Item
}

// Result collects what a dispatcher call reported back.
type Result struct {
	Invocation

	// Acks holds every acknowledgement by name, e.g. "providerready".
	Acks     map[string]bool
	Status   string
	Imported map[string][]host.Item
	// Listed holds the media types reported as a full listing. A full
	// import only prunes these.
	Listed     map[string]bool
	Finished   bool
	Partial    bool
	Updated    bool
	Discovered *host.Provider
	canceled   bool
}

// Acknowledged reports whether the named acknowledgement was sent with true.
func (r *Result) Acknowledged(name string) bool {
	return r.Acks[name]
}

// Begin opens an invocation and returns its handle.
func (h *Host) Begin(inv Invocation) host.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextHandle++
	h.invocations[h.nextHandle] = &Result{
		Invocation: inv,
		Acks:       make(map[string]bool),
		Imported:   make(map[string][]host.Item),
		Listed:     make(map[string]bool),
	}
	return h.nextHandle
}

// End closes an invocation.
func (h *Host) End(handle host.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.invocations, handle)
}

// Result returns a copy of what has been reported for an open invocation.
func (h *Host) Result(handle host.Handle) (Result, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.invocations[handle]
	if !ok {
		return Result{}, false
	}
	out := *r
	out.Acks = maps.Clone(r.Acks)
	out.Imported = maps.Clone(r.Imported)
	out.Listed = maps.Clone(r.Listed)
	return out, true
}

// Cancel asks a running import to stop at its next cancellation check.
func (h *Host) Cancel(handle host.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.invocations[handle]; ok {
		r.canceled = true
	}
}

// update runs fn on an open invocation.
func (h *Host) update(handle host.Handle, fn func(r *Result)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.invocations[handle]
	if !ok {
		h.logger.Warn("acknowledgement for unknown handle", "handle", handle)
		return false
	}
	fn(r)
	return true
}

func (h *Host) invocation(handle host.Handle) (Invocation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.invocations[handle]
	if !ok {
		return Invocation{}, fmt.Errorf("handle %d: %w", handle, ErrUnknownHandle)
	}
	return r.Invocation, nil
}

func (h *Host) ack(handle host.Handle, name string, ok bool) {
	h.update(handle, func(r *Result) { r.Acks[name] = ok })
}

// Provider returns the provider of an invocation, falling back to the
// provider of its import.
func (h *Host) Provider(_ context.Context, handle host.Handle) (*host.Provider, error) {
	inv, err := h.invocation(handle)
	if err != nil {
		return nil, err
	}
	if inv.ProviderID != "" {
		return h.store.GetProvider(inv.ProviderID)
	}
	if inv.ImportKey != "" {
		imp, err := h.store.GetImport(inv.ImportKey)
		if err != nil {
			return nil, err
		}
		return &imp.Provider, nil
	}
	return nil, host.ErrNotFound
}

// Import returns the import of an invocation.
func (h *Host) Import(_ context.Context, handle host.Handle) (*host.Import, error) {
	inv, err := h.invocation(handle)
	if err != nil {
		return nil, err
	}
	if inv.ImportKey == "" {
		return nil, host.ErrNotFound
	}
	return h.store.GetImport(inv.ImportKey)
}

// UpdatedItem returns the item of an updateonprovider invocation.
func (h *Host) UpdatedItem(_ context.Context, handle host.Handle) (*host.Item, error) {
	inv, err := h.invocation(handle)
	if err != nil {
		return nil, err
	}
	if inv.Item == nil {
		return nil, host.ErrNotFound
	}
	item := *inv.Item
	return &item, nil
}

// ShouldCancel reports whether the import should stop.
func (h *Host) ShouldCancel(ctx context.Context, handle host.Handle, progress, total int) bool {
	if ctx.Err() != nil {
		return true
	}
	canceled := false
	h.update(handle, func(r *Result) { canceled = r.canceled })
	h.logger.Debug("import progress", "handle", handle, "progress", progress, "total", total)
	return canceled
}

// SetProgressStatus records the import's status line.
func (h *Host) SetProgressStatus(_ context.Context, handle host.Handle, status string) {
	h.update(handle, func(r *Result) { r.Status = status })
}

// AddImportItems stores imported items of one media type. A batch with
// ChangesetNone is the complete listing of that type, possibly empty.
func (h *Host) AddImportItems(_ context.Context, handle host.Handle, items []host.Item, mediaType string, changeset host.ChangesetType) {
	inv, err := h.invocation(handle)
	if err != nil {
		h.logger.Warn("cannot add import items", "error", err)
		return
	}
	if inv.ImportKey == "" {
		h.logger.Warn("cannot add import items without media import", "handle", handle)
		return
	}

	tx, err := h.store.Begin()
	if err != nil {
		h.logger.Error("cannot add import items", "error", err)
		return
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if it.MediaType == "" {
			it.MediaType = mediaType
		}
		if changeset == host.ChangesetRemoved {
			err = tx.DeleteItem(inv.ImportKey, it.ID)
		} else {
			err = tx.SaveItem(inv.ImportKey, it)
		}
		if err != nil {
			h.logger.Error("cannot add import items", "media_type", mediaType, "error", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		h.logger.Error("cannot add import items", "media_type", mediaType, "error", err)
		return
	}

	if changeset == host.ChangesetRemoved {
		return
	}
	h.update(handle, func(r *Result) {
		r.Imported[mediaType] = append(r.Imported[mediaType], items...)
		if changeset == host.ChangesetNone {
			r.Listed[mediaType] = true
		}
	})
}

// FinishImport completes an import. A full import removes the stored items
// of each listed media type that the listing did not include. Media types
// the invocation never listed are left alone.
func (h *Host) FinishImport(ctx context.Context, handle host.Handle, partial bool) {
	var res Result
	if !h.update(handle, func(r *Result) {
		r.Finished = true
		r.Partial = partial
		res = *r
	}) {
		return
	}
	if partial || res.ImportKey == "" {
		return
	}

	imp, err := h.store.GetImport(res.ImportKey)
	if err != nil {
		h.logger.Warn("cannot finish import", "handle", handle, "error", err)
		return
	}
	for _, mediaType := range imp.MediaTypes {
		if !res.Listed[mediaType] {
			continue
		}
		keep := make([]string, 0, len(res.Imported[mediaType]))
		for _, it := range res.Imported[mediaType] {
			keep = append(keep, it.ID)
		}
		slices.Sort(keep)
		n, err := h.store.PruneItems(res.ImportKey, mediaType, slices.Compact(keep))
		if err != nil {
			h.logger.Warn("cannot prune imported items", "import", imp.String(), "error", err)
			continue
		}
		if n > 0 {
			h.logger.Info("removed items missing from import", "count", n, "media_type", mediaType, "import", imp.String())
		}
	}
	h.logger.Info("media import finished", "import", imp.String())
}

// FinishUpdateOnProvider completes an updateonprovider call.
func (h *Host) FinishUpdateOnProvider(_ context.Context, handle host.Handle) {
	h.update(handle, func(r *Result) { r.Updated = true })
}

// Acknowledgement names recorded in Result.Acks.
const (
	AckCanImport               = "canimport"
	AckProviderReady           = "providerready"
	AckImportReady             = "importready"
	AckProviderFound           = "providerfound"
	AckDiscoveredProvider      = "discoveredprovider"
	AckCanUpdateMetadata       = "canupdatemetadata"
	AckCanUpdatePlaycount      = "canupdateplaycount"
	AckCanUpdateLastPlayed     = "canupdatelastplayed"
	AckCanUpdateResumePosition = "canupdateresumeposition"
)

func (h *Host) SetCanImport(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckCanImport, ok)
}

func (h *Host) SetProviderReady(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckProviderReady, ok)
}

func (h *Host) SetImportReady(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckImportReady, ok)
}

func (h *Host) SetProviderFound(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckProviderFound, ok)
}

// SetDiscoveredProvider records the provider a discoverprovider call found.
func (h *Host) SetDiscoveredProvider(_ context.Context, handle host.Handle, found bool, p *host.Provider) {
	h.update(handle, func(r *Result) {
		r.Acks[AckDiscoveredProvider] = found
		if found && p != nil {
			discovered := *p
			r.Discovered = &discovered
		}
	})
}

func (h *Host) SetCanUpdateMetadataOnProvider(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckCanUpdateMetadata, ok)
}

func (h *Host) SetCanUpdatePlaycountOnProvider(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckCanUpdatePlaycount, ok)
}

func (h *Host) SetCanUpdateLastPlayedOnProvider(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckCanUpdateLastPlayed, ok)
}

func (h *Host) SetCanUpdateResumePositionOnProvider(_ context.Context, handle host.Handle, ok bool) {
	h.ack(handle, AckCanUpdateResumePosition, ok)
}
