// Package importer dispatches the host's out-of-band import calls: readiness
// checks, settings loading, imports and updates pushed back to the provider.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"time"

	"github.com/hbollon/go-edlib"
	"github.com/vmunix/mediaimport/internal/discovery"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/metrics"
	"github.com/vmunix/mediaimport/internal/remote"
)

// Action names the host invokes.
const (
	ActionCanImport                 = "canimport"
	ActionIsProviderReady           = "isproviderready"
	ActionIsImportReady             = "isimportready"
	ActionLoadProviderSettings      = "loadprovidersettings"
	ActionLoadImportSettings        = "loadimportsettings"
	ActionCanUpdateMetadata         = "canupdatemetadataonprovider"
	ActionCanUpdatePlaycount        = "canupdateplaycountonprovider"
	ActionCanUpdateLastPlayed       = "canupdatelastplayedonprovider"
	ActionCanUpdateResumePosition   = "canupdateresumepositiononprovider"
	ActionImport                    = "import"
	ActionUpdateOnProvider          = "updateonprovider"
	ActionDiscoverProvider          = "discoverprovider"
	ActionLookupProvider            = "lookupprovider"
	ActionTestAuthentication        = "testauthentication"
	ActionForceSync                 = "forcesync"
	ActionSettingOptionsFillerViews = "settingoptionsfillerviews"
)

// minSuggestionSimilarity is the Jaro-Winkler score an action name needs to
// be offered as a correction.
const minSuggestionSimilarity = 0.7

// Handler serves one action. Success is signalled to the host only through
// its acknowledgement calls; a returned error is logged by the dispatcher.
type Handler func(ctx context.Context, h host.Handle, opts url.Values) error

// Config for the dispatcher.
type Config struct {
	// Prober finds servers for discoverprovider. Nil reports nothing found.
	Prober     discovery.Prober
	IconURL    string
	MediaTypes []string
	// Timeout bounds each request to a remote server.
	Timeout time.Duration
}

// Dispatcher maps action names to handlers.
type Dispatcher struct {
	bridge  host.Bridge
	config  Config
	logger  *slog.Logger
	actions map[string]Handler

	// newClient opens a client for a provider URL.
	newClient func(baseURL string) *remote.Client
}

// NewDispatcher creates a dispatcher answering through bridge.
func NewDispatcher(bridge host.Bridge, cfg Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.MediaTypes) == 0 {
		cfg.MediaTypes = host.DefaultMediaTypes
	}
	d := &Dispatcher{
		bridge: bridge,
		config: cfg,
		logger: logger,
	}
	d.newClient = func(baseURL string) *remote.Client {
		return remote.NewClient(baseURL, d.config.Timeout, d.logger)
	}
	d.actions = map[string]Handler{
		ActionCanImport:                 d.canImport,
		ActionIsProviderReady:           d.isProviderReady,
		ActionIsImportReady:             d.isImportReady,
		ActionLoadProviderSettings:      d.loadProviderSettings,
		ActionLoadImportSettings:        d.loadImportSettings,
		ActionCanUpdateMetadata:         d.canUpdateMetadata,
		ActionCanUpdatePlaycount:        d.canUpdatePlaycount,
		ActionCanUpdateLastPlayed:       d.canUpdateLastPlayed,
		ActionCanUpdateResumePosition:   d.canUpdateResumePosition,
		ActionImport:                    d.importItems,
		ActionUpdateOnProvider:          d.updateOnProvider,
		ActionDiscoverProvider:          d.discoverProvider,
		ActionLookupProvider:            d.lookupProvider,
		ActionTestAuthentication:        d.testAuthentication,
		ActionForceSync:                 d.forceSync,
		ActionSettingOptionsFillerViews: d.settingOptionsFillerViews,
	}
	return d
}

// Actions returns the known action names, sorted.
func (d *Dispatcher) Actions() []string {
	return slices.Sorted(maps.Keys(d.actions))
}

// Handle replaces the handler of an action. A nil handler keeps the action
// known but unimplemented.
func (d *Dispatcher) Handle(action string, h Handler) {
	d.actions[action] = h
}

// Dispatch parses an invocation and runs its handler.
func (d *Dispatcher) Dispatch(ctx context.Context, h host.Handle, rawPath, query string) error {
	inv, err := ParseInvocation(rawPath, query)
	if err != nil {
		d.logger.Error("cannot parse invocation", "path", rawPath, "error", err)
		return err
	}
	d.logger.Debug("invocation", "path", rawPath, "handle", h, "options", query)
	return d.Run(ctx, h, inv)
}

// Run executes a parsed invocation.
func (d *Dispatcher) Run(ctx context.Context, h host.Handle, inv Invocation) error {
	handler, ok := d.actions[inv.Action]
	if !ok {
		metrics.RecordAction("unknown", "unknown")
		if suggestion := d.suggest(inv.Action); suggestion != "" {
			d.logger.Error("cannot process unknown action", "action", inv.Action, "did_you_mean", suggestion)
		} else {
			d.logger.Error("cannot process unknown action", "action", inv.Action)
		}
		return fmt.Errorf("%w: %s", ErrUnknownAction, inv.Action)
	}
	if handler == nil {
		metrics.RecordAction(inv.Action, "not_implemented")
		d.logger.Warn("action not implemented", "action", inv.Action)
		return fmt.Errorf("%w: %s", ErrNotImplemented, inv.Action)
	}

	d.logger.Debug("executing action", "action", inv.Action)
	if err := handler(ctx, h, inv.Options); err != nil {
		if errors.Is(err, ErrCanceled) {
			metrics.RecordAction(inv.Action, "canceled")
			d.logger.Info("action canceled", "action", inv.Action, "handle", h)
			return nil
		}
		metrics.RecordAction(inv.Action, "failed")
		d.logger.Error("action failed", "action", inv.Action, "handle", h, "error", err)
		return fmt.Errorf("%s: %w", inv.Action, err)
	}
	metrics.RecordAction(inv.Action, "ok")
	return nil
}

// suggest returns the known action closest to name, if any is close enough.
func (d *Dispatcher) suggest(name string) string {
	if name == "" {
		return ""
	}
	best, bestScore := "", float32(0)
	for _, action := range d.Actions() {
		score := edlib.JaroWinklerSimilarity(name, action)
		if score > bestScore {
			best, bestScore = action, score
		}
	}
	if bestScore < minSuggestionSimilarity {
		return ""
	}
	return best
}
