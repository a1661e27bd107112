package importer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vmunix/mediaimport/internal/discovery"
	"github.com/vmunix/mediaimport/internal/host"
	"github.com/vmunix/mediaimport/internal/l10n"
	"github.com/vmunix/mediaimport/internal/remote"
)

func (d *Dispatcher) provider(ctx context.Context, h host.Handle) (*host.Provider, error) {
	p, err := d.bridge.Provider(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("cannot retrieve media provider: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("cannot retrieve media provider: %w", host.ErrNotFound)
	}
	return p, nil
}

func (d *Dispatcher) mediaImport(ctx context.Context, h host.Handle) (*host.Import, error) {
	imp, err := d.bridge.Import(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("cannot retrieve media import: %w", err)
	}
	if imp == nil {
		return nil, fmt.Errorf("cannot retrieve media import: %w", host.ErrNotFound)
	}
	return imp, nil
}

func (d *Dispatcher) providerSettings(ctx context.Context, p host.Provider) (host.Settings, error) {
	settings, err := d.bridge.PrepareProviderSettings(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare media provider settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("cannot prepare media provider settings: %w", host.ErrNoSettings)
	}
	return settings, nil
}

func (d *Dispatcher) importSettings(ctx context.Context, imp host.Import) (host.Settings, error) {
	settings, err := d.bridge.PrepareImportSettings(ctx, imp)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare media import settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("cannot prepare media import settings: %w", host.ErrNoSettings)
	}
	return settings, nil
}

// client opens a remote client for the URL stored in a provider's settings.
func (d *Dispatcher) client(settings host.Settings) (*remote.Client, error) {
	u, err := host.URL(settings)
	if err != nil {
		return nil, err
	}
	return d.newClient(u), nil
}

func (d *Dispatcher) canImport(ctx context.Context, h host.Handle, opts url.Values) error {
	raw := opts.Get("path")
	if raw == "" {
		return fmt.Errorf("%w: path", ErrMissingOption)
	}
	p, err := url.PathUnescape(raw)
	if err != nil {
		return fmt.Errorf("unescape path %q: %w", raw, err)
	}

	u, err := url.Parse(p)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		d.logger.Info("path cannot be imported", "path", p)
		return nil
	}

	d.bridge.SetCanImport(ctx, h, true)
	return nil
}

func (d *Dispatcher) isProviderReady(ctx context.Context, h host.Handle, _ url.Values) error {
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.providerSettings(ctx, *p)
	if err != nil {
		return err
	}
	if _, err := host.URL(settings); err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}

	d.bridge.SetProviderReady(ctx, h, true)
	return nil
}

func (d *Dispatcher) isImportReady(ctx context.Context, h host.Handle, _ url.Values) error {
	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	if _, err := d.importSettings(ctx, *imp); err != nil {
		return err
	}
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.providerSettings(ctx, *p)
	if err != nil {
		return err
	}
	if _, err := host.URL(settings); err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}
	if len(imp.MediaTypes) == 0 {
		return fmt.Errorf("%s: no media types", imp.String())
	}

	d.bridge.SetImportReady(ctx, h, true)
	return nil
}

func (d *Dispatcher) loadProviderSettings(ctx context.Context, h host.Handle, _ url.Values) error {
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.bridge.ProviderSettings(ctx, *p)
	if err != nil || settings == nil {
		return errors.Join(errors.New("cannot retrieve media provider settings"), err)
	}

	if err := settings.RegisterActionCallback(host.SettingTestAuthentication, ActionTestAuthentication); err != nil {
		return fmt.Errorf("register %s: %w", ActionTestAuthentication, err)
	}
	return settings.SetLoaded()
}

func (d *Dispatcher) loadImportSettings(ctx context.Context, h host.Handle, _ url.Values) error {
	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.bridge.ImportSettings(ctx, *imp)
	if err != nil || settings == nil {
		return errors.Join(errors.New("cannot retrieve media import settings"), err)
	}

	if err := settings.RegisterActionCallback(host.SettingForceSync, ActionForceSync); err != nil {
		return fmt.Errorf("register %s: %w", ActionForceSync, err)
	}
	if err := settings.RegisterOptionsFillerCallback(host.SettingImportViews, ActionSettingOptionsFillerViews); err != nil {
		return fmt.Errorf("register %s: %w", ActionSettingOptionsFillerViews, err)
	}
	return settings.SetLoaded()
}

func (d *Dispatcher) canUpdateMetadata(ctx context.Context, h host.Handle, _ url.Values) error {
	// metadata stays owned by the remote server
	d.bridge.SetCanUpdateMetadataOnProvider(ctx, h, false)
	return nil
}

func (d *Dispatcher) canUpdatePlaycount(ctx context.Context, h host.Handle, _ url.Values) error {
	d.bridge.SetCanUpdatePlaycountOnProvider(ctx, h, true)
	return nil
}

func (d *Dispatcher) canUpdateLastPlayed(ctx context.Context, h host.Handle, _ url.Values) error {
	d.bridge.SetCanUpdateLastPlayedOnProvider(ctx, h, true)
	return nil
}

func (d *Dispatcher) canUpdateResumePosition(ctx context.Context, h host.Handle, _ url.Values) error {
	d.bridge.SetCanUpdateResumePositionOnProvider(ctx, h, true)
	return nil
}

func (d *Dispatcher) importItems(ctx context.Context, h host.Handle, opts url.Values) error {
	types := mediaTypes(opts)
	if len(types) == 0 {
		return fmt.Errorf("%w: mediatypes", ErrMissingOption)
	}

	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	if _, err := d.importSettings(ctx, *imp); err != nil {
		return err
	}
	p := imp.Provider
	if !p.Valid() {
		return fmt.Errorf("cannot retrieve media provider: %w", host.ErrNotFound)
	}
	settings, err := d.providerSettings(ctx, p)
	if err != nil {
		return err
	}
	client, err := d.client(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}

	d.logger.Info("importing items", "media_types", strings.Join(types, ","), "provider", p.String())

	total := len(types)
	for progress, mediaType := range types {
		if d.bridge.ShouldCancel(ctx, h, progress, total) {
			return ErrCanceled
		}

		d.bridge.SetProgressStatus(ctx, h, l10n.Localizef(l10n.ImportingItems, mediaType))

		items, err := client.Items(ctx, mediaType)
		if err != nil {
			return fmt.Errorf("fetch %s items from %s: %w", mediaType, p.String(), err)
		}
		d.logger.Info("items imported", "count", len(items), "media_type", mediaType, "provider", p.String())
		d.bridge.AddImportItems(ctx, h, items, mediaType, host.ChangesetNone)
	}

	d.bridge.FinishImport(ctx, h, false)
	return nil
}

func (d *Dispatcher) updateOnProvider(ctx context.Context, h host.Handle, _ url.Values) error {
	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	p := imp.Provider
	if !p.Valid() {
		return fmt.Errorf("cannot retrieve media provider: %w", host.ErrNotFound)
	}
	if _, err := d.importSettings(ctx, *imp); err != nil {
		return err
	}
	settings, err := d.providerSettings(ctx, p)
	if err != nil {
		return err
	}

	item, err := d.bridge.UpdatedItem(ctx, h)
	if err != nil || item == nil {
		return errors.Join(errors.New("cannot retrieve updated item"), err)
	}
	d.logger.Info("updating item on provider", "label", item.Label, "path", item.Path, "provider", p.String())

	if !item.IsVideo() {
		return fmt.Errorf("%q: %w", item.Label, ErrNotVideo)
	}

	client, err := d.client(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}
	state := remote.PlayState{
		Playcount:      item.Playcount,
		ResumePosition: item.ResumePosition,
		TotalTime:      item.TotalTime,
	}
	if !item.LastPlayed.IsZero() {
		lastPlayed := item.LastPlayed
		state.LastPlayed = &lastPlayed
	}
	if err := client.UpdatePlayState(ctx, item.ID, state); err != nil {
		return fmt.Errorf("update %q on %s: %w", item.Label, p.String(), err)
	}

	d.bridge.FinishUpdateOnProvider(ctx, h)
	return nil
}

func (d *Dispatcher) discoverProvider(ctx context.Context, h host.Handle, _ url.Values) error {
	if d.config.Prober == nil {
		d.bridge.SetDiscoveredProvider(ctx, h, false, nil)
		return nil
	}

	seen, err := d.config.Prober.Probe(ctx)
	if err != nil {
		d.bridge.SetDiscoveredProvider(ctx, h, false, nil)
		return fmt.Errorf("probe for servers: %w", err)
	}
	if len(seen) == 0 {
		d.logger.Info("no server found")
		d.bridge.SetDiscoveredProvider(ctx, h, false, nil)
		return nil
	}

	s := seen[0]
	p := host.Provider{
		ID:           discovery.ProviderID(s.ID),
		FriendlyName: s.Name,
		IconURL:      d.config.IconURL,
		MediaTypes:   d.config.MediaTypes,
	}
	settings, err := d.providerSettings(ctx, p)
	if err != nil {
		d.bridge.SetDiscoveredProvider(ctx, h, false, nil)
		return err
	}
	if err := host.SetURL(settings, s.Address); err != nil {
		d.bridge.SetDiscoveredProvider(ctx, h, false, nil)
		return fmt.Errorf("store url of %s: %w", p.String(), err)
	}

	d.logger.Info("server discovered", "provider", p.String(), "address", s.Address)
	d.bridge.SetDiscoveredProvider(ctx, h, true, &p)
	return nil
}

func (d *Dispatcher) lookupProvider(ctx context.Context, h host.Handle, _ url.Values) error {
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.providerSettings(ctx, *p)
	if err != nil {
		return err
	}
	client, err := d.client(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}

	_, err = client.Ping(ctx)
	if err != nil {
		d.logger.Warn(l10n.Localizef(l10n.ProviderUnreachable, p.FriendlyName), "provider", p.String(), "error", err)
	}
	d.bridge.SetProviderFound(ctx, h, err == nil)
	return nil
}

func (d *Dispatcher) testAuthentication(ctx context.Context, h host.Handle, _ url.Values) error {
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	d.logger.Info("testing authentication", "provider", p.String())

	settings, err := d.providerSettings(ctx, *p)
	if err != nil {
		return err
	}
	client, err := d.client(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}

	if _, err := client.Ping(ctx); err != nil {
		d.logger.Warn(l10n.Localizef(l10n.AuthenticationFailed, p.FriendlyName), "provider", p.String(), "error", err)
		return nil
	}
	d.logger.Info(l10n.Localizef(l10n.AuthenticationOK, p.FriendlyName), "provider", p.String())
	return nil
}

func (d *Dispatcher) forceSync(ctx context.Context, h host.Handle, _ url.Values) error {
	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	if err := d.bridge.Synchronise(ctx, *imp); err != nil {
		return fmt.Errorf("synchronise %s: %w", imp.String(), err)
	}
	d.logger.Info("synchronisation requested", "import", imp.String())
	return nil
}

func (d *Dispatcher) settingOptionsFillerViews(ctx context.Context, h host.Handle, _ url.Values) error {
	p, err := d.provider(ctx, h)
	if err != nil {
		return err
	}
	imp, err := d.mediaImport(ctx, h)
	if err != nil {
		return err
	}
	settings, err := d.providerSettings(ctx, *p)
	if err != nil {
		return err
	}
	client, err := d.client(settings)
	if err != nil {
		return fmt.Errorf("%s: %w", p.String(), err)
	}

	views, err := client.Views(ctx)
	if err != nil {
		return fmt.Errorf("list views of %s: %w", p.String(), err)
	}
	options := make([]host.Option, 0, len(views))
	for _, v := range views {
		options = append(options, host.Option{Label: l10n.Normalize(v.Name), Key: v.ID})
	}

	importSettings, err := d.bridge.ImportSettings(ctx, *imp)
	if err != nil || importSettings == nil {
		return errors.Join(errors.New("cannot retrieve media import settings"), err)
	}
	return importSettings.SetStringOptions(host.SettingImportViews, options)
}
