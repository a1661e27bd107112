package host

import "context"

//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks

// Settings is the host's settings storage for one provider or import.
type Settings interface {
	GetString(key string) string
	SetString(key, value string) error
	SetStringOptions(key string, options []Option) error
	RegisterActionCallback(settingID, action string) error
	RegisterOptionsFillerCallback(settingID, action string) error
	SetLoaded() error
}

// Registrar is the part of the host the discovery loop registers servers with.
type Registrar interface {
	// PrepareProviderSettings returns the settings of a provider that may not
	// have been added to the host yet.
	PrepareProviderSettings(ctx context.Context, p Provider) (Settings, error)
	// AddAndActivateProvider adds the provider, or refreshes it if known, and activates it.
	AddAndActivateProvider(ctx context.Context, p Provider) error
	// DeactivateProvider deactivates a previously added provider.
	DeactivateProvider(ctx context.Context, providerID string) error
}

// Catalog is the part of the host provider observers report to.
type Catalog interface {
	PrepareProviderSettings(ctx context.Context, p Provider) (Settings, error)
	// ChangeImportedItems applies a changeset to the items imported through imp.
	ChangeImportedItems(ctx context.Context, imp Import, changes []ChangedItem) error
}

// Bridge is the per-invocation host surface used by the command dispatcher.
//
// Lookups return ErrNotFound when the host has no such object for the handle.
// Acknowledgement methods return nothing: not calling one is the negative answer.
type Bridge interface {
	Provider(ctx context.Context, h Handle) (*Provider, error)
	Import(ctx context.Context, h Handle) (*Import, error)
	UpdatedItem(ctx context.Context, h Handle) (*Item, error)

	PrepareProviderSettings(ctx context.Context, p Provider) (Settings, error)
	ProviderSettings(ctx context.Context, p Provider) (Settings, error)
	PrepareImportSettings(ctx context.Context, imp Import) (Settings, error)
	ImportSettings(ctx context.Context, imp Import) (Settings, error)

	ShouldCancel(ctx context.Context, h Handle, progress, total int) bool
	SetProgressStatus(ctx context.Context, h Handle, status string)
	AddImportItems(ctx context.Context, h Handle, items []Item, mediaType string, changeset ChangesetType)
	FinishImport(ctx context.Context, h Handle, partial bool)
	FinishUpdateOnProvider(ctx context.Context, h Handle)

	SetCanImport(ctx context.Context, h Handle, ok bool)
	SetProviderReady(ctx context.Context, h Handle, ok bool)
	SetImportReady(ctx context.Context, h Handle, ok bool)
	SetProviderFound(ctx context.Context, h Handle, ok bool)
	SetDiscoveredProvider(ctx context.Context, h Handle, found bool, p *Provider)
	SetCanUpdateMetadataOnProvider(ctx context.Context, h Handle, ok bool)
	SetCanUpdatePlaycountOnProvider(ctx context.Context, h Handle, ok bool)
	SetCanUpdateLastPlayedOnProvider(ctx context.Context, h Handle, ok bool)
	SetCanUpdateResumePositionOnProvider(ctx context.Context, h Handle, ok bool)

	// Synchronise asks the host to run an import now.
	Synchronise(ctx context.Context, imp Import) error
}
