package observer

import "errors"

var (
	// ErrInvalidProvider is returned for a provider without identifier.
	ErrInvalidProvider = errors.New("invalid media provider")

	// ErrInvalidImport is returned for an import without a valid provider.
	ErrInvalidImport = errors.New("invalid media import")

	// ErrUnknownProvider is returned when the host activates or deactivates a
	// provider it never announced. The host is expected to add providers first.
	ErrUnknownProvider = errors.New("media provider not observed")

	// ErrSettingsUnavailable is returned when a start cannot prepare the
	// provider's settings.
	ErrSettingsUnavailable = errors.New("cannot prepare media provider settings")
)
