package host

import "errors"

var (
	// ErrNotFound is returned when the host has no object for a handle or identifier.
	ErrNotFound = errors.New("not found")

	// ErrNoSettings is returned when settings cannot be prepared or retrieved.
	ErrNoSettings = errors.New("settings unavailable")

	// ErrNoURL is returned when a provider's settings carry no URL.
	ErrNoURL = errors.New("invalid provider without URL")

	// ErrInvalidURL is returned when an empty URL would be stored.
	ErrInvalidURL = errors.New("invalid url")
)
