package remote

import "errors"

var (
	// ErrUnavailable is returned when the server cannot be reached.
	ErrUnavailable = errors.New("remote server unavailable")

	// ErrUnauthorized is returned when the server rejects the request.
	ErrUnauthorized = errors.New("remote server rejected credentials")

	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found on remote server")

	// ErrNoItemID is returned when an item has no remote identifier.
	ErrNoItemID = errors.New("item has no remote identifier")
)
