package importer

import "errors"

var (
	// ErrUnknownAction is returned for an action with no table entry.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNotImplemented is returned for an action mapped to no handler.
	ErrNotImplemented = errors.New("action not implemented")

	// ErrNoAction is returned when the invocation path names no action.
	ErrNoAction = errors.New("invocation without action")

	// ErrMissingOption is returned when a required option is absent or empty.
	ErrMissingOption = errors.New("missing option")

	// ErrNotVideo is returned when an updated item carries no video metadata.
	ErrNotVideo = errors.New("updated item is not a video item")

	// ErrCanceled is returned when the host cancels an import.
	ErrCanceled = errors.New("import canceled")
)
