package local

import "errors"

var (
	// ErrConstraint indicates a foreign key violation, such as an import of
	// an unknown provider.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnknownHandle is returned for a handle with no open invocation.
	ErrUnknownHandle = errors.New("unknown invocation handle")

	// ErrNoInvoker is returned when a synchronisation is requested but no
	// dispatcher is attached.
	ErrNoInvoker = errors.New("no invoker attached")
)
