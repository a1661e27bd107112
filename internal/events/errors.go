package events

import "errors"

// ErrUnknownType is returned when a record holds an event type this package
// does not define.
var ErrUnknownType = errors.New("unknown event type")
