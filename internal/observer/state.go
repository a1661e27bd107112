package observer

// State is the connection state of a provider observer.
type State int

const (
	// Disconnected is the initial state and the state after a stop.
	Disconnected State = iota
	// Connecting is held while a start acquires settings and a session.
	Connecting
	// Connected means the observer synchronises changes on every tick.
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}
