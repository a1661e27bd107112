package observer

import (
	"sync"

	"github.com/vmunix/mediaimport/internal/host"
)

// ActionKind tags a pending action.
type ActionKind int

const (
	// ActionStart connects the observer to a provider.
	ActionStart ActionKind = iota
	// ActionStop disconnects the observer.
	ActionStop
)

func (k ActionKind) String() string {
	switch k {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Action is a start or stop intent queued by a host callback.
// Provider is only set for ActionStart.
type Action struct {
	Kind     ActionKind
	Provider host.Provider
}

// StartAction returns an action connecting to p.
func StartAction(p host.Provider) Action {
	return Action{Kind: ActionStart, Provider: p}
}

// StopAction returns an action disconnecting the observer.
func StopAction() Action {
	return Action{Kind: ActionStop}
}

// ActionQueue collects actions from host callbacks until the next tick.
// Push may be called from any goroutine; Drain hands out everything queued
// so far in FIFO order and leaves the queue empty, so pushes racing with a
// tick are applied on the following one.
type ActionQueue struct {
	mu      sync.Mutex
	pending []Action
}

// Push appends an action.
func (q *ActionQueue) Push(a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, a)
}

// Drain returns the queued actions and clears the queue.
func (q *ActionQueue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.pending
	q.pending = nil
	return drained
}

// Len returns the number of queued actions.
func (q *ActionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
