package actions

import (
	"errors"
	"sync"

	"github.com/diewo77/go-missions/internal/mission"
)

// ErrPending is returned when the same action on the same record is already in flight.
var ErrPending = errors.New("action already pending")

// ErrCompleted is returned when the action already succeeded and the list
// has not been refetched since.
var ErrCompleted = errors.New("action already completed")

// State of one action control.
type State int

const (
	Idle State = iota
	Pending
	Completed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// Key identifies one action control.
type Key struct {
	Family mission.Family
	ID     uint
	Action Name
}

// Tracker holds the state machine of every action control. Idle entries are
// not stored. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	states map[Key]State
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{states: map[Key]State{}}
}

// State returns the current state of k.
func (t *Tracker) State(k Key) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[k]
}

// Begin moves k from Idle to Pending. It is refused while any action on the
// same record is in flight.
func (t *Tracker) Begin(k Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[k] == Completed {
		return ErrCompleted
	}
	for other, s := range t.states {
		if s == Pending && other.Family == k.Family && other.ID == k.ID {
			return ErrPending
		}
	}
	t.states[k] = Pending
	return nil
}

// Finish leaves Pending: back to Idle on failure, Completed on success.
func (t *Tracker) Finish(k Key, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[k] != Pending {
		return
	}
	if ok {
		t.states[k] = Completed
		return
	}
	delete(t.states, k)
}

// Refetched resets the Completed controls of a family once its list has
// been loaded again.
func (t *Tracker) Refetched(family mission.Family) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, s := range t.states {
		if k.Family == family && s == Completed {
			delete(t.states, k)
		}
	}
}

// Busy reports whether any action on the record is pending.
func (t *Tracker) Busy(family mission.Family, id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, s := range t.states {
		if k.Family == family && k.ID == id && s == Pending {
			return true
		}
	}
	return false
}
