package vehicle

import (
	"fmt"
	"sync"

	"github.com/uvolink/uvolink/api"
)

// Tracker serializes remote commands per vehicle. A command may only be
// dispatched once the previous one reached a terminal state.
type Tracker struct {
	mux     sync.Mutex
	pending map[string]api.Action
}

func NewTracker() *Tracker {
	return &Tracker{
		pending: make(map[string]api.Action),
	}
}

// Begin registers a new action for the vehicle. Fails with
// api.ErrActionInProgress while a prior action is unresolved.
func (t *Tracker) Begin(vehicle string, action api.Action) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	if prev, ok := t.pending[vehicle]; ok {
		return fmt.Errorf("%w: %s (%s)", api.ErrActionInProgress, prev.Name, prev.ID)
	}

	t.pending[vehicle] = action
	return nil
}

// Update attaches the vendor tracking id once the command response arrived
func (t *Tracker) Update(vehicle, id string) {
	t.mux.Lock()
	defer t.mux.Unlock()

	if action, ok := t.pending[vehicle]; ok {
		action.ID = id
		t.pending[vehicle] = action
	}
}

// Pending returns the unresolved action for the vehicle, if any
func (t *Tracker) Pending(vehicle string) (api.Action, bool) {
	t.mux.Lock()
	defer t.mux.Unlock()

	action, ok := t.pending[vehicle]
	return action, ok
}

// Clear marks the vehicle's action terminal
func (t *Tracker) Clear(vehicle string) {
	t.mux.Lock()
	defer t.mux.Unlock()

	delete(t.pending, vehicle)
}

// Reset drops all pending actions, e.g. after a session reset
func (t *Tracker) Reset() {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.pending = make(map[string]api.Action)
}
