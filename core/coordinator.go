package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v3"
	"github.com/benbjohnson/clock"
	"github.com/jinzhu/copier"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
)

const (
	// ActionPollDelay is the fixed delay between pending action checks
	ActionPollDelay = 20 * time.Second
	// ActionPollAttempts bounds how long a refresh waits on a command
	ActionPollAttempts = 15
	// DefaultScanInterval is the periodic refresh interval
	DefaultScanInterval = 10 * time.Minute
)

var errActionPending = errors.New("action pending")

// Coordinator drives the refresh cycle for one vehicle: wait out pending
// commands, fetch the snapshot, fall back to the previous one on
// transient failure.
type Coordinator struct {
	log     *util.Logger
	client  api.Client
	vehicle api.Vehicle
	clock   clock.Clock

	pollDelay    time.Duration
	pollAttempts uint

	prev *api.VehicleState
}

// NewCoordinator creates a refresh coordinator for the given vehicle
func NewCoordinator(log *util.Logger, client api.Client, vehicle api.Vehicle) *Coordinator {
	return &Coordinator{
		log:          log,
		client:       client,
		vehicle:      vehicle,
		clock:        clock.New(),
		pollDelay:    ActionPollDelay,
		pollAttempts: ActionPollAttempts,
	}
}

// drainActions waits for a pending command to reach a terminal state.
// An erroring poll stops the wait so a stuck command cannot block
// refreshes forever.
func (c *Coordinator) drainActions() {
	action, ok := c.client.LastAction(c.vehicle.ID)
	if !ok {
		return
	}

	c.log.DEBUG.Printf("waiting for %s to finish", action.Name)

	err := retry.Do(func() error {
		finished, err := c.client.CheckActionFinished(c.vehicle.ID)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		if !finished {
			return errActionPending
		}
		return nil
	},
		retry.Attempts(c.pollAttempts),
		retry.Delay(c.pollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)

	if err != nil {
		c.log.WARN.Printf("%s: giving up waiting for %s: %v", c.vehicle.VIN, action.Name, err)
	}
}

// snapshot deep-copies a state so callers cannot mutate the cache
func snapshot(state *api.VehicleState) (api.VehicleState, error) {
	var res api.VehicleState
	err := copier.CopyWithOption(&res, state, copier.Option{DeepCopy: true})
	return res, err
}

// Refresh runs one refresh cycle and returns the current snapshot
func (c *Coordinator) Refresh() (api.VehicleState, error) {
	c.drainActions()

	state, err := c.client.StatusLatest(c.vehicle.ID)
	if err != nil {
		if errors.Is(err, api.ErrTransport) && c.prev != nil {
			c.log.WARN.Printf("%s: transient fetch failure, serving previous snapshot: %v", c.vehicle.VIN, err)
			return snapshot(c.prev)
		}
		return api.VehicleState{}, err
	}

	state.LastFetched = c.clock.Now()

	if action, ok := c.client.LastAction(c.vehicle.ID); ok {
		state.LastAction = &action
	}

	prev, err := snapshot(&state)
	if err != nil {
		return api.VehicleState{}, fmt.Errorf("copying snapshot: %w", err)
	}
	c.prev = &prev

	return state, nil
}

// Run refreshes periodically and publishes the snapshot until the done
// channel closes
func (c *Coordinator) Run(interval time.Duration, out chan<- util.Param, done <-chan struct{}) {
	if interval == 0 {
		interval = DefaultScanInterval
	}

	ticker := c.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		c.publish(out)

		select {
		case <-ticker.C:
		case <-done:
			return
		}
	}
}

func (c *Coordinator) publish(out chan<- util.Param) {
	state, err := c.Refresh()
	if err != nil {
		c.log.ERROR.Printf("%s: refresh failed: %v", c.vehicle.VIN, err)
		return
	}

	out <- util.Param{Vehicle: c.vehicle.VIN, Key: "state", Val: state}
	out <- util.Param{Vehicle: c.vehicle.VIN, Key: "updated", Val: state.LastFetched}
}
