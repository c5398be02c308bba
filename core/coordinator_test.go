package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
)

type clientMock struct {
	api.Client

	states  []func() (api.VehicleState, error)
	fetches int

	pending     *api.Action
	checks      int
	finishAfter int
}

func (c *clientMock) StatusLatest(string) (api.VehicleState, error) {
	defer func() { c.fetches++ }()
	return c.states[c.fetches]()
}

func (c *clientMock) LastAction(string) (api.Action, bool) {
	if c.pending == nil {
		return api.Action{}, false
	}
	return *c.pending, true
}

func (c *clientMock) CheckActionFinished(string) (bool, error) {
	if c.finishAfter == 0 {
		// finished but still tracked, e.g. completion raced the poll
		return true, nil
	}

	c.checks++
	if c.checks >= c.finishAfter {
		c.pending = nil
		return true, nil
	}
	return false, nil
}

func state(battery int) func() (api.VehicleState, error) {
	return func() (api.VehicleState, error) {
		return api.VehicleState{
			VIN:            "VIN1",
			EVBatteryLevel: battery,
			TargetSOC:      []api.ChargeLimit{{PlugType: api.PlugAC, Level: 80}},
		}, nil
	}
}

func transportErr() (api.VehicleState, error) {
	return api.VehicleState{}, fmt.Errorf("%w: connection reset", api.ErrTransport)
}

func testCoordinator(client api.Client) *Coordinator {
	c := NewCoordinator(util.NewLogger("test"), client, api.Vehicle{ID: "id1", VIN: "VIN1"})
	c.pollDelay = time.Millisecond
	return c
}

func TestRefresh(t *testing.T) {
	client := &clientMock{states: []func() (api.VehicleState, error){state(80)}}

	c := testCoordinator(client)
	mock := clock.NewMock()
	c.clock = mock

	res, err := c.Refresh()
	require.NoError(t, err)

	assert.Equal(t, 80, res.EVBatteryLevel)
	assert.Equal(t, mock.Now(), res.LastFetched)
	assert.Nil(t, res.LastAction)
}

func TestRefreshStaleFallback(t *testing.T) {
	client := &clientMock{states: []func() (api.VehicleState, error){
		state(80),
		transportErr,
		state(75),
	}}

	c := testCoordinator(client)

	first, err := c.Refresh()
	require.NoError(t, err)

	// transient failure serves the previous snapshot
	second, err := c.Refresh()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// recovery returns live data again
	third, err := c.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 75, third.EVBatteryLevel)
}

func TestRefreshSnapshotIsolation(t *testing.T) {
	client := &clientMock{states: []func() (api.VehicleState, error){
		state(80),
		transportErr,
	}}

	c := testCoordinator(client)

	first, err := c.Refresh()
	require.NoError(t, err)

	// mutating a returned snapshot must not leak into the cache
	first.TargetSOC[0].Level = 0

	second, err := c.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 80, second.EVBatteryLevel)
	assert.Equal(t, 80, second.TargetSOC[0].Level)
}

func TestRefreshErrorWithoutSnapshot(t *testing.T) {
	client := &clientMock{states: []func() (api.VehicleState, error){transportErr}}

	c := testCoordinator(client)

	_, err := c.Refresh()
	assert.ErrorIs(t, err, api.ErrTransport)
}

func TestRefreshDrainsActions(t *testing.T) {
	client := &clientMock{
		states:      []func() (api.VehicleState, error){state(80)},
		pending:     &api.Action{Name: "lock", ID: "xid1"},
		finishAfter: 3,
	}

	c := testCoordinator(client)

	res, err := c.Refresh()
	require.NoError(t, err)

	assert.Equal(t, 3, client.checks, "refresh waits until the action finishes")
	assert.Nil(t, res.LastAction)
}

func TestRefreshAttachesPendingAction(t *testing.T) {
	client := &clientMock{
		states:  []func() (api.VehicleState, error){state(80)},
		pending: &api.Action{Name: "lock", ID: "xid1"},
	}

	c := testCoordinator(client)

	res, err := c.Refresh()
	require.NoError(t, err)

	require.NotNil(t, res.LastAction)
	assert.Equal(t, "lock", res.LastAction.Name)
}
