package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	_, ok := tr.Pending("v1")
	assert.False(t, ok)

	require.NoError(t, tr.Begin("v1", api.Action{Name: "lock"}))

	// second command on the same vehicle is refused
	err := tr.Begin("v1", api.Action{Name: "unlock"})
	assert.ErrorIs(t, err, api.ErrActionInProgress)

	// other vehicles are unaffected
	require.NoError(t, tr.Begin("v2", api.Action{Name: "unlock"}))

	tr.Update("v1", "xid1")
	action, ok := tr.Pending("v1")
	require.True(t, ok)
	assert.Equal(t, "lock", action.Name)
	assert.Equal(t, "xid1", action.ID)

	tr.Clear("v1")
	_, ok = tr.Pending("v1")
	assert.False(t, ok)
	require.NoError(t, tr.Begin("v1", api.Action{Name: "unlock"}))

	tr.Reset()
	_, ok = tr.Pending("v1")
	assert.False(t, ok)
	_, ok = tr.Pending("v2")
	assert.False(t, ok)
}

func TestTrackerUpdateWithoutPending(t *testing.T) {
	tr := NewTracker()

	// update without begin must not create a phantom action
	tr.Update("v1", "xid1")
	_, ok := tr.Pending("v1")
	assert.False(t, ok)
}
