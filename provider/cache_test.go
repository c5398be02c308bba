package provider

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

func TestCached(t *testing.T) {
	calls := 0
	g := Cached(func() (int, error) {
		calls++
		return calls, nil
	}, time.Hour)

	res, err := g()
	require.NoError(t, err)
	assert.Equal(t, 1, res)

	// second call within the cache window is served from cache
	res, err = g()
	require.NoError(t, err)
	assert.Equal(t, 1, res)
	assert.Equal(t, 1, calls)
}

func TestCachedReset(t *testing.T) {
	calls := 0
	g := Cached(func() (int, error) {
		calls++
		return calls, nil
	}, time.Hour)

	_, err := g()
	require.NoError(t, err)

	ResetCached()

	res, err := g()
	require.NoError(t, err)
	assert.Equal(t, 2, res, "reset must invalidate the cache")
}

func TestCachedTransportErrorNotCached(t *testing.T) {
	calls := 0
	g := Cached(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, fmt.Errorf("%w: connection refused", api.ErrTransport)
		}
		return calls, nil
	}, time.Hour)

	_, err := g()
	assert.ErrorIs(t, err, api.ErrTransport)

	// transport errors are retried on the next call
	res, err := g()
	require.NoError(t, err)
	assert.Equal(t, 2, res)
}

func TestCachedOtherErrorsCached(t *testing.T) {
	calls := 0
	g := Cached(func() (int, error) {
		calls++
		return 0, api.ErrVehicleNotFound
	}, time.Hour)

	_, err := g()
	assert.ErrorIs(t, err, api.ErrVehicleNotFound)

	_, err = g()
	assert.ErrorIs(t, err, api.ErrVehicleNotFound)
	assert.Equal(t, 1, calls, "non-transport errors are cached like values")
}
