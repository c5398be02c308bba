package vehicle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

type clientStub struct {
	api.Client
	name string
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	created := 0
	create := func() (api.Client, error) {
		created++
		return &clientStub{name: "a"}, nil
	}

	c1, err := r.Get(api.BrandKia, "user@example.org", create)
	require.NoError(t, err)

	c2, err := r.Get(api.BrandKia, "user@example.org", create)
	require.NoError(t, err)

	assert.Same(t, c1, c2, "same account shares one client")
	assert.Equal(t, 1, created)

	// other brand or account gets its own client
	c3, err := r.Get(api.BrandHyundai, "user@example.org", create)
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)

	r.Remove(api.BrandKia, "user@example.org")
	_, err = r.Get(api.BrandKia, "user@example.org", create)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
}

func TestRegistryCreateError(t *testing.T) {
	r := NewRegistry()

	boom := errors.New("no credentials")
	_, err := r.Get(api.BrandKia, "user@example.org", func() (api.Client, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)

	// a failed create is not cached
	c, err := r.Get(api.BrandKia, "user@example.org", func() (api.Client, error) {
		return &clientStub{}, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
