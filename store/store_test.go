package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	return s
}

func TestLoadMissing(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.Load("kia", "user@example.org")
	require.NoError(t, err, "a missing session is not an error")
	assert.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	s := testStore(t)

	expiry := time.Now().Add(time.Hour).Round(time.Second)
	require.NoError(t, s.Save(Session{
		Brand:        "hyundai",
		Username:     "user@example.org",
		DeviceID:     "DEV1",
		AccessToken:  "AT",
		RefreshToken: "RT",
		Expiry:       expiry,
	}))

	stored, ok, err := s.Load("hyundai", "user@example.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "DEV1", stored.DeviceID)
	assert.Equal(t, "AT", stored.AccessToken)
	assert.Equal(t, "RT", stored.RefreshToken)
	assert.True(t, expiry.Equal(stored.Expiry))
	assert.False(t, stored.UpdatedAt.IsZero())

	// sessions are keyed per brand and account
	_, ok, err = s.Load("kia", "user@example.org")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveUpsert(t *testing.T) {
	s := testStore(t)

	session := Session{Brand: "kia", Username: "user@example.org", RefreshToken: "OLD"}
	require.NoError(t, s.Save(session))

	session.RefreshToken = "NEW"
	session.DeviceID = "DEV2"
	require.NoError(t, s.Save(session))

	stored, ok, err := s.Load("kia", "user@example.org")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "NEW", stored.RefreshToken)
	assert.Equal(t, "DEV2", stored.DeviceID)
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Save(Session{Brand: "genesis", Username: "user@example.org", DeviceID: "DEV1"}))
	require.NoError(t, s.Delete("genesis", "user@example.org"))

	_, ok, err := s.Load("genesis", "user@example.org")
	require.NoError(t, err)
	assert.False(t, ok)
}
