package kia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagUnmarshal(t *testing.T) {
	cases := []struct {
		json     string
		expected bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`"true"`, true},
		{`null`, false},
		{`""`, false},
	}

	for _, tc := range cases {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(tc.json), &f), tc.json)
		assert.Equal(t, tc.expected, bool(f), tc.json)
	}

	var f Flag
	assert.Error(t, json.Unmarshal([]byte(`"open"`), &f))
}

func TestDoorStatusDecoding(t *testing.T) {
	// doors arrive as numbers on some model years and strings on others
	var status VehicleStatus
	require.NoError(t, json.Unmarshal([]byte(`{
		"doorLock": true,
		"doorStatus": {"hood": 0, "trunk": "1", "frontLeft": false, "frontRight": 1}
	}`), &status))

	assert.True(t, status.DoorLock)
	assert.False(t, bool(status.DoorStatus.Hood))
	assert.True(t, bool(status.DoorStatus.Trunk))
	assert.False(t, bool(status.DoorStatus.FrontLeft))
	assert.True(t, bool(status.DoorStatus.FrontRight))
}
