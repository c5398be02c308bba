package bluelink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uvolink/uvolink/api"
)

func TestEncodeSeat(t *testing.T) {
	cases := []struct {
		mode     api.SeatMode
		expected int
	}{
		{api.SeatOff, 0},
		{api.SeatOn, 1},
		{api.SeatHeatLow, 1},
		{api.SeatHeatMedium, 2},
		{api.SeatHeatHigh, 3},
		{api.SeatCoolLow, 6},
		{api.SeatCoolMedium, 7},
		{api.SeatCoolHigh, 8},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, EncodeSeat(tc.mode), tc.mode.String())
	}
}

func TestDecodeSeat(t *testing.T) {
	cases := []struct {
		raw      int
		expected api.SeatMode
	}{
		{0, api.SeatOff},
		{1, api.SeatOn},
		{2, api.SeatOff},
		{4, api.SeatCoolMedium},
		{6, api.SeatHeatLow},
		{8, api.SeatHeatHigh},
		{99, api.SeatOff},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, DecodeSeat(tc.raw), "raw %d", tc.raw)
	}
}

func TestSeatCommandRoundTrip(t *testing.T) {
	modes := []api.SeatMode{
		api.SeatOff,
		api.SeatHeatLow, api.SeatHeatMedium, api.SeatHeatHigh,
		api.SeatCoolLow, api.SeatCoolMedium, api.SeatCoolHigh,
	}

	for _, mode := range modes {
		assert.Equal(t, mode, decodeCommand(EncodeSeat(mode)), mode.String())
	}

	// the generic on state commands low heat
	assert.Equal(t, api.SeatHeatLow, decodeCommand(EncodeSeat(api.SeatOn)))
}

func TestDecodeSeatLevels(t *testing.T) {
	both := SeatConfig{HeatingCapable: "YES", VentCapable: "YES", SupportedLevels: "2,6,7,8,3,4,5"}
	heatOnly := SeatConfig{HeatingCapable: "YES", VentCapable: "NO", SupportedLevels: "0,1,2,3"}
	ventOnly := SeatConfig{HeatingCapable: "NO", VentCapable: "YES", SupportedLevels: "2,3,4"}

	cases := []struct {
		raw      int
		cfg      SeatConfig
		expected api.SeatMode
	}{
		{2, both, api.SeatOff},
		{3, both, api.SeatCoolLow},
		{5, both, api.SeatCoolHigh},
		{6, both, api.SeatHeatLow},
		{8, both, api.SeatHeatHigh},
		{99, both, api.SeatOff},

		// a heat-only seat spends every position on heat
		{0, heatOnly, api.SeatOff},
		{1, heatOnly, api.SeatHeatLow},
		{3, heatOnly, api.SeatHeatHigh},

		// a vent-only seat spends every position on cool
		{3, ventOnly, api.SeatCoolLow},
		{4, ventOnly, api.SeatCoolMedium},

		// without an enumeration the fixed scale applies
		{7, SeatConfig{}, api.SeatHeatMedium},
		{4, SeatConfig{}, api.SeatCoolMedium},
	}

	for i, tc := range cases {
		assert.Equal(t, tc.expected, DecodeSeatLevels(tc.raw, tc.cfg), "case %d raw %d", i, tc.raw)
	}
}

func TestDecodeSeatLevelsOrderStable(t *testing.T) {
	// classification depends on the multiset of levels, not their order
	a := SeatConfig{HeatingCapable: "YES", VentCapable: "YES", SupportedLevels: "2,6,7,8,3,4,5"}
	b := SeatConfig{HeatingCapable: "YES", VentCapable: "YES", SupportedLevels: "8,7,6,5,4,3,2"}

	for raw := 2; raw <= 8; raw++ {
		assert.Equal(t, DecodeSeatLevels(raw, a), DecodeSeatLevels(raw, b), "raw %d", raw)
	}
}

func TestParseLevels(t *testing.T) {
	// enumeration order varies between model years
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, ParseLevels("2,6,7,8,3,4,5"))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, ParseLevels("2,3,4,5,6,7,8"))
	assert.Equal(t, []int{0, 1}, ParseLevels("1, 0"))
	assert.Nil(t, ParseLevels(""))
}

func TestSeatLevels(t *testing.T) {
	cases := []struct {
		cfg      SeatConfig
		expected int
	}{
		{SeatConfig{HeatingCapable: "YES", VentCapable: "YES", SupportedLevels: "2,6,7,8,3,4,5"}, 3},
		{SeatConfig{HeatingCapable: "YES", VentCapable: "NO", SupportedLevels: "2,6,7,8"}, 3},
		{SeatConfig{HeatingCapable: "NO", VentCapable: "YES", SupportedLevels: "2,3,4"}, 2},
		{SeatConfig{HeatingCapable: "NO", VentCapable: "NO", SupportedLevels: "2"}, 0},
		{SeatConfig{HeatingCapable: "YES", VentCapable: "YES"}, 0},
	}

	for i, tc := range cases {
		assert.Equal(t, tc.expected, SeatLevels(tc.cfg), "case %d", i)
	}
}
