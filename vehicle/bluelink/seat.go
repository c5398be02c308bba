package bluelink

import (
	"sort"
	"strconv"
	"strings"

	"github.com/uvolink/uvolink/api"
)

// command wire values: 0 off, 1-3 heat low to high, 6-8 cool low to high

// EncodeSeat maps a canonical seat mode to the command wire value
func EncodeSeat(mode api.SeatMode) int {
	switch mode {
	case api.SeatHeatLow, api.SeatOn:
		return 1
	case api.SeatHeatMedium:
		return 2
	case api.SeatHeatHigh:
		return 3
	case api.SeatCoolLow:
		return 6
	case api.SeatCoolMedium:
		return 7
	case api.SeatCoolHigh:
		return 8
	default:
		return 0
	}
}

// decodeCommand maps a command wire value back to the canonical mode.
// Commands use 1-3 for heat and 6-8 for cool, unlike reported states.
func decodeCommand(value int) api.SeatMode {
	switch {
	case value >= 1 && value <= 3:
		return api.SeatHeatLow + api.SeatMode(value-1)
	case value >= 6 && value <= 8:
		return api.SeatCoolLow + api.SeatMode(value-6)
	default:
		return api.SeatOff
	}
}

// DecodeSeat maps a reported seat state integer to the canonical mode
// using the fixed scale: 0/2 off, 1 generic on, 3-5 cool, 6-8 heat.
// Used when a vehicle reports no supportedLevels enumeration.
func DecodeSeat(raw int) api.SeatMode {
	switch {
	case raw == 1:
		return api.SeatOn
	case raw >= 3 && raw <= 5:
		return api.SeatCoolLow + api.SeatMode(raw-3)
	case raw >= 6 && raw <= 8:
		return api.SeatHeatLow + api.SeatMode(raw-6)
	default:
		return api.SeatOff
	}
}

// DecodeSeatLevels classifies a reported seat value against the
// vehicle's own supportedLevels enumeration. Sorted ascending the
// lowest value is off, the next block cool low to high, the remainder
// heat low to high; a seat lacking one direction spends all positions
// on the other. The numeric encoding varies by vehicle generation, so
// the boundaries come from the enumeration, not a fixed table.
func DecodeSeatLevels(raw int, cfg SeatConfig) api.SeatMode {
	levels := ParseLevels(cfg.SupportedLevels)
	if len(levels) == 0 {
		return DecodeSeat(raw)
	}

	idx := -1
	for i, v := range levels {
		if v == raw {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return api.SeatOff
	}

	heat := cfg.HeatingCapable == "YES"
	vent := cfg.VentCapable == "YES"

	var cool int
	switch {
	case heat && vent:
		cool = (len(levels) - 1) / 2
	case vent:
		cool = len(levels) - 1
	}

	mode := idx - 1
	if idx > cool {
		mode = idx - cool - 1
	}
	if mode > 2 {
		mode = 2
	}

	if idx <= cool {
		return api.SeatCoolLow + api.SeatMode(mode)
	}
	return api.SeatHeatLow + api.SeatMode(mode)
}

// ParseLevels derives the level count from a seat's supportedLevels
// enumeration, e.g. "2,6,7,8,3,4,5". Sorted ascending the lowest value
// is off, then three cool levels, then three heat levels. The level
// count per direction is (len-1)/2 for a heat+cool seat.
func ParseLevels(supported string) []int {
	if supported == "" {
		return nil
	}

	parts := strings.Split(supported, ",")
	levels := make([]int, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		levels = append(levels, v)
	}

	sort.Ints(levels)
	return levels
}

// SeatLevels returns the per-direction level count for a seat config
func SeatLevels(cfg SeatConfig) int {
	levels := ParseLevels(cfg.SupportedLevels)
	if len(levels) == 0 {
		return 0
	}

	heat := cfg.HeatingCapable == "YES"
	vent := cfg.VentCapable == "YES"

	switch {
	case heat && vent:
		return (len(levels) - 1) / 2
	case heat || vent:
		return len(levels) - 1
	default:
		return 0
	}
}
