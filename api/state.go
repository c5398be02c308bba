package api

import (
	"fmt"
	"strings"
	"time"
)

// SeatMode is the canonical heated/ventilated seat setting
type SeatMode int

const (
	SeatOff SeatMode = iota
	SeatOn           // vendor reported active without a discernible level
	SeatCoolLow
	SeatCoolMedium
	SeatCoolHigh
	SeatHeatLow
	SeatHeatMedium
	SeatHeatHigh
)

func (m SeatMode) String() string {
	switch m {
	case SeatOff:
		return "off"
	case SeatOn:
		return "on"
	case SeatCoolLow:
		return "cool-low"
	case SeatCoolMedium:
		return "cool-medium"
	case SeatCoolHigh:
		return "cool-high"
	case SeatHeatLow:
		return "heat-low"
	case SeatHeatMedium:
		return "heat-medium"
	case SeatHeatHigh:
		return "heat-high"
	default:
		return "off"
	}
}

// SeatModeString parses a seat mode name
func SeatModeString(s string) (SeatMode, error) {
	modes := map[string]SeatMode{
		"off": SeatOff, "on": SeatOn,
		"cool-low": SeatCoolLow, "cool-medium": SeatCoolMedium, "cool-high": SeatCoolHigh,
		"heat-low": SeatHeatLow, "heat-medium": SeatHeatMedium, "heat-high": SeatHeatHigh,
	}

	if mode, ok := modes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return mode, nil
	}
	return SeatOff, fmt.Errorf("invalid seat mode: %s", s)
}

// SeatState is a seat setting plus the number of levels the seat supports.
// Levels is zero when the vehicle does not expose the seat at all.
type SeatState struct {
	Mode   SeatMode
	Levels int
}

// Plug types as used in charge limit records
const (
	PlugDC = 0
	PlugAC = 1
)

// ChargeLimit is a target state of charge for one plug type
type ChargeLimit struct {
	PlugType int
	Level    int // percent
}

// Capabilities are the optional features a vehicle reports. Absence means
// the vendor never mentioned the feature, not that it is off.
type Capabilities struct {
	EV                 bool
	FrontSeats         bool
	RearSeats          bool
	SteeringWheelHeat  bool
	RearWindowHeat     bool
	SideMirrorHeat     bool
	Location           bool
	TargetSOC          bool
}

// VehicleState is the canonical vehicle snapshot produced by the brand
// normalizers. All temperatures are °F, distances miles, pressures psi.
type VehicleState struct {
	VIN   string
	Name  string
	Model string
	Year  string

	LastSynced  time.Time // vehicle-reported timestamp
	LastFetched time.Time // client-side fetch timestamp

	Odometer float64

	DoorsLocked bool
	DoorHood    bool
	DoorTrunk   bool
	DoorFrontL  bool
	DoorFrontR  bool
	DoorRearL   bool
	DoorRearR   bool

	EngineOn      bool
	ClimateOn     bool
	SetTemp       int
	Defrost       bool
	SteeringHeat  bool
	RearWindow    bool
	SideMirror    bool
	DriverSeat    SeatState
	PassengerSeat SeatState
	RearLeftSeat  SeatState
	RearRightSeat SeatState

	FuelLevel     int // percent
	FuelRange     float64
	LowFuel       bool
	Battery12V    int // percent
	TirePressLow  bool

	// EV block, meaningful when Capabilities.EV
	EVBatteryLevel  int // percent
	EVRange         float64
	EVPluggedIn     bool
	EVCharging      bool
	EVChargeMinutes int // estimated minutes remaining
	TargetSOC       []ChargeLimit

	Latitude  float64
	Longitude float64

	Capabilities Capabilities

	// LastAction is the most recent command still being tracked, if any
	LastAction *Action
}
