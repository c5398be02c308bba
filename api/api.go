package api

import (
	"context"
	"fmt"
	"strings"
)

// Brand identifies the vendor cloud an account belongs to
type Brand int

const (
	BrandKia Brand = iota + 1
	BrandHyundai
	BrandGenesis
)

func (b Brand) String() string {
	switch b {
	case BrandKia:
		return "kia"
	case BrandHyundai:
		return "hyundai"
	case BrandGenesis:
		return "genesis"
	default:
		return fmt.Sprintf("brand(%d)", int(b))
	}
}

// BrandString parses a brand name
func BrandString(s string) (Brand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kia":
		return BrandKia, nil
	case "hyundai":
		return BrandHyundai, nil
	case "genesis":
		return BrandGenesis, nil
	default:
		return 0, fmt.Errorf("invalid brand: %s", s)
	}
}

// Vehicle is a vehicle as enumerated by the vendor account
type Vehicle struct {
	ID         string // external identifier (vehicleIdentifier or regid)
	Key        string // request key (vinKey or regid), rotates per login
	VIN        string
	Name       string
	Model      string
	Year       string
	EV         bool
	Generation int
}

// Action is a dispatched remote command tracked until the vendor reports
// a terminal outcome
type Action struct {
	Name string
	ID   string // vendor tracking id (xid)
}

// Client is the common contract of the brand API clients. All operations
// are blocking network calls. Commands refuse to dispatch while a prior
// command on the same vehicle is unresolved.
type Client interface {
	Login() error
	Vehicles() ([]Vehicle, error)
	StatusLatest(vehicle string) (VehicleState, error)
	RequestSync(vehicle string) error
	Lock(vehicle string) error
	Unlock(vehicle string) error
	StartClimate(vehicle string, spec ClimateSpec) error
	StopClimate(vehicle string) error
	StartCharge(vehicle string) error
	StopCharge(vehicle string) error
	SetChargeLimits(vehicle string, ac, dc int) error
	CheckActionFinished(vehicle string) (bool, error)
	LastAction(vehicle string) (Action, bool)
}

// ClimateSpec are the remote climate start parameters
type ClimateSpec struct {
	SetTemp       int // °F
	Climate       bool
	Defrost       bool
	Heating       bool // rear window, side mirrors, steering wheel
	DriverSeat    SeatState
	PassengerSeat SeatState
	RearLeftSeat  SeatState
	RearRightSeat SeatState
}

// OtpDestination is where the vendor delivers a one-time passcode
type OtpDestination string

const (
	OtpEmail OtpDestination = "EMAIL"
	OtpSMS   OtpDestination = "SMS"
)

// OtpChallenge describes the destinations available for an OTP challenge
type OtpChallenge struct {
	HasEmail bool
	HasPhone bool
	Email    string // masked by the vendor
	Phone    string // masked by the vendor
}

// OtpPrompt is the seam between the login state machine and whatever
// collects user input. Implementations must honor the context deadline;
// the login fails if the prompt does not answer in time.
type OtpPrompt interface {
	ChooseDestination(ctx context.Context, challenge OtpChallenge) (OtpDestination, error)
	Code(ctx context.Context, destination OtpDestination) (string, error)
}
