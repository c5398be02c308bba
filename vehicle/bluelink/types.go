package bluelink

import (
	"strconv"
	"strings"
)

// Number is a float the telematics api serializes as number or string
// depending on endpoint
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}

	*n = Number(v)
	return nil
}

// errorResponse is the telematics api error envelope. Success responses
// omit the errorCode field entirely.
type errorResponse struct {
	ErrorCode       int    `json:"errorCode"`
	ErrorMessage    string `json:"errorMessage"`
	ErrorSubMessage string `json:"errorSubMessage"`
}

type enrollmentResponse struct {
	EnrolledVehicleDetails []struct {
		VehicleDetails VehicleDetails `json:"vehicleDetails"`
	} `json:"enrolledVehicleDetails"`
}

// VehicleDetails is the per-vehicle enrollment record
type VehicleDetails struct {
	Regid             string `json:"regid"`
	VIN               string `json:"vin"`
	NickName          string `json:"nickName"`
	ModelCode         string `json:"modelCode"`
	ModelYear         string `json:"modelYear"`
	EvStatus          string `json:"evStatus"` // "E" for electric
	VehicleGeneration string `json:"vehicleGeneration"`
	EnrollmentStatus  string `json:"enrollmentStatus"`
	Odometer          Number `json:"odometer"`

	SteeringWheelHeatCapable string `json:"steeringWheelHeatCapable"` // YES/NO
	SideMirrorHeatCapable    string `json:"sideMirrorHeatCapable"`
	RearWindowHeatCapable    string `json:"rearWindowHeatCapable"`
	FatcAvailable            string `json:"fatcAvailable"` // Y/N, remote climate
	BluelinkEnabled          bool   `json:"bluelinkEnabled"`

	SeatConfigurations struct {
		SeatConfigs []SeatConfig `json:"seatConfigs"`
	} `json:"seatConfigurations"`
}

// SeatConfig describes one seat's climate hardware.
// seatLocationID: 1 driver, 2 passenger, 3 rear left, 4 rear right.
type SeatConfig struct {
	SeatLocationID  string `json:"seatLocationID"`
	HeatingCapable  string `json:"heatingCapable"` // YES/NO
	VentCapable     string `json:"ventCapable"`
	SupportedLevels string `json:"supportedLevels"` // e.g. "2,6,7,8,3,4,5"
}

type statusResponse struct {
	VehicleStatus VehicleStatus `json:"vehicleStatus"`
}

// VehicleStatus is the telematics status report
type VehicleStatus struct {
	AirCtrlOn bool `json:"airCtrlOn"`
	AirTemp   struct {
		Value string `json:"value"`
		Unit  int    `json:"unit"`
	} `json:"airTemp"`
	Defrost            bool `json:"defrost"`
	SteerWheelHeat     int  `json:"steerWheelHeat"`
	SideMirrorHeat     int  `json:"sideMirrorHeat"`
	SideBackWindowHeat int  `json:"sideBackWindowHeat"`

	Engine   bool `json:"engine"`
	DoorLock bool `json:"doorLock"`
	DoorOpen struct {
		FrontLeft  int `json:"frontLeft"`
		FrontRight int `json:"frontRight"`
		BackLeft   int `json:"backLeft"`
		BackRight  int `json:"backRight"`
	} `json:"doorOpen"`
	TrunkOpen bool `json:"trunkOpen"`
	HoodOpen  bool `json:"hoodOpen"`

	LowFuelLight bool   `json:"lowFuelLight"`
	DateTime     string `json:"dateTime"`
	Battery      struct {
		BatSoc int `json:"batSoc"`
	} `json:"battery"`
	Dte struct {
		Value float64 `json:"value"`
	} `json:"dte"`
	TirePressureLamp struct {
		TirePressureLampAll int `json:"tirePressureLampAll"`
	} `json:"tirePressureLamp"`

	SeatHeaterVentState *struct {
		DrvSeatHeatState int `json:"drvSeatHeatState"`
		AstSeatHeatState int `json:"astSeatHeatState"`
		RlSeatHeatState  int `json:"rlSeatHeatState"`
		RrSeatHeatState  int `json:"rrSeatHeatState"`
	} `json:"seatHeaterVentState"`

	EvStatus *EvStatus `json:"evStatus"`
}

type EvStatus struct {
	BatteryCharge bool `json:"batteryCharge"`
	BatteryStatus int  `json:"batteryStatus"`
	BatteryPlugin int  `json:"batteryPlugin"`
	DrvDistance   []struct {
		RangeByFuel struct {
			EvModeRange struct {
				Value float64 `json:"value"`
			} `json:"evModeRange"`
			GasModeRange struct {
				Value float64 `json:"value"`
			} `json:"gasModeRange"`
			TotalAvailableRange struct {
				Value float64 `json:"value"`
			} `json:"totalAvailableRange"`
		} `json:"rangeByFuel"`
	} `json:"drvDistance"`
	RemainTime2 struct {
		Atc struct {
			Value int `json:"value"`
		} `json:"atc"`
	} `json:"remainTime2"`
	ReservChargeInfos struct {
		TargetSOCList []TargetSOC `json:"targetSOClist"`
	} `json:"reservChargeInfos"`
}

type TargetSOC struct {
	PlugType       int `json:"plugType"`
	TargetSOCLevel int `json:"targetSOClevel"`
}

type locationResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// climate command payloads

type evClimateRequest struct {
	AirCtrl  int     `json:"airCtrl"`
	AirTemp  airTemp `json:"airTemp"`
	Defrost  bool    `json:"defrost"`
	Heating1 int     `json:"heating1"`

	// generation 3 and later only
	IgniOnDuration     int             `json:"igniOnDuration,omitempty"`
	SeatHeaterVentInfo *seatHeaterVent `json:"seatHeaterVentInfo,omitempty"`
}

type iceClimateRequest struct {
	Ims                int             `json:"Ims"`
	AirCtrl            int             `json:"airCtrl"`
	AirTemp            airTemp         `json:"airTemp"`
	Defrost            bool            `json:"defrost"`
	Heating1           int             `json:"heating1"`
	IgniOnDuration     int             `json:"igniOnDuration"`
	SeatHeaterVentInfo *seatHeaterVent `json:"seatHeaterVentInfo"`
	Username           string          `json:"username"`
	VIN                string          `json:"vin"`
}

type airTemp struct {
	Value string `json:"value"`
	Unit  int    `json:"unit"`
}

type seatHeaterVent struct {
	DrvSeatHeatState int `json:"drvSeatHeatState"`
	AstSeatHeatState int `json:"astSeatHeatState"`
	RlSeatHeatState  int `json:"rlSeatHeatState"`
	RrSeatHeatState  int `json:"rrSeatHeatState"`
}

type chargeLimitRequest struct {
	TargetSOCList []TargetSOC `json:"targetSOClist"`
}
