package kia

import (
	"bytes"
	"strconv"
)

// Flag is a boolean the owners api serializes as bool, number or
// numeric string depending on endpoint
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))

	switch s {
	case "true":
		*f = true
	case "false", "null", "":
		*f = false
	default:
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = v != 0
	}

	return nil
}

// request envelope status shared by all owners api responses
type responseStatus struct {
	StatusCode   int    `json:"statusCode"`
	ErrorType    int    `json:"errorType"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type statusResponse struct {
	Status responseStatus `json:"status"`
}

type loginRequest struct {
	DeviceKey      string         `json:"deviceKey"`
	DeviceType     int            `json:"deviceType"`
	UserCredential userCredential `json:"userCredential"`
	TncFlag        int            `json:"tncFlag,omitempty"`
}

type userCredential struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status  responseStatus `json:"status"`
	Payload struct {
		OtpKey         string `json:"otpKey"`
		HasEmail       bool   `json:"hasEmail"`
		HasPhone       bool   `json:"hasPhone"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		RmTokenExpired bool   `json:"rmTokenExpired"`
	} `json:"payload"`
}

type vehiclesResponse struct {
	Status  responseStatus `json:"status"`
	Payload struct {
		VehicleSummary []VehicleSummary `json:"vehicleSummary"`
	} `json:"payload"`
}

// VehicleSummary is one entry of the owners vehicle list
type VehicleSummary struct {
	VehicleIdentifier string `json:"vehicleIdentifier"`
	VehicleKey        string `json:"vehicleKey"`
	VIN               string `json:"vin"`
	NickName          string `json:"nickName"`
	ModelName         string `json:"modelName"`
	ModelYear         string `json:"modelYear"`
}

type vehicleInfoResponse struct {
	Status  responseStatus `json:"status"`
	Payload struct {
		VehicleInfoList []VehicleInfo `json:"vehicleInfoList"`
	} `json:"payload"`
}

// VehicleInfo is the combined config and status document for one vehicle
type VehicleInfo struct {
	VehicleConfig   VehicleConfig   `json:"vehicleConfig"`
	LastVehicleInfo LastVehicleInfo `json:"lastVehicleInfo"`
}

type VehicleConfig struct {
	VehicleDetail struct {
		Vehicle struct {
			Mileage float64 `json:"mileage"`
		} `json:"vehicle"`
	} `json:"vehicleDetail"`
	Maintenance struct {
		NextServiceMile float64 `json:"nextServiceMile"`
	} `json:"maintenance"`
	VehicleFeature struct {
		RemoteFeature struct {
			Lock                   Flag `json:"lock"`
			Start                  Flag `json:"start"`
			HeatedSeat             Flag `json:"heatedSeat"`
			VentSeat               Flag `json:"ventSeat"`
			HeatedSteeringWheel    Flag `json:"heatedSteeringWheel"`
			SteeringWheelStepLevel int  `json:"steeringWheelStepLevel"`
		} `json:"remoteFeature"`
	} `json:"vehicleFeature"`
	HeatVentSeat struct {
		DriverSeat   SeatOption `json:"driverSeat"`
		RearLeftSeat SeatOption `json:"rearLeftSeat"`
	} `json:"heatVentSeat"`
}

type SeatOption struct {
	HeatVentType int `json:"heatVentType"`
	HeatVentStep int `json:"heatVentStep"`
}

type LastVehicleInfo struct {
	Location struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"location"`
	VehicleStatusRpt struct {
		VehicleStatus VehicleStatus `json:"vehicleStatus"`
	} `json:"vehicleStatusRpt"`
}

type VehicleStatus struct {
	SyncDate struct {
		UTC string `json:"utc"`
	} `json:"syncDate"`
	DateTime struct {
		UTC string `json:"utc"`
	} `json:"dateTime"`
	DoorLock   bool `json:"doorLock"`
	DoorStatus struct {
		Hood       Flag `json:"hood"`
		Trunk      Flag `json:"trunk"`
		FrontLeft  Flag `json:"frontLeft"`
		FrontRight Flag `json:"frontRight"`
		BackLeft   Flag `json:"backLeft"`
		BackRight  Flag `json:"backRight"`
	} `json:"doorStatus"`
	Engine        bool `json:"engine"`
	LowFuelLight  Flag `json:"lowFuelLight"`
	FuelLevel     int  `json:"fuelLevel"`
	BatteryStatus struct {
		StateOfCharge int `json:"stateOfCharge"`
	} `json:"batteryStatus"`
	TirePressure struct {
		All Flag `json:"all"`
	} `json:"tirePressure"`
	DistanceToEmpty struct {
		Value float64 `json:"value"`
	} `json:"distanceToEmpty"`
	Climate struct {
		AirCtrl bool `json:"airCtrl"`
		AirTemp struct {
			Value string `json:"value"`
			Unit  int    `json:"unit"`
		} `json:"airTemp"`
		Defrost          bool `json:"defrost"`
		HeatingAccessory struct {
			RearWindow    Flag `json:"rearWindow"`
			SideMirror    Flag `json:"sideMirror"`
			SteeringWheel Flag `json:"steeringWheel"`
		} `json:"heatingAccessory"`
	} `json:"climate"`
	SeatHeaterVentState *struct {
		FlSeatHeatState int `json:"flSeatHeatState"`
		FrSeatHeatState int `json:"frSeatHeatState"`
		RlSeatHeatState int `json:"rlSeatHeatState"`
		RrSeatHeatState int `json:"rrSeatHeatState"`
	} `json:"seatHeaterVentState"`
	EvStatus *EvStatus `json:"evStatus"`
}

type EvStatus struct {
	BatteryStatus    int         `json:"batteryStatus"`
	BatteryCharge    bool        `json:"batteryCharge"`
	BatteryPlugin    int         `json:"batteryPlugin"`
	TargetSOC        []TargetSOC `json:"targetSOC"`
	RemainChargeTime []struct {
		TimeInterval struct {
			Value int `json:"value"`
		} `json:"timeInterval"`
	} `json:"remainChargeTime"`
	DrvDistance []struct {
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
}

type TargetSOC struct {
	PlugType       int `json:"plugType"`
	TargetSOCLevel int `json:"targetSOClevel"`
}

type actionStatusResponse struct {
	Status  responseStatus `json:"status"`
	Payload map[string]int `json:"payload"`
}

// remote climate command

type climateRequest struct {
	RemoteClimate remoteClimate `json:"remoteClimate"`
}

type remoteClimate struct {
	AirCtrl            bool             `json:"airCtrl"`
	AirTemp            airTemp          `json:"airTemp"`
	Defrost            bool             `json:"defrost"`
	HeatingAccessory   heatingAccessory `json:"heatingAccessory"`
	IgnitionOnDuration ignitionDuration `json:"ignitionOnDuration"`
	HeatVentSeat       *heatVentSeats   `json:"heatVentSeat,omitempty"`
}

type airTemp struct {
	Unit  int    `json:"unit"`
	Value string `json:"value"`
}

type heatingAccessory struct {
	RearWindow    int `json:"rearWindow"`
	SideMirror    int `json:"sideMirror"`
	SteeringWheel int `json:"steeringWheel"`
}

type ignitionDuration struct {
	Unit  int `json:"unit"`
	Value int `json:"value"`
}

type heatVentSeats struct {
	DriverSeat    seatSetting `json:"driverSeat"`
	PassengerSeat seatSetting `json:"passengerSeat"`
	RearLeftSeat  seatSetting `json:"rearLeftSeat"`
	RearRightSeat seatSetting `json:"rearRightSeat"`
}

type seatSetting struct {
	HeatVentType  int `json:"heatVentType"`
	HeatVentLevel int `json:"heatVentLevel"`
	HeatVentStep  int `json:"heatVentStep"`
}

type chargeLimitRequest struct {
	TargetSOCList []TargetSOC `json:"targetSOClist"`
}
