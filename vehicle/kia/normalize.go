package kia

import (
	"sort"
	"strconv"
	"time"

	"github.com/uvolink/uvolink/api"
)

const (
	// TemperatureMin is the coldest settable cabin temperature in °F,
	// reported by the vehicle as "LOW"
	TemperatureMin = 62
	// TemperatureMax is the warmest settable cabin temperature in °F,
	// reported by the vehicle as "HIGH"
	TemperatureMax = 82

	syncTimeFormat = "20060102150405"
)

func parseSyncTime(s string) time.Time {
	t, err := time.Parse(syncTimeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseAirTemp(s string) int {
	switch s {
	case "LOW":
		return TemperatureMin
	case "HIGH":
		return TemperatureMax
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// Normalize maps the owners status document to the canonical snapshot
func Normalize(doc VehicleInfo) api.VehicleState {
	status := doc.LastVehicleInfo.VehicleStatusRpt.VehicleStatus
	cfg := doc.VehicleConfig

	res := api.VehicleState{
		LastSynced:  parseSyncTime(status.SyncDate.UTC),
		LastFetched: parseSyncTime(status.DateTime.UTC),

		Odometer: cfg.VehicleDetail.Vehicle.Mileage,

		DoorsLocked: status.DoorLock,
		DoorHood:    bool(status.DoorStatus.Hood),
		DoorTrunk:   bool(status.DoorStatus.Trunk),
		DoorFrontL:  bool(status.DoorStatus.FrontLeft),
		DoorFrontR:  bool(status.DoorStatus.FrontRight),
		DoorRearL:   bool(status.DoorStatus.BackLeft),
		DoorRearR:   bool(status.DoorStatus.BackRight),

		EngineOn:     status.Engine,
		ClimateOn:    status.Climate.AirCtrl,
		SetTemp:      parseAirTemp(status.Climate.AirTemp.Value),
		Defrost:      status.Climate.Defrost,
		SteeringHeat: bool(status.Climate.HeatingAccessory.SteeringWheel),
		RearWindow:   bool(status.Climate.HeatingAccessory.RearWindow),
		SideMirror:   bool(status.Climate.HeatingAccessory.SideMirror),

		FuelLevel:    status.FuelLevel,
		FuelRange:    status.DistanceToEmpty.Value,
		LowFuel:      bool(status.LowFuelLight),
		Battery12V:   status.BatteryStatus.StateOfCharge,
		TirePressLow: bool(status.TirePressure.All),

		Latitude:  doc.LastVehicleInfo.Location.Coord.Lat,
		Longitude: doc.LastVehicleInfo.Location.Coord.Lon,

		Capabilities: api.Capabilities{
			SteeringWheelHeat: bool(cfg.VehicleFeature.RemoteFeature.HeatedSteeringWheel),
			RearWindowHeat:    true,
			SideMirrorHeat:    true,
			Location:          doc.LastVehicleInfo.Location.Coord.Lat != 0 || doc.LastVehicleInfo.Location.Coord.Lon != 0,
		},
	}

	// seat capabilities come from the reported state, not hard-coded
	if seats := status.SeatHeaterVentState; seats != nil {
		res.Capabilities.FrontSeats = true
		res.Capabilities.RearSeats = true

		res.DriverSeat = api.SeatState{Mode: DecodeSeat(seats.FlSeatHeatState), Levels: 3}
		res.PassengerSeat = api.SeatState{Mode: DecodeSeat(seats.FrSeatHeatState), Levels: 3}
		res.RearLeftSeat = api.SeatState{Mode: DecodeSeat(seats.RlSeatHeatState), Levels: 3}
		res.RearRightSeat = api.SeatState{Mode: DecodeSeat(seats.RrSeatHeatState), Levels: 3}
	}

	if ev := status.EvStatus; ev != nil {
		res.Capabilities.EV = true
		res.EVBatteryLevel = ev.BatteryStatus
		res.EVCharging = ev.BatteryCharge
		res.EVPluggedIn = ev.BatteryPlugin > 0

		if len(ev.RemainChargeTime) > 0 {
			res.EVChargeMinutes = ev.RemainChargeTime[0].TimeInterval.Value
		}

		if len(ev.DrvDistance) > 0 {
			res.EVRange = ev.DrvDistance[0].RangeByFuel.EvModeRange.Value
			if gas := ev.DrvDistance[0].RangeByFuel.GasModeRange.Value; gas > 0 {
				res.FuelRange = gas
			}
		}

		if len(ev.TargetSOC) > 0 {
			res.Capabilities.TargetSOC = true

			limits := make([]api.ChargeLimit, 0, len(ev.TargetSOC))
			for _, soc := range ev.TargetSOC {
				limits = append(limits, api.ChargeLimit{
					PlugType: soc.PlugType,
					Level:    soc.TargetSOCLevel,
				})
			}
			sort.Slice(limits, func(i, j int) bool {
				return limits[i].PlugType < limits[j].PlugType
			})
			res.TargetSOC = limits
		}
	}

	return res
}
