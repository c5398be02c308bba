package bluelink

import (
	"sort"
	"strconv"
	"time"

	"github.com/uvolink/uvolink/api"
)

const (
	// TemperatureMin is the coldest settable cabin temperature in °F
	TemperatureMin = 62
	// TemperatureMax is the warmest settable cabin temperature in °F
	TemperatureMax = 82
)

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

func parseDateTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "20060102150405"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func seatConfig(d VehicleDetails, location string) (SeatConfig, bool) {
	for _, cfg := range d.SeatConfigurations.SeatConfigs {
		if cfg.SeatLocationID == location {
			return cfg, true
		}
	}
	return SeatConfig{}, false
}

func seatState(raw int, cfg SeatConfig, ok bool) api.SeatState {
	if !ok {
		return api.SeatState{}
	}

	return api.SeatState{
		Mode:   DecodeSeatLevels(raw, cfg),
		Levels: SeatLevels(cfg),
	}
}

// Normalize maps the telematics status and enrollment record to the
// canonical snapshot. Capability data lives in the enrollment record,
// state in the status report.
func Normalize(status VehicleStatus, d VehicleDetails, loc *locationResponse) api.VehicleState {
	synced := parseDateTime(status.DateTime)

	res := api.VehicleState{
		VIN:   d.VIN,
		Name:  d.NickName,
		Model: d.ModelCode,
		Year:  d.ModelYear,

		LastSynced:  synced,
		LastFetched: synced,

		Odometer: float64(d.Odometer),

		DoorsLocked: status.DoorLock,
		DoorHood:    status.HoodOpen,
		DoorTrunk:   status.TrunkOpen,
		DoorFrontL:  status.DoorOpen.FrontLeft != 0,
		DoorFrontR:  status.DoorOpen.FrontRight != 0,
		DoorRearL:   status.DoorOpen.BackLeft != 0,
		DoorRearR:   status.DoorOpen.BackRight != 0,

		EngineOn:     status.Engine,
		ClimateOn:    status.AirCtrlOn,
		SetTemp:      parseAirTemp(status.AirTemp.Value),
		Defrost:      status.Defrost,
		SteeringHeat: status.SteerWheelHeat != 0,
		RearWindow:   status.SideBackWindowHeat != 0,
		SideMirror:   status.SideMirrorHeat != 0,

		LowFuel:      status.LowFuelLight,
		FuelRange:    status.Dte.Value,
		Battery12V:   status.Battery.BatSoc,
		TirePressLow: status.TirePressureLamp.TirePressureLampAll != 0,

		Capabilities: api.Capabilities{
			EV:                d.EvStatus == "E",
			SteeringWheelHeat: d.SteeringWheelHeatCapable == "YES",
			SideMirrorHeat:    d.SideMirrorHeatCapable == "YES",
			RearWindowHeat:    d.RearWindowHeatCapable == "YES",
		},
	}

	driverCfg, driverOk := seatConfig(d, "1")
	passengerCfg, passengerOk := seatConfig(d, "2")
	rearLeftCfg, rearLeftOk := seatConfig(d, "3")
	rearRightCfg, rearRightOk := seatConfig(d, "4")

	res.Capabilities.FrontSeats = driverOk || passengerOk
	res.Capabilities.RearSeats = rearLeftOk || rearRightOk

	if seats := status.SeatHeaterVentState; seats != nil {
		res.DriverSeat = seatState(seats.DrvSeatHeatState, driverCfg, driverOk)
		res.PassengerSeat = seatState(seats.AstSeatHeatState, passengerCfg, passengerOk)
		res.RearLeftSeat = seatState(seats.RlSeatHeatState, rearLeftCfg, rearLeftOk)
		res.RearRightSeat = seatState(seats.RrSeatHeatState, rearRightCfg, rearRightOk)
	} else {
		res.DriverSeat = seatState(0, driverCfg, driverOk)
		res.PassengerSeat = seatState(0, passengerCfg, passengerOk)
		res.RearLeftSeat = seatState(0, rearLeftCfg, rearLeftOk)
		res.RearRightSeat = seatState(0, rearRightCfg, rearRightOk)
	}

	if loc != nil {
		res.Capabilities.Location = true
		res.Latitude = loc.Coord.Lat
		res.Longitude = loc.Coord.Lon
	}

	if ev := status.EvStatus; ev != nil && res.Capabilities.EV {
		res.EVBatteryLevel = ev.BatteryStatus
		res.EVCharging = ev.BatteryCharge
		res.EVPluggedIn = ev.BatteryPlugin > 0
		res.EVChargeMinutes = ev.RemainTime2.Atc.Value

		if len(ev.DrvDistance) > 0 {
			res.EVRange = ev.DrvDistance[0].RangeByFuel.EvModeRange.Value
			if gas := ev.DrvDistance[0].RangeByFuel.GasModeRange.Value; gas > 0 {
				res.FuelRange = gas
			}
		}

		if len(ev.ReservChargeInfos.TargetSOCList) > 0 {
			res.Capabilities.TargetSOC = true

			limits := make([]api.ChargeLimit, 0, len(ev.ReservChargeInfos.TargetSOCList))
			for _, soc := range ev.ReservChargeInfos.TargetSOCList {
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
