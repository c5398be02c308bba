package kia

import "github.com/uvolink/uvolink/api"

// seat wire values: heatVentType 0=off 1=heat 2=cool,
// heatVentLevel 1=off 2=low 3=medium 4=high,
// heatVentStep counts down from low=3 to high=1

// DecodeSeat maps a raw seat state integer to the canonical seat mode.
// The owners api reports 0-8: 0/2 off, 1 generic on, 3-5 cool low to
// high, 6-8 heat low to high. Unknown values read as off.
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

// EncodeSeat maps a canonical seat mode to the command wire triple
func EncodeSeat(mode api.SeatMode) seatSetting {
	switch mode {
	case api.SeatHeatHigh:
		return seatSetting{HeatVentType: 1, HeatVentLevel: 4, HeatVentStep: 1}
	case api.SeatHeatMedium:
		return seatSetting{HeatVentType: 1, HeatVentLevel: 3, HeatVentStep: 2}
	case api.SeatHeatLow, api.SeatOn:
		return seatSetting{HeatVentType: 1, HeatVentLevel: 2, HeatVentStep: 3}
	case api.SeatCoolHigh:
		return seatSetting{HeatVentType: 2, HeatVentLevel: 4, HeatVentStep: 1}
	case api.SeatCoolMedium:
		return seatSetting{HeatVentType: 2, HeatVentLevel: 3, HeatVentStep: 2}
	case api.SeatCoolLow:
		return seatSetting{HeatVentType: 2, HeatVentLevel: 2, HeatVentStep: 3}
	default:
		return seatSetting{HeatVentType: 0, HeatVentLevel: 1, HeatVentStep: 0}
	}
}

// decodeSetting maps a command wire triple back to the canonical mode
func decodeSetting(s seatSetting) api.SeatMode {
	level := s.HeatVentLevel - 2 // low=2, medium=3, high=4
	if level < 0 || level > 2 {
		return api.SeatOff
	}

	switch s.HeatVentType {
	case 1:
		return api.SeatHeatLow + api.SeatMode(level)
	case 2:
		return api.SeatCoolLow + api.SeatMode(level)
	default:
		return api.SeatOff
	}
}
