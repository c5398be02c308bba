package kia

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

const statusDoc = `{
	"vehicleConfig": {
		"vehicleDetail": {"vehicle": {"mileage": 12345.6}},
		"vehicleFeature": {"remoteFeature": {"lock": "1", "start": "1", "heatedSeat": "1", "ventSeat": "1", "heatedSteeringWheel": "1", "steeringWheelStepLevel": 1}}
	},
	"lastVehicleInfo": {
		"location": {"coord": {"lat": 37.56, "lon": -122.32}},
		"vehicleStatusRpt": {
			"vehicleStatus": {
				"syncDate": {"utc": "20260824211530"},
				"dateTime": {"utc": "20260824213002"},
				"doorLock": true,
				"doorStatus": {"hood": 0, "trunk": 0, "frontLeft": 0, "frontRight": 0, "backLeft": 1, "backRight": 0},
				"engine": false,
				"lowFuelLight": false,
				"fuelLevel": 0,
				"batteryStatus": {"stateOfCharge": 87},
				"tirePressure": {"all": 0},
				"distanceToEmpty": {"value": 0},
				"climate": {
					"airCtrl": true,
					"airTemp": {"value": "LOW", "unit": 1},
					"defrost": true,
					"heatingAccessory": {"rearWindow": 1, "sideMirror": 0, "steeringWheel": 1}
				},
				"seatHeaterVentState": {"flSeatHeatState": 8, "frSeatHeatState": 0, "rlSeatHeatState": 4, "rrSeatHeatState": 1},
				"evStatus": {
					"batteryStatus": 71,
					"batteryCharge": true,
					"batteryPlugin": 1,
					"targetSOC": [
						{"plugType": 1, "targetSOClevel": 90},
						{"plugType": 0, "targetSOClevel": 80}
					],
					"remainChargeTime": [{"timeInterval": {"value": 125}}],
					"drvDistance": [{"rangeByFuel": {"evModeRange": {"value": 182.5}, "gasModeRange": {"value": 0}, "totalAvailableRange": {"value": 182.5}}}]
				}
			}
		}
	}
}`

func TestNormalize(t *testing.T) {
	var doc VehicleInfo
	require.NoError(t, json.Unmarshal([]byte(statusDoc), &doc))

	state := Normalize(doc)

	assert.Equal(t, time.Date(2026, 8, 24, 21, 15, 30, 0, time.UTC), state.LastSynced)
	assert.Equal(t, 12345.6, state.Odometer)

	assert.True(t, state.DoorsLocked)
	assert.True(t, state.DoorRearL)
	assert.False(t, state.DoorFrontL)

	assert.True(t, state.ClimateOn)
	assert.Equal(t, TemperatureMin, state.SetTemp)
	assert.True(t, state.Defrost)
	assert.True(t, state.SteeringHeat)
	assert.True(t, state.RearWindow)
	assert.False(t, state.SideMirror)

	assert.Equal(t, 87, state.Battery12V)

	assert.Equal(t, api.SeatState{Mode: api.SeatHeatHigh, Levels: 3}, state.DriverSeat)
	assert.Equal(t, api.SeatState{Mode: api.SeatOff, Levels: 3}, state.PassengerSeat)
	assert.Equal(t, api.SeatState{Mode: api.SeatCoolMedium, Levels: 3}, state.RearLeftSeat)
	assert.Equal(t, api.SeatState{Mode: api.SeatOn, Levels: 3}, state.RearRightSeat)

	assert.True(t, state.Capabilities.EV)
	assert.True(t, state.Capabilities.FrontSeats)
	assert.True(t, state.Capabilities.Location)
	assert.True(t, state.Capabilities.TargetSOC)
	assert.True(t, state.Capabilities.SteeringWheelHeat)

	assert.Equal(t, 71, state.EVBatteryLevel)
	assert.True(t, state.EVCharging)
	assert.True(t, state.EVPluggedIn)
	assert.Equal(t, 125, state.EVChargeMinutes)
	assert.Equal(t, 182.5, state.EVRange)

	// dc limit sorts before ac regardless of response order
	require.Len(t, state.TargetSOC, 2)
	assert.Equal(t, api.ChargeLimit{PlugType: api.PlugDC, Level: 80}, state.TargetSOC[0])
	assert.Equal(t, api.ChargeLimit{PlugType: api.PlugAC, Level: 90}, state.TargetSOC[1])

	assert.Equal(t, 37.56, state.Latitude)
}

func TestNormalizeWithoutOptions(t *testing.T) {
	var doc VehicleInfo

	state := Normalize(doc)

	assert.False(t, state.Capabilities.EV)
	assert.False(t, state.Capabilities.FrontSeats)
	assert.False(t, state.Capabilities.Location)
	assert.Zero(t, state.DriverSeat.Levels)
	assert.True(t, state.LastSynced.IsZero())
}

func TestParseAirTemp(t *testing.T) {
	assert.Equal(t, TemperatureMin, parseAirTemp("LOW"))
	assert.Equal(t, TemperatureMax, parseAirTemp("HIGH"))
	assert.Equal(t, 72, parseAirTemp("72"))
	assert.Equal(t, 0, parseAirTemp(""))
}
