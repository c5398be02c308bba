package kia

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/provider"
	"github.com/uvolink/uvolink/util"
	"github.com/uvolink/uvolink/util/request"
	"github.com/uvolink/uvolink/util/transport"
	"github.com/uvolink/uvolink/vehicle"
)

// DefaultCache is the status cache duration
const DefaultCache = time.Minute

// API implements the Kia owners api
type API struct {
	*request.Helper
	log      *util.Logger
	identity *Identity
	tracker  *vehicle.Tracker
	cache    time.Duration

	mu       sync.Mutex
	vehicles []VehicleSummary
	status   map[string]func() (api.VehicleState, error)
}

// New creates the owners api client
func New(log *util.Logger, identity *Identity, cache time.Duration) *API {
	if cache == 0 {
		cache = DefaultCache
	}

	v := &API{
		Helper:   request.NewHelper(log),
		log:      log,
		identity: identity,
		tracker:  vehicle.NewTracker(),
		cache:    cache,
		status:   make(map[string]func() (api.VehicleState, error)),
	}

	v.Client.Transport = &transport.Decorator{
		Decorator: identity.Request,
		Base:      v.Client.Transport,
	}

	return v
}

// Login establishes the account session
func (v *API) Login() error {
	return v.identity.Login()
}

// Reset drops the session, vehicle list and pending actions
func (v *API) Reset() {
	v.identity.Reset()

	v.mu.Lock()
	v.vehicles = nil
	v.mu.Unlock()

	v.tracker.Reset()
	provider.ResetCached()
}

func (v *API) fetchVehicles() ([]VehicleSummary, error) {
	var res vehiclesResponse
	if err := v.GetJSON(v.identity.baseURI+"ownr/gvl", &res); err != nil {
		return nil, err
	}
	if err := evalStatus(res.Status); err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.vehicles = res.Payload.VehicleSummary
	v.mu.Unlock()

	return res.Payload.VehicleSummary, nil
}

// Vehicles lists the account's vehicles
func (v *API) Vehicles() ([]api.Vehicle, error) {
	summaries, err := vehicle.RetryAuth(v, v.fetchVehicles)
	if err != nil {
		return nil, err
	}

	res := make([]api.Vehicle, 0, len(summaries))
	for _, s := range summaries {
		res = append(res, api.Vehicle{
			ID:    s.VehicleIdentifier,
			Key:   s.VehicleKey,
			VIN:   s.VIN,
			Name:  s.NickName,
			Model: s.ModelName,
			Year:  s.ModelYear,
		})
	}

	return res, nil
}

// vehicleKey resolves the request key for a vehicle id. Keys rotate per
// login, hence one list refresh on a miss.
func (v *API) vehicleKey(id string) (string, error) {
	v.mu.Lock()
	cached := v.vehicles
	v.mu.Unlock()

	for _, refresh := range []bool{false, true} {
		if refresh || cached == nil {
			var err error
			if cached, err = vehicle.RetryAuth(v, v.fetchVehicles); err != nil {
				return "", err
			}
		}

		for _, s := range cached {
			if s.VehicleIdentifier == id {
				return s.VehicleKey, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", api.ErrVehicleNotFound, id)
}

func (v *API) vinKeyHeaders(key string) map[string]string {
	headers := map[string]string{"vinkey": key}
	for k, val := range request.JSONEncoding {
		headers[k] = val
	}
	return headers
}

func (v *API) fetchStatus(id string) (VehicleInfo, error) {
	key, err := v.vehicleKey(id)
	if err != nil {
		return VehicleInfo{}, err
	}

	body := map[string]interface{}{
		"vehicleConfigReq": map[string]string{
			"airTempRange":       "0",
			"maintenance":        "1",
			"seatHeatCoolOption": "1",
			"vehicle":            "1",
			"vehicleFeature":     "1",
		},
		"vehicleInfoReq": map[string]string{
			"drivingActivty":  "0",
			"dtc":             "1",
			"enrollment":      "1",
			"functionalCards": "0",
			"location":        "1",
			"vehicleStatus":   "1",
			"weather":         "0",
		},
		"vinKey": []string{key},
	}

	req, err := request.New(http.MethodPost, v.identity.baseURI+"cmm/gvi", request.MarshalJSON(body), v.vinKeyHeaders(key))
	if err != nil {
		return VehicleInfo{}, err
	}

	var res vehicleInfoResponse
	if err := v.DoJSON(req, &res); err != nil {
		return VehicleInfo{}, err
	}
	if err := evalStatus(res.Status); err != nil {
		return VehicleInfo{}, err
	}
	if len(res.Payload.VehicleInfoList) == 0 {
		return VehicleInfo{}, fmt.Errorf("%w: empty status response", api.ErrVehicleNotFound)
	}

	return res.Payload.VehicleInfoList[0], nil
}

// StatusLatest returns the server-side vehicle snapshot
func (v *API) StatusLatest(id string) (api.VehicleState, error) {
	v.mu.Lock()
	getter, ok := v.status[id]
	if !ok {
		getter = provider.Cached(func() (api.VehicleState, error) {
			return vehicle.RetryAuth(v, func() (api.VehicleState, error) {
				doc, err := v.fetchStatus(id)
				if err != nil {
					return api.VehicleState{}, err
				}

				state := Normalize(doc)

				v.mu.Lock()
				for _, s := range v.vehicles {
					if s.VehicleIdentifier == id {
						state.VIN, state.Name = s.VIN, s.NickName
						state.Model, state.Year = s.ModelName, s.ModelYear
					}
				}
				v.mu.Unlock()

				return state, nil
			})
		}, v.cache)
		v.status[id] = getter
	}
	v.mu.Unlock()

	return getter()
}

// RequestSync asks the vehicle to push fresh data to the cloud
func (v *API) RequestSync(id string) error {
	return vehicle.RetryAuthE(v, func() error {
		key, err := v.vehicleKey(id)
		if err != nil {
			return err
		}

		body := map[string]int{"requestType": 0}
		req, err := request.New(http.MethodPost, v.identity.baseURI+"rems/rvs", request.MarshalJSON(body), v.vinKeyHeaders(key))
		if err != nil {
			return err
		}

		var res statusResponse
		if err := v.DoJSON(req, &res); err != nil {
			return err
		}

		if err := evalStatus(res.Status); err == nil {
			provider.ResetCached()
		} else {
			return err
		}

		return nil
	})
}

// CheckActionFinished polls the pending command. An all-zero poll payload
// means the vehicle completed it.
func (v *API) CheckActionFinished(id string) (bool, error) {
	action, ok := v.tracker.Pending(id)
	if !ok {
		return true, nil
	}

	finished, err := vehicle.RetryAuth(v, func() (bool, error) {
		key, err := v.vehicleKey(id)
		if err != nil {
			return false, err
		}

		body := map[string]string{"xid": action.ID}
		req, err := request.New(http.MethodPost, v.identity.baseURI+"cmm/gts", request.MarshalJSON(body), v.vinKeyHeaders(key))
		if err != nil {
			return false, err
		}

		var res actionStatusResponse
		if err := v.DoJSON(req, &res); err != nil {
			return false, err
		}
		if err := evalStatus(res.Status); err != nil {
			return false, err
		}

		for _, val := range res.Payload {
			if val != 0 {
				return false, nil
			}
		}
		return true, nil
	})

	if err == nil && finished {
		v.log.DEBUG.Printf("%s finished", action.Name)
		v.tracker.Clear(id)
	}

	return finished, err
}

// LastAction returns the still-tracked command, if any
func (v *API) LastAction(id string) (api.Action, bool) {
	return v.tracker.Pending(id)
}

// action dispatches a remote command and records its tracking id
func (v *API) action(id, name, method, path string, body interface{}) error {
	finished, err := v.CheckActionFinished(id)
	if err != nil {
		return err
	}
	if !finished {
		pending, _ := v.tracker.Pending(id)
		return fmt.Errorf("%w: %s still pending", api.ErrActionInProgress, pending.Name)
	}

	return vehicle.RetryAuthE(v, func() error {
		key, err := v.vehicleKey(id)
		if err != nil {
			return err
		}

		var rd io.Reader
		if body != nil {
			rd = request.MarshalJSON(body)
		}

		req, err := request.New(method, v.identity.baseURI+path, rd, v.vinKeyHeaders(key))
		if err != nil {
			return err
		}

		if err := v.tracker.Begin(id, api.Action{Name: name}); err != nil {
			return err
		}

		resp, err := v.Do(req)
		if err != nil {
			v.tracker.Clear(id)
			return fmt.Errorf("%w: %v", api.ErrTransport, err)
		}

		var res statusResponse
		if err := request.DecodeJSON(resp, &res); err != nil {
			v.tracker.Clear(id)
			return err
		}
		if err := evalStatus(res.Status); err != nil {
			v.tracker.Clear(id)
			return err
		}

		v.tracker.Update(id, resp.Header.Get("Xid"))
		provider.ResetCached()

		return nil
	})
}

// Lock locks the doors
func (v *API) Lock(id string) error {
	return v.action(id, "lock", http.MethodGet, "rems/door/lock", nil)
}

// Unlock unlocks the doors
func (v *API) Unlock(id string) error {
	return v.action(id, "unlock", http.MethodGet, "rems/door/unlock", nil)
}

// StartClimate starts remote climate with the given settings
func (v *API) StartClimate(id string, spec api.ClimateSpec) error {
	heating := 0
	if spec.Heating {
		heating = 1
	}

	body := climateRequest{
		RemoteClimate: remoteClimate{
			AirCtrl: spec.Climate,
			AirTemp: airTemp{
				Unit:  1,
				Value: fmt.Sprintf("%d", spec.SetTemp),
			},
			Defrost: spec.Defrost,
			HeatingAccessory: heatingAccessory{
				RearWindow:    heating,
				SideMirror:    heating,
				SteeringWheel: heating,
			},
			IgnitionOnDuration: ignitionDuration{
				Unit:  4,
				Value: 9,
			},
		},
	}

	if spec.DriverSeat.Mode != api.SeatOff || spec.PassengerSeat.Mode != api.SeatOff ||
		spec.RearLeftSeat.Mode != api.SeatOff || spec.RearRightSeat.Mode != api.SeatOff {
		body.RemoteClimate.HeatVentSeat = &heatVentSeats{
			DriverSeat:    EncodeSeat(spec.DriverSeat.Mode),
			PassengerSeat: EncodeSeat(spec.PassengerSeat.Mode),
			RearLeftSeat:  EncodeSeat(spec.RearLeftSeat.Mode),
			RearRightSeat: EncodeSeat(spec.RearRightSeat.Mode),
		}
	}

	return v.action(id, "start_climate", http.MethodPost, "rems/start", body)
}

// StopClimate stops remote climate
func (v *API) StopClimate(id string) error {
	return v.action(id, "stop_climate", http.MethodGet, "rems/stop", nil)
}

// StartCharge starts charging
func (v *API) StartCharge(id string) error {
	body := map[string]int{"chargeRatio": 100}
	return v.action(id, "start_charge", http.MethodPost, "evc/charge", body)
}

// StopCharge stops charging
func (v *API) StopCharge(id string) error {
	return v.action(id, "stop_charge", http.MethodGet, "evc/cancel", nil)
}

// SetChargeLimits sets the ac and dc target soc
func (v *API) SetChargeLimits(id string, ac, dc int) error {
	body := chargeLimitRequest{
		TargetSOCList: []TargetSOC{
			{PlugType: api.PlugDC, TargetSOCLevel: dc},
			{PlugType: api.PlugAC, TargetSOCLevel: ac},
		},
	}
	return v.action(id, "set_charge_limits", http.MethodPost, "evc/sts", body)
}

var _ api.Client = (*API)(nil)
