package bluelink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
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

// API implements the Hyundai/Genesis telematics api
type API struct {
	*request.Helper
	log      *util.Logger
	brand    Brand
	identity *Identity
	tracker  *vehicle.Tracker
	cache    time.Duration

	mu       sync.Mutex
	vehicles []VehicleDetails
	status   map[string]func() (api.VehicleState, error)
}

// New creates the telematics api client
func New(log *util.Logger, identity *Identity, cache time.Duration) *API {
	if cache == 0 {
		cache = DefaultCache
	}

	v := &API{
		Helper:   request.NewHelper(log),
		log:      log,
		brand:    identity.brand,
		identity: identity,
		tracker:  vehicle.NewTracker(),
		cache:    cache,
		status:   make(map[string]func() (api.VehicleState, error)),
	}

	// api is slow when the vehicle needs waking
	v.Client.Timeout = 120 * time.Second

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

// doJSON executes the request and maps the telematics error envelope
func (v *API) doJSON(req *http.Request, res interface{}) error {
	resp, err := v.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrTransport, err)
	}

	b, err := request.ReadBody(resp)

	// error envelopes accompany both 200 and 4xx responses
	if len(b) > 0 {
		var envelope errorResponse
		if jsonErr := json.Unmarshal(b, &envelope); jsonErr == nil {
			if e := evalError(envelope); e != nil {
				return e
			}
		}
	}

	if err != nil {
		var se request.StatusError
		if errors.As(err, &se) && se.HasStatus(http.StatusUnauthorized, http.StatusForbidden) {
			return fmt.Errorf("%w: %v", api.ErrAuthFail, err)
		}
		return err
	}

	if res != nil && len(b) > 0 {
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "json") {
			return fmt.Errorf("%w: unexpected content type: %s", api.ErrAuthFail, ct)
		}
		return json.Unmarshal(b, res)
	}

	return nil
}

func (v *API) fetchVehicles() ([]VehicleDetails, error) {
	var res enrollmentResponse

	uri := v.brand.BaseURI() + "enrollment/details/" + v.identity.Username()
	req, err := request.New(http.MethodGet, uri, nil, request.AcceptJSON)
	if err != nil {
		return nil, err
	}
	if err := v.doJSON(req, &res); err != nil {
		return nil, err
	}

	vehicles := make([]VehicleDetails, 0, len(res.EnrolledVehicleDetails))
	for _, entry := range res.EnrolledVehicleDetails {
		if entry.VehicleDetails.EnrollmentStatus != "CANCELLED" {
			vehicles = append(vehicles, entry.VehicleDetails)
		}
	}

	v.mu.Lock()
	v.vehicles = vehicles
	v.mu.Unlock()

	return vehicles, nil
}

func generation(d VehicleDetails) int {
	gen, err := strconv.Atoi(d.VehicleGeneration)
	if err != nil || gen == 0 {
		gen = 2
	}
	return gen
}

// Vehicles lists the account's enrolled vehicles
func (v *API) Vehicles() ([]api.Vehicle, error) {
	details, err := vehicle.RetryAuth(v, v.fetchVehicles)
	if err != nil {
		return nil, err
	}

	res := make([]api.Vehicle, 0, len(details))
	for _, d := range details {
		res = append(res, api.Vehicle{
			ID:         d.Regid,
			Key:        d.Regid,
			VIN:        d.VIN,
			Name:       d.NickName,
			Model:      d.ModelCode,
			Year:       d.ModelYear,
			EV:         d.EvStatus == "E",
			Generation: generation(d),
		})
	}

	return res, nil
}

// findVehicle resolves the enrollment record for a vehicle id with one
// list refresh on a miss
func (v *API) findVehicle(id string) (VehicleDetails, error) {
	v.mu.Lock()
	cached := v.vehicles
	v.mu.Unlock()

	for _, refresh := range []bool{false, true} {
		if refresh || cached == nil {
			var err error
			if cached, err = vehicle.RetryAuth(v, v.fetchVehicles); err != nil {
				return VehicleDetails{}, err
			}
		}

		for _, d := range cached {
			if d.Regid == id {
				return d, nil
			}
		}
	}

	return VehicleDetails{}, fmt.Errorf("%w: %s", api.ErrVehicleNotFound, id)
}

func vehicleHeaders(d VehicleDetails) map[string]string {
	return map[string]string{
		"registrationId": d.Regid,
		"gen":            strconv.Itoa(generation(d)),
		"vin":            d.VIN,
	}
}

func (v *API) fetchStatus(d VehicleDetails) (VehicleStatus, error) {
	var res statusResponse

	uri := v.brand.BaseURI() + "rcs/rvs/vehicleStatus"
	req, err := request.New(http.MethodGet, uri, nil, vehicleHeaders(d))
	if err != nil {
		return VehicleStatus{}, err
	}

	err = v.doJSON(req, &res)
	return res.VehicleStatus, err
}

// location queries the vehicle position. Position lookups fail routinely
// on moving or garaged vehicles, so failure is tolerated.
func (v *API) location(d VehicleDetails) *locationResponse {
	var res locationResponse

	uri := v.brand.BaseURI() + "rcs/rfc/findMyCar"
	req, err := request.New(http.MethodGet, uri, nil, vehicleHeaders(d))
	if err != nil {
		return nil
	}

	if err := v.doJSON(req, &res); err != nil {
		v.log.DEBUG.Printf("location unavailable: %v", err)
		return nil
	}

	if res.Coord.Lat == 0 && res.Coord.Lon == 0 {
		return nil
	}

	return &res
}

// StatusLatest returns the server-side vehicle snapshot
func (v *API) StatusLatest(id string) (api.VehicleState, error) {
	v.mu.Lock()
	getter, ok := v.status[id]
	if !ok {
		getter = provider.Cached(func() (api.VehicleState, error) {
			return vehicle.RetryAuth(v, func() (api.VehicleState, error) {
				d, err := v.findVehicle(id)
				if err != nil {
					return api.VehicleState{}, err
				}

				status, err := v.fetchStatus(d)
				if err != nil {
					return api.VehicleState{}, err
				}

				// refresh the enrollment record, it carries odometer
				// and capability data
				if _, err := v.fetchVehicles(); err == nil {
					if fresh, err := v.findVehicle(id); err == nil {
						d = fresh
					}
				}

				return Normalize(status, d, v.location(d)), nil
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
		d, err := v.findVehicle(id)
		if err != nil {
			return err
		}

		headers := vehicleHeaders(d)
		headers["REFRESH"] = "true"

		uri := v.brand.BaseURI() + "rcs/rvs/vehicleStatus"
		req, err := request.New(http.MethodGet, uri, nil, headers)
		if err != nil {
			return err
		}

		if err := v.doJSON(req, nil); err != nil {
			return err
		}

		provider.ResetCached()
		return nil
	})
}

// CheckActionFinished reports command completion. The telematics api has
// no tracking endpoint; commands are assumed complete once accepted.
func (v *API) CheckActionFinished(id string) (bool, error) {
	v.tracker.Clear(id)
	return true, nil
}

// LastAction returns the still-tracked command, if any
func (v *API) LastAction(id string) (api.Action, bool) {
	return v.tracker.Pending(id)
}

// action dispatches a remote command
func (v *API) action(id, name, path string, body interface{}) error {
	return vehicle.RetryAuthE(v, func() error {
		d, err := v.findVehicle(id)
		if err != nil {
			return err
		}

		if err := v.tracker.Begin(id, api.Action{Name: name}); err != nil {
			return err
		}

		var rd io.Reader
		if body != nil {
			rd = request.MarshalJSON(body)
		} else {
			rd = strings.NewReader("{}")
		}

		req, err := request.New(http.MethodPost, v.brand.BaseURI()+path, rd, vehicleHeaders(d))
		if err != nil {
			v.tracker.Clear(id)
			return err
		}
		req.Header.Set("Content-Type", request.JSONContent)

		if err := v.doJSON(req, nil); err != nil {
			v.tracker.Clear(id)
			return err
		}

		provider.ResetCached()
		return nil
	})
}

// Lock locks the doors
func (v *API) Lock(id string) error {
	return v.action(id, "lock", "rcs/rdo/off", nil)
}

// Unlock unlocks the doors
func (v *API) Unlock(id string) error {
	return v.action(id, "unlock", "rcs/rdo/on", nil)
}

// StartClimate starts remote climate with the given settings
func (v *API) StartClimate(id string, spec api.ClimateSpec) error {
	d, err := v.findVehicle(id)
	if err != nil {
		return err
	}

	climate := 0
	if spec.Climate {
		climate = 1
	}
	heating := 0
	if spec.Heating {
		heating = 1
	}

	seats := &seatHeaterVent{
		DrvSeatHeatState: EncodeSeat(spec.DriverSeat.Mode),
		AstSeatHeatState: EncodeSeat(spec.PassengerSeat.Mode),
		RlSeatHeatState:  EncodeSeat(spec.RearLeftSeat.Mode),
		RrSeatHeatState:  EncodeSeat(spec.RearRightSeat.Mode),
	}

	if d.EvStatus == "E" {
		body := evClimateRequest{
			AirCtrl:  climate,
			AirTemp:  airTemp{Value: strconv.Itoa(spec.SetTemp), Unit: 1},
			Defrost:  spec.Defrost,
			Heating1: heating,
		}

		// seat and duration fields confuse older model years
		if generation(d) >= 3 {
			body.IgniOnDuration = 10
			body.SeatHeaterVentInfo = seats
		}

		return v.action(id, "start_climate", "evc/fatc/start", body)
	}

	body := iceClimateRequest{
		AirCtrl:            climate,
		AirTemp:            airTemp{Value: strconv.Itoa(spec.SetTemp), Unit: 1},
		Defrost:            spec.Defrost,
		Heating1:           heating,
		IgniOnDuration:     10,
		SeatHeaterVentInfo: seats,
		Username:           v.identity.Username(),
		VIN:                d.VIN,
	}

	return v.action(id, "start_climate", "rcs/rsc/start", body)
}

// StopClimate stops remote climate
func (v *API) StopClimate(id string) error {
	d, err := v.findVehicle(id)
	if err != nil {
		return err
	}

	path := "rcs/rsc/stop"
	if d.EvStatus == "E" {
		path = "evc/fatc/stop"
	}

	return v.action(id, "stop_climate", path, nil)
}

func (v *API) requireEV(id string) error {
	d, err := v.findVehicle(id)
	if err != nil {
		return err
	}
	if d.EvStatus != "E" {
		return fmt.Errorf("%s is not an ev", d.VIN)
	}
	return nil
}

// StartCharge starts charging
func (v *API) StartCharge(id string) error {
	if err := v.requireEV(id); err != nil {
		return err
	}
	return v.action(id, "start_charge", "evc/charge/start", nil)
}

// StopCharge stops charging
func (v *API) StopCharge(id string) error {
	if err := v.requireEV(id); err != nil {
		return err
	}
	return v.action(id, "stop_charge", "evc/charge/stop", nil)
}

// SetChargeLimits sets the ac and dc target soc
func (v *API) SetChargeLimits(id string, ac, dc int) error {
	if err := v.requireEV(id); err != nil {
		return err
	}

	body := chargeLimitRequest{
		TargetSOCList: []TargetSOC{
			{PlugType: api.PlugDC, TargetSOCLevel: dc},
			{PlugType: api.PlugAC, TargetSOCLevel: ac},
		},
	}

	return v.action(id, "set_charge_limits", "evc/charge/targetsoc/set", body)
}

var _ api.Client = (*API)(nil)
