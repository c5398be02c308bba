package vehicle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thoas/go-funk"
	"github.com/uvolink/uvolink/api"
)

// ensureVehicle ensures that the vehicle is available on the account and
// returns it. An empty vin selects the sole vehicle of the account.
func ensureVehicle(vin string, list func() ([]api.Vehicle, error)) (api.Vehicle, error) {
	_, res, err := ensureVehicleGen(vin, list, func(v api.Vehicle) (string, api.Vehicle) {
		return v.VIN, v
	})

	return res, err
}

// EnsureVehicle resolves a vehicle with one list refresh when it is
// unknown. Vehicle keys rotate between logins, so a stale list is the
// expected cause of a miss.
func EnsureVehicle(vin string, cached, fresh func() ([]api.Vehicle, error)) (api.Vehicle, error) {
	res, err := ensureVehicle(vin, cached)
	if errors.Is(err, api.ErrVehicleNotFound) && fresh != nil {
		res, err = ensureVehicle(vin, fresh)
	}

	return res, err
}

// ensureVehicleGen resolves a vehicle and extracts a result from it
func ensureVehicleGen[T, R any](
	vin string,
	list func() ([]T, error),
	extract func(T) (string, R),
) (string, R, error) {
	vehicles, err := list()
	if err != nil {
		return "", *new(R), fmt.Errorf("cannot get vehicles: %w", err)
	}

	if vin = strings.ToUpper(strings.TrimSpace(vin)); vin != "" {
		// vin defined but doesn't exist
		for _, vehicle := range vehicles {
			if vin2, res := extract(vehicle); strings.EqualFold(vin2, vin) {
				return vin2, res, nil
			}
		}

		vins := funk.Map(vehicles, func(v T) string {
			vin2, _ := extract(v)
			return vin2
		}).([]string)

		err = fmt.Errorf("%w: %s not in %v", api.ErrVehicleNotFound, vin, vins)
	} else {
		// vin empty
		if len(vehicles) == 1 {
			vin, res := extract(vehicles[0])
			return vin, res, nil
		}

		err = fmt.Errorf("%w: account has %d vehicles, vin required", api.ErrVehicleNotFound, len(vehicles))
	}

	return "", *new(R), err
}
