package vehicle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

func list(vins ...string) func() ([]api.Vehicle, error) {
	return func() ([]api.Vehicle, error) {
		res := make([]api.Vehicle, 0, len(vins))
		for _, vin := range vins {
			res = append(res, api.Vehicle{ID: "id-" + vin, VIN: vin})
		}
		return res, nil
	}
}

func TestEnsureVehicle(t *testing.T) {
	v, err := EnsureVehicle("VIN2", list("VIN1", "VIN2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "id-VIN2", v.ID)

	// case-insensitive match
	v, err = EnsureVehicle("vin1", list("VIN1", "VIN2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "VIN1", v.VIN)
}

func TestEnsureVehicleEmptyVin(t *testing.T) {
	// sole vehicle is selected without a vin
	v, err := EnsureVehicle("", list("VIN1"), nil)
	require.NoError(t, err)
	assert.Equal(t, "VIN1", v.VIN)

	// multiple vehicles demand an explicit vin
	_, err = EnsureVehicle("", list("VIN1", "VIN2"), nil)
	assert.ErrorIs(t, err, api.ErrVehicleNotFound)
}

func TestEnsureVehicleRefresh(t *testing.T) {
	stale := list("VIN1")
	fresh := list("VIN1", "VIN2")

	v, err := EnsureVehicle("VIN2", stale, fresh)
	require.NoError(t, err)
	assert.Equal(t, "VIN2", v.VIN)

	_, err = EnsureVehicle("VIN3", stale, fresh)
	assert.ErrorIs(t, err, api.ErrVehicleNotFound)
}

func TestEnsureVehicleListError(t *testing.T) {
	boom := errors.New("backend down")
	_, err := EnsureVehicle("VIN1", func() ([]api.Vehicle, error) {
		return nil, boom
	}, nil)

	assert.ErrorIs(t, err, boom)
}
