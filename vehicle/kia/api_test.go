package kia

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
)

const vehicleList = `{"status":{"statusCode":0},"payload":{"vehicleSummary":[
	{"vehicleIdentifier":"id1","vehicleKey":"key1","vin":"KNDC34AU0N0000001","nickName":"EV6","modelName":"EV6","modelYear":"2022"}
]}}`

// apiServer mimics the owners vehicle endpoints. finished steers the
// command poll outcome.
func apiServer(t *testing.T, finished *atomic.Value) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/ownr/gvl":
			_, _ = w.Write([]byte(vehicleList))

		case "/rems/door/lock", "/rems/door/unlock":
			require.Equal(t, "key1", r.Header.Get("vinkey"))
			w.Header().Set("Xid", "XID42")
			_ = json.NewEncoder(w).Encode(statusResponse{})

		case "/cmm/gts":
			payload := map[string]int{"remoteStatus": 1}
			if done, ok := finished.Load().(bool); ok && done {
				payload = map[string]int{"remoteStatus": 0, "calSyncStatus": 0}
			}
			_ = json.NewEncoder(w).Encode(actionStatusResponse{Payload: payload})

		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func testAPI(srv *httptest.Server) *API {
	log := util.NewLogger("test")

	identity := NewIdentity(log, Config{Username: "user@example.org", Password: "secret"}, nil)
	identity.baseURI = srv.URL + "/"
	identity.sessionID = "SID"

	return New(log, identity, DefaultCache)
}

func TestVehicles(t *testing.T) {
	var finished atomic.Value
	srv := apiServer(t, &finished)
	defer srv.Close()

	v := testAPI(srv)

	vehicles, err := v.Vehicles()
	require.NoError(t, err)
	require.Len(t, vehicles, 1)

	assert.Equal(t, "id1", vehicles[0].ID)
	assert.Equal(t, "key1", vehicles[0].Key)
	assert.Equal(t, "KNDC34AU0N0000001", vehicles[0].VIN)
	assert.Equal(t, "EV6", vehicles[0].Name)
}

func TestActionSerialization(t *testing.T) {
	var finished atomic.Value
	finished.Store(false)

	srv := apiServer(t, &finished)
	defer srv.Close()

	v := testAPI(srv)

	require.NoError(t, v.Lock("id1"))

	action, ok := v.LastAction("id1")
	require.True(t, ok)
	assert.Equal(t, "lock", action.Name)
	assert.Equal(t, "XID42", action.ID)

	// second command is refused while the first is pending
	err := v.Unlock("id1")
	assert.ErrorIs(t, err, api.ErrActionInProgress)

	// vehicle reports completion, the slot frees up
	finished.Store(true)

	done, err := v.CheckActionFinished("id1")
	require.NoError(t, err)
	assert.True(t, done)

	_, ok = v.LastAction("id1")
	assert.False(t, ok)

	require.NoError(t, v.Unlock("id1"))
}

func TestVehicleNotFound(t *testing.T) {
	var finished atomic.Value
	srv := apiServer(t, &finished)
	defer srv.Close()

	v := testAPI(srv)

	err := v.Lock("unknown")
	assert.ErrorIs(t, err, api.ErrVehicleNotFound)
}
