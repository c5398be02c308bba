package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/util"
)

func testServer(t *testing.T) (*httptest.Server, *util.Waiter, *util.Cache) {
	t.Helper()

	health := util.NewWaiter(time.Hour)
	cache := util.NewCache()

	httpd := NewHTTPd("localhost:0", health, cache)
	srv := httptest.NewServer(httpd.Router())
	t.Cleanup(srv.Close)

	return srv, health, cache
}

func TestHealth(t *testing.T) {
	srv, health, _ := testServer(t)

	health.Update()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestState(t *testing.T) {
	srv, _, cache := testServer(t)

	cache.Add(util.Param{Vehicle: "VIN1", Key: "updated", Val: "2026-08-24T20:15:30Z"})

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "2026-08-24T20:15:30Z", res["VIN1"]["updated"])
}

func TestVehicleState(t *testing.T) {
	srv, _, cache := testServer(t)

	cache.Add(util.Param{Vehicle: "VIN1", Key: "updated", Val: "now"})

	resp, err := http.Get(srv.URL + "/api/state/VIN1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/state/UNKNOWN")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
