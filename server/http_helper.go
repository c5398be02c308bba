package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/uvolink/uvolink/util"
)

// jsonHandler is a middleware that decorates responses with JSON and CORS headers
func jsonHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		h.ServeHTTP(w, r)
	})
}

func jsonResponse(w http.ResponseWriter, r *http.Request, content interface{}) {
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(content); err != nil {
		log.ERROR.Printf("httpd: failed to encode JSON: %v", err)
	}
}

// healthHandler reports whether the refresh loops still produce values
func healthHandler(health *util.Waiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.Overdue(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		res := struct {
			OK bool `json:"ok"`
		}{OK: true}
		jsonResponse(w, r, res)
	}
}

// stateHandler returns the combined state of all vehicles
func stateHandler(cache *util.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, r, cache.State())
	}
}

// vehicleHandler returns the state of a single vehicle
func vehicleHandler(cache *util.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := cache.Vehicle(mux.Vars(r)["vehicle"])

		if len(res) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		jsonResponse(w, r, res)
	}
}
