// Package httpapi gives the downstream policy layer described in
// spec.md §6 a concrete transport: a read-only HTTP surface over the
// core's Query operation. This package only ever calls the two Querier
// methods, Query and Halted — it has no path back into M2 or M3.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/ksiaz/obscore/internal/types"
)

// Querier is the one core capability this server depends on.
type Querier interface {
	Query(spec types.QuerySpec) types.Snapshot
	Halted() bool
}

// NewRouter builds the HTTP surface: GET /snapshot, GET /healthz, and
// GET /metrics (Prometheus exposition format).
func NewRouter(core Querier) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/snapshot", func(w http.ResponseWriter, req *http.Request) {
		snap := core.Query(types.QuerySpec{Type: "snapshot"})
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Error().Err(err).Msg("httpapi: failed to encode snapshot")
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if core.Halted() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("halted"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
