// Package admin exposes a read-only HTTP surface over a running router
// node: health, the current routing table, configured neighbors, and
// Prometheus metrics. Nothing here ever mutates the node.
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okdaichi/dvrouter/internal/router"
)

// Snapshotter is the minimal read surface admin needs from a node,
// letting handlers be built and tested against anything that can produce
// a table snapshot. The neighbor list is passed to NewMux separately.
type Snapshotter interface {
	Snapshot() map[router.Endpoint]router.Route
}

// NewMux builds the admin HTTP surface: /healthz, /table, /neighbors, and
// /metrics (via the default Prometheus registry's handler).
func NewMux(node Snapshotter, neighbors router.NeighborMap) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/healthz", &healthHandler{})
	mux.Handle("/table", &tableHandler{node: node})
	mux.Handle("/neighbors", &neighborsHandler{neighbors: neighbors})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

type healthHandler struct{}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type tableHandler struct {
	node Snapshotter
}

func (h *tableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.node.Snapshot())
}

type neighborsHandler struct {
	neighbors router.NeighborMap
}

func (h *neighborsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.neighbors)
}
