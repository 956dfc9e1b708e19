package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okdaichi/dvrouter/internal/router"
)

type fakeSnapshotter struct {
	routes map[router.Endpoint]router.Route
}

func (f *fakeSnapshotter) Snapshot() map[router.Endpoint]router.Route {
	return f.routes
}

func TestHealthzHandler_ReturnsOK(t *testing.T) {
	mux := NewMux(&fakeSnapshotter{}, router.NeighborMap{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTableHandler_ReturnsSnapshot(t *testing.T) {
	routes := map[router.Endpoint]router.Route{
		"localhost:5000": {Cost: 0, NextHop: "localhost:5000"},
	}
	mux := NewMux(&fakeSnapshotter{routes: routes}, router.NeighborMap{})

	req := httptest.NewRequest(http.MethodGet, "/table", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]router.Route
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Contains(t, got, "localhost:5000")
}

func TestNeighborsHandler_ReturnsNeighbors(t *testing.T) {
	neighbors := router.NeighborMap{"localhost:5001": 1.5}
	mux := NewMux(&fakeSnapshotter{}, neighbors)

	req := httptest.NewRequest(http.MethodGet, "/neighbors", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]float64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1.5, got["localhost:5001"])
}

func TestTableHandler_RejectsNonGet(t *testing.T) {
	mux := NewMux(&fakeSnapshotter{}, router.NeighborMap{})

	req := httptest.NewRequest(http.MethodPost, "/table", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
