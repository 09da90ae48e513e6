package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksiaz/obscore/internal/types"
)

type fakeQuerier struct {
	snap   types.Snapshot
	halted bool
}

func (f *fakeQuerier) Query(spec types.QuerySpec) types.Snapshot { return f.snap }
func (f *fakeQuerier) Halted() bool                              { return f.halted }

func TestSnapshotEndpoint_ReturnsJSONBody(t *testing.T) {
	q := &fakeQuerier{snap: types.Snapshot{Status: "", Timestamp: 42, SymbolsActive: []string{"BTC-PERP"}, Primitives: map[string]types.PrimitiveBundle{}}}
	router := NewRouter(q)

	req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"timestamp":42`)
}

func TestHealthzEndpoint_ReflectsHaltedState(t *testing.T) {
	q := &fakeQuerier{halted: false}
	router := NewRouter(q)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	q.halted = true
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMetricsEndpoint_ServesPrometheusExposition(t *testing.T) {
	q := &fakeQuerier{}
	router := NewRouter(q)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
