package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/lintang-b-s/ltn/pkg/kv"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/network/fixture"
	"github.com/lintang-b-s/ltn/pkg/server/rest/service"
	"github.com/lintang-b-s/ltn/pkg/session"
	"github.com/lintang-b-s/ltn/pkg/snap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fixture.Fixture) {
	fx := fixture.Grid()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	repo := kv.NewFilterRepository(db)
	t.Cleanup(repo.Close)
	snapper, err := snap.NewRoadSnapper(fx.Network)
	require.NoError(t, err)

	m := NewMetrics(prometheus.NewRegistry())
	svc := service.NewNeighborhoodService(movement.NewMovementGraph(fx.Network), repo, snapper,
		session.OnRecompute(m.ObserveRecompute))

	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	NeighborhoodRouter(r, svc, m)
	return r, fx
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func perimeterIDs(fx *fixture.Fixture) []int32 {
	ids := make([]int32, len(fx.Perimeter))
	for i, r := range fx.Perimeter {
		ids[i] = int32(r)
	}
	return ids
}

func TestNeighborhoodLifecycle(t *testing.T) {
	r, fx := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/neighborhoods/", map[string]any{"id": "grid", "roads": perimeterIDs(fx)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created NeighborhoodResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "grid", created.ID)
	assert.Len(t, created.Roads, 12)
	assert.False(t, created.UndoAvailable)
	assert.Greater(t, created.MaxShortcuts, 0)

	// four interior intersections and eight perimeter borders; 1,1 is both interior and a border
	assert.Len(t, created.Intersections, 12)
	for _, ir := range created.Intersections {
		if ir.ID == int32(fx.Intersections["1,1"]) {
			assert.True(t, ir.Border)
		}
	}

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/", map[string]any{"id": "grid", "roads": perimeterIDs(fx)})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/point-filter", map[string]any{"lat": 0.00102, "lon": 0.0015})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edit EditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edit))
	assert.True(t, edit.Changed)
	require.NotNil(t, edit.Road)
	assert.Equal(t, int32(fx.Roads["h 1,1"]), *edit.Road)
	assert.Equal(t, 1, edit.Neighborhood.FilterCount)
	assert.True(t, edit.Neighborhood.UndoAvailable)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/undo", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/diagonal-filter",
		map[string]any{"intersection": fx.Intersections["2,2"]})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/neighborhoods/grid/cells", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/neighborhoods/grid/shortcuts.geojson", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/save", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/neighborhoods/near?lat=0.0015&lon=0.0015&radius=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ids []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	assert.Equal(t, []string{"grid"}, ids)

	rec = do(t, r, http.MethodDelete, "/api/neighborhoods/grid", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, r, http.MethodGet, "/api/neighborhoods/grid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/grid/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded NeighborhoodResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, 1, loaded.FilterCount)
}

func TestInvalidRequests(t *testing.T) {
	r, fx := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/neighborhoods/", map[string]any{"id": "x", "roads": []int32{int32(fx.Roads["h 1,1"])}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/", map[string]any{"id": "", "roads": perimeterIDs(fx)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/missing/point-filter", map[string]any{"lat": 0, "lon": 0})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/neighborhoods/missing/point-filter", map[string]any{"lat": 91, "lon": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/neighborhoods/near?lat=abc&lon=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, query := range []string{
		"lat=0&lon=0&radius=Inf",
		"lat=0&lon=0&radius=NaN",
		"lat=0&lon=0&radius=1e9",
		"lat=0&lon=0&radius=0",
		"lat=NaN&lon=0",
	} {
		rec = do(t, r, http.MethodGet, "/api/neighborhoods/near?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
	rec = do(t, r, http.MethodGet, "/api/neighborhoods/near?lat=0&lon=0&radius=20", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
