package service

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/kv"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network/fixture"
	"github.com/lintang-b-s/ltn/pkg/server"
	"github.com/lintang-b-s/ltn/pkg/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*NeighborhoodService, *fixture.Fixture) {
	fx := fixture.Grid()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	repo := kv.NewFilterRepository(db)
	t.Cleanup(repo.Close)

	snapper, err := snap.NewRoadSnapper(fx.Network)
	require.NoError(t, err)
	return NewNeighborhoodService(movement.NewMovementGraph(fx.Network), repo, snapper), fx
}

func TestCreateNeighborhood(t *testing.T) {
	ns, fx := newTestService(t)
	ctx := context.Background()

	v, err := ns.CreateNeighborhood(ctx, "grid", neighborhood.NewPerimeter(fx.Perimeter))
	require.NoError(t, err)
	assert.Len(t, v.Interior.Roads, 12)

	_, err = ns.CreateNeighborhood(ctx, "grid", neighborhood.NewPerimeter(fx.Perimeter))
	assert.Equal(t, server.ErrConflict, server.CodeOf(err))

	_, err = ns.CreateNeighborhood(ctx, "bad", neighborhood.NewPerimeter([]datastructure.RoadID{fx.Roads["h 1,1"]}))
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))

	_, err = ns.CreateNeighborhood(ctx, "unknown", neighborhood.NewPerimeter([]datastructure.RoadID{999}))
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))

	_, err = ns.GetNeighborhood(ctx, "missing")
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))

	assert.Equal(t, []string{"grid"}, ns.ListNeighborhoods(ctx))
	require.NoError(t, ns.CloseNeighborhood(ctx, "grid"))
	assert.Empty(t, ns.ListNeighborhoods(ctx))
}

func TestTogglePointFilterSnapsToInteriorRoad(t *testing.T) {
	ns, fx := newTestService(t)
	ctx := context.Background()
	_, err := ns.CreateNeighborhood(ctx, "grid", neighborhood.NewPerimeter(fx.Perimeter))
	require.NoError(t, err)

	road, changed, err := ns.TogglePointFilter(ctx, "grid", nil, datastructure.NewCoordinate(0.00102, 0.0015))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, fx.Roads["h 1,1"], road)

	v, err := ns.GetNeighborhood(ctx, "grid")
	require.NoError(t, err)
	assert.True(t, v.Filters.HasPointFilter(fx.Roads["h 1,1"]))
	assert.True(t, v.UndoAvailable)

	// perimeter roads never carry filters
	perimeterRoad := fx.Roads["h 0,1"]
	_, changed, err = ns.TogglePointFilter(ctx, "grid", &perimeterRoad, datastructure.NewCoordinate(0, 0.0015))
	require.NoError(t, err)
	assert.False(t, changed)

	unknown := datastructure.RoadID(999)
	_, _, err = ns.TogglePointFilter(ctx, "grid", &unknown, datastructure.NewCoordinate(0, 0))
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))

	require.NoError(t, ns.Undo(ctx, "grid"))
	err = ns.Undo(ctx, "grid")
	assert.Equal(t, server.ErrConflict, server.CodeOf(err))
}

func TestSaveAndLoadNeighborhood(t *testing.T) {
	ns, fx := newTestService(t)
	ctx := context.Background()
	_, err := ns.CreateNeighborhood(ctx, "grid", neighborhood.NewPerimeter(fx.Perimeter))
	require.NoError(t, err)

	h11 := fx.Roads["h 1,1"]
	_, _, err = ns.TogglePointFilter(ctx, "grid", &h11, datastructure.NewCoordinate(0.001, 0.0015))
	require.NoError(t, err)
	changed, err := ns.CycleDiagonalFilter(ctx, "grid", fx.Intersections["2,2"])
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, ns.SaveNeighborhood(ctx, "grid"))
	require.NoError(t, ns.CloseNeighborhood(ctx, "grid"))

	v, err := ns.LoadNeighborhood(ctx, "grid")
	require.NoError(t, err)
	assert.True(t, v.Filters.HasPointFilter(h11))
	assert.Contains(t, v.Filters.Intersections, fx.Intersections["2,2"])

	ids, err := ns.NeighborhoodsNear(ctx, 0.0015, 0.0015, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"grid"}, ids)

	_, err = ns.LoadNeighborhood(ctx, "never-saved")
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))

	require.NoError(t, ns.DeleteNeighborhood(ctx, "grid"))
	assert.Equal(t, server.ErrNotFound, server.CodeOf(ns.DeleteNeighborhood(ctx, "grid")))
}

func TestShortcutsGeoJSONAndCells(t *testing.T) {
	ns, fx := newTestService(t)
	ctx := context.Background()
	_, err := ns.CreateNeighborhood(ctx, "grid", neighborhood.NewPerimeter(fx.Perimeter))
	require.NoError(t, err)

	data, err := ns.ShortcutsGeoJSON(ctx, "grid")
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")

	cells, err := ns.Cells(ctx, "grid")
	require.NoError(t, err)
	assert.Len(t, cells.Cells, 1)
}
