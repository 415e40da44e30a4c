package kv

import (
	"context"
	"math"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *FilterRepository {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	repo := NewFilterRepository(db)
	t.Cleanup(repo.Close)
	return repo
}

func testFilters() *filter.ModalFilters {
	mf := filter.NewModalFilters()
	mf.Roads[3] = 12.5
	mf.Roads[1] = 40
	mf.Intersections[0] = filter.DiagonalFilter{
		Intersection: 0,
		Index:        6,
		Group1:       []datastructure.RoadID{0, 1, 2},
		Group2:       []datastructure.RoadID{3},
	}
	return mf
}

func TestSaveLoadFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	perimeter := neighborhood.NewPerimeter([]datastructure.RoadID{4, 5, 6, 7}).WithSeed(0)
	filters := testFilters()
	require.NoError(t, repo.SaveFilters(ctx, "kotabaru", perimeter, datastructure.NewCoordinate(-7.78, 110.37), filters))

	gotPerimeter, gotFilters, err := repo.LoadFilters(ctx, "kotabaru")
	require.NoError(t, err)
	assert.Equal(t, perimeter.Roads, gotPerimeter.Roads)
	require.NotNil(t, gotPerimeter.Seed)
	assert.Equal(t, datastructure.IntersectionID(0), *gotPerimeter.Seed)
	assert.True(t, filters.Equal(gotFilters))

	_, _, err = repo.LoadFilters(ctx, "missing")
	assert.ErrorIs(t, err, ErrFiltersNotFound)
}

func TestNeighborhoodsNear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	perimeter := neighborhood.NewPerimeter([]datastructure.RoadID{4, 5, 6, 7})

	require.NoError(t, repo.SaveFilters(ctx, "b", perimeter, datastructure.NewCoordinate(-7.78, 110.37), testFilters()))
	require.NoError(t, repo.SaveFilters(ctx, "a", perimeter, datastructure.NewCoordinate(-7.781, 110.371), filter.NewModalFilters()))
	require.NoError(t, repo.SaveFilters(ctx, "far", perimeter, datastructure.NewCoordinate(-6.2, 106.8), filter.NewModalFilters()))

	ids, err := repo.NeighborhoodsNear(ctx, -7.78, 110.37, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	// moving the neighborhood moves its index entry
	require.NoError(t, repo.SaveFilters(ctx, "b", perimeter, datastructure.NewCoordinate(-6.2, 106.8), testFilters()))
	ids, err = repo.NeighborhoodsNear(ctx, -7.78, 110.37, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)

	ids, err = repo.NeighborhoodsNear(ctx, -6.2, 106.8, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "far"}, ids)

	require.NoError(t, repo.DeleteFilters(ctx, "far"))
	ids, err = repo.NeighborhoodsNear(ctx, -6.2, 106.8, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
	assert.ErrorIs(t, repo.DeleteFilters(ctx, "far"), ErrFiltersNotFound)
}

func TestKRingIndexesAreaClamped(t *testing.T) {
	limit := kRingIndexesArea(-7.78, 110.37, maxSearchRadiusKm)
	assert.Len(t, kRingIndexesArea(-7.78, 110.37, math.Inf(1)), len(limit))
	assert.Len(t, kRingIndexesArea(-7.78, 110.37, 1e9), len(limit))

	assert.Len(t, kRingIndexesArea(-7.78, 110.37, math.NaN()), 1)
	assert.Len(t, kRingIndexesArea(-7.78, 110.37, -3), 1)
	assert.Greater(t, len(kRingIndexesArea(-7.78, 110.37, 1)), 1)
}

func TestSaveFiltersCancelled(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.SaveFilters(ctx, "x", neighborhood.NewPerimeter(nil), datastructure.Coordinate{}, filter.NewModalFilters())
	assert.Error(t, err)
}
