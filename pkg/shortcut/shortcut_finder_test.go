package shortcut

import (
	"testing"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network/fixture"
	"github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type testNeighborhood struct {
	fx    *fixture.Fixture
	graph *movement.MovementGraph
	in    *neighborhood.Interior
	store *filter.Store
}

func newTestNeighborhood(t *testing.T, fx *fixture.Fixture) *testNeighborhood {
	in, err := neighborhood.NewInterior(neighborhood.NewPerimeter(fx.Perimeter), fx.Network)
	require.NoError(t, err)
	graph := movement.NewMovementGraph(fx.Network)
	return &testNeighborhood{
		fx:    fx,
		graph: graph,
		in:    in,
		store: filter.NewStore(graph),
	}
}

func (tn *testNeighborhood) recompute(opts ...Option) *Result {
	return Recompute(tn.in, tn.graph, tn.store.Filters(), opts...)
}

/*
four way, no filters. N->S and E->W go through C, every other pair follows the perimeter.

	        N
	      / | \
	     W--C--E
	      \ | /
	        S
*/
func TestFourWayNoFilters(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.FourWay())
	fx := tn.fx

	res := tn.recompute()
	assert.Equal(t, 2, res.IntersectionCount(fx.Intersections["C"]))
	for _, spoke := range []string{"CN", "CE", "CS", "CW"} {
		assert.Equal(t, 1, res.RoadCount(fx.Roads[spoke]), spoke)
	}
	assert.Equal(t, 0, res.RoadCount(fx.Roads["NE"]))
	assert.Equal(t, 1, res.MaxRoadCount())

	require.Len(t, res.Paths, 4)
	first := res.Paths[0]
	assert.Equal(t, fx.Intersections["N"], first.Entry)
	assert.Equal(t, fx.Intersections["S"], first.Exit)
	assert.Equal(t, []datastructure.DirectedRoad{
		datastructure.NewDirectedRoad(fx.Roads["CN"], datastructure.BACKWARD),
		datastructure.NewDirectedRoad(fx.Roads["CS"], datastructure.FORWARD),
	}, first.Roads)
	assert.InDelta(t, 222.4, first.Cost, 1.0)
}

// diagonal filter with W in its own group: E->W has to follow the perimeter, N->S still crosses C.
func TestFourWayDiagonalFilter(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.FourWay())
	fx := tn.fx
	c := fx.Intersections["C"]

	states := filter.DiagonalFilterStates(tn.graph, c)
	for tn.store.Filters().Intersections[c].Index != 6 {
		require.True(t, tn.store.CycleDiagonalFilter(c))
	}
	require.Equal(t, states[6], tn.store.Filters().Intersections[c])
	require.Equal(t, []datastructure.RoadID{fx.Roads["CW"]}, states[6].Group2)

	res := tn.recompute()
	assert.Equal(t, 1, res.IntersectionCount(c))
	assert.Equal(t, 1, res.RoadCount(fx.Roads["CN"]))
	assert.Equal(t, 1, res.RoadCount(fx.Roads["CS"]))
	assert.Equal(t, 0, res.RoadCount(fx.Roads["CE"]))
	assert.Equal(t, 0, res.RoadCount(fx.Roads["CW"]))
	assert.False(t, res.UsesRoad(fx.Roads["CE"]))
}

/*
single road: R carries A-B, A-C and A-D.

	NW ----------------- B
	|                 /  |
	A ---- X ==R== Y --- C
	|                 \  |
	SW ----------------- D
*/
func TestSingleRoadPointFilter(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.SingleRoad())
	fx := tn.fx
	r := fx.Roads["R"]

	res := tn.recompute()
	assert.Equal(t, 3, res.RoadCount(r))
	assert.Equal(t, 3, res.RoadCount(fx.Roads["AX"]))
	assert.Equal(t, 1, res.RoadCount(fx.Roads["YB"]))
	assert.Equal(t, 1, res.RoadCount(fx.Roads["YC"]))
	assert.Equal(t, 1, res.RoadCount(fx.Roads["YD"]))
	assert.Equal(t, 3, res.IntersectionCount(fx.Intersections["X"]))
	assert.Equal(t, 3, res.IntersectionCount(fx.Intersections["Y"]))
	assert.Len(t, res.Paths, 6)

	length := fx.Network.GetRoad(r).Length
	for _, offset := range []float64{0, length / 3, length} {
		require.True(t, tn.store.PlaceOrRemovePointFilterAt(r, offset))

		filtered := tn.recompute()
		assert.Equal(t, 0, filtered.RoadCount(r))
		assert.False(t, filtered.UsesRoad(r))
		assert.Empty(t, filtered.Paths)
		for _, id := range tn.in.Roads {
			assert.Equal(t, 0, filtered.RoadCount(id))
		}

		require.True(t, tn.store.PlaceOrRemovePointFilterAt(r, offset))
	}
}

func assertNoIncrease(t *testing.T, before, after *Result, filtered datastructure.RoadID) {
	for road, count := range after.CountPerRoad {
		if road == filtered {
			continue
		}
		assert.LessOrEqual(t, count, before.RoadCount(road), "road %d after filtering %d", road, filtered)
	}
}

// in these fixtures every pair that loses its interior route falls back to the perimeter, so no
// interior count can rise. TestPointFilterDisplacesTrafficOnGrid covers networks where it does.
func TestPointFilterWithPerimeterFallbackNeverIncreasesCounts(t *testing.T) {
	fourWay := newTestNeighborhood(t, fixture.FourWay())
	single := newTestNeighborhood(t, fixture.SingleRoad())

	cases := []struct {
		tn    *testNeighborhood
		roads []datastructure.RoadID
	}{
		{fourWay, fourWay.in.Roads},
		{single, []datastructure.RoadID{
			single.fx.Roads["R"], single.fx.Roads["AX"], single.fx.Roads["YB"], single.fx.Roads["YD"],
		}},
	}

	rand.Seed(7)
	for _, tc := range cases {
		before := tc.tn.recompute()
		for _, r := range tc.roads {
			offset := rand.Float64() * tc.tn.fx.Network.GetRoad(r).Length
			require.True(t, tc.tn.store.PlaceOrRemovePointFilterAt(r, offset))
			assertNoIncrease(t, before, tc.tn.recompute(), r)
			require.True(t, tc.tn.store.PlaceOrRemovePointFilterAt(r, offset))
		}
	}
}

// filtering YC pushes A-C traffic onto YB or YD, which then leaves along the perimeter.
func TestPointFilterDisplacesTraffic(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.SingleRoad())
	fx := tn.fx

	require.True(t, tn.store.PlaceOrRemovePointFilterAt(fx.Roads["YC"], 5))
	res := tn.recompute()

	assert.Equal(t, 0, res.RoadCount(fx.Roads["YC"]))
	assert.Equal(t, 3, res.RoadCount(fx.Roads["R"]))
	assert.Greater(t, res.RoadCount(fx.Roads["YB"])+res.RoadCount(fx.Roads["YD"]), 2)
}

// on a grid a filtered street pushes its traffic onto parallel interior streets instead of the
// perimeter, so some other road ends up with more shortcuts than before.
func TestPointFilterDisplacesTrafficOnGrid(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.Grid())
	before := tn.recompute()

	displaced := 0
	for _, r := range tn.in.Roads {
		offset := tn.fx.Network.GetRoad(r).Length / 2
		require.True(t, tn.store.PlaceOrRemovePointFilterAt(r, offset))

		after := tn.recompute()
		assert.Equal(t, 0, after.RoadCount(r))
		assert.False(t, after.UsesRoad(r))
		for road, count := range after.CountPerRoad {
			if road != r && count > before.RoadCount(road) {
				displaced++
				break
			}
		}

		require.True(t, tn.store.PlaceOrRemovePointFilterAt(r, offset))
	}
	assert.Greater(t, displaced, 0)
	assert.Equal(t, before, tn.recompute())
}

// 1,1 is a border because the bridge leaves the neighborhood there without touching the perimeter.
func TestGridBridgeEndIsShortcutEndpoint(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.Grid())
	fx := tn.fx
	b11, b01 := fx.Intersections["1,1"], fx.Intersections["0,1"]

	res := tn.recompute()
	assert.False(t, res.UsesRoad(fx.Roads["bridge"]))

	var found *Path
	for i := range res.Paths {
		if res.Paths[i].Entry == b11 && res.Paths[i].Exit == b01 {
			found = &res.Paths[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, []datastructure.DirectedRoad{
		datastructure.NewDirectedRoad(fx.Roads["v 0,1"], datastructure.BACKWARD),
	}, found.Roads)
	assert.Greater(t, res.RoadCount(fx.Roads["v 0,1"]), 0)
}

func TestRecomputeWorkersDeterministic(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.Grid())
	fx := tn.fx

	require.True(t, tn.store.PlaceOrRemovePointFilterAt(fx.Roads["h 1,1"], 40))
	require.True(t, tn.store.CycleDiagonalFilter(fx.Intersections["2,2"]))
	require.True(t, tn.store.CycleDiagonalFilter(fx.Intersections["2,2"]))

	sequential := tn.recompute()
	assert.NotEmpty(t, sequential.Paths)
	for i := 0; i < 5; i++ {
		parallel := tn.recompute(WithWorkers(4))
		assert.Equal(t, sequential, parallel)
	}
}

func TestRecomputeCostFunc(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.FourWay())

	// spokes cost more than going around
	res := tn.recompute(WithCostFunc(func(road *datastructure.Road) float64 {
		if road.Name[0] == 'C' {
			return 10 * road.Length
		}
		return road.Length
	}))
	assert.Empty(t, res.Paths)
	assert.Equal(t, 0, res.IntersectionCount(tn.fx.Intersections["C"]))
}

func TestResultGeoJSON(t *testing.T) {
	tn := newTestNeighborhood(t, fixture.FourWay())
	fx := tn.fx
	require.True(t, tn.store.PlaceOrRemovePointFilterAt(fx.Roads["CN"], 50))
	require.True(t, tn.store.CycleDiagonalFilter(fx.Intersections["C"]))

	res := tn.recompute()
	data, err := res.GeoJSON(fx.Network, tn.in, tn.store.Filters())
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	kinds := make(map[string]int)
	for _, f := range fc.Features {
		kinds[f.PropertyMustString("kind", "")]++
	}
	assert.Equal(t, map[string]int{
		"perimeter":       4,
		"road":            4,
		"intersection":    1,
		"point_filter":    1,
		"diagonal_filter": 1,
	}, kinds)
}
