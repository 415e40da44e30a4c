package connectivity

import (
	"testing"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/network/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, net *network.RoadNetwork, perimeter []datastructure.RoadID) (*neighborhood.Interior, *movement.MovementGraph, *filter.Store) {
	in, err := neighborhood.NewInterior(neighborhood.NewPerimeter(perimeter), net)
	require.NoError(t, err)
	graph := movement.NewMovementGraph(net)
	return in, graph, filter.NewStore(graph)
}

func TestCellsFourWay(t *testing.T) {
	fx := fixture.FourWay()
	in, graph, store := setup(t, fx.Network, fx.Perimeter)
	cn, ce, cs, cw := fx.Roads["CN"], fx.Roads["CE"], fx.Roads["CS"], fx.Roads["CW"]

	conn := Cells(in, graph, store.Filters())
	require.Len(t, conn.Cells, 1)
	assert.Equal(t, []datastructure.RoadID{cn, ce, cs, cw}, conn.Cells[0].Roads)
	assert.Equal(t, in.Borders, conn.Cells[0].Borders)
	assert.True(t, conn.Cells[0].Reachable())

	require.True(t, store.PlaceOrRemovePointFilterAt(cn, 10))
	conn = Cells(in, graph, store.Filters())
	require.Len(t, conn.Cells, 1)
	assert.Equal(t, []datastructure.RoadID{ce, cs, cw}, conn.Cells[0].Roads)
	_, ok := conn.CellOf(cn)
	assert.False(t, ok)
	require.True(t, store.PlaceOrRemovePointFilterAt(cn, 10))

	// W in its own group
	for store.Filters().Intersections[fx.Intersections["C"]].Index != 6 {
		require.True(t, store.CycleDiagonalFilter(fx.Intersections["C"]))
	}
	conn = Cells(in, graph, store.Filters())
	require.Len(t, conn.Cells, 2)
	assert.Equal(t, []datastructure.RoadID{cn, ce, cs}, conn.Cells[0].Roads)
	assert.Equal(t, []datastructure.RoadID{cw}, conn.Cells[1].Roads)
	assert.Equal(t, []datastructure.IntersectionID{fx.Intersections["W"]}, conn.Cells[1].Borders)
	assert.Empty(t, conn.Condensation[0])
	assert.Empty(t, conn.Condensation[1])

	cell, ok := conn.CellOf(cw)
	assert.True(t, ok)
	assert.Equal(t, 1, cell)
}

func TestCellsUnreachable(t *testing.T) {
	fx := fixture.SingleRoad()
	in, graph, store := setup(t, fx.Network, fx.Perimeter)

	for _, name := range []string{"AX", "YB", "YC", "YD"} {
		require.True(t, store.PlaceOrRemovePointFilterAt(fx.Roads[name], 1))
	}

	conn := Cells(in, graph, store.Filters())
	require.Len(t, conn.Cells, 1)
	assert.Equal(t, []datastructure.RoadID{fx.Roads["R"]}, conn.Cells[0].Roads)
	assert.False(t, conn.Cells[0].Reachable())
}

/*
one-way chain inside a square. x -> y is one-way, so every road is its own cell:

	d ------------------- c
	|                     |
	a --- x ---> y ------ b
*/
func TestCellsOnewayCondensation(t *testing.T) {
	b := network.NewBuilder()
	a := b.AddIntersection(datastructure.NewCoordinate(0, 0), 0)
	bb := b.AddIntersection(datastructure.NewCoordinate(0, 0.003), 0)
	c := b.AddIntersection(datastructure.NewCoordinate(0.002, 0.003), 0)
	d := b.AddIntersection(datastructure.NewCoordinate(0.002, 0), 0)
	x := b.AddIntersection(datastructure.NewCoordinate(0.001, 0.001), 0)
	y := b.AddIntersection(datastructure.NewCoordinate(0.001, 0.002), 0)

	perimeter := []datastructure.RoadID{
		b.AddRoad(a, bb, nil, network.TwoWayLanes(), "", 0),
		b.AddRoad(bb, c, nil, network.TwoWayLanes(), "", 0),
		b.AddRoad(c, d, nil, network.TwoWayLanes(), "", 0),
		b.AddRoad(d, a, nil, network.TwoWayLanes(), "", 0),
	}
	ax := b.AddRoad(a, x, nil, network.TwoWayLanes(), "", 0)
	xy := b.AddRoad(x, y, nil, network.OnewayLanes(), "", 0)
	yb := b.AddRoad(y, bb, nil, network.TwoWayLanes(), "", 0)
	net, err := b.Build()
	require.NoError(t, err)

	in, graph, store := setup(t, net, perimeter)
	conn := Cells(in, graph, store.Filters())

	require.Len(t, conn.Cells, 3)
	assert.Equal(t, []datastructure.RoadID{ax}, conn.Cells[0].Roads)
	assert.Equal(t, []datastructure.RoadID{xy}, conn.Cells[1].Roads)
	assert.Equal(t, []datastructure.RoadID{yb}, conn.Cells[2].Roads)
	assert.Equal(t, []int{1}, conn.Condensation[0])
	assert.Equal(t, []int{2}, conn.Condensation[1])
	assert.Empty(t, conn.Condensation[2])
	assert.False(t, conn.Cells[1].Reachable())
}
