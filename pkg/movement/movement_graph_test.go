package movement

import (
	"sync"
	"testing"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/network/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dr(road datastructure.RoadID, dir datastructure.Direction) datastructure.DirectedRoad {
	return datastructure.NewDirectedRoad(road, dir)
}

func TestMovementsAtFourWay(t *testing.T) {
	fx := fixture.FourWay()
	g := NewMovementGraph(fx.Network)

	c := fx.Intersections["C"]
	movements := g.MovementsAt(c)
	assert.Len(t, movements, 12)

	// spokes start at C, so arriving at C is BACKWARD and leaving C is FORWARD.
	cn, ce, cs, cw := fx.Roads["CN"], fx.Roads["CE"], fx.Roads["CS"], fx.Roads["CW"]
	types := make(map[movementKey]datastructure.MovementType)
	for _, m := range movements {
		assert.Equal(t, c, m.At)
		assert.Equal(t, datastructure.BACKWARD, m.From.Dir)
		assert.Equal(t, datastructure.FORWARD, m.To.Dir)
		assert.True(t, m.Modes.Has(datastructure.MODE_CAR))
		types[movementKey{from: m.From, to: m.To}] = m.Type
	}

	fromN := dr(cn, datastructure.BACKWARD)
	assert.Equal(t, datastructure.MOVEMENT_THRU, types[movementKey{fromN, dr(cs, datastructure.FORWARD)}])
	assert.Equal(t, datastructure.MOVEMENT_LEFT, types[movementKey{fromN, dr(ce, datastructure.FORWARD)}])
	assert.Equal(t, datastructure.MOVEMENT_RIGHT, types[movementKey{fromN, dr(cw, datastructure.FORWARD)}])

	assert.Len(t, g.MovementsAt(fx.Intersections["N"]), 6)
	assert.Len(t, g.Outgoing(fromN, datastructure.MODE_CAR), 3)

	assert.True(t, g.Allowed(fromN, c, dr(cs, datastructure.FORWARD), datastructure.MODE_CAR))
	// no movement back onto the same road
	assert.False(t, g.Allowed(fromN, c, dr(cn, datastructure.FORWARD), datastructure.MODE_CAR))
	// wrong direction on the outgoing road
	assert.False(t, g.Allowed(fromN, c, dr(cs, datastructure.BACKWARD), datastructure.MODE_CAR))

	assert.InDelta(t, 180.0, g.DepartureBearing(cs, c), 1e-6)
	assert.InDelta(t, 180.0, g.DepartureBearing(cn, fx.Intersections["N"]), 1e-6)
}

/*
modes:

	a ---r0 (two way)--- b ---r1 (oneway b->c)---> c
	                     |
	                     r2 (cycleway)
	                     |
	                     d
*/
func TestMovementModes(t *testing.T) {
	b := network.NewBuilder()
	a := b.AddIntersection(datastructure.NewCoordinate(0, 0), 0)
	bb := b.AddIntersection(datastructure.NewCoordinate(0, 0.001), 0)
	c := b.AddIntersection(datastructure.NewCoordinate(0, 0.002), 0)
	d := b.AddIntersection(datastructure.NewCoordinate(-0.001, 0.001), 0)
	r0 := b.AddRoad(a, bb, nil, network.TwoWayLanes(), "", 0)
	r1 := b.AddRoad(bb, c, nil, network.OnewayLanes(), "", 0)
	r2 := b.AddRoad(bb, d, nil, network.CyclewayLanes(), "", 0)
	net, err := b.Build()
	require.NoError(t, err)

	g := NewMovementGraph(net)

	aToB := dr(r0, datastructure.FORWARD)
	assert.True(t, g.Allowed(aToB, bb, dr(r1, datastructure.FORWARD), datastructure.MODE_CAR))
	assert.False(t, g.Allowed(aToB, bb, dr(r2, datastructure.FORWARD), datastructure.MODE_CAR))
	assert.True(t, g.Allowed(aToB, bb, dr(r2, datastructure.FORWARD), datastructure.MODE_BIKE))

	// against the one-way only the sidewalk arrives at b
	cToB := dr(r1, datastructure.BACKWARD)
	assert.False(t, g.Allowed(cToB, bb, dr(r0, datastructure.BACKWARD), datastructure.MODE_CAR))
	assert.True(t, g.Allowed(cToB, bb, dr(r0, datastructure.BACKWARD), datastructure.MODE_WALK))
	assert.Empty(t, g.Outgoing(cToB, datastructure.MODE_CAR))

	dToB := dr(r2, datastructure.BACKWARD)
	for _, m := range g.Outgoing(dToB, datastructure.MODE_BIKE) {
		assert.Equal(t, datastructure.MODE_BIKE, m.Modes)
	}
	assert.Len(t, g.Outgoing(dToB, datastructure.MODE_BIKE), 2)
}

func TestMovementType(t *testing.T) {
	assert.Equal(t, datastructure.MOVEMENT_THRU, movementType(10, 350))
	assert.Equal(t, datastructure.MOVEMENT_RIGHT, movementType(0, 90))
	assert.Equal(t, datastructure.MOVEMENT_LEFT, movementType(0, 270))
	assert.Equal(t, datastructure.MOVEMENT_U_TURN, movementType(0, 180))
}

func TestMovementGraphConcurrentReaders(t *testing.T) {
	fx := fixture.Grid()
	g := NewMovementGraph(fx.Network)

	var wg sync.WaitGroup
	counts := make([][]int, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			counts[w] = make([]int, fx.Network.NumIntersections())
			for i := 0; i < fx.Network.NumIntersections(); i++ {
				counts[w][i] = len(g.MovementsAt(datastructure.IntersectionID(i)))
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < 8; w++ {
		assert.Equal(t, counts[0], counts[w])
	}
	// corner 0,0 has two roads, inner 1,1 has five (four grid roads and the bridge)
	assert.Equal(t, 2, counts[0][fx.Intersections["0,0"]])
	assert.Equal(t, 20, counts[0][fx.Intersections["1,1"]])
}
