package movement

import (
	"math"
	"sync"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/lintang-b-s/ltn/pkg/network"
)

type movementKey struct {
	from datastructure.DirectedRoad
	to   datastructure.DirectedRoad
}

type intersectionMovements struct {
	movements []datastructure.Movement
	index     map[movementKey]int
	outgoing  map[datastructure.DirectedRoad][]int
}

// MovementGraph derives the movements of every intersection on first use and caches them.
// Safe for concurrent use; the network never changes during its lifetime.
type MovementGraph struct {
	network *network.RoadNetwork

	mu    sync.RWMutex
	cache map[datastructure.IntersectionID]*intersectionMovements
}

func NewMovementGraph(net *network.RoadNetwork) *MovementGraph {
	return &MovementGraph{
		network: net,
		cache:   make(map[datastructure.IntersectionID]*intersectionMovements),
	}
}

func (g *MovementGraph) Network() *network.RoadNetwork {
	return g.network
}

// MovementsAt returns every movement through i. callers must not modify the returned slice.
func (g *MovementGraph) MovementsAt(i datastructure.IntersectionID) []datastructure.Movement {
	return g.get(i).movements
}

// Allowed reports whether mode may go from `from` into `to` at intersection at.
func (g *MovementGraph) Allowed(from datastructure.DirectedRoad, at datastructure.IntersectionID,
	to datastructure.DirectedRoad, mode datastructure.TravelMode) bool {
	im := g.get(at)
	idx, ok := im.index[movementKey{from: from, to: to}]
	if !ok {
		return false
	}
	return im.movements[idx].Modes.Has(mode)
}

// Outgoing returns the movements mode can take after traversing from.
func (g *MovementGraph) Outgoing(from datastructure.DirectedRoad, mode datastructure.TravelMode) []datastructure.Movement {
	at := g.network.Endpoint(from)
	im := g.get(at)

	idxs := im.outgoing[from]
	movements := make([]datastructure.Movement, 0, len(idxs))
	for _, idx := range idxs {
		if im.movements[idx].Modes.Has(mode) {
			movements = append(movements, im.movements[idx])
		}
	}
	return movements
}

func (g *MovementGraph) get(i datastructure.IntersectionID) *intersectionMovements {
	g.mu.RLock()
	im, ok := g.cache[i]
	g.mu.RUnlock()
	if ok {
		return im
	}

	im = g.derive(i)

	g.mu.Lock()
	defer g.mu.Unlock()
	if cached, ok := g.cache[i]; ok {
		return cached
	}
	g.cache[i] = im
	return im
}

/*
derive. for every ordered pair (a, b) of distinct roads incident to i, a movement exists when some
lane of a arrives at i, some lane of b leaves i and the modes of both share at least one mode.

	a ----> i ----> b
*/
func (g *MovementGraph) derive(i datastructure.IntersectionID) *intersectionMovements {
	roads := g.network.RoadsAt(i)
	im := &intersectionMovements{
		movements: make([]datastructure.Movement, 0, len(roads)*len(roads)),
		index:     make(map[movementKey]int),
		outgoing:  make(map[datastructure.DirectedRoad][]int),
	}

	for _, a := range roads {
		roadA := g.network.GetRoad(a)
		from := datastructure.NewDirectedRoad(a, g.network.DirectionFrom(a, i).Opposite())
		inModes := roadA.Modes(from.Dir)
		if inModes == datastructure.MODE_NONE {
			continue
		}

		for _, b := range roads {
			if a == b {
				continue
			}
			roadB := g.network.GetRoad(b)
			to := datastructure.NewDirectedRoad(b, g.network.DirectionFrom(b, i))

			modes := inModes & roadB.Modes(to.Dir)
			if modes == datastructure.MODE_NONE {
				continue
			}

			im.index[movementKey{from: from, to: to}] = len(im.movements)
			im.outgoing[from] = append(im.outgoing[from], len(im.movements))
			im.movements = append(im.movements, datastructure.Movement{
				At:    i,
				From:  from,
				To:    to,
				Modes: modes,
				Type:  movementType(approachBearing(roadA, from), departureBearing(roadB, to)),
			})
		}
	}
	return im
}

// approachBearing is the bearing of the last centerline segment of dr in travel direction.
func approachBearing(r *datastructure.Road, dr datastructure.DirectedRoad) float64 {
	n := len(r.Center)
	if dr.Dir == datastructure.FORWARD {
		return geo.Bearing(r.Center[n-2], r.Center[n-1])
	}
	return geo.Bearing(r.Center[1], r.Center[0])
}

// departureBearing is the bearing of the first centerline segment of dr in travel direction.
func departureBearing(r *datastructure.Road, dr datastructure.DirectedRoad) float64 {
	n := len(r.Center)
	if dr.Dir == datastructure.FORWARD {
		return geo.Bearing(r.Center[0], r.Center[1])
	}
	return geo.Bearing(r.Center[n-1], r.Center[n-2])
}

// movementType classifies by the turn angle. bearings grow clockwise, so a positive turn is a right turn.
func movementType(approach, departure float64) datastructure.MovementType {
	angleDiff := geo.BearingDiff(approach, departure)
	switch {
	case math.Abs(angleDiff) <= 45:
		return datastructure.MOVEMENT_THRU
	case angleDiff > 45 && angleDiff <= 135:
		return datastructure.MOVEMENT_RIGHT
	case angleDiff < -45 && angleDiff >= -135:
		return datastructure.MOVEMENT_LEFT
	default:
		return datastructure.MOVEMENT_U_TURN
	}
}

// DepartureBearing returns the bearing of road when leaving intersection i.
func (g *MovementGraph) DepartureBearing(road datastructure.RoadID, i datastructure.IntersectionID) float64 {
	return departureBearing(g.network.GetRoad(road),
		datastructure.NewDirectedRoad(road, g.network.DirectionFrom(road, i)))
}
