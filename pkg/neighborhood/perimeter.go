package neighborhood

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/network"
)

var (
	ErrInvalidPerimeter = errors.New("invalid perimeter")
)

// Perimeter is the ordered cycle of boundary roads of a neighborhood.
// Seed optionally names an intersection inside the region to start the flood fill from.
type Perimeter struct {
	Roads []datastructure.RoadID
	Seed  *datastructure.IntersectionID
}

func NewPerimeter(roads []datastructure.RoadID) Perimeter {
	return Perimeter{Roads: roads}
}

func (p Perimeter) WithSeed(seed datastructure.IntersectionID) Perimeter {
	p.Seed = &seed
	return p
}

func invalidPerimeter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPerimeter, fmt.Sprintf(format, args...))
}

/*
walk checks that the perimeter roads form a simple cycle and returns the intersections in walking
order together with the direction each road is walked in.

	i0 --r0--> i1 --r1--> i2 ... --rn--> i0
*/
func (p Perimeter) walk(net *network.RoadNetwork) ([]datastructure.IntersectionID, []datastructure.Direction, error) {
	if len(p.Roads) < 3 {
		return nil, nil, invalidPerimeter("need at least 3 roads, got %d", len(p.Roads))
	}
	for _, r := range p.Roads {
		if !net.HasRoad(r) {
			return nil, nil, invalidPerimeter("unknown road %d", r)
		}
	}

	first, second := net.GetRoad(p.Roads[0]), net.GetRoad(p.Roads[1])
	var start datastructure.IntersectionID
	switch {
	case second.HasEndpoint(first.Dst):
		start = first.Src
	case second.HasEndpoint(first.Src):
		start = first.Dst
	default:
		return nil, nil, invalidPerimeter("roads %d and %d are not connected", first.ID, second.ID)
	}

	ring := make([]datastructure.IntersectionID, 0, len(p.Roads))
	dirs := make([]datastructure.Direction, 0, len(p.Roads))
	visited := make(map[datastructure.IntersectionID]struct{}, len(p.Roads))

	cur := start
	for _, r := range p.Roads {
		road := net.GetRoad(r)
		if !road.HasEndpoint(cur) {
			return nil, nil, invalidPerimeter("road %d does not continue from intersection %d", r, cur)
		}
		if _, ok := visited[cur]; ok {
			return nil, nil, invalidPerimeter("intersection %d visited twice", cur)
		}
		visited[cur] = struct{}{}
		ring = append(ring, cur)
		dirs = append(dirs, net.DirectionFrom(r, cur))
		cur = road.OtherEnd(cur)
	}

	if cur != start {
		return nil, nil, invalidPerimeter("perimeter does not close, ends at %d instead of %d", cur, start)
	}
	return ring, dirs, nil
}

// ringCoordinates concatenates the perimeter centerlines in walking order.
func ringCoordinates(net *network.RoadNetwork, roads []datastructure.RoadID,
	dirs []datastructure.Direction) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, len(roads)*2)
	for i, r := range roads {
		center := net.GetRoad(r).Center
		if dirs[i] == datastructure.BACKWARD {
			center = datastructure.ReverseCoordinates(center)
		}
		if len(coords) > 0 {
			center = center[1:]
		}
		coords = append(coords, center...)
	}
	return coords
}
