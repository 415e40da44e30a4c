package network

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/paulmach/osm"
)

var (
	ErrUnknownEndpoint = errors.New("road endpoint is not a known intersection")
	ErrSelfLoop        = errors.New("road starts and ends at the same intersection")
	ErrInconsistentIDs = errors.New("network ids are not dense")
	ErrShortCenter     = errors.New("road centerline has fewer than two points")
	ErrInvalidLane     = errors.New("lane has an unknown type or direction")
	ErrUnknownRoad     = errors.New("intersection lists a road that does not touch it")
)

// Builder collects intersections and roads and assigns dense ids in insertion order.
type Builder struct {
	roads         []datastructure.Road
	intersections []datastructure.Intersection
}

func NewBuilder() *Builder {
	return &Builder{
		roads:         make([]datastructure.Road, 0),
		intersections: make([]datastructure.Intersection, 0),
	}
}

func (b *Builder) AddIntersection(point datastructure.Coordinate, origID osm.NodeID) datastructure.IntersectionID {
	id := datastructure.IntersectionID(len(b.intersections))
	b.intersections = append(b.intersections, datastructure.Intersection{
		ID:     id,
		Point:  point,
		OrigID: origID,
	})
	return id
}

// AddRoad adds a road from src to dst. An empty center uses the straight line between the endpoints.
func (b *Builder) AddRoad(src, dst datastructure.IntersectionID, center []datastructure.Coordinate,
	lanes []datastructure.Lane, name string, origID osm.WayID) datastructure.RoadID {
	id := datastructure.RoadID(len(b.roads))
	b.roads = append(b.roads, datastructure.Road{
		ID:     id,
		Src:    src,
		Dst:    dst,
		Center: center,
		Lanes:  lanes,
		Name:   name,
		OrigID: origID,
	})
	return id
}

func (b *Builder) Build() (*RoadNetwork, error) {
	for i := range b.intersections {
		b.intersections[i].Roads = b.intersections[i].Roads[:0]
	}

	for i := range b.roads {
		road := &b.roads[i]
		if int(road.Src) >= len(b.intersections) || int(road.Dst) >= len(b.intersections) ||
			road.Src < 0 || road.Dst < 0 {
			return nil, fmt.Errorf("road %d: %w", road.ID, ErrUnknownEndpoint)
		}
		if road.Src == road.Dst {
			return nil, fmt.Errorf("road %d: %w", road.ID, ErrSelfLoop)
		}

		if len(road.Center) < 2 {
			road.Center = []datastructure.Coordinate{
				b.intersections[road.Src].Point,
				b.intersections[road.Dst].Point,
			}
		}
		road.Length = geo.PolylineLength(road.Center)

		b.intersections[road.Src].Roads = append(b.intersections[road.Src].Roads, road.ID)
		b.intersections[road.Dst].Roads = append(b.intersections[road.Dst].Roads, road.ID)
	}

	return newRoadNetwork(b.roads, b.intersections)
}

// newRoadNetwork checks the invariants every network must hold, whether it came from a Builder or a snapshot.
func newRoadNetwork(roads []datastructure.Road, intersections []datastructure.Intersection) (*RoadNetwork, error) {
	for i := range roads {
		road := &roads[i]
		if road.ID != datastructure.RoadID(i) {
			return nil, fmt.Errorf("road at %d has id %d: %w", i, road.ID, ErrInconsistentIDs)
		}
		if !validEndpoint(road.Src, len(intersections)) || !validEndpoint(road.Dst, len(intersections)) {
			return nil, fmt.Errorf("road %d: %w", road.ID, ErrUnknownEndpoint)
		}
		if road.Src == road.Dst {
			return nil, fmt.Errorf("road %d: %w", road.ID, ErrSelfLoop)
		}
		if len(road.Center) < 2 {
			return nil, fmt.Errorf("road %d: %w", road.ID, ErrShortCenter)
		}
		for _, lane := range road.Lanes {
			if !validLane(lane) {
				return nil, fmt.Errorf("road %d: %w", road.ID, ErrInvalidLane)
			}
		}
	}
	for i := range intersections {
		if intersections[i].ID != datastructure.IntersectionID(i) {
			return nil, fmt.Errorf("intersection at %d has id %d: %w", i, intersections[i].ID, ErrInconsistentIDs)
		}
		for _, r := range intersections[i].Roads {
			if r < 0 || int(r) >= len(roads) ||
				(roads[r].Src != intersections[i].ID && roads[r].Dst != intersections[i].ID) {
				return nil, fmt.Errorf("intersection %d road %d: %w", i, r, ErrUnknownRoad)
			}
		}
		sort.Slice(intersections[i].Roads, func(a, b int) bool {
			return intersections[i].Roads[a] < intersections[i].Roads[b]
		})
	}

	return &RoadNetwork{
		roads:         roads,
		intersections: intersections,
	}, nil
}

func validEndpoint(id datastructure.IntersectionID, n int) bool {
	return id >= 0 && int(id) < n
}

func validLane(lane datastructure.Lane) bool {
	return lane.Type <= datastructure.LANE_PARKING &&
		(lane.Dir == datastructure.FORWARD || lane.Dir == datastructure.BACKWARD)
}

// TwoWayLanes is a plain residential street: one driving lane each way and sidewalks on both sides.
func TwoWayLanes() []datastructure.Lane {
	return []datastructure.Lane{
		datastructure.NewLane(datastructure.LANE_SIDEWALK, datastructure.BACKWARD),
		datastructure.NewLane(datastructure.LANE_DRIVING, datastructure.BACKWARD),
		datastructure.NewLane(datastructure.LANE_DRIVING, datastructure.FORWARD),
		datastructure.NewLane(datastructure.LANE_SIDEWALK, datastructure.FORWARD),
	}
}

func OnewayLanes() []datastructure.Lane {
	return []datastructure.Lane{
		datastructure.NewLane(datastructure.LANE_SIDEWALK, datastructure.BACKWARD),
		datastructure.NewLane(datastructure.LANE_DRIVING, datastructure.FORWARD),
		datastructure.NewLane(datastructure.LANE_SIDEWALK, datastructure.FORWARD),
	}
}

func CyclewayLanes() []datastructure.Lane {
	return []datastructure.Lane{
		datastructure.NewLane(datastructure.LANE_BIKING, datastructure.BACKWARD),
		datastructure.NewLane(datastructure.LANE_BIKING, datastructure.FORWARD),
	}
}
