package network

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

// RoadNetwork is immutable arena storage of roads and intersections indexed by their ids.
// It is shared read-only between neighborhood sessions.
type RoadNetwork struct {
	roads         []datastructure.Road
	intersections []datastructure.Intersection
}

func (n *RoadNetwork) GetRoad(id datastructure.RoadID) *datastructure.Road {
	return &n.roads[id]
}

func (n *RoadNetwork) GetIntersection(id datastructure.IntersectionID) *datastructure.Intersection {
	return &n.intersections[id]
}

func (n *RoadNetwork) HasRoad(id datastructure.RoadID) bool {
	return id >= 0 && int(id) < len(n.roads)
}

func (n *RoadNetwork) HasIntersection(id datastructure.IntersectionID) bool {
	return id >= 0 && int(id) < len(n.intersections)
}

func (n *RoadNetwork) NumRoads() int {
	return len(n.roads)
}

func (n *RoadNetwork) NumIntersections() int {
	return len(n.intersections)
}

// Roads returns the road arena. callers must not modify it.
func (n *RoadNetwork) Roads() []datastructure.Road {
	return n.roads
}

func (n *RoadNetwork) Intersections() []datastructure.Intersection {
	return n.intersections
}

// RoadsAt returns the roads incident to i, sorted by id.
func (n *RoadNetwork) RoadsAt(i datastructure.IntersectionID) []datastructure.RoadID {
	return n.intersections[i].Roads
}

func (n *RoadNetwork) OtherEnd(road datastructure.RoadID, i datastructure.IntersectionID) datastructure.IntersectionID {
	return n.roads[road].OtherEnd(i)
}

func (n *RoadNetwork) CanUse(road datastructure.RoadID, mode datastructure.TravelMode) bool {
	return n.roads[road].CanUse(mode)
}

func (n *RoadNetwork) IsOneway(road datastructure.RoadID) bool {
	return n.roads[road].IsOneway()
}

func (n *RoadNetwork) DirectionsFor(road datastructure.RoadID, mode datastructure.TravelMode) []datastructure.Direction {
	return n.roads[road].DirectionsFor(mode)
}

// Endpoint returns the intersection the directed road arrives at.
func (n *RoadNetwork) Endpoint(dr datastructure.DirectedRoad) datastructure.IntersectionID {
	return dr.Head(&n.roads[dr.Road])
}

// DirectionFrom returns the direction of road when leaving i.
func (n *RoadNetwork) DirectionFrom(road datastructure.RoadID, i datastructure.IntersectionID) datastructure.Direction {
	if n.roads[road].Src == i {
		return datastructure.FORWARD
	}
	return datastructure.BACKWARD
}
