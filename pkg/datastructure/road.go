package datastructure

import (
	"github.com/paulmach/osm"
)

type RoadID int32

type IntersectionID int32

// Direction of travel along a road. FORWARD follows the centerline from Src to Dst.
type Direction uint8

const (
	FORWARD Direction = iota
	BACKWARD
)

func (d Direction) Opposite() Direction {
	if d == FORWARD {
		return BACKWARD
	}
	return FORWARD
}

func (d Direction) String() string {
	return [...]string{"fwd", "back"}[d]
}

type LaneType uint8

const (
	LANE_DRIVING = LaneType(iota + 1)
	LANE_BIKING
	LANE_BUS
	LANE_SIDEWALK
	LANE_PARKING
	LANE_UNDEFINED = LaneType(0)
)

func (iotaIdx LaneType) String() string {
	return [...]string{"undefined", "driving", "biking", "bus", "sidewalk", "parking"}[iotaIdx]
}

// TravelMode is a bit set, several modes can be combined with |.
type TravelMode uint8

const (
	MODE_CAR TravelMode = 1 << iota
	MODE_BIKE
	MODE_BUS
	MODE_WALK

	MODE_NONE = TravelMode(0)
)

func (m TravelMode) Has(other TravelMode) bool {
	return other != MODE_NONE && m&other == other
}

func (m TravelMode) String() string {
	if m == MODE_NONE {
		return "none"
	}
	s := ""
	for i, name := range []string{"car", "bike", "bus", "walk"} {
		if m&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	return s
}

type Lane struct {
	Type LaneType
	Dir  Direction
}

func NewLane(laneType LaneType, dir Direction) Lane {
	return Lane{Type: laneType, Dir: dir}
}

// Modes returns the travel modes a lane carries.
func (l Lane) Modes() TravelMode {
	switch l.Type {
	case LANE_DRIVING:
		return MODE_CAR | MODE_BIKE | MODE_BUS
	case LANE_BIKING:
		return MODE_BIKE
	case LANE_BUS:
		return MODE_BUS | MODE_BIKE
	case LANE_SIDEWALK:
		return MODE_WALK
	default:
		return MODE_NONE
	}
}

/*
Road. an immutable road segment between two intersections.

	Src ----Center[0] ... Center[n-1]---- Dst
	      FORWARD  ------------------>
	      <-----------------  BACKWARD

Length is the centerline length in meters.
*/
type Road struct {
	ID     RoadID
	Src    IntersectionID
	Dst    IntersectionID
	Center []Coordinate
	Lanes  []Lane
	Length float64
	Name   string
	OrigID osm.WayID
}

// Modes returns the modes that may travel along the road in dir. Sidewalks are walkable both ways.
func (r *Road) Modes(dir Direction) TravelMode {
	modes := MODE_NONE
	for _, lane := range r.Lanes {
		if lane.Type == LANE_SIDEWALK || lane.Dir == dir {
			modes |= lane.Modes()
		}
	}
	return modes
}

func (r *Road) CanUse(mode TravelMode) bool {
	return r.Modes(FORWARD).Has(mode) || r.Modes(BACKWARD).Has(mode)
}

// IsOneway reports whether every driving lane points the same way.
func (r *Road) IsOneway() bool {
	fwd, back := false, false
	for _, lane := range r.Lanes {
		if lane.Type != LANE_DRIVING {
			continue
		}
		if lane.Dir == FORWARD {
			fwd = true
		} else {
			back = true
		}
	}
	return fwd != back
}

// DirectionsFor returns the directions mode may travel along the road.
func (r *Road) DirectionsFor(mode TravelMode) []Direction {
	dirs := make([]Direction, 0, 2)
	if r.Modes(FORWARD).Has(mode) {
		dirs = append(dirs, FORWARD)
	}
	if r.Modes(BACKWARD).Has(mode) {
		dirs = append(dirs, BACKWARD)
	}
	return dirs
}

// OtherEnd returns the endpoint of the road that is not i.
func (r *Road) OtherEnd(i IntersectionID) IntersectionID {
	if r.Src == i {
		return r.Dst
	}
	return r.Src
}

func (r *Road) HasEndpoint(i IntersectionID) bool {
	return r.Src == i || r.Dst == i
}

type Intersection struct {
	ID     IntersectionID
	Point  Coordinate
	Roads  []RoadID // sorted by id
	OrigID osm.NodeID
}

func (i *Intersection) Degree() int {
	return len(i.Roads)
}

// DirectedRoad is a road traversed in one direction.
type DirectedRoad struct {
	Road RoadID
	Dir  Direction
}

func NewDirectedRoad(road RoadID, dir Direction) DirectedRoad {
	return DirectedRoad{Road: road, Dir: dir}
}

// Tail is the intersection the directed road leaves from.
func (dr DirectedRoad) Tail(r *Road) IntersectionID {
	if dr.Dir == FORWARD {
		return r.Src
	}
	return r.Dst
}

// Head is the intersection the directed road arrives at.
func (dr DirectedRoad) Head(r *Road) IntersectionID {
	if dr.Dir == FORWARD {
		return r.Dst
	}
	return r.Src
}

// Less orders directed roads by road id, then direction.
func (dr DirectedRoad) Less(other DirectedRoad) bool {
	if dr.Road != other.Road {
		return dr.Road < other.Road
	}
	return dr.Dir < other.Dir
}
