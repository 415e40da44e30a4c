package shortcut

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

// Path is the shortest route from Entry to Exit that uses at least one interior road.
type Path struct {
	Entry datastructure.IntersectionID
	Exit  datastructure.IntersectionID
	Roads []datastructure.DirectedRoad
	Cost  float64
}

// Result counts, per interior road and interior intersection, the border pairs whose shortest
// path in either direction crosses it. Paths are sorted by (Entry, Exit).
type Result struct {
	CountPerRoad         map[datastructure.RoadID]int
	CountPerIntersection map[datastructure.IntersectionID]int
	Paths                []Path
	Version              int
}

func newResult() *Result {
	return &Result{
		CountPerRoad:         make(map[datastructure.RoadID]int),
		CountPerIntersection: make(map[datastructure.IntersectionID]int),
		Paths:                make([]Path, 0),
	}
}

func (r *Result) RoadCount(id datastructure.RoadID) int {
	return r.CountPerRoad[id]
}

func (r *Result) IntersectionCount(id datastructure.IntersectionID) int {
	return r.CountPerIntersection[id]
}

// MaxRoadCount is the highest per-road count, used to scale the overlay.
func (r *Result) MaxRoadCount() int {
	max := 0
	for _, c := range r.CountPerRoad {
		if c > max {
			max = c
		}
	}
	return max
}

// UsesRoad reports whether any shortcut path traverses road.
func (r *Result) UsesRoad(road datastructure.RoadID) bool {
	for _, p := range r.Paths {
		for _, dr := range p.Roads {
			if dr.Road == road {
				return true
			}
		}
	}
	return false
}
