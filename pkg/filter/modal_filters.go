package filter

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

// ModalFilters is the edit state of one neighborhood. Roads maps a filtered road to the distance
// of the point filter along its centerline in meters. Unfiltered intersections are absent from
// Intersections.
type ModalFilters struct {
	Roads         map[datastructure.RoadID]float64
	Intersections map[datastructure.IntersectionID]DiagonalFilter
}

func NewModalFilters() *ModalFilters {
	return &ModalFilters{
		Roads:         make(map[datastructure.RoadID]float64),
		Intersections: make(map[datastructure.IntersectionID]DiagonalFilter),
	}
}

func (mf *ModalFilters) HasPointFilter(r datastructure.RoadID) bool {
	_, ok := mf.Roads[r]
	return ok
}

// AllowsMovement reports whether the diagonal filter at at, if any, lets traffic from `from` into `to`.
func (mf *ModalFilters) AllowsMovement(from datastructure.RoadID, at datastructure.IntersectionID, to datastructure.RoadID) bool {
	df, ok := mf.Intersections[at]
	if !ok {
		return true
	}
	return df.Allows(from, to)
}

func (mf *ModalFilters) Len() int {
	return len(mf.Roads) + len(mf.Intersections)
}

func (mf *ModalFilters) Clone() *ModalFilters {
	c := &ModalFilters{
		Roads:         make(map[datastructure.RoadID]float64, len(mf.Roads)),
		Intersections: make(map[datastructure.IntersectionID]DiagonalFilter, len(mf.Intersections)),
	}
	for r, dist := range mf.Roads {
		c.Roads[r] = dist
	}
	for i, df := range mf.Intersections {
		df.Group1 = append([]datastructure.RoadID(nil), df.Group1...)
		df.Group2 = append([]datastructure.RoadID(nil), df.Group2...)
		c.Intersections[i] = df
	}
	return c
}

func (mf *ModalFilters) Equal(other *ModalFilters) bool {
	if len(mf.Roads) != len(other.Roads) || len(mf.Intersections) != len(other.Intersections) {
		return false
	}
	for r, dist := range mf.Roads {
		if otherDist, ok := other.Roads[r]; !ok || otherDist != dist {
			return false
		}
	}
	for i, df := range mf.Intersections {
		if otherDf, ok := other.Intersections[i]; !ok || !df.Equal(otherDf) {
			return false
		}
	}
	return true
}
