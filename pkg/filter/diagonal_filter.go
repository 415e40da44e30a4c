package filter

import (
	"slices"
	"sort"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/movement"
)

/*
DiagonalFilter splits the roads of an intersection into two groups that may not turn into each
other. Both groups are contiguous arcs of the clockwise road order, e.g. Group2 = {W}:

	        N
	        |
	W   /   C --- E
	        |
	        S

blocks W<->N, W<->E and W<->S while N, E and S still connect.

Index is the position of the filter in DiagonalFilterStates. Index 0 is the unfiltered state.
*/
type DiagonalFilter struct {
	Intersection datastructure.IntersectionID
	Index        int
	Group1       []datastructure.RoadID
	Group2       []datastructure.RoadID
}

// Allows reports whether traffic may go between from and to.
func (df DiagonalFilter) Allows(from, to datastructure.RoadID) bool {
	if len(df.Group2) == 0 {
		return true
	}
	return slices.Contains(df.Group2, from) == slices.Contains(df.Group2, to)
}

func (df DiagonalFilter) IsUnfiltered() bool {
	return len(df.Group2) == 0
}

func (df DiagonalFilter) Equal(other DiagonalFilter) bool {
	return df.Intersection == other.Intersection && df.Index == other.Index &&
		slices.Equal(df.Group1, other.Group1) && slices.Equal(df.Group2, other.Group2)
}

// ClockwiseRoads orders the roads of i by departure bearing, ties by road id.
func ClockwiseRoads(graph *movement.MovementGraph, i datastructure.IntersectionID) []datastructure.RoadID {
	roads := slices.Clone(graph.Network().RoadsAt(i))
	bearings := make(map[datastructure.RoadID]float64, len(roads))
	for _, r := range roads {
		bearings[r] = graph.DepartureBearing(r, i)
	}
	sort.SliceStable(roads, func(a, b int) bool {
		if bearings[roads[a]] != bearings[roads[b]] {
			return bearings[roads[a]] < bearings[roads[b]]
		}
		return roads[a] < roads[b]
	})
	return roads
}

/*
DiagonalFilterStates enumerates the rotation of diagonal filters at i. State 0 is unfiltered.
Then, for the clockwise road order o[0..n-1], every arc o[s:s+l] with s >= 1 becomes Group2,
ordered by (s, l). The arc never contains o[0], so each split appears exactly once:
n roads have 1 + n(n-1)/2 states. Intersections with fewer than 3 roads are never filtered.
*/
func DiagonalFilterStates(graph *movement.MovementGraph, i datastructure.IntersectionID) []DiagonalFilter {
	states := []DiagonalFilter{{Intersection: i, Index: 0}}

	order := ClockwiseRoads(graph, i)
	n := len(order)
	if n < 3 {
		return states
	}

	for s := 1; s < n; s++ {
		for l := 1; l <= n-s; l++ {
			group2 := slices.Clone(order[s : s+l])
			group1 := make([]datastructure.RoadID, 0, n-l)
			group1 = append(group1, order[s+l:]...)
			group1 = append(group1, order[:s]...)

			states = append(states, DiagonalFilter{
				Intersection: i,
				Index:        len(states),
				Group1:       group1,
				Group2:       group2,
			})
		}
	}
	return states
}
