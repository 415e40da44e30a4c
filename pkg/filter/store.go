package filter

import (
	"errors"
	"math"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/network"
)

var (
	ErrNoSnapshot = errors.New("no filter snapshot to undo")
)

// Eligibility decides whether a point filter may be placed on a road.
type Eligibility func(road *datastructure.Road) bool

// DefaultEligibility allows point filters on two-way roads that cars can use.
func DefaultEligibility(road *datastructure.Road) bool {
	return road.CanUse(datastructure.MODE_CAR) && !road.IsOneway()
}

type Option func(*Store)

func WithEligibility(eligible Eligibility) Option {
	return func(s *Store) {
		s.eligible = eligible
	}
}

// Store owns the modal filters of one neighborhood and a single undo slot.
// Not safe for concurrent use, the session serializes access.
type Store struct {
	graph    *movement.MovementGraph
	eligible Eligibility

	filters         *ModalFilters
	previousVersion *ModalFilters
}

func NewStore(graph *movement.MovementGraph, opts ...Option) *Store {
	s := &Store{
		graph:    graph,
		eligible: DefaultEligibility,
		filters:  NewModalFilters(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) network() *network.RoadNetwork {
	return s.graph.Network()
}

// Filters returns the current filters. callers must not modify them.
func (s *Store) Filters() *ModalFilters {
	return s.filters
}

func (s *Store) IsEligible(r datastructure.RoadID) bool {
	if !s.network().HasRoad(r) {
		return false
	}
	return s.eligible(s.network().GetRoad(r))
}

// PlaceOrRemovePointFilter removes the point filter of r if there is one, otherwise places one at
// pt projected onto the centerline. returns false without changes for ineligible roads.
func (s *Store) PlaceOrRemovePointFilter(r datastructure.RoadID, pt datastructure.Coordinate) bool {
	if !s.IsEligible(r) {
		return false
	}
	_, distAlong := geo.ProjectToPolyline(s.network().GetRoad(r).Center, pt)
	return s.PlaceOrRemovePointFilterAt(r, distAlong)
}

// PlaceOrRemovePointFilterAt is PlaceOrRemovePointFilter with the distance along the centerline
// already known. distAlong is clamped to the road.
func (s *Store) PlaceOrRemovePointFilterAt(r datastructure.RoadID, distAlong float64) bool {
	if !s.IsEligible(r) {
		return false
	}
	if _, ok := s.filters.Roads[r]; ok {
		delete(s.filters.Roads, r)
		return true
	}
	length := s.network().GetRoad(r).Length
	s.filters.Roads[r] = math.Max(0, math.Min(distAlong, length))
	return true
}

// CycleDiagonalFilter moves i to the next state of its rotation, wrapping back to unfiltered.
// returns false when i has no filter states besides unfiltered.
func (s *Store) CycleDiagonalFilter(i datastructure.IntersectionID) bool {
	if !s.network().HasIntersection(i) {
		return false
	}
	states := DiagonalFilterStates(s.graph, i)
	if len(states) < 2 {
		return false
	}

	current := 0
	if df, ok := s.filters.Intersections[i]; ok {
		current = df.Index
	}
	next := (current + 1) % len(states)
	if next == 0 {
		delete(s.filters.Intersections, i)
	} else {
		s.filters.Intersections[i] = states[next]
	}
	return true
}

// BeginEdit snapshots the current filters into the undo slot, replacing any older snapshot.
func (s *Store) BeginEdit() {
	s.previousVersion = s.filters.Clone()
}

// Undo restores the snapshot taken by the last BeginEdit and empties the undo slot.
func (s *Store) Undo() error {
	if s.previousVersion == nil {
		return ErrNoSnapshot
	}
	s.filters = s.previousVersion
	s.previousVersion = nil
	return nil
}

func (s *Store) UndoAvailable() bool {
	return s.previousVersion != nil
}

// Replace swaps in filters loaded from elsewhere. Entries for roads or intersections that do not
// exist in the network are dropped.
func (s *Store) Replace(filters *ModalFilters) {
	next := NewModalFilters()
	for r, dist := range filters.Roads {
		if s.network().HasRoad(r) {
			next.Roads[r] = dist
		}
	}
	for i, df := range filters.Intersections {
		if !s.network().HasIntersection(i) {
			continue
		}
		states := DiagonalFilterStates(s.graph, i)
		if df.Index > 0 && df.Index < len(states) {
			next.Intersections[i] = states[df.Index]
		}
	}
	s.filters = next
}
