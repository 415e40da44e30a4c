package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/ltn/pkg/connectivity"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/shortcut"
)

var (
	ErrUnknownRoad         = errors.New("unknown road")
	ErrUnknownIntersection = errors.New("unknown intersection")
)

type Option func(*config)

type config struct {
	shortcutOpts []shortcut.Option
	filterOpts   []filter.Option
	onRecompute  func(time.Duration)
}

func WithShortcutOptions(opts ...shortcut.Option) Option {
	return func(c *config) {
		c.shortcutOpts = append(c.shortcutOpts, opts...)
	}
}

func WithEligibility(eligible filter.Eligibility) Option {
	return func(c *config) {
		c.filterOpts = append(c.filterOpts, filter.WithEligibility(eligible))
	}
}

// OnRecompute is called after every shortcut recomputation with its duration.
func OnRecompute(fn func(time.Duration)) Option {
	return func(c *config) {
		c.onRecompute = fn
	}
}

// View is a consistent, read-only snapshot of a session.
type View struct {
	Interior      *neighborhood.Interior
	Filters       *filter.ModalFilters
	Result        *shortcut.Result
	UndoAvailable bool
}

/*
Session is the edit state of one neighborhood. every edit goes through

	eligibility screen -> BeginEdit -> mutate filters -> recompute shortcuts -> publish

writers are serialized by writeMu. readers only see published views, guarded by mu, so a reader
never observes a half-applied edit.
*/
type Session struct {
	graph       *movement.MovementGraph
	finder      *shortcut.Finder
	onRecompute func(time.Duration)

	writeMu  sync.Mutex
	store    *filter.Store
	interior *neighborhood.Interior
	version  int

	mu   sync.RWMutex
	view View
}

func New(graph *movement.MovementGraph, perimeter neighborhood.Perimeter, opts ...Option) (*Session, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	interior, err := neighborhood.NewInterior(perimeter, graph.Network())
	if err != nil {
		return nil, err
	}

	s := &Session{
		graph:       graph,
		finder:      shortcut.NewFinder(graph, cfg.shortcutOpts...),
		onRecompute: cfg.onRecompute,
		store:       filter.NewStore(graph, cfg.filterOpts...),
		interior:    interior,
	}
	s.recompute()
	return s, nil
}

func (s *Session) Network() *network.RoadNetwork {
	return s.graph.Network()
}

func (s *Session) Graph() *movement.MovementGraph {
	return s.graph
}

// recompute must be called with writeMu held.
func (s *Session) recompute() {
	start := time.Now()
	result := s.finder.Recompute(s.interior, s.store.Filters())
	elapsed := time.Since(start)

	s.version++
	result.Version = s.version

	s.mu.Lock()
	s.view = View{
		Interior:      s.interior,
		Filters:       s.store.Filters().Clone(),
		Result:        result,
		UndoAvailable: s.store.UndoAvailable(),
	}
	s.mu.Unlock()

	if s.onRecompute != nil {
		s.onRecompute(elapsed)
	}
}

// TogglePointFilter places or removes the point filter on an interior road at pt projected onto
// the centerline. returns false, with nothing changed, for roads that can not be filtered.
func (s *Session) TogglePointFilter(r datastructure.RoadID, pt datastructure.Coordinate) (bool, error) {
	return s.editRoad(r, func() bool {
		return s.store.PlaceOrRemovePointFilter(r, pt)
	})
}

func (s *Session) TogglePointFilterAt(r datastructure.RoadID, distAlong float64) (bool, error) {
	return s.editRoad(r, func() bool {
		return s.store.PlaceOrRemovePointFilterAt(r, distAlong)
	})
}

func (s *Session) editRoad(r datastructure.RoadID, mutate func() bool) (bool, error) {
	if !s.Network().HasRoad(r) {
		return false, fmt.Errorf("road %d: %w", r, ErrUnknownRoad)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.interior.HasRoad(r) || !s.store.IsEligible(r) {
		return false, nil
	}
	return s.commit(mutate), nil
}

// Editable reports whether a point filter can be placed on road r.
func (s *Session) Editable(r datastructure.RoadID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.interior.HasRoad(r) && s.store.IsEligible(r)
}

// CycleDiagonalFilter advances the diagonal filter of an interior intersection. returns false for
// intersections that can not be filtered.
func (s *Session) CycleDiagonalFilter(i datastructure.IntersectionID) (bool, error) {
	if !s.Network().HasIntersection(i) {
		return false, fmt.Errorf("intersection %d: %w", i, ErrUnknownIntersection)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.interior.HasIntersection(i) || len(filter.DiagonalFilterStates(s.graph, i)) < 2 {
		return false, nil
	}
	return s.commit(func() bool {
		return s.store.CycleDiagonalFilter(i)
	}), nil
}

// commit brackets mutate with BeginEdit and a recompute. must be called with writeMu held.
func (s *Session) commit(mutate func() bool) bool {
	s.store.BeginEdit()
	if !mutate() {
		return false
	}
	s.recompute()
	return true
}

// Undo restores the filters before the last edit. returns filter.ErrNoSnapshot when there is none.
func (s *Session) Undo() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Undo(); err != nil {
		return err
	}
	s.recompute()
	return nil
}

// ReplaceFilters swaps in filters loaded from storage as one undoable edit.
func (s *Session) ReplaceFilters(filters *filter.ModalFilters) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.commit(func() bool {
		s.store.Replace(filters)
		return true
	})
}

// SetPerimeter moves the boundary of the neighborhood. filters are kept. on error the session is
// left unchanged.
func (s *Session) SetPerimeter(perimeter neighborhood.Perimeter) error {
	interior, err := neighborhood.NewInterior(perimeter, s.Network())
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.interior = interior
	s.recompute()
	return nil
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Session) Result() *shortcut.Result {
	return s.View().Result
}

// Filters returns the filters as of the last edit. callers must not modify them.
func (s *Session) Filters() *filter.ModalFilters {
	return s.View().Filters
}

func (s *Session) Interior() *neighborhood.Interior {
	return s.View().Interior
}

func (s *Session) UndoAvailable() bool {
	return s.View().UndoAvailable
}

func (s *Session) Cells() *connectivity.Connectivity {
	v := s.View()
	return connectivity.Cells(v.Interior, s.graph, v.Filters)
}
