package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/lintang-b-s/ltn/pkg/connectivity"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/kv"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/server"
	"github.com/lintang-b-s/ltn/pkg/session"
)

// NeighborhoodService keeps one editing session per neighborhood id. all sessions share the same
// movement graph.
type NeighborhoodService struct {
	graph       *movement.MovementGraph
	repo        FilterRepository
	snapper     RoadSnapper
	sessionOpts []session.Option

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewNeighborhoodService(graph *movement.MovementGraph, repo FilterRepository, snapper RoadSnapper,
	sessionOpts ...session.Option) *NeighborhoodService {
	return &NeighborhoodService{
		graph:       graph,
		repo:        repo,
		snapper:     snapper,
		sessionOpts: sessionOpts,
		sessions:    make(map[string]*session.Session),
	}
}

func (ns *NeighborhoodService) Network() *network.RoadNetwork {
	return ns.graph.Network()
}

func (ns *NeighborhoodService) get(id string) (*session.Session, error) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	s, ok := ns.sessions[id]
	if !ok {
		return nil, server.NewErrorf(server.ErrNotFound, "neighborhood %s not found", id)
	}
	return s, nil
}

func (ns *NeighborhoodService) newSession(perimeter neighborhood.Perimeter) (*session.Session, error) {
	s, err := session.New(ns.graph, perimeter, ns.sessionOpts...)
	if errors.Is(err, neighborhood.ErrInvalidPerimeter) {
		return nil, server.WrapErrorf(err, server.ErrBadParamInput, "invalid perimeter")
	}
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return s, nil
}

// CreateNeighborhood starts a session for the neighborhood enclosed by perimeter.
func (ns *NeighborhoodService) CreateNeighborhood(ctx context.Context, id string,
	perimeter neighborhood.Perimeter) (session.View, error) {
	for _, r := range perimeter.Roads {
		if !ns.Network().HasRoad(r) {
			return session.View{}, server.NewErrorf(server.ErrBadParamInput, "road %d does not exist", r)
		}
	}

	s, err := ns.newSession(perimeter)
	if err != nil {
		return session.View{}, err
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()
	if _, ok := ns.sessions[id]; ok {
		return session.View{}, server.NewErrorf(server.ErrConflict, "neighborhood %s already exists", id)
	}
	ns.sessions[id] = s

	v := s.View()
	log.Printf("neighborhood %s created: %d interior roads, %d borders", id, len(v.Interior.Roads), len(v.Interior.Borders))
	return v, nil
}

func (ns *NeighborhoodService) GetNeighborhood(ctx context.Context, id string) (session.View, error) {
	s, err := ns.get(id)
	if err != nil {
		return session.View{}, err
	}
	return s.View(), nil
}

// ListNeighborhoods returns the ids of the open sessions, sorted.
func (ns *NeighborhoodService) ListNeighborhoods(ctx context.Context) []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	ids := make([]string, 0, len(ns.sessions))
	for id := range ns.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (ns *NeighborhoodService) CloseNeighborhood(ctx context.Context, id string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if _, ok := ns.sessions[id]; !ok {
		return server.NewErrorf(server.ErrNotFound, "neighborhood %s not found", id)
	}
	delete(ns.sessions, id)
	return nil
}

/*
TogglePointFilter places or removes a point filter. when road is nil the clicked point is snapped to
the nearest road of the neighborhood that can carry a filter. returns the road that was edited and
whether anything changed.
*/
func (ns *NeighborhoodService) TogglePointFilter(ctx context.Context, id string, road *datastructure.RoadID,
	pt datastructure.Coordinate) (datastructure.RoadID, bool, error) {
	s, err := ns.get(id)
	if err != nil {
		return 0, false, err
	}

	var r datastructure.RoadID
	if road != nil {
		r = *road
	} else {
		snapped, ok := ns.snapper.SnapToRoad(pt, s.Editable)
		if !ok {
			return 0, false, server.NewErrorf(server.ErrNotFound, "no filterable road near (%f, %f)", pt.Lat, pt.Lon)
		}
		r = snapped.Road
	}

	changed, err := s.TogglePointFilter(r, pt)
	if errors.Is(err, session.ErrUnknownRoad) {
		return r, false, server.WrapErrorf(err, server.ErrBadParamInput, "road %d does not exist", r)
	}
	if err != nil {
		return r, false, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return r, changed, nil
}

func (ns *NeighborhoodService) CycleDiagonalFilter(ctx context.Context, id string,
	i datastructure.IntersectionID) (bool, error) {
	s, err := ns.get(id)
	if err != nil {
		return false, err
	}

	changed, err := s.CycleDiagonalFilter(i)
	if errors.Is(err, session.ErrUnknownIntersection) {
		return false, server.WrapErrorf(err, server.ErrBadParamInput, "intersection %d does not exist", i)
	}
	if err != nil {
		return false, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return changed, nil
}

func (ns *NeighborhoodService) Undo(ctx context.Context, id string) error {
	s, err := ns.get(id)
	if err != nil {
		return err
	}

	err = s.Undo()
	if errors.Is(err, filter.ErrNoSnapshot) {
		return server.WrapErrorf(err, server.ErrConflict, "nothing to undo")
	}
	return err
}

func (ns *NeighborhoodService) SetPerimeter(ctx context.Context, id string, perimeter neighborhood.Perimeter) (session.View, error) {
	s, err := ns.get(id)
	if err != nil {
		return session.View{}, err
	}

	err = s.SetPerimeter(perimeter)
	if errors.Is(err, neighborhood.ErrInvalidPerimeter) {
		return session.View{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid perimeter")
	}
	if err != nil {
		return session.View{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return s.View(), nil
}

func (ns *NeighborhoodService) Cells(ctx context.Context, id string) (*connectivity.Connectivity, error) {
	s, err := ns.get(id)
	if err != nil {
		return nil, err
	}
	return s.Cells(), nil
}

// ShortcutsGeoJSON renders the perimeter, shortcut counts and filters of the neighborhood.
func (ns *NeighborhoodService) ShortcutsGeoJSON(ctx context.Context, id string) ([]byte, error) {
	s, err := ns.get(id)
	if err != nil {
		return nil, err
	}

	v := s.View()
	data, err := v.Result.GeoJSON(ns.Network(), v.Interior, v.Filters)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return data, nil
}

// SaveNeighborhood persists the perimeter and filters of an open session.
func (ns *NeighborhoodService) SaveNeighborhood(ctx context.Context, id string) error {
	s, err := ns.get(id)
	if err != nil {
		return err
	}

	v := s.View()
	err = ns.repo.SaveFilters(ctx, id, v.Interior.Perimeter, v.Interior.Centroid(), v.Filters)
	if err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nil
}

/*
LoadNeighborhood opens a session from a saved neighborhood. an already open session is moved to the
saved perimeter and its filters are replaced, which can be undone.
*/
func (ns *NeighborhoodService) LoadNeighborhood(ctx context.Context, id string) (session.View, error) {
	perimeter, filters, err := ns.repo.LoadFilters(ctx, id)
	if errors.Is(err, kv.ErrFiltersNotFound) {
		return session.View{}, server.WrapErrorf(err, server.ErrNotFound, "neighborhood %s was never saved", id)
	}
	if err != nil {
		return session.View{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	if s, err := ns.get(id); err == nil {
		if err := s.SetPerimeter(perimeter); err != nil {
			return session.View{}, server.WrapErrorf(err, server.ErrConflict, "saved perimeter no longer fits the network")
		}
		s.ReplaceFilters(filters)
		return s.View(), nil
	}

	s, err := ns.newSession(perimeter)
	if err != nil {
		return session.View{}, err
	}
	s.ReplaceFilters(filters)

	ns.mu.Lock()
	defer ns.mu.Unlock()
	if existing, ok := ns.sessions[id]; ok {
		// opened concurrently, keep the first one.
		return existing.View(), nil
	}
	ns.sessions[id] = s

	log.Printf("neighborhood %s loaded with %d filters", id, filters.Len())
	return s.View(), nil
}

func (ns *NeighborhoodService) DeleteNeighborhood(ctx context.Context, id string) error {
	err := ns.repo.DeleteFilters(ctx, id)
	if errors.Is(err, kv.ErrFiltersNotFound) {
		return server.WrapErrorf(err, server.ErrNotFound, "neighborhood %s was never saved", id)
	}
	if err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return nil
}

func (ns *NeighborhoodService) NeighborhoodsNear(ctx context.Context, lat, lon, radiusKm float64) ([]string, error) {
	ids, err := ns.repo.NeighborhoodsNear(ctx, lat, lon, radiusKm)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return ids, nil
}
