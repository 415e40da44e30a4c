package service

import (
	"context"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/snap"
)

type FilterRepository interface {
	SaveFilters(ctx context.Context, id string, perimeter neighborhood.Perimeter,
		centroid datastructure.Coordinate, filters *filter.ModalFilters) error
	LoadFilters(ctx context.Context, id string) (neighborhood.Perimeter, *filter.ModalFilters, error)
	DeleteFilters(ctx context.Context, id string) error
	NeighborhoodsNear(ctx context.Context, lat, lon, searchRadiusKm float64) ([]string, error)
}

type RoadSnapper interface {
	SnapToRoad(p datastructure.Coordinate, accept func(datastructure.RoadID) bool) (snap.Snapped, bool)
}
