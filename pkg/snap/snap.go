package snap

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/lintang-b-s/ltn/pkg/network"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	nearestK         = 8
	bboxPadding      = 1e-9
)

type roadLeaf struct {
	road                           datastructure.RoadID
	rect                           rtreego.Rect
	minLat, minLon, maxLat, maxLon float64
}

func (l *roadLeaf) Bounds() rtreego.Rect {
	return l.rect
}

// degreesTo is the planar distance in degrees from q to the box, the metric the r-tree ranks by.
func (l *roadLeaf) degreesTo(q rtreego.Point) float64 {
	dLon := math.Max(0, math.Max(l.minLon-q[0], q[0]-l.maxLon))
	dLat := math.Max(0, math.Max(l.minLat-q[1], q[1]-l.maxLat))
	return math.Hypot(dLon, dLat)
}

func newRoadLeaf(road datastructure.RoadID, center []datastructure.Coordinate) (*roadLeaf, error) {
	l := &roadLeaf{
		road:   road,
		minLat: math.MaxFloat64, minLon: math.MaxFloat64,
		maxLat: -math.MaxFloat64, maxLon: -math.MaxFloat64,
	}
	for _, c := range center {
		l.minLat, l.maxLat = math.Min(l.minLat, c.Lat), math.Max(l.maxLat, c.Lat)
		l.minLon, l.maxLon = math.Min(l.minLon, c.Lon), math.Max(l.maxLon, c.Lon)
	}
	rect, err := rtreego.NewRectFromPoints(
		rtreego.Point{l.minLon - bboxPadding, l.minLat - bboxPadding},
		rtreego.Point{l.maxLon + bboxPadding, l.maxLat + bboxPadding},
	)
	if err != nil {
		return nil, err
	}
	l.rect = rect
	return l, nil
}

// RoadSnapper finds the road nearest to a clicked coordinate.
type RoadSnapper struct {
	net  *network.RoadNetwork
	tree *rtreego.Rtree
}

func NewRoadSnapper(net *network.RoadNetwork) (*RoadSnapper, error) {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for _, road := range net.Roads() {
		leaf, err := newRoadLeaf(road.ID, road.Center)
		if err != nil {
			return nil, err
		}
		tree.Insert(leaf)
	}
	return &RoadSnapper{net: net, tree: tree}, nil
}

// Snapped is a coordinate projected onto a road centerline.
type Snapped struct {
	Road      datastructure.RoadID
	Point     datastructure.Coordinate
	DistAlong float64
	Distance  float64
}

/*
SnapToRoad returns the road closest to p among the roads accepted by accept (nil accepts all).
The r-tree ranks candidates by bounding box, so the nearest candidates are re-ranked by the exact
distance to their centerlines. The candidate set doubles until the box of the farthest candidate
is farther than the best centerline, or every road has been seen.
*/
func (rs *RoadSnapper) SnapToRoad(p datastructure.Coordinate, accept func(datastructure.RoadID) bool) (Snapped, bool) {
	query := rtreego.Point{p.Lon, p.Lat}
	total := rs.net.NumRoads()
	// meters per degree of longitude at p, a lower bound for anything the r-tree ranks later
	metersPerDegree := geo.HaversineMeters(0, 0, 1, 0) * math.Cos(math.Min(math.Abs(p.Lat)+1, 90)*math.Pi/180)

	for k := nearestK; ; k *= 2 {
		if k > total {
			k = total
		}

		var (
			best     Snapped
			found    bool
			farthest *roadLeaf
		)
		for _, obj := range rs.tree.NearestNeighbors(k, query) {
			if obj == nil {
				continue
			}
			leaf := obj.(*roadLeaf)
			farthest = leaf
			if accept != nil && !accept(leaf.road) {
				continue
			}
			center := rs.net.GetRoad(leaf.road).Center
			proj, along := geo.ProjectToPolyline(center, p)
			cand := Snapped{
				Road:      leaf.road,
				Point:     proj,
				DistAlong: along,
				Distance:  geo.HaversineMeters(p.Lat, p.Lon, proj.Lat, proj.Lon),
			}
			if !found || cand.Distance < best.Distance || (cand.Distance == best.Distance && cand.Road < best.Road) {
				best, found = cand, true
			}
		}

		if k >= total {
			return best, found
		}
		if found && farthest != nil && farthest.degreesTo(query)*metersPerDegree > best.Distance {
			return best, true
		}
	}
}
