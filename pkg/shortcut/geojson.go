package shortcut

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/paulmach/go.geojson"
)

func lineString(coords []datastructure.Coordinate) [][]float64 {
	ls := make([][]float64, len(coords))
	for i, c := range coords {
		ls[i] = []float64{c.Lon, c.Lat}
	}
	return ls
}

func point(c datastructure.Coordinate) []float64 {
	return []float64{c.Lon, c.Lat}
}

/*
FeatureCollection renders the result as an overlay:

	LineString kind=perimeter                         perimeter roads
	LineString kind=road  shortcuts, filtered         interior roads
	Point      kind=intersection shortcuts            interior intersections
	Point      kind=point_filter road                 point filters
	Point      kind=diagonal_filter state, group2     diagonal filters
*/
func (r *Result) FeatureCollection(net *network.RoadNetwork, in *neighborhood.Interior,
	filters *filter.ModalFilters) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, id := range in.Perimeter.Roads {
		f := geojson.NewLineStringFeature(lineString(net.GetRoad(id).Center))
		f.SetProperty("kind", "perimeter")
		f.SetProperty("road_id", int(id))
		fc.AddFeature(f)
	}

	for _, id := range in.Roads {
		road := net.GetRoad(id)
		f := geojson.NewLineStringFeature(lineString(road.Center))
		f.SetProperty("kind", "road")
		f.SetProperty("road_id", int(id))
		f.SetProperty("name", road.Name)
		f.SetProperty("shortcuts", r.RoadCount(id))
		f.SetProperty("filtered", filters.HasPointFilter(id))
		if url := net.RoadOSMURL(id); url != "" {
			f.SetProperty("osm_url", url)
		}
		fc.AddFeature(f)
	}

	for _, id := range in.Intersections {
		f := geojson.NewPointFeature(point(net.GetIntersection(id).Point))
		f.SetProperty("kind", "intersection")
		f.SetProperty("intersection_id", int(id))
		f.SetProperty("shortcuts", r.IntersectionCount(id))
		fc.AddFeature(f)
	}

	for id, distAlong := range filters.Roads {
		f := geojson.NewPointFeature(point(geo.PointAlongPolyline(net.GetRoad(id).Center, distAlong)))
		f.SetProperty("kind", "point_filter")
		f.SetProperty("road_id", int(id))
		f.SetProperty("dist_along", distAlong)
		fc.AddFeature(f)
	}

	for id, df := range filters.Intersections {
		group2 := make([]int, len(df.Group2))
		for i, r := range df.Group2 {
			group2[i] = int(r)
		}
		f := geojson.NewPointFeature(point(net.GetIntersection(id).Point))
		f.SetProperty("kind", "diagonal_filter")
		f.SetProperty("intersection_id", int(id))
		f.SetProperty("state", df.Index)
		f.SetProperty("group2", group2)
		fc.AddFeature(f)
	}

	return fc
}

func (r *Result) GeoJSON(net *network.RoadNetwork, in *neighborhood.Interior, filters *filter.ModalFilters) ([]byte, error) {
	return r.FeatureCollection(net, in, filters).MarshalJSON()
}
