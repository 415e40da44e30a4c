package network

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/paulmach/go.geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

const (
	kindIntersection = "intersection"
	kindRoad         = "road"
)

/*
LoadGeoJSON builds a network from a FeatureCollection:

	Point      {kind: intersection, id, osm_id}
	LineString {kind: road, src, dst, name, osm_id, lanes | oneway | highway}

src and dst refer to the id property of intersections. lanes is a comma separated list of
<type><dir> tokens, type one of d (driving) b (biking) t (bus) s (sidewalk) p (parking), dir F or B,
e.g. "sB,dB,dF,sF". Without lanes, oneway=yes gives a one-way street and highway=cycleway a
cycle path.
*/
func LoadGeoJSON(data []byte) (*RoadNetwork, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}

	b := NewBuilder()
	idMap := make(map[int64]datastructure.IntersectionID)

	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() {
			continue
		}
		if f.PropertyMustString("kind", kindIntersection) != kindIntersection {
			continue
		}
		if len(f.Geometry.Point) < 2 {
			return nil, fmt.Errorf("feature %d: point without coordinates", i)
		}

		extID := int64(f.PropertyMustFloat64("id", float64(i)))
		if _, ok := idMap[extID]; ok {
			return nil, fmt.Errorf("feature %d: duplicate intersection id %d", i, extID)
		}
		point := datastructure.NewCoordinate(f.Geometry.Point[1], f.Geometry.Point[0])
		idMap[extID] = b.AddIntersection(point, osm.NodeID(int64(f.PropertyMustFloat64("osm_id", 0))))
	}

	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsLineString() {
			continue
		}
		if f.PropertyMustString("kind", kindRoad) != kindRoad {
			continue
		}

		src, ok := idMap[int64(f.PropertyMustFloat64("src", -1))]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEndpoint, "feature %d src", i)
		}
		dst, ok := idMap[int64(f.PropertyMustFloat64("dst", -1))]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEndpoint, "feature %d dst", i)
		}

		center := make([]datastructure.Coordinate, 0, len(f.Geometry.LineString))
		for _, c := range f.Geometry.LineString {
			if len(c) < 2 {
				return nil, fmt.Errorf("feature %d: invalid linestring coordinate", i)
			}
			center = append(center, datastructure.NewCoordinate(c[1], c[0]))
		}

		lanes, err := lanesFromProperties(f)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}

		b.AddRoad(src, dst, center, lanes, f.PropertyMustString("name", ""),
			osm.WayID(int64(f.PropertyMustFloat64("osm_id", 0))))
	}

	return b.Build()
}

func lanesFromProperties(f *geojson.Feature) ([]datastructure.Lane, error) {
	spec := f.PropertyMustString("lanes", "")
	if spec == "" {
		switch {
		case f.PropertyMustString("highway", "") == "cycleway":
			return CyclewayLanes(), nil
		case f.PropertyMustString("oneway", "no") == "yes":
			return OnewayLanes(), nil
		default:
			return TwoWayLanes(), nil
		}
	}
	return ParseLanes(spec)
}

// ParseLanes parses a lane list such as "sB,dB,dF,sF".
func ParseLanes(spec string) ([]datastructure.Lane, error) {
	tokens := strings.Split(spec, ",")
	lanes := make([]datastructure.Lane, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if len(tok) != 2 {
			return nil, fmt.Errorf("invalid lane %q", tok)
		}

		var laneType datastructure.LaneType
		switch tok[0] {
		case 'd':
			laneType = datastructure.LANE_DRIVING
		case 'b':
			laneType = datastructure.LANE_BIKING
		case 't':
			laneType = datastructure.LANE_BUS
		case 's':
			laneType = datastructure.LANE_SIDEWALK
		case 'p':
			laneType = datastructure.LANE_PARKING
		default:
			return nil, fmt.Errorf("invalid lane type %q", tok)
		}

		var dir datastructure.Direction
		switch tok[1] {
		case 'F':
			dir = datastructure.FORWARD
		case 'B':
			dir = datastructure.BACKWARD
		default:
			return nil, fmt.Errorf("invalid lane direction %q", tok)
		}
		lanes = append(lanes, datastructure.NewLane(laneType, dir))
	}
	return lanes, nil
}
