package geo

import (
	"math"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

func toLineString(coords []datastructure.Coordinate) orb.LineString {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c.Lon, c.Lat}
	}
	return ls
}

// PolylineLength returns the geodesic length of coords in meters.
func PolylineLength(coords []datastructure.Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	return orbgeo.Length(toLineString(coords))
}

// Bearing from a to b in degrees clockwise from north, in [0, 360).
func Bearing(a, b datastructure.Coordinate) float64 {
	bearing := orbgeo.Bearing(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat})
	return math.Mod(bearing+360, 360)
}

// BearingDiff returns to-from normalized to (-180, 180]. positive is a clockwise (right) turn.
func BearingDiff(from, to float64) float64 {
	diff := math.Mod(to-from, 360)
	if diff <= -180 {
		diff += 360
	}
	if diff > 180 {
		diff -= 360
	}
	return diff
}

// PointAlongPolyline returns the point dist meters along coords, clamped to the line ends.
func PointAlongPolyline(coords []datastructure.Coordinate, dist float64) datastructure.Coordinate {
	if len(coords) == 0 {
		return datastructure.Coordinate{}
	}
	if len(coords) == 1 || dist <= 0 {
		return coords[0]
	}
	p, _ := orbgeo.PointAtDistanceAlongLine(toLineString(coords), dist)
	return datastructure.NewCoordinate(p.Lat(), p.Lon())
}

func Midpoint(coords []datastructure.Coordinate) datastructure.Coordinate {
	return PointAlongPolyline(coords, PolylineLength(coords)/2)
}

func Centroid(coords []datastructure.Coordinate) datastructure.Coordinate {
	if len(coords) == 0 {
		return datastructure.Coordinate{}
	}
	lat, lon := 0.0, 0.0
	for _, c := range coords {
		lat += c.Lat
		lon += c.Lon
	}
	n := float64(len(coords))
	return datastructure.NewCoordinate(lat/n, lon/n)
}
