package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

var (
	ErrDegenerateBoundary = errors.New("boundary needs at least 3 distinct points")
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

func fromS2Point(p s2.Point) datastructure.Coordinate {
	ll := s2.LatLngFromPoint(p)
	return datastructure.NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

func s2DistanceMeters(a, b s2.Point) float64 {
	return a.Distance(b).Radians() * earthRadiusM
}

// ProjectPointToLineCoord projects snap onto the segment (nearestStPoint, secondNearestStPoint).
func ProjectPointToLineCoord(nearestStPoint, secondNearestStPoint, snap datastructure.Coordinate) datastructure.Coordinate {
	projection := s2.Project(toS2Point(snap), toS2Point(nearestStPoint), toS2Point(secondNearestStPoint))
	return fromS2Point(projection)
}

/*
ProjectToPolyline. project p onto the closest segment of line.
returns the projected point and its distance along the line (meters, from line[0]).

	line[0] ---- line[1] ------x------ line[2]
	                           |
	                           p
*/
func ProjectToPolyline(line []datastructure.Coordinate, p datastructure.Coordinate) (datastructure.Coordinate, float64) {
	if len(line) == 0 {
		return p, 0
	}
	if len(line) == 1 {
		return line[0], 0
	}

	query := toS2Point(p)
	best := math.MaxFloat64
	bestPoint := line[0]
	bestAlong := 0.0

	along := 0.0
	for i := 0; i < len(line)-1; i++ {
		a := toS2Point(line[i])
		b := toS2Point(line[i+1])
		segLen := s2DistanceMeters(a, b)
		if segLen == 0 {
			continue
		}

		proj := s2.Project(query, a, b)
		dist := s2DistanceMeters(query, proj)
		if dist < best {
			best = dist
			bestPoint = fromS2Point(proj)
			bestAlong = along + math.Min(s2DistanceMeters(a, proj), segLen)
		}
		along += segLen
	}
	return bestPoint, bestAlong
}

// DistanceToPolyline returns the distance in meters from p to the closest point of line.
func DistanceToPolyline(line []datastructure.Coordinate, p datastructure.Coordinate) float64 {
	proj, _ := ProjectToPolyline(line, p)
	return s2DistanceMeters(toS2Point(p), toS2Point(proj))
}

// Boundary is a closed ring on the sphere. The enclosed region is always the smaller side.
type Boundary struct {
	loop *s2.Loop
	ring []datastructure.Coordinate
}

func NewBoundary(ring []datastructure.Coordinate) (*Boundary, error) {
	cleaned := make([]datastructure.Coordinate, 0, len(ring))
	for _, c := range ring {
		if len(cleaned) > 0 && cleaned[len(cleaned)-1] == c {
			continue
		}
		cleaned = append(cleaned, c)
	}
	if len(cleaned) > 1 && cleaned[0] == cleaned[len(cleaned)-1] {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) < 3 {
		return nil, ErrDegenerateBoundary
	}

	points := make([]s2.Point, len(cleaned))
	for i, c := range cleaned {
		points[i] = toS2Point(c)
	}

	loop := s2.LoopFromPoints(points)
	if err := loop.Validate(); err != nil {
		return nil, err
	}
	loop.Normalize()
	return &Boundary{loop: loop, ring: cleaned}, nil
}

func (b *Boundary) Contains(c datastructure.Coordinate) bool {
	return b.loop.ContainsPoint(toS2Point(c))
}

// Centroid is the mean of the ring vertices.
func (b *Boundary) Centroid() datastructure.Coordinate {
	return Centroid(b.ring)
}

func (b *Boundary) Ring() []datastructure.Coordinate {
	return b.ring
}
