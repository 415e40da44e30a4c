package neighborhood

import (
	"sort"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/geo"
	"github.com/lintang-b-s/ltn/pkg/network"
)

// Interior is the part of the network strictly enclosed by a perimeter.
//
// Roads and Intersections are sorted by id. Borders are where through traffic enters and leaves:
// perimeter intersections that touch at least one interior road, and interior intersections with a
// crossing road. A crossing road leaves an interior intersection for one outside the boundary
// without using the perimeter (a bridge or tunnel); it is neither interior nor perimeter.
type Interior struct {
	Perimeter              Perimeter
	PerimeterIntersections []datastructure.IntersectionID
	Roads                  []datastructure.RoadID
	Intersections          []datastructure.IntersectionID
	Borders                []datastructure.IntersectionID
	Crossings              []datastructure.RoadID
	Boundary               *geo.Boundary

	roadSet                  map[datastructure.RoadID]struct{}
	intersectionSet          map[datastructure.IntersectionID]struct{}
	perimeterRoadSet         map[datastructure.RoadID]struct{}
	perimeterIntersectionSet map[datastructure.IntersectionID]struct{}
	borderSet                map[datastructure.IntersectionID]struct{}
	crossingSet              map[datastructure.RoadID]struct{}
}

/*
NewInterior computes the interior of perimeter:

 1. the perimeter must be a simple cycle of at least 3 roads.
 2. the boundary polygon is built from the perimeter centerlines.
 3. flood fill from the seed (or every non-perimeter intersection inside the boundary) through
    non-perimeter roads. the fill never leaves a perimeter intersection and never enters an
    intersection outside the boundary. a road that would enter one is a crossing and its interior
    end becomes a border.
 4. non-perimeter roads between two perimeter intersections are interior when their midpoint is
    inside the boundary.

returns ErrInvalidPerimeter when any step fails or nothing is enclosed.
*/
func NewInterior(perimeter Perimeter, net *network.RoadNetwork) (*Interior, error) {
	ring, dirs, err := perimeter.walk(net)
	if err != nil {
		return nil, err
	}

	boundary, err := geo.NewBoundary(ringCoordinates(net, perimeter.Roads, dirs))
	if err != nil {
		return nil, invalidPerimeter("boundary polygon: %v", err)
	}

	in := &Interior{
		Perimeter:                perimeter,
		PerimeterIntersections:   ring,
		Boundary:                 boundary,
		roadSet:                  make(map[datastructure.RoadID]struct{}),
		intersectionSet:          make(map[datastructure.IntersectionID]struct{}),
		perimeterRoadSet:         make(map[datastructure.RoadID]struct{}, len(perimeter.Roads)),
		perimeterIntersectionSet: make(map[datastructure.IntersectionID]struct{}, len(ring)),
		borderSet:                make(map[datastructure.IntersectionID]struct{}),
		crossingSet:              make(map[datastructure.RoadID]struct{}),
	}
	for _, r := range perimeter.Roads {
		in.perimeterRoadSet[r] = struct{}{}
	}
	for _, i := range ring {
		in.perimeterIntersectionSet[i] = struct{}{}
	}

	seeds, err := in.seeds(net)
	if err != nil {
		return nil, err
	}

	in.floodFill(net, seeds)
	in.addChords(net)

	if len(in.roadSet) == 0 {
		return nil, invalidPerimeter("perimeter encloses no roads")
	}

	in.Roads = make([]datastructure.RoadID, 0, len(in.roadSet))
	for r := range in.roadSet {
		in.Roads = append(in.Roads, r)
		road := net.GetRoad(r)
		for _, end := range [2]datastructure.IntersectionID{road.Src, road.Dst} {
			if in.IsPerimeterIntersection(end) {
				in.borderSet[end] = struct{}{}
			}
		}
	}
	sort.Slice(in.Roads, func(a, b int) bool { return in.Roads[a] < in.Roads[b] })

	in.Crossings = make([]datastructure.RoadID, 0, len(in.crossingSet))
	for r := range in.crossingSet {
		in.Crossings = append(in.Crossings, r)
	}
	sort.Slice(in.Crossings, func(a, b int) bool { return in.Crossings[a] < in.Crossings[b] })

	in.Intersections = sortedIntersections(in.intersectionSet)
	in.Borders = sortedIntersections(in.borderSet)
	return in, nil
}

func (in *Interior) seeds(net *network.RoadNetwork) ([]datastructure.IntersectionID, error) {
	if in.Perimeter.Seed != nil {
		seed := *in.Perimeter.Seed
		if !net.HasIntersection(seed) {
			return nil, invalidPerimeter("unknown seed intersection %d", seed)
		}
		if in.IsPerimeterIntersection(seed) {
			return nil, invalidPerimeter("seed %d lies on the perimeter", seed)
		}
		if !in.Boundary.Contains(net.GetIntersection(seed).Point) {
			return nil, invalidPerimeter("seed %d lies outside the perimeter", seed)
		}
		return []datastructure.IntersectionID{seed}, nil
	}

	seeds := make([]datastructure.IntersectionID, 0)
	for _, i := range net.Intersections() {
		if in.IsPerimeterIntersection(i.ID) || len(i.Roads) == 0 {
			continue
		}
		if in.Boundary.Contains(i.Point) {
			seeds = append(seeds, i.ID)
		}
	}
	return seeds, nil
}

func (in *Interior) floodFill(net *network.RoadNetwork, seeds []datastructure.IntersectionID) {
	queue := make([]datastructure.IntersectionID, 0, len(seeds))
	for _, s := range seeds {
		if _, ok := in.intersectionSet[s]; ok {
			continue
		}
		in.intersectionSet[s] = struct{}{}
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, r := range net.RoadsAt(u) {
			if in.IsPerimeterRoad(r) {
				continue
			}
			v := net.OtherEnd(r, u)
			if in.IsPerimeterIntersection(v) {
				in.roadSet[r] = struct{}{}
				continue
			}
			if !in.Boundary.Contains(net.GetIntersection(v).Point) {
				in.crossingSet[r] = struct{}{}
				in.borderSet[u] = struct{}{}
				continue
			}

			in.roadSet[r] = struct{}{}
			if _, ok := in.intersectionSet[v]; !ok {
				in.intersectionSet[v] = struct{}{}
				queue = append(queue, v)
			}
		}
	}
}

func (in *Interior) addChords(net *network.RoadNetwork) {
	for _, i := range in.PerimeterIntersections {
		for _, r := range net.RoadsAt(i) {
			if in.IsPerimeterRoad(r) {
				continue
			}
			if !in.IsPerimeterIntersection(net.OtherEnd(r, i)) {
				continue
			}
			if in.Boundary.Contains(geo.Midpoint(net.GetRoad(r).Center)) {
				in.roadSet[r] = struct{}{}
			}
		}
	}
}

func sortedIntersections(set map[datastructure.IntersectionID]struct{}) []datastructure.IntersectionID {
	ids := make([]datastructure.IntersectionID, 0, len(set))
	for i := range set {
		ids = append(ids, i)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

func (in *Interior) HasRoad(r datastructure.RoadID) bool {
	_, ok := in.roadSet[r]
	return ok
}

// HasIntersection reports whether i is an interior, non-perimeter intersection.
func (in *Interior) HasIntersection(i datastructure.IntersectionID) bool {
	_, ok := in.intersectionSet[i]
	return ok
}

func (in *Interior) IsPerimeterRoad(r datastructure.RoadID) bool {
	_, ok := in.perimeterRoadSet[r]
	return ok
}

func (in *Interior) IsPerimeterIntersection(i datastructure.IntersectionID) bool {
	_, ok := in.perimeterIntersectionSet[i]
	return ok
}

func (in *Interior) IsBorder(i datastructure.IntersectionID) bool {
	_, ok := in.borderSet[i]
	return ok
}

func (in *Interior) IsCrossing(r datastructure.RoadID) bool {
	_, ok := in.crossingSet[r]
	return ok
}

// InSearchGraph reports whether shortcuts may use r: interior and perimeter roads.
func (in *Interior) InSearchGraph(r datastructure.RoadID) bool {
	return in.HasRoad(r) || in.IsPerimeterRoad(r)
}

// Centroid of the perimeter ring.
func (in *Interior) Centroid() datastructure.Coordinate {
	return in.Boundary.Centroid()
}
