// Package fixture builds small hand-made networks for tests.
package fixture

import (
	"fmt"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/paulmach/osm"
)

type Fixture struct {
	Network       *network.RoadNetwork
	Perimeter     []datastructure.RoadID
	Roads         map[string]datastructure.RoadID
	Intersections map[string]datastructure.IntersectionID
}

type fixtureBuilder struct {
	b             *network.Builder
	roads         map[string]datastructure.RoadID
	intersections map[string]datastructure.IntersectionID
}

func newFixtureBuilder() *fixtureBuilder {
	return &fixtureBuilder{
		b:             network.NewBuilder(),
		roads:         make(map[string]datastructure.RoadID),
		intersections: make(map[string]datastructure.IntersectionID),
	}
}

func (fb *fixtureBuilder) node(name string, lat, lon float64) {
	id := fb.b.AddIntersection(datastructure.NewCoordinate(lat, lon), osm.NodeID(1000+len(fb.intersections)))
	fb.intersections[name] = id
}

func (fb *fixtureBuilder) road(name, src, dst string) datastructure.RoadID {
	return fb.roadWithLanes(name, src, dst, network.TwoWayLanes())
}

func (fb *fixtureBuilder) roadWithLanes(name, src, dst string, lanes []datastructure.Lane) datastructure.RoadID {
	return fb.roadWithCenter(name, src, dst, nil, lanes)
}

func (fb *fixtureBuilder) roadWithCenter(name, src, dst string, center []datastructure.Coordinate,
	lanes []datastructure.Lane) datastructure.RoadID {
	id := fb.b.AddRoad(fb.intersections[src], fb.intersections[dst], center, lanes, name,
		osm.WayID(100+len(fb.roads)))
	fb.roads[name] = id
	return id
}

func (fb *fixtureBuilder) build(perimeter []datastructure.RoadID) *Fixture {
	net, err := fb.b.Build()
	if err != nil {
		panic(err)
	}
	return &Fixture{
		Network:       net,
		Perimeter:     perimeter,
		Roads:         fb.roads,
		Intersections: fb.intersections,
	}
}

/*
FourWay. one interior 4-way intersection C, perimeter N-E-S-W.

	        N
	      / | \
	     W--C--E
	      \ | /
	        S

spokes CN, CE, CS, CW (Src=C) are interior. NE, ES, SW, WN form the perimeter.
*/
func FourWay() *Fixture {
	fb := newFixtureBuilder()
	fb.node("C", 0, 0)
	fb.node("N", 0.001, 0)
	fb.node("E", 0, 0.001)
	fb.node("S", -0.001, 0)
	fb.node("W", 0, -0.001)

	fb.road("CN", "C", "N")
	fb.road("CE", "C", "E")
	fb.road("CS", "C", "S")
	fb.road("CW", "C", "W")

	perimeter := []datastructure.RoadID{
		fb.road("NE", "N", "E"),
		fb.road("ES", "E", "S"),
		fb.road("SW", "S", "W"),
		fb.road("WN", "W", "N"),
	}
	return fb.build(perimeter)
}

/*
SingleRoad. interior road R = X-Y crossed by three through routes A-B, A-C, A-D.
R bends slightly north so that a route through R and then along the perimeter is always longer
than the perimeter alone.

	NW ----------------- B
	|                 /  |
	|               /    |
	A ---- X ==R== Y --- C
	|               \    |
	|                 \  |
	SW ----------------- D
*/
func SingleRoad() *Fixture {
	fb := newFixtureBuilder()
	fb.node("X", 0, -0.0005)
	fb.node("Y", 0, 0.0005)
	fb.node("A", 0, -0.004)
	fb.node("B", 0.004, 0.004)
	fb.node("C", 0, 0.004)
	fb.node("D", -0.004, 0.004)
	fb.node("NW", 0.004, -0.004)
	fb.node("SW", -0.004, -0.004)

	fb.roadWithCenter("R", "X", "Y", []datastructure.Coordinate{
		datastructure.NewCoordinate(0, -0.0005),
		datastructure.NewCoordinate(0.0003, 0),
		datastructure.NewCoordinate(0, 0.0005),
	}, network.TwoWayLanes())
	fb.road("AX", "A", "X")
	fb.road("YB", "Y", "B")
	fb.road("YC", "Y", "C")
	fb.road("YD", "Y", "D")

	perimeter := []datastructure.RoadID{
		fb.road("A-NW", "A", "NW"),
		fb.road("NW-B", "NW", "B"),
		fb.road("B-C", "B", "C"),
		fb.road("C-D", "C", "D"),
		fb.road("D-SW", "D", "SW"),
		fb.road("SW-A", "SW", "A"),
	}
	return fb.build(perimeter)
}

func gridName(r, c int) string {
	return fmt.Sprintf("%d,%d", r, c)
}

/*
Grid. 4x4 grid with 0.001 degree spacing, the outer ring is the perimeter.
A bridge "bridge" leaves the inner node 1,1 to Z, which lies outside the ring.

	3,0 - 3,1 - 3,2 - 3,3
	 |     |     |     |
	2,0 - 2,1 - 2,2 - 2,3
	 |     |     |     |
	1,0 - 1,1 - 1,2 - 1,3
	 |   / |     |     |
	0,0/- 0,1 - 0,2 - 0,3
	  /
	Z

rows go north, columns go east. horizontal roads are named "h r,c" (r,c to r,c+1),
vertical ones "v r,c" (r,c to r+1,c).
*/
func Grid() *Fixture {
	const n = 4
	fb := newFixtureBuilder()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			fb.node(gridName(r, c), float64(r)*0.001, float64(c)*0.001)
		}
	}
	fb.node("Z", -0.002, -0.002)

	for r := 0; r < n; r++ {
		for c := 0; c < n-1; c++ {
			fb.road("h "+gridName(r, c), gridName(r, c), gridName(r, c+1))
		}
	}
	for r := 0; r < n-1; r++ {
		for c := 0; c < n; c++ {
			fb.road("v "+gridName(r, c), gridName(r, c), gridName(r+1, c))
		}
	}
	fb.road("bridge", "1,1", "Z")

	perimeter := make([]datastructure.RoadID, 0, 4*(n-1))
	for c := 0; c < n-1; c++ {
		perimeter = append(perimeter, fb.roads["h "+gridName(0, c)])
	}
	for r := 0; r < n-1; r++ {
		perimeter = append(perimeter, fb.roads["v "+gridName(r, n-1)])
	}
	for c := n - 2; c >= 0; c-- {
		perimeter = append(perimeter, fb.roads["h "+gridName(n-1, c)])
	}
	for r := n - 2; r >= 0; r-- {
		perimeter = append(perimeter, fb.roads["v "+gridName(r, 0)])
	}
	return fb.build(perimeter)
}
