package connectivity

import (
	"math"
	"sort"

	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/movement"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/util"
)

// Cell is a strongly connected driving area of the interior. A cell without borders can not be
// reached by car from outside the neighborhood.
type Cell struct {
	ID      int
	Roads   []datastructure.RoadID
	Borders []datastructure.IntersectionID
}

func (c Cell) Reachable() bool {
	return len(c.Borders) > 0
}

// Connectivity holds the cells of a neighborhood and the one-way links between them.
type Connectivity struct {
	Cells []Cell
	// Condensation[i] lists the cells reachable in one movement from cell i.
	Condensation [][]int
	cellOf       map[datastructure.RoadID]int
}

// CellOf returns the cell of an interior road, false for filtered or non-interior roads.
func (c *Connectivity) CellOf(r datastructure.RoadID) (int, bool) {
	id, ok := c.cellOf[r]
	return id, ok
}

// roadGraph has one node per unfiltered interior road. a -> b when a car can turn from a into b
// at an interior intersection without crossing a diagonal filter.
type roadGraph struct {
	roads []datastructure.RoadID
	out   [][]int32
	in    [][]int32
}

func newRoadGraph(interior *neighborhood.Interior, graph *movement.MovementGraph, filters *filter.ModalFilters) *roadGraph {
	g := &roadGraph{
		roads: make([]datastructure.RoadID, 0, len(interior.Roads)),
	}
	nodeOf := make(map[datastructure.RoadID]int32, len(interior.Roads))
	for _, r := range interior.Roads {
		if filters.HasPointFilter(r) {
			continue
		}
		nodeOf[r] = int32(len(g.roads))
		g.roads = append(g.roads, r)
	}
	g.out = make([][]int32, len(g.roads))
	g.in = make([][]int32, len(g.roads))

	for _, i := range interior.Intersections {
		seen := make(map[[2]int32]struct{})
		for _, m := range graph.MovementsAt(i) {
			if !m.Modes.Has(datastructure.MODE_CAR) {
				continue
			}
			from, okFrom := nodeOf[m.From.Road]
			to, okTo := nodeOf[m.To.Road]
			if !okFrom || !okTo || !filters.AllowsMovement(m.From.Road, i, m.To.Road) {
				continue
			}
			if _, ok := seen[[2]int32{from, to}]; ok {
				continue
			}
			seen[[2]int32{from, to}] = struct{}{}
			g.out[from] = append(g.out[from], to)
			g.in[to] = append(g.in[to], from)
		}
	}
	return g
}

func (g *roadGraph) kosarajuSCC() ([][]int32, [][]int32) {
	n := int32(len(g.roads))
	components := make([][]int32, 0)

	order := make([]int32, 0, n)
	visited := make([]bool, n)

	for i := int32(0); i < n; i++ {
		if !visited[i] {
			g.dfs(i, &order, visited, false)
		}
	}

	order = util.ReverseG[int32](order)

	// reset visited
	visited = make([]bool, n)

	roots := make([]int32, n)
	for _, v := range order {
		if !visited[v] {
			component := make([]int32, 0)
			g.dfs(v, &component, visited, true)
			components = append(components, component)

			root := int32(math.MaxInt32)
			for _, node := range component {
				if node < root {
					root = node
				}
			}
			for _, node := range component {
				roots[node] = root
			}
		}
	}

	condAdj := make([][]int32, n)
	for v := int32(0); v < n; v++ {
		for _, to := range g.out[v] {
			if roots[v] != roots[to] {
				condAdj[roots[v]] = append(condAdj[roots[v]], roots[to])
			}
		}
	}
	return components, condAdj
}

func (g *roadGraph) dfs(v int32, output *[]int32, visited []bool, reversed bool) {
	visited[v] = true

	adj := g.out[v]
	if reversed {
		adj = g.in[v]
	}
	for _, to := range adj {
		if !visited[to] {
			g.dfs(to, output, visited, reversed)
		}
	}

	*output = append(*output, v)
}

// Cells splits the unfiltered interior roads into strongly connected cells. Cells are ordered by
// their lowest road id.
func Cells(interior *neighborhood.Interior, graph *movement.MovementGraph, filters *filter.ModalFilters) *Connectivity {
	g := newRoadGraph(interior, graph, filters)
	components, condAdj := g.kosarajuSCC()
	net := graph.Network()

	for _, component := range components {
		sort.Slice(component, func(a, b int) bool { return component[a] < component[b] })
	}
	sort.Slice(components, func(a, b int) bool { return components[a][0] < components[b][0] })

	conn := &Connectivity{
		Cells:        make([]Cell, len(components)),
		Condensation: make([][]int, len(components)),
		cellOf:       make(map[datastructure.RoadID]int, len(g.roads)),
	}
	cellOfNode := make([]int, len(g.roads))

	for id, component := range components {
		roads := make([]datastructure.RoadID, len(component))
		borders := make(map[datastructure.IntersectionID]struct{})
		for k, node := range component {
			r := g.roads[node]
			roads[k] = r
			cellOfNode[node] = id
			conn.cellOf[r] = id

			road := net.GetRoad(r)
			for _, end := range [2]datastructure.IntersectionID{road.Src, road.Dst} {
				if interior.IsBorder(end) {
					borders[end] = struct{}{}
				}
			}
		}

		conn.Cells[id] = Cell{
			ID:      id,
			Roads:   roads,
			Borders: sortedIntersections(borders),
		}
	}

	for root, adj := range condAdj {
		from := cellOfNode[root]
		seen := make(map[int]struct{})
		for _, to := range adj {
			cell := cellOfNode[to]
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			conn.Condensation[from] = append(conn.Condensation[from], cell)
		}
		sort.Ints(conn.Condensation[from])
	}
	return conn
}

func sortedIntersections(set map[datastructure.IntersectionID]struct{}) []datastructure.IntersectionID {
	ids := make([]datastructure.IntersectionID, 0, len(set))
	for i := range set {
		ids = append(ids, i)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
