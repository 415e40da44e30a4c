package shortcut

import (
	"math"
	"sort"

	"github.com/lintang-b-s/ltn/pkg/concurrent"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/util"
)

// CostFunc is the cost of traversing a whole road.
type CostFunc func(road *datastructure.Road) float64

func lengthCost(road *datastructure.Road) float64 {
	return road.Length
}

type Option func(*Finder)

func WithCostFunc(cost CostFunc) Option {
	return func(f *Finder) {
		f.cost = cost
	}
}

// WithWorkers runs the per-border searches on n goroutines.
func WithWorkers(n int) Option {
	return func(f *Finder) {
		f.workers = n
	}
}

type Finder struct {
	graph   MovementGraph
	cost    CostFunc
	workers int
}

func NewFinder(graph MovementGraph, opts ...Option) *Finder {
	f := &Finder{
		graph:   graph,
		cost:    lengthCost,
		workers: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Recompute is NewFinder(graph, opts...).Recompute(in, filters).
func Recompute(in *neighborhood.Interior, graph MovementGraph, filters *filter.ModalFilters, opts ...Option) *Result {
	return NewFinder(graph, opts...).Recompute(in, filters)
}

type borderSearchResult struct {
	index int
	paths map[datastructure.IntersectionID]Path
}

/*
Recompute finds the shortcuts of the neighborhood. every border runs one turn-aware dijkstra over
the interior and perimeter roads for cars, respecting point filters (a filtered road is not a
link) and diagonal filters (a blocked movement is not a transition). For each unordered border
pair {A, B} the interior roads and intersections of the paths A->B and B->A are counted once.
Unreachable pairs and paths that stay on the perimeter count nothing.
*/
func (f *Finder) Recompute(in *neighborhood.Interior, filters *filter.ModalFilters) *Result {
	searches := make([]borderSearchResult, len(in.Borders))

	if f.workers <= 1 || len(in.Borders) < 2 {
		for i, border := range in.Borders {
			searches[i] = f.searchFromBorder(in, filters, concurrent.NewBorderSearchParam(border, i))
		}
	} else {
		workers := concurrent.NewWorkerPool[concurrent.BorderSearchParam, borderSearchResult](f.workers, len(in.Borders))
		for i, border := range in.Borders {
			workers.AddJob(concurrent.NewBorderSearchParam(border, i))
		}
		workers.Close()
		workers.Start(func(job concurrent.BorderSearchParam) borderSearchResult {
			return f.searchFromBorder(in, filters, job)
		})
		workers.Wait()

		for res := range workers.CollectResults() {
			searches[res.index] = res
		}
	}

	return aggregate(in, f.graph.Network(), searches)
}

func aggregate(in *neighborhood.Interior, net *network.RoadNetwork, searches []borderSearchResult) *Result {
	result := newResult()

	for i := 0; i < len(in.Borders); i++ {
		for j := i + 1; j < len(in.Borders); j++ {
			a, b := in.Borders[i], in.Borders[j]

			roads := make(map[datastructure.RoadID]struct{})
			intersections := make(map[datastructure.IntersectionID]struct{})
			for _, path := range [2]*Path{pathTo(searches[i], b), pathTo(searches[j], a)} {
				if path == nil {
					continue
				}

				shortcut := false
				for k, dr := range path.Roads {
					if in.HasRoad(dr.Road) {
						roads[dr.Road] = struct{}{}
						shortcut = true
					}
					if k == 0 {
						continue
					}
					// the intersection between the previous road and this one
					at := net.Endpoint(path.Roads[k-1])
					if in.HasIntersection(at) {
						intersections[at] = struct{}{}
					}
				}
				if shortcut {
					result.Paths = append(result.Paths, *path)
				}
			}

			for r := range roads {
				result.CountPerRoad[r]++
			}
			for x := range intersections {
				result.CountPerIntersection[x]++
			}
		}
	}

	sort.SliceStable(result.Paths, func(a, b int) bool {
		if result.Paths[a].Entry != result.Paths[b].Entry {
			return result.Paths[a].Entry < result.Paths[b].Entry
		}
		return result.Paths[a].Exit < result.Paths[b].Exit
	})
	return result
}

func pathTo(search borderSearchResult, exit datastructure.IntersectionID) *Path {
	p, ok := search.paths[exit]
	if !ok {
		return nil
	}
	return &p
}

/*
searchFromBorder. single source dijkstra on directed roads (edge-expanded graph). the state is the
directed road just traversed, so turn restrictions are transitions between states:

	(a, fwd) --movement at i--> (b, fwd)

the heap breaks cost ties by (road id, direction); an equal-cost relaxation keeps the predecessor
with the lower road id.
*/
func (f *Finder) searchFromBorder(in *neighborhood.Interior, filters *filter.ModalFilters,
	param concurrent.BorderSearchParam) borderSearchResult {
	net := f.graph.Network()
	source := param.Border

	dist := make(map[datastructure.DirectedRoad]float64)
	cameFrom := make(map[datastructure.DirectedRoad]datastructure.DirectedRoad)
	settled := make(map[datastructure.DirectedRoad]struct{})
	pq := datastructure.NewMinHeapWithTieBreak[datastructure.DirectedRoad](func(a, b datastructure.DirectedRoad) bool {
		return a.Less(b)
	})

	usable := func(r datastructure.RoadID) bool {
		return in.InSearchGraph(r) && !filters.HasPointFilter(r)
	}

	for _, r := range net.RoadsAt(source) {
		if !usable(r) {
			continue
		}
		road := net.GetRoad(r)
		dr := datastructure.NewDirectedRoad(r, net.DirectionFrom(r, source))
		if !road.Modes(dr.Dir).Has(datastructure.MODE_CAR) {
			continue
		}
		dist[dr] = f.cost(road)
		pq.Insert(datastructure.PriorityQueueNode[datastructure.DirectedRoad]{Rank: dist[dr], Item: dr})
	}

	arrivals := make(map[datastructure.IntersectionID]datastructure.DirectedRoad)

	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		if err != nil {
			break
		}
		u := node.Item
		if _, ok := settled[u]; ok {
			continue
		}
		settled[u] = struct{}{}

		head := net.Endpoint(u)
		if head != source && in.IsBorder(head) {
			if _, ok := arrivals[head]; !ok {
				arrivals[head] = u
			}
		}

		for _, m := range f.graph.Outgoing(u, datastructure.MODE_CAR) {
			v := m.To
			if !usable(v.Road) || !filters.AllowsMovement(u.Road, m.At, v.Road) {
				continue
			}
			if _, ok := settled[v]; ok {
				continue
			}

			newDist := dist[u] + f.cost(net.GetRoad(v.Road))
			oldDist, seen := dist[v]
			if !seen {
				oldDist = math.MaxFloat64
			}

			prev, hasPrev := cameFrom[v]
			if newDist < oldDist || (newDist == oldDist && hasPrev && u.Less(prev)) {
				dist[v] = newDist
				cameFrom[v] = u
				pq.Insert(datastructure.PriorityQueueNode[datastructure.DirectedRoad]{Rank: newDist, Item: v})
			}
		}
	}

	paths := make(map[datastructure.IntersectionID]Path, len(arrivals))
	for exit, last := range arrivals {
		roads := []datastructure.DirectedRoad{last}
		for cur := last; ; {
			prev, ok := cameFrom[cur]
			if !ok {
				break
			}
			roads = append(roads, prev)
			cur = prev
		}
		paths[exit] = Path{
			Entry: source,
			Exit:  exit,
			Roads: util.ReverseG(roads),
			Cost:  dist[last],
		}
	}

	return borderSearchResult{index: param.Index, paths: paths}
}
