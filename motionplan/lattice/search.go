package lattice

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// searchResult is the cheapest start to terminal chain of node indices.
type searchResult struct {
	nodes []int
	edges []*Edge
	cost  float64
}

// shortestDistances runs Dijkstra from the start node over the feasible edges of g and returns the distance to
// every node, +Inf where unreachable.
func shortestDistances(g *Graph) []float64 {
	weighted := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := range g.nodes {
		weighted.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		if !e.Cost.IsFeasible() {
			continue
		}
		weighted.SetWeightedEdge(weighted.NewWeightedEdge(simple.Node(e.From), simple.Node(e.To), e.Cost.Weight()))
	}

	shortest := path.DijkstraFrom(simple.Node(0), weighted)
	dist := make([]float64, len(g.nodes))
	for i := range dist {
		dist[i] = shortest.WeightTo(int64(i))
	}
	return dist
}

// search returns the cheapest path to a terminal node, or false when none is reachable through feasible edges.
// Equal costs resolve to the lowest terminal offset and, along the path, to the lowest predecessor offset.
func search(g *Graph) (*searchResult, bool) {
	dist := shortestDistances(g)

	best := -1
	for _, term := range g.Terminals() {
		idx, _ := g.Index(term.ID)
		if math.IsInf(dist[idx], 1) {
			continue
		}
		if best < 0 || dist[idx] < dist[best] {
			best = idx
		}
	}
	if best < 0 {
		return nil, false
	}

	res := &searchResult{cost: dist[best]}
	for v := best; v != 0; {
		var via *Edge
		for _, e := range g.Incoming(v) {
			if e.Cost.IsFeasible() && dist[e.From]+e.Cost.Weight() == dist[v] {
				via = e
				break
			}
		}
		if via == nil {
			// Unreachable when dist came from these same edge weights.
			return nil, false
		}
		res.edges = append(res.edges, via)
		v = via.From
	}
	slices.Reverse(res.edges)
	res.nodes = append(res.nodes, 0)
	for _, e := range res.edges {
		res.nodes = append(res.nodes, e.To)
	}
	return res, true
}
