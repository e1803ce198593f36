package optimizer

import "math"

// Difference constraints map to a graph over n+1 nodes: node 0 is the origin
// and node i+1 is variable i. An edge u -> v with weight w encodes
// s[v] <= s[u] + w, so shortest-path distances from the origin form a
// solution and a negative cycle proves infeasibility.

type edge struct {
	from, to int
	weight   float64
}

// tolerance for distance relaxations; all weights are integral in practice.
const relaxEps = 1e-9

func node(v int) int { return v + 1 }

func buildEdges(cs []Constraint) []edge {
	edges := make([]edge, 0, 2*len(cs))
	for _, c := range cs {
		// s[R] - s[L] >= V  <=>  s[L] <= s[R] - V
		edges = append(edges, edge{from: node(c.Right), to: node(c.Left), weight: -c.Value})
		if c.Equality {
			edges = append(edges, edge{from: node(c.Left), to: node(c.Right), weight: c.Value})
		}
	}
	return edges
}

// shortestPaths runs Bellman-Ford over nodes vertices. A negative source
// starts every vertex at distance zero (a virtual source connected to all
// vertices), which turns the run into a pure negative-cycle test. The second
// result is false when a negative cycle is reachable.
func shortestPaths(nodes int, edges []edge, source int) ([]float64, bool) {
	dist := make([]float64, nodes)
	if source >= 0 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		dist[source] = 0
	}

	for range nodes {
		changed := false
		for _, e := range edges {
			if math.IsInf(dist[e.from], 1) {
				continue
			}
			if d := dist[e.from] + e.weight; d < dist[e.to]-relaxEps {
				dist[e.to] = d
				changed = true
			}
		}
		if !changed {
			return dist, true
		}
	}

	for _, e := range edges {
		if math.IsInf(dist[e.from], 1) {
			continue
		}
		if dist[e.from]+e.weight < dist[e.to]-relaxEps {
			return nil, false
		}
	}
	return dist, true
}

// Feasible reports whether the n-variable system cs admits any solution.
func Feasible(n int, cs []Constraint) bool {
	_, ok := shortestPaths(n+1, buildEdges(cs), -1)
	return ok
}
