package hierarchical

import (
	"github.com/matzehuels/topolayout/pkg/layout"
)

// maxRefinePasses bounds layer refinement so it always terminates.
const maxRefinePasses = 8

// adjacency is the valid part of an edge list as node indices.
type adjacency struct {
	out    [][]int // successors
	nbrs   [][]int // successors and predecessors, self-loops dropped
	degree []int
}

func buildAdjacency(nodes []layout.Node, edges []layout.Edge) adjacency {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}
	adj := adjacency{
		out:    make([][]int, len(nodes)),
		nbrs:   make([][]int, len(nodes)),
		degree: make([]int, len(nodes)),
	}
	for _, e := range edges {
		s, ok := index[e.SourceID]
		if !ok {
			continue
		}
		t, ok := index[e.TargetID]
		if !ok {
			continue
		}
		adj.degree[s]++
		if s == t {
			continue
		}
		adj.degree[t]++
		adj.out[s] = append(adj.out[s], t)
		adj.nbrs[s] = append(adj.nbrs[s], t)
		adj.nbrs[t] = append(adj.nbrs[t], s)
	}
	return adj
}

// AssignLayers returns the layer of every node keyed by id.
//
// Typed nodes take their layer from opts.LayerTable. Other nodes take the
// longest-path rank below their typed ancestors, max(layer(a) + hops(a, n)),
// or opts.DefaultLayer when no typed node reaches them. With
// opts.ImproveRanking the inferred nodes are then refined.
func AssignLayers(nodes []layout.Node, edges []layout.Edge, opts Options) map[string]int {
	levels := assignLayers(nodes, buildAdjacency(nodes, edges), opts)
	out := make(map[string]int, len(nodes))
	for i, n := range nodes {
		out[n.ID] = levels[i]
	}
	return out
}

func assignLayers(nodes []layout.Node, adj adjacency, opts Options) []int {
	levels := make([]int, len(nodes))
	inferred := make([]bool, len(nodes))
	for i, n := range nodes {
		if l, ok := opts.LayerTable[n.Type]; ok {
			levels[i] = l
		} else {
			levels[i] = -1
			inferred[i] = true
		}
	}

	rank := inferRanks(levels, inferred, adj)
	for i := range nodes {
		if inferred[i] {
			levels[i] = rank[i]
			if levels[i] < 0 {
				levels[i] = opts.DefaultLayer
			}
		}
	}

	if opts.ImproveRanking {
		refine(levels, inferred, adj)
	}
	return levels
}

// inferRanks computes longest-path ranks for untyped nodes, -1 where no
// typed node reaches them. Edges into typed nodes are ignored. Cycles are
// broken by dropping the back edges of a depth-first search in input order,
// then ranks are relaxed over the remaining DAG in Kahn order.
func inferRanks(levels []int, inferred []bool, adj adjacency) []int {
	n := len(levels)
	dag := make([][]int, n)
	indeg := make([]int, n)

	const (
		white = iota
		grey
		black
	)
	color := make([]int, n)
	var visit func(u int)
	visit = func(u int) {
		color[u] = grey
		for _, v := range adj.out[u] {
			if !inferred[v] {
				continue
			}
			switch color[v] {
			case grey:
				continue // back edge
			case white:
				visit(v)
			}
			dag[u] = append(dag[u], v)
			indeg[v]++
		}
		color[u] = black
	}
	for u := range n {
		if color[u] == white {
			visit(u)
		}
	}

	rank := make([]int, n)
	copy(rank, levels)
	queue := make([]int, 0, n)
	for u := range n {
		if indeg[u] == 0 {
			queue = append(queue, u)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range dag[u] {
			if rank[u] >= 0 && rank[u]+1 > rank[v] {
				rank[v] = rank[u] + 1
			}
			if indeg[v]--; indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return rank
}

// refine moves inferred nodes with long edges next to the layer holding most
// of their neighbours, when that strictly lowers their long-edge count.
func refine(levels []int, inferred []bool, adj adjacency) {
	for pass := 0; pass < maxRefinePasses; pass++ {
		moved := false
		for i := range levels {
			if !inferred[i] || len(adj.nbrs[i]) == 0 {
				continue
			}
			current := longEdges(i, levels[i], levels, adj)
			if current == 0 {
				continue
			}

			best, bestCount := levels[i], current
			m := majorityLayer(i, levels, adj)
			for _, cand := range []int{m - 1, m + 1} {
				if cand < 0 {
					continue
				}
				if c := longEdges(i, cand, levels, adj); c < bestCount {
					best, bestCount = cand, c
				}
			}
			if best != levels[i] {
				levels[i] = best
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

// longEdges counts i's edges spanning more than one layer if i sat at level.
func longEdges(i, level int, levels []int, adj adjacency) int {
	n := 0
	for _, j := range adj.nbrs[i] {
		if d := levels[j] - level; d > 1 || d < -1 {
			n++
		}
	}
	return n
}

// majorityLayer returns the most common neighbour layer, ties to the lowest.
func majorityLayer(i int, levels []int, adj adjacency) int {
	counts := make(map[int]int)
	for _, j := range adj.nbrs[i] {
		counts[levels[j]]++
	}
	best, bestCount := 0, -1
	for l, c := range counts {
		if c > bestCount || (c == bestCount && l < best) {
			best, bestCount = l, c
		}
	}
	return best
}
