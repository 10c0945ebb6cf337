package layout

import (
	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/route"
)

// RouteEdges routes every edge whose endpoints are both in placed, using
// node centers as anchors and all other nodes as obstacles. Edges with a
// missing endpoint are skipped. Paths follow edge order.
func RouteEdges(calc *route.Calculator, placed []Node, edges []Edge, opts route.Options) []EdgePath {
	index := make(map[string]int, len(placed))
	bounds := make([]geom.Rectangle, len(placed))
	for i, n := range placed {
		index[n.ID] = i
		bounds[i] = n.Bounds()
	}

	paths := make([]EdgePath, 0, len(edges))
	obstacles := make([]geom.Rectangle, 0, len(placed))
	for _, e := range edges {
		si, ok := index[e.SourceID]
		if !ok {
			continue
		}
		ti, ok := index[e.TargetID]
		if !ok {
			continue
		}

		obstacles = obstacles[:0]
		for i, b := range bounds {
			if i != si && i != ti {
				obstacles = append(obstacles, b)
			}
		}

		paths = append(paths, EdgePath{
			ID:   e.ID,
			Path: calc.CalculatePath(placed[si].Center(), placed[ti].Center(), obstacles, opts),
		})
	}
	return paths
}

// Positions converts placed nodes to result positions in the same order.
func Positions(placed []Node) []NodePosition {
	out := make([]NodePosition, len(placed))
	for i, n := range placed {
		out[i] = NodePosition{ID: n.ID, X: n.X, Y: n.Y}
	}
	return out
}
