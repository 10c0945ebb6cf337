package layout

import (
	"context"

	"github.com/matzehuels/topolayout/pkg/geom"
)

// Well-known node types. Any other string is accepted and placed by
// connectivity in hierarchical layouts.
const (
	TypeController = "controller"
	TypeGateway    = "gateway"
	TypeUnit       = "unit"
	TypeSensor     = "sensor"
	TypeActuator   = "actuator"
	TypeBus        = "bus"
)

// Node is a caller-owned node snapshot. X and Y locate the top-left corner.
type Node struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Group  string  `json:"group,omitempty"`

	// Fixed pins the node during force simulation. A fixed node is placed.
	Fixed bool `json:"fixed,omitempty"`

	// Placed reports whether X and Y carry a meaningful position. Unplaced
	// nodes receive a random start position in force simulation.
	Placed bool `json:"placed,omitempty"`
}

// Bounds returns the node's rectangle.
func (n Node) Bounds() geom.Rectangle {
	return geom.Rectangle{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Center returns the node's anchor point for edge routing.
func (n Node) Center() geom.Position {
	return geom.Position{X: n.X + n.Width/2, Y: n.Y + n.Height/2}
}

// HasPosition reports whether the node's coordinates should be honoured.
func (n Node) HasPosition() bool { return n.Placed || n.Fixed }

// Edge connects two nodes by id.
type Edge struct {
	ID       string `json:"id"`
	SourceID string `json:"source"`
	TargetID string `json:"target"`
	Protocol string `json:"protocol,omitempty"`
}

// NodePosition is the computed top-left corner of a node.
type NodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgePath is the computed route of an edge.
type EdgePath struct {
	ID   string    `json:"id"`
	Path geom.Path `json:"path"`
}

// Result is the output of one layout run. NodePositions follow input node
// order and EdgePaths follow input edge order.
type Result struct {
	NodePositions []NodePosition `json:"nodes"`
	EdgePaths     []EdgePath     `json:"edges"`
}

// Position returns the computed position of a node.
func (r Result) Position(id string) (NodePosition, bool) {
	for _, p := range r.NodePositions {
		if p.ID == id {
			return p, true
		}
	}
	return NodePosition{}, false
}

// Path returns the computed route of an edge.
func (r Result) Path(id string) (geom.Path, bool) {
	for _, p := range r.EdgePaths {
		if p.ID == id {
			return p.Path, true
		}
	}
	return nil, false
}

// Apply returns copies of nodes moved to the positions in r. Nodes missing
// from r keep their coordinates. Every returned node is marked placed.
func (r Result) Apply(nodes []Node) []Node {
	index := make(map[string]NodePosition, len(r.NodePositions))
	for _, p := range r.NodePositions {
		index[p.ID] = p
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if p, ok := index[n.ID]; ok {
			n.X, n.Y = p.X, p.Y
			n.Placed = true
		}
		out[i] = n
	}
	return out
}

// Strategy computes a layout.
//
// Execute must not modify nodes or edges. Stop asks an in-flight Execute to
// return early with a CANCELLED error; it is a no-op when nothing runs.
// Stop and IsRunning are safe to call from other goroutines.
type Strategy interface {
	Execute(ctx context.Context, nodes []Node, edges []Edge) (Result, error)
	Stop()
	IsRunning() bool
}
