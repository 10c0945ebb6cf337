// Package layout defines the shared model and orchestration for node layout.
//
// # Overview
//
// A layout run reads a snapshot of [Node] and [Edge] values and produces a
// [Result]: one [NodePosition] per input node and one [EdgePath] per edge
// whose endpoints both exist. Inputs are never modified, so callers may keep
// reading them while a run is in flight.
//
// Algorithms implement [Strategy]. Two live in subpackages:
//
//   - [github.com/matzehuels/topolayout/pkg/layout/hierarchical]: deterministic
//     layered placement keyed on node type.
//   - [github.com/matzehuels/topolayout/pkg/layout/force]: an iterative
//     force-directed simulation.
//
// # Service
//
// [Service] is a registry of named strategies with single-flight execution:
// starting a run stops the one still in flight, which then returns a
// CANCELLED error.
//
//	svc := layout.NewService(layout.WithLogger(logger))
//	_ = svc.Register("hierarchical", hierarchical.New())
//	_ = svc.Register("force", force.New())
//	res, err := svc.Apply(ctx, "hierarchical", nodes, edges)
//
// # Edge Routing
//
// Strategies call [RouteEdges] once positions are settled. Each edge is routed
// between the centers of its endpoint nodes; every other node is an obstacle.
package layout
