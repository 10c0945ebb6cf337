// Package hierarchical places nodes in discrete layers keyed on their type.
//
// # Overview
//
// [Layout] runs a single synchronous pass:
//
//  1. Layer assignment from a type table ([DefaultLayerTable]). Nodes of
//     other types take the longest-path rank below their typed ancestors, or
//     [Options].DefaultLayer when they have none.
//  2. Optional refinement that moves inferred nodes next to the layer most
//     of their neighbours occupy when that shortens their edges.
//  3. Optional crossing reduction: each layer is ordered by descending
//     degree, ties keeping input order.
//  4. Packing along each layer from the padding with NodeDistance gaps, every
//     layer centered within the widest one.
//  5. Stacking layers LayerDistance apart, each node centered in its layer's
//     band. BT and RL reverse the stacking; LR and RL swap the axes.
//  6. Edge routing, orthogonal by default.
//
// Identical inputs always produce identical results.
//
// # Usage
//
//	l := hierarchical.New(hierarchical.WithOptions(opts))
//	res, err := l.Execute(ctx, nodes, edges)
//
// [AssignLayers] exposes step 1 and 2 for inspection.
package hierarchical
