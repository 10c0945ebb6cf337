// Package route computes paths for edges between two anchor points.
//
// A [Calculator] supports four algorithms:
//
//   - [Direct]: a straight two-point segment.
//   - [Orthogonal]: a single right-angle bend at (source.X, target.Y).
//     Obstacles are ignored in this mode.
//   - [Curved]: samples of a cubic Bézier curve whose control points sit at
//     one and two thirds of the horizontal span.
//   - [AStar]: a grid search around obstacles, simplified by collapsing
//     collinear waypoints.
//
// CalculatePath never fails. When an algorithm cannot produce a route, for
// example because the target is walled in, the direct path is returned
// instead. Every returned path has at least two points, starts exactly at the
// source and ends exactly at the target.
//
// # Usage
//
//	calc := route.NewCalculator()
//	opts := route.DefaultOptions()
//	opts.Algorithm = route.AStar
//	path := calc.CalculatePath(src, dst, obstacles, opts)
package route
