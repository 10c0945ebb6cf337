// Package pkg provides the core libraries for topolayout, a layout and edge
// routing engine for network topology diagrams.
//
// # Overview
//
// topolayout places the devices of a topology (controllers, gateways, buses,
// sensors and so on) on a 2-D canvas and computes a polyline path for every
// connection between them. The pkg directory is organized into four areas:
//
//  1. Geometry and routing: [geom], [route]
//  2. Layout strategies: [layout], [layout/hierarchical], [layout/force]
//  3. Serialization and orchestration: [graph], [pipeline], [config]
//  4. Shared infrastructure: [errors], [validation], [observability],
//     [metrics], [buildinfo]
//
// # Architecture
//
// The typical data flow through topolayout:
//
//	Topology JSON (nodes + edges)
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [layout] package (strategy service, supersedes stale runs)
//	         ↓
//	    [layout/hierarchical] or [layout/force] (node placement)
//	         ↓
//	    [route] package (edge paths between placed nodes)
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
// Lay out a small topology with the layered strategy:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/topolayout/pkg/layout"
//	    "github.com/matzehuels/topolayout/pkg/layout/hierarchical"
//	)
//
//	nodes := []layout.Node{
//	    {ID: "ctrl", Type: layout.TypeController, Width: 100, Height: 50},
//	    {ID: "can", Type: layout.TypeBus, Width: 100, Height: 50},
//	}
//	edges := []layout.Edge{{ID: "e1", SourceID: "ctrl", TargetID: "can"}}
//
//	res, err := hierarchical.New().Execute(context.Background(), nodes, edges)
//
// Route a single connection around an obstacle:
//
//	calc := route.NewCalculator()
//	opts := route.DefaultOptions()
//	opts.Algorithm = route.AStar
//	path := calc.CalculatePath(src, dst, obstacles, opts)
//
// # Main Packages
//
// [geom] - Points, rectangles and polylines plus the small amount of vector
// math the strategies and router need.
//
// [route] - The path calculator. Direct, orthogonal, curved and grid A*
// routing, plus collinear-point smoothing. A failed A* search falls back to a
// direct path, so routing never fails.
//
// [layout] - Shared types (Node, Edge, Result), input validation and the
// strategy [layout.Service], which registers strategies by name and cancels
// a running layout when a newer one starts.
//
// [layout/hierarchical] - Layered placement. Layers come from a type table
// or from the edge structure; ordering by degree reduces crossings.
//
// [layout/force] - Force-directed placement with link, charge, centering and
// collision forces. Seeded runs are reproducible.
//
// [graph] - JSON topology and result formats, and Graphviz DOT/SVG export of
// a finished layout.
//
// [pipeline] - Layout plus rendering as one call, shared by the CLI and the
// HTTP server.
//
// [config] - TOML and YAML configuration with defaults and validation.
//
// [errors] - Coded errors (INVALID_CONFIG, UNKNOWN_STRATEGY, CANCELLED, ...).
//
// [observability] - Hook interfaces for layout, routing and HTTP events.
//
// [metrics] - Prometheus implementation of the observability hooks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/route/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	go test -short ./...                 # Skip Graphviz rendering
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/geom
// [route]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/route
// [layout]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/layout
// [layout/hierarchical]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/layout/hierarchical
// [layout/force]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/layout/force
// [graph]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/errors
// [validation]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/validation
// [observability]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/metrics
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/topolayout/pkg/buildinfo
package pkg
