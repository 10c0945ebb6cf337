// Package graph reads and writes topologies and layout results.
//
// # Formats
//
// A topology is the JSON input to a layout run:
//
//	{
//	  "nodes": [{"id": "ctrl", "type": "controller", "width": 100, "height": 50}],
//	  "edges": [{"id": "e1", "source": "ctrl", "target": "gw", "protocol": "can"}]
//	}
//
// A result is the JSON output of a layout run:
//
//	{
//	  "nodes": [{"id": "ctrl", "x": 50, "y": 50}],
//	  "edges": [{"id": "e1", "path": [{"x": 100, "y": 75}, {"x": 100, "y": 225}]}]
//	}
//
// # Previews
//
// [ToDOT] writes a Graphviz document with every node pinned to its computed
// position and [RenderSVG] turns it into an SVG through the embedded Graphviz
// runtime. Previews are a debugging aid; styling is left to the renderer
// that consumes [layout.Result].
package graph
