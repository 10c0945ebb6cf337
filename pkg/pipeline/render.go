package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/graph"
	"github.com/matzehuels/topolayout/pkg/layout"
)

// Render encodes res in each requested format. DOT and SVG place the
// topology's nodes at their computed positions.
func Render(ctx context.Context, top graph.Topology, res layout.Result, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var dot string

	for _, format := range formats {
		switch format {
		case FormatJSON:
			data, err := graph.MarshalResult(res)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = graph.ToDOT(top.Nodes, top.Edges, res)
			}
			if format == FormatDOT {
				artifacts[format] = []byte(dot)
				continue
			}
			svg, err := graph.RenderSVG(ctx, dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			artifacts[format] = bytes.TrimSpace(svg)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
		}
	}
	return artifacts, nil
}
