package graph

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/topolayout/pkg/layout"
)

// pointsPerInch converts layout units to Graphviz inches. Layout units are
// treated as points.
const pointsPerInch = 72

// ToDOT converts nodes positioned by res into a Graphviz document. Nodes
// missing from res keep their own coordinates. Every node is pinned with
// pos="x,y!" at its center, with y flipped because Graphviz grows upwards.
// Edges with a missing endpoint are left out.
func ToDOT(nodes []layout.Node, edges []layout.Edge, res layout.Result) string {
	placed := res.Apply(nodes)
	known := make(map[string]bool, len(placed))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range placed {
		known[n.ID] = true
		c := n.Center()
		attrs := []string{
			fmt.Sprintf("label=%q", label(n)),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(c.X), fmtFloat(-c.Y)),
			"width=" + fmtFloat(n.Width/pointsPerInch),
			"height=" + fmtFloat(n.Height/pointsPerInch),
		}
		if n.Group != "" {
			attrs = append(attrs, fmt.Sprintf("group=%q", n.Group))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if !known[e.SourceID] || !known[e.TargetID] {
			continue
		}
		if e.Protocol != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.SourceID, e.TargetID, e.Protocol)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.SourceID, e.TargetID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a pinned DOT document with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func label(n layout.Node) string {
	if n.Type == "" {
		return n.ID
	}
	return n.ID + "\n" + n.Type
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
