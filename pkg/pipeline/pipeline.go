// Package pipeline runs topolayout's load → layout → render sequence.
//
// The CLI and the HTTP server both go through a [Runner] so strategy
// selection, logging and artifact rendering behave the same everywhere.
//
// # Stages
//
//  1. Layout: the configured [layout.Service] applies a named strategy
//  2. Render: the result is encoded as JSON, DOT or an SVG preview
//
// # Usage
//
//	cfg, _ := config.Load("topolayout.toml")
//	runner := pipeline.NewRunner(cfg, logger)
//	top, _ := graph.ReadTopologyFile("topology.json")
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Topology: top,
//	    Strategy: "force",
//	    Formats:  []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/graph"
	"github.com/matzehuels/topolayout/pkg/layout"
)

// =============================================================================
// Output Formats
// =============================================================================

const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists every supported artifact format.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG}

// =============================================================================
// Options & Result
// =============================================================================

// Options selects what one Execute call computes.
type Options struct {
	Topology graph.Topology

	// Strategy names the layout. Empty uses the configured default.
	Strategy string

	// Formats lists the artifacts to render. Empty renders JSON only.
	Formats []string
}

// ValidateAndSetDefaults fills in the default format and rejects unknown
// ones.
func (o *Options) ValidateAndSetDefaults(defaultStrategy string) error {
	if o.Strategy == "" {
		o.Strategy = defaultStrategy
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (valid: %v)", f, Formats)
		}
	}
	return nil
}

// Result holds the output of one pipeline run.
type Result struct {
	Strategy  string
	Layout    layout.Result
	Artifacts map[string][]byte
	Stats     Stats
}

// Stats records sizes and stage timings.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	PathCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}
