package hierarchical

import (
	"context"
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/route"
)

// Layout is the hierarchical [layout.Strategy]. It is safe for concurrent use.
type Layout struct {
	opts   Options
	calc   *route.Calculator
	logger *log.Logger

	mu      sync.Mutex
	current *token
}

// token marks one Execute call so Stop only affects the run it targets.
type token struct {
	stopped atomic.Bool
}

// Option configures a Layout.
type Option func(*Layout)

// WithOptions replaces the default options.
func WithOptions(o Options) Option {
	return func(l *Layout) { l.opts = o.clone() }
}

// WithCalculator sets the edge path calculator.
func WithCalculator(c *route.Calculator) Option {
	return func(l *Layout) {
		if c != nil {
			l.calc = c
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(lg *log.Logger) Option {
	return func(l *Layout) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New creates a hierarchical layout with [DefaultOptions].
func New(opts ...Option) *Layout {
	l := &Layout{
		opts:   DefaultOptions(),
		calc:   route.NewCalculator(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Options returns a copy of the layout's options.
func (l *Layout) Options() Options { return l.opts.clone() }

// Execute places nodes in layers and routes edges. Options are validated
// first and reported as INVALID_CONFIG.
func (l *Layout) Execute(ctx context.Context, nodes []layout.Node, edges []layout.Edge) (layout.Result, error) {
	if err := l.opts.Validate(); err != nil {
		return layout.Result{}, err
	}
	if err := layout.ValidateNodes(nodes); err != nil {
		return layout.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Result{}, errors.Wrap(errors.ErrCodeCancelled, err, "hierarchical layout cancelled")
	}

	tok := l.begin()
	defer l.end(tok)

	adj := buildAdjacency(nodes, edges)
	levels := assignLayers(nodes, adj, l.opts)
	bands := buildBands(nodes, levels, adj, l.opts)
	placed := place(nodes, bands, l.opts)

	// Placement has no suspension points; a stop that arrived meanwhile
	// discards the finished placement.
	if tok.stopped.Load() {
		return layout.Result{}, errors.Wrap(errors.ErrCodeCancelled, context.Canceled, "hierarchical layout stopped")
	}

	l.logger.Debug("hierarchical placement done", "nodes", len(nodes), "layers", len(bands), "direction", l.opts.Direction)

	return layout.Result{
		NodePositions: layout.Positions(placed),
		EdgePaths:     layout.RouteEdges(l.calc, placed, edges, l.opts.Routing),
	}, nil
}

// Stop discards the result of the run in flight, if any.
func (l *Layout) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		l.current.stopped.Store(true)
	}
}

// IsRunning reports whether Execute is in progress.
func (l *Layout) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current != nil
}

func (l *Layout) begin() *token {
	tok := &token{}
	l.mu.Lock()
	l.current = tok
	l.mu.Unlock()
	return tok
}

func (l *Layout) end(tok *token) {
	l.mu.Lock()
	if l.current == tok {
		l.current = nil
	}
	l.mu.Unlock()
}

// =============================================================================
// Bands
// =============================================================================

// band is one layer during placement: its index, member node indices in
// along-axis order, and its depth across the stacking axis.
type band struct {
	index int
	nodes []int
	depth float64
}

// buildBands groups nodes by layer in ascending index order. With
// KeepEmptyLayers every index between the lowest and highest occupied one
// gets a band, empty ones with zero depth.
func buildBands(nodes []layout.Node, levels []int, adj adjacency, opts Options) []band {
	if len(nodes) == 0 {
		return nil
	}

	byLevel := make(map[int][]int)
	for i, lvl := range levels {
		byLevel[lvl] = append(byLevel[lvl], i)
	}
	indices := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		indices = append(indices, lvl)
	}
	slices.Sort(indices)

	if opts.KeepEmptyLayers {
		lo, hi := indices[0], indices[len(indices)-1]
		indices = indices[:0]
		for lvl := lo; lvl <= hi; lvl++ {
			indices = append(indices, lvl)
		}
	}

	horizontal := opts.Direction.horizontal()
	bands := make([]band, len(indices))
	for k, lvl := range indices {
		members := byLevel[lvl]
		if opts.MinimizeCrossings {
			slices.SortStableFunc(members, func(a, b int) int {
				return adj.degree[b] - adj.degree[a]
			})
		}
		depth := 0.0
		for _, i := range members {
			depth = max(depth, acrossSize(nodes[i], horizontal))
		}
		bands[k] = band{index: lvl, nodes: members, depth: depth}
	}
	return bands
}

// place computes the top-left corner of every node. The returned nodes are
// copies in input order, marked placed.
func place(nodes []layout.Node, bands []band, opts Options) []layout.Node {
	horizontal := opts.Direction.horizontal()

	spans := make([]float64, len(bands))
	widest := 0.0
	for k, b := range bands {
		for j, i := range b.nodes {
			if j > 0 {
				spans[k] += opts.NodeDistance
			}
			spans[k] += alongSize(nodes[i], horizontal)
		}
		widest = max(widest, spans[k])
	}

	order := make([]int, len(bands))
	for k := range order {
		order[k] = k
	}
	if opts.Direction.reversed() {
		slices.Reverse(order)
	}

	placed := slices.Clone(nodes)
	across := opts.Padding
	for _, k := range order {
		b := bands[k]
		along := opts.Padding + (widest-spans[k])/2
		for _, i := range b.nodes {
			n := &placed[i]
			a := along
			c := across + (b.depth-acrossSize(*n, horizontal))/2
			if horizontal {
				n.X, n.Y = c, a
			} else {
				n.X, n.Y = a, c
			}
			n.Placed = true
			along += alongSize(*n, horizontal) + opts.NodeDistance
		}
		across += b.depth + opts.LayerDistance
	}
	return placed
}

func alongSize(n layout.Node, horizontal bool) float64 {
	if horizontal {
		return n.Height
	}
	return n.Width
}

func acrossSize(n layout.Node, horizontal bool) float64 {
	if horizontal {
		return n.Width
	}
	return n.Height
}
