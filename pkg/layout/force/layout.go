package force

import (
	"context"
	"io"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/route"
)

// Layout is the force-directed [layout.Strategy]. It is safe for concurrent
// use; each Execute call runs its own simulation.
type Layout struct {
	opts   Options
	calc   *route.Calculator
	logger *log.Logger
	onStep func(step int, alpha float64)

	mu      sync.Mutex
	current *token
}

type token struct {
	stopped atomic.Bool
}

// Option configures a Layout.
type Option func(*Layout)

// WithOptions replaces the default options.
func WithOptions(o Options) Option {
	return func(l *Layout) { l.opts = o }
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

// WithStepHook registers a callback invoked after every simulation step on
// the goroutine running Execute.
func WithStepHook(fn func(step int, alpha float64)) Option {
	return func(l *Layout) { l.onStep = fn }
}

// New creates a force-directed layout with [DefaultOptions].
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

// Options returns the layout's options.
func (l *Layout) Options() Options { return l.opts }

// Execute runs the simulation to completion and routes edges. The context and
// Stop are checked before every step; either ends the run with a CANCELLED
// error wrapping context.Canceled or the context's error.
func (l *Layout) Execute(ctx context.Context, nodes []layout.Node, edges []layout.Edge) (layout.Result, error) {
	if err := l.opts.Validate(); err != nil {
		return layout.Result{}, err
	}
	if err := layout.ValidateNodes(nodes); err != nil {
		return layout.Result{}, err
	}

	tok := l.begin()
	defer l.end(tok)

	sim := NewSimulation(nodes, edges, l.opts, l.newRand())
	for {
		if err := ctx.Err(); err != nil {
			l.logger.Debug("force simulation cancelled", "step", sim.Steps(), "alpha", sim.Alpha())
			return layout.Result{}, errors.Wrap(errors.ErrCodeCancelled, err, "force layout cancelled at step %d", sim.Steps())
		}
		if tok.stopped.Load() {
			l.logger.Debug("force simulation stopped", "step", sim.Steps(), "alpha", sim.Alpha())
			return layout.Result{}, errors.Wrap(errors.ErrCodeCancelled, context.Canceled, "force layout stopped at step %d", sim.Steps())
		}
		if !sim.Step() {
			break
		}
		if l.onStep != nil {
			l.onStep(sim.Steps(), sim.Alpha())
		}
		runtime.Gosched()
	}

	l.logger.Debug("force simulation settled", "nodes", len(nodes), "steps", sim.Steps(), "alpha", sim.Alpha())

	placed := sim.Nodes()
	return layout.Result{
		NodePositions: layout.Positions(placed),
		EdgePaths:     layout.RouteEdges(l.calc, placed, edges, l.opts.Routing),
	}, nil
}

// newRand returns a source seeded from Options.Seed, or an unseeded one.
func (l *Layout) newRand() *rand.Rand {
	if seed := l.opts.Seed; seed != 0 {
		return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
	return nil
}

// Stop ends the run in flight at its next step boundary.
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
