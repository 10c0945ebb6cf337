package route

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/observability"
	"github.com/matzehuels/topolayout/pkg/validation"
)

// Algorithm names a routing strategy.
type Algorithm string

const (
	Direct     Algorithm = "direct"
	Orthogonal Algorithm = "orthogonal"
	Curved     Algorithm = "curved"
	AStar      Algorithm = "astar"
)

// Algorithms lists every supported algorithm in a stable order.
var Algorithms = []Algorithm{Direct, Orthogonal, Curved, AStar}

const (
	DefaultGridSize      = 10.0
	DefaultCurveSegments = 10
)

// Options configures a single path calculation.
type Options struct {
	Algorithm Algorithm `json:"algorithm" toml:"algorithm" yaml:"algorithm" validate:"oneof=direct orthogonal curved astar"`

	// GridSize is the A* cell edge length.
	GridSize float64 `json:"grid_size" toml:"grid_size" yaml:"grid_size" validate:"gt=0"`

	// AvoidObstacles controls whether A* blocks cells covered by obstacles.
	// With it disabled A* degenerates to a Manhattan staircase.
	AvoidObstacles bool `json:"avoid_obstacles" toml:"avoid_obstacles" yaml:"avoid_obstacles"`

	// CurveSegments is the number of Bézier segments; the curved path has
	// CurveSegments+1 points.
	CurveSegments int `json:"curve_segments" toml:"curve_segments" yaml:"curve_segments" validate:"gte=1"`
}

// DefaultOptions returns direct routing with a 10-unit grid, obstacle
// avoidance enabled and 10 curve segments.
func DefaultOptions() Options {
	return Options{
		Algorithm:      Direct,
		GridSize:       DefaultGridSize,
		AvoidObstacles: true,
		CurveSegments:  DefaultCurveSegments,
	}
}

// Validate reports an INVALID_CONFIG error for an unknown algorithm, a
// non-positive grid size or fewer than one curve segment.
func (o Options) Validate() error {
	return validation.Struct("routing", o)
}

// normalized substitutes defaults for unusable values so that calculation
// itself never fails.
func (o Options) normalized() Options {
	if !(o.GridSize > 0) || !isFinite(o.GridSize) {
		o.GridSize = DefaultGridSize
	}
	if o.CurveSegments < 1 {
		o.CurveSegments = DefaultCurveSegments
	}
	return o
}

// Calculator computes edge paths. It holds no per-call state and is safe for
// concurrent use.
type Calculator struct {
	logger *log.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator creates a Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CalculatePath routes from source to target with the algorithm in opts.
// Obstacles are only consulted by [AStar]. The result always has at least
// two points and never contains NaN when source and target are finite.
func (c *Calculator) CalculatePath(source, target geom.Position, obstacles []geom.Rectangle, opts Options) geom.Path {
	opts = opts.normalized()

	var (
		path     geom.Path
		fallback bool
	)
	switch {
	case !source.IsFinite() || !target.IsFinite():
		c.logger.Debug("non-finite anchor, using direct path", "source", source, "target", target)
		path, fallback = straight(source, target), opts.Algorithm != Direct
	default:
		switch opts.Algorithm {
		case Direct:
			path = straight(source, target)
		case Orthogonal:
			path = orthogonal(source, target)
		case Curved:
			path = curve(source, target, opts.CurveSegments)
		case AStar:
			var ok bool
			path, ok = searchGrid(source, target, obstacles, opts)
			if !ok {
				c.logger.Debug("no grid route, using direct path", "source", source, "target", target, "obstacles", len(obstacles))
				path, fallback = straight(source, target), true
			}
		default:
			c.logger.Warn("unknown routing algorithm, using direct path", "algorithm", opts.Algorithm)
			path, fallback = straight(source, target), true
		}
	}

	observability.Route().OnRoute(string(opts.Algorithm), len(path), fallback)
	return path
}
