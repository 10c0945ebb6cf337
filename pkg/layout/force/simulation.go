package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/topolayout/pkg/layout"
)

// body is a node in the simulation. x and y are the top-left corner; forces
// act between centers.
type body struct {
	node   layout.Node
	x, y   float64
	vx, vy float64
	fixed  bool
}

func (b *body) center() (float64, float64) {
	return b.x + b.node.Width/2, b.y + b.node.Height/2
}

// spring pulls two bodies toward a rest distance.
type spring struct {
	source, target int
	distance       float64
	strength       float64
}

// Simulation is a steppable force-directed simulation. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Simulation struct {
	opts    Options
	bodies  []body
	springs []spring
	rng     *rand.Rand
	alpha   float64
	steps   int
}

// NewSimulation prepares a simulation over copies of nodes. Nodes without a
// position start at a uniform random point of the padded canvas drawn from
// rng; a nil rng uses an unseeded source. Every start position is clamped
// into the padded canvas. Edges whose endpoints both exist become springs.
// opts is assumed valid.
func NewSimulation(nodes []layout.Node, edges []layout.Edge, opts Options, rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Simulation{
		opts:   opts,
		bodies: make([]body, len(nodes)),
		rng:    rng,
		alpha:  opts.Alpha,
	}

	minX, maxX := opts.Padding, opts.Width-opts.Padding
	minY, maxY := opts.Padding, opts.Height-opts.Padding
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		b := body{node: n, x: n.X, y: n.Y, fixed: n.Fixed}
		if !n.HasPosition() {
			b.x = minX + rng.Float64()*(maxX-minX)
			b.y = minY + rng.Float64()*(maxY-minY)
		}
		b.x = clamp(b.x, minX, maxX)
		b.y = clamp(b.y, minY, maxY)
		s.bodies[i] = b
		index[n.ID] = i
	}

	for _, e := range edges {
		si, ok := index[e.SourceID]
		if !ok {
			continue
		}
		ti, ok := index[e.TargetID]
		if !ok || si == ti {
			continue
		}
		s.springs = append(s.springs, spring{
			source:   si,
			target:   ti,
			distance: opts.LinkDistance,
			strength: opts.AttractionStrength,
		})
	}
	return s
}

// Done reports whether the simulation has finished.
func (s *Simulation) Done() bool {
	return s.steps >= s.opts.Iterations || s.alpha < alphaMin
}

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Steps returns the number of completed steps.
func (s *Simulation) Steps() int { return s.steps }

// Step advances the simulation by one tick. It returns false without doing
// anything once the simulation is done.
func (s *Simulation) Step() bool {
	if s.Done() {
		return false
	}
	s.repel()
	s.attract()
	s.gravitate()
	s.integrate()
	s.alpha *= 1 - s.opts.AlphaDecay
	s.steps++
	return true
}

// repel pushes every unordered pair apart with magnitude |k|·alpha/d².
func (s *Simulation) repel() {
	k := math.Abs(s.opts.RepulsionStrength) * s.alpha
	if k == 0 {
		return
	}
	for i := range s.bodies {
		a := &s.bodies[i]
		ax, ay := a.center()
		for j := i + 1; j < len(s.bodies); j++ {
			b := &s.bodies[j]
			bx, by := b.center()
			dx, dy := bx-ax, by-ay
			d := math.Hypot(dx, dy)
			if d == 0 {
				// Coincident centers have no direction; pick one at random.
				theta := s.rng.Float64() * 2 * math.Pi
				dx, dy = math.Cos(theta), math.Sin(theta)
			} else {
				dx, dy = dx/d, dy/d
			}
			d = math.Max(d, 1)
			f := k / (d * d)
			if !a.fixed {
				a.vx -= dx * f
				a.vy -= dy * f
			}
			if !b.fixed {
				b.vx += dx * f
				b.vy += dy * f
			}
		}
	}
}

// attract pulls spring endpoints toward their rest distance.
func (s *Simulation) attract() {
	for _, sp := range s.springs {
		a, b := &s.bodies[sp.source], &s.bodies[sp.target]
		ax, ay := a.center()
		bx, by := b.center()
		dx, dy := bx-ax, by-ay
		d := math.Max(math.Hypot(dx, dy), 1)
		f := (d - sp.distance) * sp.strength * s.alpha
		fx, fy := dx/d*f, dy/d*f
		if !a.fixed {
			a.vx += fx
			a.vy += fy
		}
		if !b.fixed {
			b.vx -= fx
			b.vy -= fy
		}
	}
}

// gravitate pulls free bodies toward the canvas center.
func (s *Simulation) gravitate() {
	g := s.opts.Gravity * s.alpha
	if g == 0 {
		return
	}
	cx, cy := s.opts.Width/2, s.opts.Height/2
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.fixed {
			continue
		}
		x, y := b.center()
		b.vx += (cx - x) * g
		b.vy += (cy - y) * g
	}
}

// integrate moves free bodies by their velocity, damps it and clamps the
// result into the padded canvas.
func (s *Simulation) integrate() {
	minX, maxX := s.opts.Padding, s.opts.Width-s.opts.Padding
	minY, maxY := s.opts.Padding, s.opts.Height-s.opts.Padding
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.fixed {
			b.vx, b.vy = 0, 0
			continue
		}
		b.x = clamp(b.x+b.vx, minX, maxX)
		b.y = clamp(b.y+b.vy, minY, maxY)
		b.vx *= s.opts.VelocityDecay
		b.vy *= s.opts.VelocityDecay
	}
}

// Nodes returns copies of the input nodes at their current positions, in
// input order and marked placed.
func (s *Simulation) Nodes() []layout.Node {
	out := make([]layout.Node, len(s.bodies))
	for i, b := range s.bodies {
		n := b.node
		n.X, n.Y = b.x, b.y
		n.Placed = true
		out[i] = n
	}
	return out
}

// Positions returns the current positions in input order.
func (s *Simulation) Positions() []layout.NodePosition {
	return layout.Positions(s.Nodes())
}

func clamp(v, lo, hi float64) float64 {
	// NaN never survives: it fails both comparisons and is replaced by lo.
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
