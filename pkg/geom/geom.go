package geom

import "math"

// Position is a point in the plane.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Position) Add(dx, dy float64) Position { return Position{X: p.X + dx, Y: p.Y + dy} }

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// IsFinite reports whether both coordinates are finite numbers.
func (p Position) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

// Rectangle is an axis-aligned box. X and Y locate the top-left corner.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rectangle) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r. Points on the left and top edges
// are inside; points on the right and bottom edges are not.
func (r Rectangle) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Inflate grows the rectangle by d on every side. A negative d shrinks it.
func (r Rectangle) Inflate(d float64) Rectangle {
	return Rectangle{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Path is an ordered sequence of points. A valid path has at least two
// points: the first is the source anchor and the last the target anchor.
type Path []Position

// Source returns the first point of the path.
func (p Path) Source() Position { return p[0] }

// Target returns the last point of the path.
func (p Path) Target() Position { return p[len(p)-1] }

// Valid reports whether the path has at least two points, all finite.
func (p Path) Valid() bool {
	if len(p) < 2 {
		return false
	}
	for _, pt := range p {
		if !pt.IsFinite() {
			return false
		}
	}
	return true
}

// Length returns the summed length of the path's segments.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += p[i-1].Distance(p[i])
	}
	return total
}

// Clone returns a copy of p that shares no memory with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
