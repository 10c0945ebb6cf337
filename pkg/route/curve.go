package route

import "github.com/matzehuels/topolayout/pkg/geom"

// curve samples the cubic Bézier from source to target at t = i/segments.
// The first and last samples are the exact anchors rather than evaluated
// points so floating-point error never moves the endpoints.
func curve(source, target geom.Position, segments int) geom.Path {
	dx := target.X - source.X
	c1 := geom.Position{X: source.X + dx/3, Y: source.Y}
	c2 := geom.Position{X: source.X + 2*dx/3, Y: target.Y}

	path := make(geom.Path, 0, segments+1)
	path = append(path, source)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		path = append(path, bezier(source, c1, c2, target, t))
	}
	return append(path, target)
}

// bezier evaluates the cubic Bernstein form at t.
func bezier(p0, p1, p2, p3 geom.Position, t float64) geom.Position {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return geom.Position{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}
