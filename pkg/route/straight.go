package route

import (
	"math"

	"github.com/matzehuels/topolayout/pkg/geom"
)

func straight(source, target geom.Position) geom.Path {
	return geom.Path{source, target}
}

// orthogonal bends once, vertically from the source then horizontally into
// the target.
func orthogonal(source, target geom.Position) geom.Path {
	return geom.Path{source, {X: source.X, Y: target.Y}, target}
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
