package route

import (
	"math"

	"github.com/matzehuels/topolayout/pkg/geom"
)

// collinearEpsilon is the relative tolerance for the cross-product test.
const collinearEpsilon = 1e-9

// Smooth removes interior points that lie on the straight line through their
// neighbours, including repeated points. The first and last points are always
// kept, so a path with at least two points keeps at least two.
// The input is not modified.
func Smooth(path geom.Path) geom.Path {
	if len(path) <= 2 {
		return path.Clone()
	}
	out := make(geom.Path, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		if collinear(out[len(out)-1], path[i], path[i+1]) {
			continue
		}
		out = append(out, path[i])
	}
	return append(out, path[len(path)-1])
}

// collinear reports whether b lies on the line through a and c, with b
// between them or coincident with either.
func collinear(a, b, c geom.Position) bool {
	abx, aby := b.X-a.X, b.Y-a.Y
	bcx, bcy := c.X-b.X, c.Y-b.Y
	cross := abx*bcy - aby*bcx
	scale := math.Max(1, math.Hypot(abx, aby)*math.Hypot(bcx, bcy))
	if math.Abs(cross) > collinearEpsilon*scale {
		return false
	}
	// Reject reversals so a U-turn keeps its corner.
	return abx*bcx+aby*bcy >= 0
}
