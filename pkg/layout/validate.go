package layout

import (
	"math"

	"github.com/matzehuels/topolayout/pkg/errors"
)

// ValidateNodes checks the invariants every strategy relies on: non-empty,
// unique ids, strictly positive finite sizes and finite coordinates.
// Violations are INVALID_INPUT errors naming the first offending node.
func ValidateNodes(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node at index %d has an empty id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		if !(n.Width > 0) || !(n.Height > 0) || math.IsInf(n.Width, 0) || math.IsInf(n.Height, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "node %q: width and height must be positive, got %vx%v", n.ID, n.Width, n.Height)
		}
		if !finite(n.X) || !finite(n.Y) {
			return errors.New(errors.ErrCodeInvalidInput, "node %q: coordinates must be finite, got (%v, %v)", n.ID, n.X, n.Y)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
