package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/pkg/geom"
	"github.com/matzehuels/topolayout/pkg/route"
)

// routeCommand creates the route command for computing a single edge path.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		from, to  string
		obstacles []string
		opts      = route.DefaultOptions()
		algorithm string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "route --from X,Y --to X,Y",
		Short: "Compute one edge path between two points",
		Long: `Compute one edge path between two points.

Obstacles are rectangles given as X,Y,WIDTH,HEIGHT and only affect the
astar algorithm. A path that cannot be found falls back to a straight line.`,
		Example: `  topolayout route --from 0,0 --to 200,100 --algorithm astar --obstacle 80,-50,40,200`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := parsePosition(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			target, err := parsePosition(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			rects := make([]geom.Rectangle, 0, len(obstacles))
			for _, o := range obstacles {
				r, err := parseRectangle(o)
				if err != nil {
					return fmt.Errorf("--obstacle: %w", err)
				}
				rects = append(rects, r)
			}

			opts.Algorithm = route.Algorithm(algorithm)
			if err := opts.Validate(); err != nil {
				return err
			}

			calc := route.NewCalculator(route.WithLogger(loggerFromContext(cmd.Context())))
			path := calc.CalculatePath(source, target, rects, opts)

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(path)
			}
			rows := make([][]string, len(path))
			for i, p := range path {
				rows[i] = []string{strconv.Itoa(i), fmtCoord(p.X), fmtCoord(p.Y)}
			}
			fmt.Fprintln(c.out, renderTable([]string{"#", "x", "y"}, rows, -1))
			printStats(c.out, string(opts.Algorithm), fmt.Sprintf("%d points", len(path)), "length "+fmtCoord(path.Length()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source point X,Y")
	cmd.Flags().StringVar(&to, "to", "", "target point X,Y")
	cmd.Flags().StringArrayVar(&obstacles, "obstacle", nil, "obstacle X,Y,WIDTH,HEIGHT (repeatable)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(route.Direct), "direct, orthogonal, curved, astar")
	cmd.Flags().Float64Var(&opts.GridSize, "grid-size", opts.GridSize, "astar cell size")
	cmd.Flags().IntVar(&opts.CurveSegments, "segments", opts.CurveSegments, "curve segments")
	cmd.Flags().BoolVar(&opts.AvoidObstacles, "avoid-obstacles", opts.AvoidObstacles, "let astar route around obstacles")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the path as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func parsePosition(s string) (geom.Position, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return geom.Position{}, err
	}
	return geom.Position{X: v[0], Y: v[1]}, nil
}

func parseRectangle(s string) (geom.Rectangle, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return geom.Rectangle{}, err
	}
	return geom.Rectangle{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma-separated numbers", s, n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
