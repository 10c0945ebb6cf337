package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/pkg/config"
	"github.com/matzehuels/topolayout/pkg/graph"
	"github.com/matzehuels/topolayout/pkg/layout/force"
	"github.com/matzehuels/topolayout/pkg/layout/hierarchical"
	"github.com/matzehuels/topolayout/pkg/pipeline"
	"github.com/matzehuels/topolayout/pkg/route"
)

// layoutFlags holds the layout command's flag values.
type layoutFlags struct {
	strategy  string
	output    string
	formats   []string
	seed      uint64
	routing   string
	direction string
	pick      bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [topology.json]",
		Short: "Compute node positions and edge paths for a topology",
		Long: `Compute node positions and edge paths for a topology.

The input is a topology JSON file with "nodes" and "edges". The result is
written next to it as <input>.layout.json unless --output is given. DOT and
SVG previews pin every node at its computed position.

Flags override the configuration file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "layout strategy (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, or base name with several formats")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", []string{pipeline.FormatJSON}, "output formats: json, dot, svg")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for force layouts (0 = unseeded)")
	cmd.Flags().StringVar(&f.routing, "routing", "", "edge routing: direct, orthogonal, curved, astar")
	cmd.Flags().StringVar(&f.direction, "direction", "", "hierarchical direction: TB, BT, LR, RL")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "choose the strategy interactively")

	return cmd
}

// runLayout loads the topology, runs the pipeline, and writes artifacts.
func (c *CLI) runLayout(cmd *cobra.Command, input string, f layoutFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := applyLayoutFlags(cmd, &cfg, f); err != nil {
		return err
	}

	top, err := graph.ReadTopologyFile(input)
	if err != nil {
		return fmt.Errorf("load topology %s: %w", input, err)
	}

	runner := pipeline.NewRunner(cfg, logger)
	strategy := f.strategy
	if f.pick {
		choices := strategyChoices(runner.Strategies())
		strategy, err = pickStrategy(choices, cfg.Strategy)
		if err != nil {
			return err
		}
		if strategy == "" {
			printWarning(c.out, "No strategy selected")
			return nil
		}
	}
	if strategy == "" {
		strategy = cfg.Strategy
	}

	// Force layouts report progress through the spinner.
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Computing %s layout...", strategy))
	if strategy == config.StrategyForce {
		total := cfg.Force.Iterations
		runner.Service = pipeline.NewService(cfg, logger, force.WithStepHook(func(step int, alpha float64) {
			spinner.SetMessage(fmt.Sprintf("Simulating step %d/%d (alpha %.3f)", step, total, alpha))
		}))
	}
	spinner.Start()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Topology: top,
		Strategy: strategy,
		Formats:  f.formats,
	})
	spinner.Stop()
	if err != nil {
		printError(c.out, "Layout failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("layout complete", "strategy", strategy)

	printSuccess(c.out, "Layout complete")
	for _, format := range f.formats {
		path := outputPath(input, f.output, format, len(f.formats) > 1)
		if err := writeArtifact(path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(c.out, path)
	}
	printStats(c.out,
		fmt.Sprintf("%d nodes", res.Stats.NodeCount),
		fmt.Sprintf("%d paths", res.Stats.PathCount),
		res.Strategy,
		res.Stats.LayoutTime.Round(time.Millisecond).String())

	return nil
}

// applyLayoutFlags copies explicitly set flags into cfg and revalidates it.
func applyLayoutFlags(cmd *cobra.Command, cfg *config.Config, f layoutFlags) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Force.Seed = f.seed
	}
	if flags.Changed("routing") {
		cfg.Hierarchical.Routing.Algorithm = route.Algorithm(f.routing)
		cfg.Force.Routing.Algorithm = route.Algorithm(f.routing)
	}
	if flags.Changed("direction") {
		cfg.Hierarchical.Direction = hierarchical.Direction(strings.ToUpper(f.direction))
	}
	return cfg.Validate()
}

// outputPath names the file for one artifact. Without --output the result
// lands next to the input; with several formats --output is a base name.
func outputPath(input, output, format string, multi bool) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout." + format
	}
	if multi {
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// runnerFor is used by commands that only need strategy metadata.
func runnerFor(ctx context.Context, cfg config.Config) *pipeline.Runner {
	return pipeline.NewRunner(cfg, loggerFromContext(ctx))
}
