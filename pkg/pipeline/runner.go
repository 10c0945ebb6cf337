package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topolayout/pkg/config"
	"github.com/matzehuels/topolayout/pkg/layout"
	"github.com/matzehuels/topolayout/pkg/layout/force"
	"github.com/matzehuels/topolayout/pkg/layout/hierarchical"
	"github.com/matzehuels/topolayout/pkg/route"
)

// Runner owns one layout service built from a configuration. Execute calls
// on the same Runner share its single-flight service: a newer call
// supersedes an older one still in flight.
type Runner struct {
	Config  config.Config
	Service *layout.Service
	Logger  *log.Logger
}

// NewRunner creates a runner with the default strategies registered. A nil
// logger discards output.
func NewRunner(cfg config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Config:  cfg,
		Service: NewService(cfg, logger),
		Logger:  logger,
	}
}

// NewService builds a layout service with the hierarchical and force
// strategies configured from cfg. The strategies share one calculator.
// forceOpts are applied after the configured ones, so a step hook passed
// here replaces the default debug logging.
func NewService(cfg config.Config, logger *log.Logger, forceOpts ...force.Option) *layout.Service {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	calc := route.NewCalculator(route.WithLogger(logger))
	svc := layout.NewService(layout.WithLogger(logger))

	// Registration only fails for invalid or duplicate names, neither of
	// which can happen with the built-in constants.
	_ = svc.Register(config.StrategyHierarchical, hierarchical.New(
		hierarchical.WithOptions(cfg.Hierarchical),
		hierarchical.WithCalculator(calc),
		hierarchical.WithLogger(logger),
	))
	opts := append([]force.Option{
		force.WithOptions(cfg.Force),
		force.WithCalculator(calc),
		force.WithLogger(logger),
		force.WithStepHook(func(step int, alpha float64) {
			if step%50 == 0 {
				logger.Debug("force step", "step", step, "alpha", alpha)
			}
		}),
	}, forceOpts...)
	_ = svc.Register(config.StrategyForce, force.New(opts...))
	return svc
}

// Execute runs the layout and render stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(r.Config.Strategy); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Strategy: opts.Strategy}
	result.Stats.NodeCount = len(opts.Topology.Nodes)
	result.Stats.EdgeCount = len(opts.Topology.Edges)

	// Stage 1: Layout
	layoutStart := time.Now()
	res, err := r.Service.Apply(ctx, opts.Strategy, opts.Topology.Nodes, opts.Topology.Edges)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PathCount = len(res.EdgePaths)

	r.Logger.Info("computed layout",
		"strategy", opts.Strategy,
		"nodes", result.Stats.NodeCount,
		"paths", result.Stats.PathCount,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, opts.Topology, res, opts.Formats)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Strategies lists the registered strategy names.
func (r *Runner) Strategies() []string { return r.Service.Strategies() }

// Stop cancels the run in flight, if any.
func (r *Runner) Stop() { r.Service.StopCurrent() }
