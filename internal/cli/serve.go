package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/internal/server"
	"github.com/matzehuels/topolayout/pkg/metrics"
	"github.com/matzehuels/topolayout/pkg/observability"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET    /healthz
  GET    /v1/strategies
  POST   /v1/layouts/{strategy}
  POST   /v1/canvases/{canvas}/layouts/{strategy}
  DELETE /v1/canvases/{canvas}/run
  POST   /v1/routes
  GET    /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger := loggerFromContext(cmd.Context())
			opts := []server.Option{server.WithLogger(logger)}
			if !noMetrics {
				reg := metrics.DefaultRegistry()
				observability.SetLayoutHooks(reg)
				observability.SetRouteHooks(reg)
				observability.SetHTTPHooks(reg)
				opts = append(opts, server.WithMetrics(reg))
			}

			return server.New(cfg, opts...).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	return cmd
}
