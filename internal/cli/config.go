package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/pkg/config"
)

// configCommand prints the effective configuration, which doubles as a
// starting point for a config file.
func (c *CLI) configCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: the defaults merged with the file
named by --config. Redirect the output to create a config file.`,
		Example: `  topolayout config --format yaml > topolayout.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			switch f := config.Format(format); f {
			case config.FormatTOML, config.FormatYAML:
				return cfg.Encode(c.out, f)
			default:
				return fmt.Errorf("invalid --format %q: use toml or yaml", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(config.FormatTOML), "output format: toml, yaml")
	return cmd
}
