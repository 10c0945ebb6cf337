package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/pkg/config"
)

// strategySummaries describes the built-in strategies.
var strategySummaries = map[string]string{
	config.StrategyHierarchical: "layers by node type, fewer crossings",
	config.StrategyForce:        "force-directed simulation",
}

func strategyChoices(names []string) []StrategyChoice {
	choices := make([]StrategyChoice, len(names))
	for i, n := range names {
		choices[i] = StrategyChoice{Name: n, Summary: strategySummaries[n]}
	}
	return choices
}

// strategiesCommand lists the registered strategies with their routing.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List layout strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			routing := map[string]string{
				config.StrategyHierarchical: string(cfg.Hierarchical.Routing.Algorithm),
				config.StrategyForce:        string(cfg.Force.Routing.Algorithm),
			}

			names := runnerFor(cmd.Context(), cfg).Strategies()
			rows := make([][]string, len(names))
			highlight := -1
			for i, n := range names {
				mark := ""
				if n == cfg.Strategy {
					mark = iconDefault
					highlight = i
				}
				rows[i] = []string{mark, n, routing[n], strategySummaries[n]}
			}

			fmt.Fprintln(c.out, renderTable([]string{"", "Strategy", "Routing", "Description"}, rows, highlight))
			printNextStep(c.out, "Run", appName+" layout --strategy "+cfg.Strategy+" topology.json")
			return nil
		},
	}
}
