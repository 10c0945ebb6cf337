package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topolayout/pkg/buildinfo"
	"github.com/matzehuels/topolayout/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	appName = "topolayout"

	// envConfig names a config file used when --config is not given.
	envConfig = "TOPOLAYOUT_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	logOut     io.Writer
	configPath string
	verbose    bool
	logFormat  string
}

// New creates a CLI logging to w at level. Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level, logFormatText),
		out:       os.Stdout,
		logOut:    w,
		logFormat: logFormatText,
	}
}

// SetOutput redirects command output, for tests.
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "topolayout computes layouts and edge paths for network topologies",
		Long: `topolayout places typed nodes (controllers, gateways, units, sensors,
actuators, buses) on a canvas and routes the edges between them, either as
hierarchical layers or with a force-directed simulation.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml); defaults to $"+envConfig)
	flags.StringVar(&c.logFormat, "log-format", logFormatText, "log format: text, json")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// setup applies the global flags and attaches the logger to the context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	switch c.logFormat {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("invalid --log-format %q: use text or json", c.logFormat)
	}

	level := LogInfo
	if c.verbose {
		level = LogDebug
	}
	if c.logFormat != logFormatText {
		c.Logger = newLogger(c.logOut, level, c.logFormat)
	}
	c.Logger.SetLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// loadConfig returns the defaults, or the file named by --config or
// $TOPOLAYOUT_CONFIG merged over them.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path, "strategy", cfg.Strategy)
	return cfg, nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(c.out, buildinfo.Get().String())
		},
	}
}
