// Package cli implements the srgsearch command-line interface.
//
// # Commands
//
//   - solve: search for a strongly regular graph from a preset or parameters
//   - check: validate a row set and print its Gram matrix
//   - sample: row-placement histogram for a parameter set and prefix
//   - presets: list built-in and configured presets
//   - render: draw a saved result as DOT, SVG, PNG or PDF
//   - store: manage the local result store
//   - serve: run the HTTP API
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a TOML configuration file. The logger is passed through the
// command context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/srgsearch/pkg/buildinfo"
	"github.com/matzehuels/srgsearch/pkg/config"
	"github.com/matzehuels/srgsearch/pkg/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "srgsearch builds strongly regular graphs by randomized row search",
		Long: `srgsearch searches for adjacency matrices of strongly regular graphs
srg(n, k, lambda, mu). Rows are generated one at a time under the degree and
symmetry constraints, checked against lambda and mu through the Gram matrix,
and discarded by a backtracking policy when the search stalls.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/srgsearch/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Path != "" {
		c.Logger.Debug("Loaded config", "path", cfg.Path)
	}
	return nil
}

// openStore opens the configured result store. With noStore, or when the
// backend cannot be reached, it falls back to a store that keeps nothing.
func (c *CLI) openStore(ctx context.Context, noStore bool) store.Store {
	if noStore {
		return store.NewNullStore()
	}
	dir, err := c.cfg.StoreDir()
	if err != nil {
		c.Logger.Warn("No store directory, results will not be saved", "error", err)
		return store.NewNullStore()
	}
	s, err := store.Open(ctx, c.cfg.Store, dir)
	if err != nil {
		c.Logger.Warn("Store unavailable, results will not be saved", "error", err)
		return store.NewNullStore()
	}
	return s
}
