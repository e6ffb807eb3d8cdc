package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/srgsearch/pkg/api"
	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the search over HTTP until interrupted.

Routes:
  POST /v1/solve             search, returns a result document
  POST /v1/check             validate rows, returns Gram matrix and violations
  GET  /v1/presets           list presets
  GET  /v1/solutions/{key}   fetch a stored result
  GET  /healthz              liveness

Per-request budgets are capped by [server] max_iterations and max_timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}
			if c.cfg.Server.Addr == "" {
				return srgerrors.New(srgerrors.ErrCodeInvalidInput, "no listen address")
			}

			st := c.openStore(ctx, noStore)
			defer st.Close()

			c.Logger.Info("Starting API", "addr", c.cfg.Server.Addr, "store", c.cfg.Store.Backend)
			return api.New(c.cfg, st, c.Logger).ListenAndServe(ctx, c.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not read or write the result store")

	return cmd
}
