package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/store"
)

// storeCommand creates the result store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the result store",
	}

	cmd.AddCommand(c.storePathCommand())
	cmd.AddCommand(c.storeClearCommand())
	cmd.AddCommand(c.storeGetCommand())

	return cmd
}

// storePathCommand creates the "store path" subcommand.
func (c *CLI) storePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cfg.StoreDir()
			if err != nil {
				return fmt.Errorf("get store dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// storeClearCommand creates the "store clear" subcommand. Only the file
// backend can be cleared; Redis and MongoDB entries expire by TTL.
func (c *CLI) storeClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored result from the file store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.openStore(cmd.Context(), false)
			defer s.Close()

			fs, ok := store.Unwrap(s).(*store.FileStore)
			if !ok {
				return srgerrors.New(srgerrors.ErrCodeInvalidInput, "store clear only supports the file backend, configured: %q", c.cfg.Store.Backend)
			}
			count, err := fs.Clear()
			if err != nil {
				return srgerrors.Wrap(srgerrors.ErrCodeStore, err, "clear %s", fs.Dir())
			}

			if count == 0 {
				printInfo("Store is already empty")
			} else {
				printSuccess("Cleared %d stored results", count)
			}
			printDetail("Directory: %s", fs.Dir())
			return nil
		},
	}
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored result by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := srgerrors.ValidateStoreKey(key); err != nil {
				return err
			}

			s := c.openStore(cmd.Context(), false)
			defer s.Close()

			data, hit, err := s.Get(cmd.Context(), key)
			if err != nil {
				return srgerrors.Wrap(srgerrors.ErrCodeStore, err, "read %s", key)
			}
			if !hit {
				return srgerrors.New(srgerrors.ErrCodeNotFound, "no stored result for %s", key)
			}
			doc, err := report.Unmarshal(data)
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(doc, cmd.OutOrStdout())
			}
			return report.Render(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result document as JSON")
	return cmd
}
