package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

type checkOpts struct {
	preset           string
	n, k, lambda, mu int
}

func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a row set and print its Gram matrix",
		Long: `Check every pair of rows against lambda and mu and print the labeled
adjacency and Gram tables together with each violation.

The file may be a result document, a JSON matrix or one row per line. For a
result document the parameters come from the document; otherwise give a
preset with --preset or all of --n, --k, --lambda and --mu.

The command fails when any row or pair is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docSpec, rows, err := loadRows(args[0])
			if err != nil {
				return err
			}
			spec, err := c.checkSpec(cmd, docSpec, &opts)
			if err != nil {
				return err
			}
			return runCheck(cmd, spec, rows)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "take the parameters from a preset")
	cmd.Flags().IntVar(&opts.n, "n", 0, "vertex count")
	cmd.Flags().IntVar(&opts.k, "k", 0, "degree")
	cmd.Flags().IntVar(&opts.lambda, "lambda", 0, "common neighbors of adjacent vertices")
	cmd.Flags().IntVar(&opts.mu, "mu", 0, "common neighbors of non-adjacent vertices")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)

	return cmd
}

// checkSpec picks the parameters: --preset, then explicit flags, then the
// document's own spec.
func (c *CLI) checkSpec(cmd *cobra.Command, docSpec *srg.Spec, opts *checkOpts) (srg.Spec, error) {
	var spec srg.Spec
	switch {
	case opts.preset != "":
		p, err := c.cfg.Preset(opts.preset)
		if err != nil {
			return srg.Spec{}, err
		}
		spec = p.Spec()
	case cmd.Flags().Changed("n"):
		spec = srg.Spec{N: opts.n, K: opts.k, Lambda: opts.lambda, Mu: opts.mu}
	case docSpec != nil:
		spec = *docSpec
	default:
		return srg.Spec{}, srgerrors.New(srgerrors.ErrCodeInvalidInput, "give --preset or --n, --k, --lambda and --mu")
	}
	if err := spec.Validate(); err != nil {
		return srg.Spec{}, srgerrors.FromSearch(err)
	}
	return spec, nil
}

func runCheck(cmd *cobra.Command, spec srg.Spec, rows srg.RowSet) error {
	out := cmd.OutOrStdout()
	if len(rows) > spec.N {
		return srgerrors.New(srgerrors.ErrCodeInvalidRow, "%d rows exceed n=%d", len(rows), spec.N)
	}
	for i, r := range rows {
		if len(r) != spec.N {
			return srgerrors.New(srgerrors.ErrCodeInvalidRow, "row %d has length %d, want %d", i, len(r), spec.N)
		}
	}

	gram := srg.Evaluate(rows)
	fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%s, %d/%d rows", spec, len(rows), spec.N)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.AdjacencyTable(rows.Ints()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.GramTable(spec, rows.Ints(), gram))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.RenderViolations(spec, rows))

	if err := srg.ValidateRows(spec, rows); err != nil {
		return srgerrors.FromSearch(err)
	}
	return nil
}
