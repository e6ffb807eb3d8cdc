package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

type sampleOpts struct {
	checkOpts
	prefix   []string
	samples  int
	rngSeed  uint64
	rowsFile string
}

func (c *CLI) sampleCommand() *cobra.Command {
	opts := sampleOpts{samples: 10_000}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Show how often the row generator places a one at each position",
		Long: `Generate many candidate rows for the row after the given prefix and count
the ones per position. Positions fixed by symmetry show 0% or 100%; the free
positions should be close to uniform.`,
		Example: `  srgsearch sample -p petersen
  srgsearch sample --n 10 --k 3 --lambda 0 --mu 1 --row "0 1 0 0 1 1 0 0 0 0"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := c.checkSpec(cmd, nil, &opts.checkOpts)
			if err != nil {
				return err
			}
			rows, err := readSeeds(opts.rowsFile, opts.prefix)
			if err != nil {
				return err
			}
			if err := srg.ValidateRows(spec, rows); err != nil {
				return srgerrors.FromSearch(err)
			}
			if len(rows) >= spec.N {
				return srgerrors.New(srgerrors.ErrCodeInvalidInput, "prefix already holds all %d rows", spec.N)
			}
			if opts.samples <= 0 {
				return srgerrors.New(srgerrors.ErrCodeInvalidInput, "--samples must be positive")
			}
			return runSample(cmd, spec, rows, opts.samples, opts.rngSeed)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", "", "take the parameters from a preset")
	f.IntVar(&opts.n, "n", 0, "vertex count")
	f.IntVar(&opts.k, "k", 0, "degree")
	f.IntVar(&opts.lambda, "lambda", 0, "common neighbors of adjacent vertices")
	f.IntVar(&opts.mu, "mu", 0, "common neighbors of non-adjacent vertices")
	f.StringArrayVar(&opts.prefix, "row", nil, "prefix row (repeatable)")
	f.StringVar(&opts.rowsFile, "rows-file", "", "file with prefix rows")
	f.IntVarP(&opts.samples, "samples", "s", opts.samples, "number of rows to generate")
	f.Uint64Var(&opts.rngSeed, "rng-seed", 1, "random seed")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)

	return cmd
}

func runSample(cmd *cobra.Command, spec srg.Spec, rows srg.RowSet, samples int, seed uint64) error {
	counts, err := srg.SamplePlacement(spec, rows, samples, srg.NewRand(seed))
	if errors.Is(err, srg.ErrRowInfeasible) {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "prefix admits no row %d", len(rows))
	}
	if err != nil {
		return srgerrors.FromSearch(err)
	}

	c := len(rows)
	prefix := srg.KnownPrefix(rows)
	ones := 0
	for _, v := range prefix {
		ones += int(v)
	}
	free := spec.N - c - 1
	expected := 0.0
	if free > 0 {
		expected = float64(spec.K-ones) / float64(free)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("row %d of %s, %d samples", c, spec, samples)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, placementTable(counts, c, samples, expected))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "expected share on free positions: %.1f%%, max deviation: %.1f%%\n",
		expected*100, maxDeviation(counts, c, samples, expected)*100)
	return nil
}

func placementTable(counts []int, fixed, samples int, expected float64) string {
	headers := make([]string, 0, len(counts)+1)
	headers = append(headers, "")
	countRow := []string{"ones"}
	shareRow := []string{"share"}
	for i, n := range counts {
		headers = append(headers, report.Label(i))
		countRow = append(countRow, strconv.Itoa(n))
		shareRow = append(shareRow, fmt.Sprintf("%.0f%%", float64(n)/float64(samples)*100))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(countRow, shareRow).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow || col == 0:
				return base.Foreground(colorGray)
			case col-1 <= fixed:
				return base.Foreground(colorDim)
			default:
				share := float64(counts[col-1]) / float64(samples)
				if math.Abs(share-expected) > 0.05 {
					return base.Foreground(colorYellow)
				}
				return base.Foreground(colorGreen)
			}
		}).
		Render()
}

// maxDeviation is the largest gap between the observed share and expected
// over the free positions.
func maxDeviation(counts []int, fixed, samples int, expected float64) float64 {
	worst := 0.0
	for i := fixed + 1; i < len(counts); i++ {
		worst = max(worst, math.Abs(float64(counts[i])/float64(samples)-expected))
	}
	return worst
}
