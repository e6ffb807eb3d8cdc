package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/render/nodelink"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/srg"
	"github.com/matzehuels/srgsearch/pkg/store"
)

// solveOpts holds the command-line flags for the solve command.
// Search flags only override the config file when set explicitly.
type solveOpts struct {
	n, k, lambda, mu int
	seedRows         []string // --seed-row, repeatable
	seedFile         string   // rows file or result document with seed rows

	rngSeed            uint64
	threshold          int
	strategy           string
	retentionThreshold int
	retain             int
	seedOnReset        bool
	pinSeeds           bool
	maxIterations      int64
	timeout            time.Duration

	output  string // text report path, or .json for a document
	json    bool   // print the document as JSON
	dot     bool   // print the graph as DOT
	svg     string // render the graph to this SVG path
	layout  string // Graphviz layout for --svg
	noStore bool
	tui     bool
}

func (c *CLI) solveCommand() *cobra.Command {
	def := srg.DefaultOptions()
	opts := solveOpts{
		threshold:          def.FailureThreshold,
		strategy:           def.Backtrack.Strategy.String(),
		retentionThreshold: def.Backtrack.RetentionThresholdPercent,
		retain:             def.Backtrack.RetainPercent,
		seedOnReset:        def.Backtrack.SeedOnReset,
		pinSeeds:           def.PinSeeds,
		layout:             nodelink.LayoutCirco,
	}

	cmd := &cobra.Command{
		Use:   "solve [preset]",
		Short: "Search for a strongly regular graph",
		Long: `Search for the adjacency matrix of srg(n, k, lambda, mu).

Give either a preset name (see "srgsearch presets") or all of --n, --k,
--lambda and --mu. Seed rows fix the first rows of the matrix; they come from
the preset, from --seed-file, or from repeated --seed-row flags.

Results are kept in the result store keyed by parameters and seed rows, so
solving the same input again returns the stored graph. Passing --rng-seed
always runs a fresh search.`,
		Example: `  srgsearch solve petersen
  srgsearch solve --n 9 --k 4 --lambda 1 --mu 2 --strategy full-reset
  srgsearch solve c5 --json > c5.json
  srgsearch solve clebsch --tui --svg clebsch.svg`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, seeds, err := c.solveInput(cmd, args, &opts)
			if err != nil {
				return err
			}
			so, err := c.solveOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runSolve(cmd, spec, seeds, so, &opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.n, "n", 0, "vertex count")
	f.IntVar(&opts.k, "k", 0, "degree")
	f.IntVar(&opts.lambda, "lambda", 0, "common neighbors of adjacent vertices")
	f.IntVar(&opts.mu, "mu", 0, "common neighbors of non-adjacent vertices")
	f.StringArrayVar(&opts.seedRows, "seed-row", nil, `seed row, e.g. "0 1 0 0 1" (repeatable)`)
	f.StringVar(&opts.seedFile, "seed-file", "", "file with seed rows (text, JSON matrix or result document)")

	f.Uint64Var(&opts.rngSeed, "rng-seed", 0, "random seed (0 picks one; bypasses stored results)")
	f.IntVar(&opts.threshold, "threshold", opts.threshold, "consecutive rejections before backtracking")
	f.StringVar(&opts.strategy, "strategy", opts.strategy, "backtrack strategy: partial-retention, full-reset")
	f.IntVar(&opts.retentionThreshold, "retention-threshold", opts.retentionThreshold, "percent of rows found above which rows are retained")
	f.IntVar(&opts.retain, "retain", opts.retain, "percent of rows kept on partial retention")
	f.BoolVar(&opts.seedOnReset, "seed-on-reset", opts.seedOnReset, "start with a random row after a full reset")
	f.BoolVar(&opts.pinSeeds, "pin-seeds", opts.pinSeeds, "never discard seed rows when backtracking")
	f.Int64Var(&opts.maxIterations, "max-iterations", 0, "stop after this many candidate rows (0 = no limit)")
	f.DurationVar(&opts.timeout, "timeout", 0, "stop after this long (0 = no limit)")

	f.StringVarP(&opts.output, "output", "o", "", "write a text report (or a .json document) to this file")
	f.BoolVar(&opts.json, "json", false, "print the result document as JSON")
	f.BoolVar(&opts.dot, "dot", false, "print the graph in Graphviz DOT format")
	f.StringVar(&opts.svg, "svg", "", "render the graph to this SVG file")
	f.StringVar(&opts.layout, "layout", opts.layout, "Graphviz layout for --svg: circo, neato, fdp, dot")
	f.BoolVar(&opts.noStore, "no-store", false, "neither read nor write the result store")
	f.BoolVar(&opts.tui, "tui", false, "show a live progress view")

	cmd.MarkFlagsMutuallyExclusive("json", "dot")
	cmd.MarkFlagsMutuallyExclusive("json", "tui")

	return cmd
}

// solveInput resolves the graph parameters and seed rows from a preset
// argument or the --n/--k/--lambda/--mu flags.
func (c *CLI) solveInput(cmd *cobra.Command, args []string, opts *solveOpts) (srg.Spec, srg.RowSet, error) {
	flags := cmd.Flags()
	specFlags := flags.Changed("n") || flags.Changed("k") || flags.Changed("lambda") || flags.Changed("mu")

	spec := srg.Spec{N: opts.n, K: opts.k, Lambda: opts.lambda, Mu: opts.mu}
	var presetSeeds srg.RowSet
	switch {
	case len(args) == 1 && specFlags:
		return srg.Spec{}, nil, srgerrors.New(srgerrors.ErrCodeInvalidInput, "give either a preset or --n/--k/--lambda/--mu, not both")
	case len(args) == 1:
		p, err := c.cfg.Preset(args[0])
		if err != nil {
			return srg.Spec{}, nil, err
		}
		if presetSeeds, err = p.SeedRows(); err != nil {
			return srg.Spec{}, nil, err
		}
		spec = p.Spec()
	case !flags.Changed("n"):
		return srg.Spec{}, nil, srgerrors.New(srgerrors.ErrCodeInvalidInput, "give a preset name or --n, --k, --lambda and --mu")
	}

	if err := spec.Validate(); err != nil {
		return srg.Spec{}, nil, srgerrors.FromSearch(err)
	}

	seeds, err := readSeeds(opts.seedFile, opts.seedRows)
	if err != nil {
		return srg.Spec{}, nil, err
	}
	if seeds == nil {
		seeds = presetSeeds
	}
	if err := srg.ValidateRows(spec, seeds); err != nil {
		return srg.Spec{}, nil, srgerrors.FromSearch(err)
	}
	return spec, seeds, nil
}

// readSeeds loads the seed file, then appends each --seed-row. It returns
// nil when neither is given.
func readSeeds(file string, rows []string) (srg.RowSet, error) {
	var seeds srg.RowSet
	if file != "" {
		if err := srgerrors.ValidatePath(file); err != nil {
			return nil, err
		}
		fromFile, err := report.ReadRowsFile(file)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}
	for _, text := range rows {
		row, err := report.ParseRow(text)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, row)
	}
	return seeds, nil
}

// solveOptions starts from the [search] config table and applies the
// search flags the user set.
func (c *CLI) solveOptions(cmd *cobra.Command, opts *solveOpts) (srg.Options, error) {
	so, err := c.cfg.Options()
	if err != nil {
		return srg.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		so.FailureThreshold = opts.threshold
	}
	if flags.Changed("strategy") {
		strategy, err := srg.ParseStrategy(opts.strategy)
		if err != nil {
			return srg.Options{}, srgerrors.Wrap(srgerrors.ErrCodeInvalidInput, err, "--strategy")
		}
		so.Backtrack.Strategy = strategy
	}
	if flags.Changed("retention-threshold") {
		so.Backtrack.RetentionThresholdPercent = opts.retentionThreshold
	}
	if flags.Changed("retain") {
		so.Backtrack.RetainPercent = opts.retain
	}
	if flags.Changed("seed-on-reset") {
		so.Backtrack.SeedOnReset = opts.seedOnReset
	}
	if flags.Changed("pin-seeds") {
		so.PinSeeds = opts.pinSeeds
	}
	if flags.Changed("max-iterations") {
		so.MaxIterations = opts.maxIterations
	}
	if flags.Changed("timeout") {
		so.MaxDuration = opts.timeout
	}
	so.Seed = opts.rngSeed

	if err := so.Validate(); err != nil {
		return srg.Options{}, srgerrors.Wrap(srgerrors.ErrCodeInvalidInput, err, "search options")
	}
	if opts.svg != "" && !nodelink.ValidLayout(opts.layout) {
		return srg.Options{}, srgerrors.New(srgerrors.ErrCodeInvalidInput, "unknown layout %q", opts.layout)
	}
	return so, nil
}

func (c *CLI) runSolve(cmd *cobra.Command, spec srg.Spec, seeds srg.RowSet, so srg.Options, opts *solveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	st := c.openStore(ctx, opts.noStore)
	defer st.Close()
	key := store.SolutionKey(spec, seeds)

	var doc *report.Document
	cached := false
	if opts.rngSeed == 0 {
		doc = storedSolution(ctx, logger, st, key)
		cached = doc != nil
	}

	if doc == nil {
		prog := newProgress(logger)
		res, err := search(ctx, logger, spec, seeds, so, opts.tui)
		if res != nil {
			doc = report.NewDocument(res)
			doc.Key = key
		}
		if err != nil {
			if doc != nil {
				logger.Warn("Search stopped", "state", doc.Status, "deepest", doc.Stats.MaxRows, "iterations", doc.Stats.Iterations)
				if opts.output != "" {
					if werr := exportDocument(doc, opts.output); werr != nil {
						logger.Warn("Could not write partial report", "error", werr)
					} else {
						printWarning("Partial report written to %s", opts.output)
					}
				}
			}
			return srgerrors.FromSearch(err)
		}
		prog.done(fmt.Sprintf("Found %s", spec))
		saveSolution(ctx, logger, st, key, doc, c.cfg.Store.TTL.Duration)
	}

	return c.writeSolveOutput(cmd, doc, cached, opts)
}

// search runs the solver behind the progress view or a spinner. With debug
// logging the spinner is replaced by progress log lines.
func search(ctx context.Context, logger *log.Logger, spec srg.Spec, seeds srg.RowSet, so srg.Options, tui bool) (*srg.Result, error) {
	logger.Debug("Starting search",
		"spec", spec,
		"seeds", len(seeds),
		"strategy", so.Backtrack.Strategy,
		"threshold", so.FailureThreshold)

	if tui {
		return runSearchTUI(ctx, spec, seeds, so)
	}
	if logger.GetLevel() <= log.DebugLevel {
		so.Progress = searchLogger(logger)
		return srg.Solve(ctx, spec, seeds, so)
	}

	spinner := newSpinnerWithContext(ctx, "Searching "+spec.String())
	so.Progress = func(p srg.Progress) {
		spinner.SetMessage(fmt.Sprintf("Searching %s  %d/%d rows  deepest %d  %d backtracks",
			spec, p.Rows, p.N, p.Stats.MaxRows, p.Stats.Backtracks))
	}
	spinner.Start()
	res, err := srg.Solve(ctx, spec, seeds, so)
	if err != nil && spinner.Cancelled() {
		spinner.StopWithError("Search canceled")
	} else {
		spinner.Stop()
	}
	return res, err
}

// storedSolution returns a complete stored document for key, or nil.
func storedSolution(ctx context.Context, logger *log.Logger, st store.Store, key string) *report.Document {
	data, hit, err := st.Get(ctx, key)
	if err != nil {
		logger.Warn("Store read failed", "error", err)
		return nil
	}
	if !hit {
		return nil
	}
	doc, err := report.Unmarshal(data)
	if err != nil || !doc.Complete() {
		logger.Debug("Ignoring stored entry", "key", key, "error", err)
		return nil
	}
	logger.Debug("Using stored solution", "key", key, "id", doc.ID)
	return doc
}

func saveSolution(ctx context.Context, logger *log.Logger, st store.Store, key string, doc *report.Document, ttl time.Duration) {
	data, err := doc.Marshal()
	if err == nil {
		err = st.Set(ctx, key, data, ttl)
	}
	if err != nil {
		logger.Warn("Store write failed", "error", err)
	}
}

func (c *CLI) writeSolveOutput(cmd *cobra.Command, doc *report.Document, cached bool, opts *solveOpts) error {
	out := cmd.OutOrStdout()
	rows, err := doc.RowSet()
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		if err := report.WriteJSON(doc, out); err != nil {
			return err
		}
	case opts.dot:
		fmt.Fprint(out, nodelink.ToDOT(rows, nodelink.Options{Title: doc.Spec.String(), N: doc.Spec.N}))
	default:
		if err := report.Render(out, doc); err != nil {
			return err
		}
		printStats(doc.Stats, cached)
		if doc.Key != "" {
			printKeyValue("store key", doc.Key)
		}
	}

	var written []string
	if opts.output != "" {
		if err := exportDocument(doc, opts.output); err != nil {
			return err
		}
		written = append(written, opts.output)
	}
	if opts.svg != "" {
		ropts := nodelink.Options{Layout: opts.layout, Title: doc.Spec.String(), N: doc.Spec.N}
		if err := writeGraph(cmd.Context(), rows, ropts, formatSVG, opts.svg); err != nil {
			return err
		}
		written = append(written, opts.svg)
	}

	if !opts.json && !opts.dot {
		for _, path := range written {
			printFile(path)
		}
	}
	return nil
}

// exportDocument writes a JSON document for .json paths and a text report
// otherwise.
func exportDocument(doc *report.Document, path string) error {
	if err := srgerrors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return report.ExportJSON(doc, path)
	}
	return report.ExportText(doc, path)
}
