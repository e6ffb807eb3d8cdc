package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/render"
	"github.com/matzehuels/srgsearch/pkg/render/nodelink"
	"github.com/matzehuels/srgsearch/pkg/report"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // dot, svg, png, pdf
	layout  string   // Graphviz layout engine
	title   bool     // draw the parameters above the graph
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{layout: nodelink.LayoutCirco, title: true}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a saved graph as DOT, SVG, PNG or PDF",
		Long: `Draw the graph held in a result document, a JSON matrix or a text
report. Vertices are labeled v0..v(n-1); for partial results the vertices
without a row are drawn dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if !nodelink.ValidLayout(opts.layout) {
				return srgerrors.New(srgerrors.ErrCodeInvalidInput, "unknown layout %q (must be circo, neato, fdp or dot)", opts.layout)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.layout, "layout", opts.layout, "Graphviz layout: circo, neato, fdp, dot")
	cmd.Flags().BoolVar(&opts.title, "title", opts.title, "draw the graph parameters as a title")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true, formatPDF: true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return srgerrors.New(srgerrors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'dot', 'png' or 'pdf')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	spec, rows, err := loadRows(input)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return srgerrors.New(srgerrors.ErrCodeInvalidInput, "%s holds no rows", input)
	}
	logger.Debugf("Loaded %d rows from %s", len(rows), input)

	ropts := nodelink.Options{Layout: opts.layout}
	if spec != nil {
		ropts.N = spec.N
		if opts.title {
			ropts.Title = spec.String()
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d vertices...", len(rows[0])))
	spinner.Start()

	base := basePath(opts.output, input)
	var written []string
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeGraph(ctx, rows, ropts, format, path); err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("%s: %w", format, err)
		}
		logger.Debugf("Generated %s", path)
		written = append(written, path)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d file(s)", len(written)))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// renderGraph draws rows in the requested format.
func renderGraph(ctx context.Context, rows srg.RowSet, opts nodelink.Options, format string) ([]byte, error) {
	dot := nodelink.ToDOT(rows, opts)
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, dot, opts)
	case formatPNG:
		return nodelink.RenderPNG(ctx, dot, opts)
	case formatPDF:
		svg, err := nodelink.RenderSVG(ctx, dot, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeGraph(ctx context.Context, rows srg.RowSet, opts nodelink.Options, format, path string) error {
	if err := srgerrors.ValidatePath(path); err != nil {
		return err
	}
	data, err := renderGraph(ctx, rows, opts, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// loadRows reads rows from a result document, a JSON matrix or a text
// report. The spec is returned only for documents, which are read without
// validation so broken rows can still be inspected.
func loadRows(path string) (*srg.Spec, srg.RowSet, error) {
	if err := srgerrors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, srgerrors.Wrap(srgerrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc report.Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
		rows, err := doc.RowSet()
		if err != nil {
			return nil, nil, err
		}
		return &doc.Spec, rows, nil
	}
	rows, err := report.ReadRows(bytes.NewReader(trimmed))
	return nil, rows, err
}
