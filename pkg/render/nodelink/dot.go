package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

// Layouts accepted in [Options].
const (
	LayoutCirco = "circo"
	LayoutNeato = "neato"
	LayoutFdp   = "fdp"
	LayoutDot   = "dot"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Layout is the Graphviz engine. Defaults to circo.
	Layout string

	// Title is drawn above the graph when set.
	Title string

	// N is the vertex count. When larger than the number of rows, the
	// vertices without a row are drawn dashed. Defaults to the row length.
	N int
}

func (o Options) layout() string {
	if o.Layout == "" {
		return LayoutCirco
	}
	return o.Layout
}

// ValidLayout reports whether name is a supported layout engine.
func ValidLayout(name string) bool {
	switch name {
	case LayoutCirco, LayoutNeato, LayoutFdp, LayoutDot:
		return true
	}
	return false
}

// ToDOT converts rows to an undirected Graphviz graph. Vertex i is labeled
// "v<i>"; an edge i -- j (i < j) is drawn when row i or row j marks it.
func ToDOT(rows srg.RowSet, opts Options) string {
	n := opts.N
	if n == 0 && len(rows) > 0 {
		n = len(rows[0])
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", opts.layout())
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.45, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#4a4a4a\"];\n")
	buf.WriteString("\n")

	for i := range n {
		attrs := ""
		if i >= len(rows) {
			attrs = " [style=\"filled,dashed\", fillcolor=lightgrey]"
		}
		fmt.Fprintf(&buf, "  %s%s;\n", vertexID(i), attrs)
	}

	buf.WriteString("\n")
	for i := range n {
		for j := i + 1; j < n; j++ {
			if adjacent(rows, i, j) {
				fmt.Fprintf(&buf, "  %s -- %s;\n", vertexID(i), vertexID(j))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexID(i int) string { return "v" + strconv.Itoa(i) }

func adjacent(rows srg.RowSet, i, j int) bool {
	if i < len(rows) && j < len(rows[i]) && rows[i][j] == 1 {
		return true
	}
	return j < len(rows) && i < len(rows[j]) && rows[j][i] == 1
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	out, err := renderFormat(ctx, dot, opts, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	return renderFormat(ctx, dot, opts, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, opts Options, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(opts.layout()))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales from its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
