// Package render draws found graphs.
//
// The [nodelink] subpackage turns a row set into Graphviz DOT and renders it
// in-process to SVG or PNG. [ToPDF] converts any SVG to PDF with the
// external rsvg-convert tool:
//
//	dot := nodelink.ToDOT(rows, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//	pdf, err := render.ToPDF(ctx, svg)
package render
