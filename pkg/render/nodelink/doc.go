// Package nodelink renders a graph's adjacency rows as a node-link diagram.
//
// # Usage
//
// Convert a row set to DOT, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(rows, nodelink.Options{Title: spec.String()})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.Options{})
//
// # Layouts
//
// Strongly regular graphs are highly symmetric, so the default layout is
// circo (vertices on a circle in index order), which makes the regularity
// visible. neato and fdp give force-directed drawings.
//
// A partial row set (an aborted search) draws the edges the rows fix; the
// vertices whose rows are still missing are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
