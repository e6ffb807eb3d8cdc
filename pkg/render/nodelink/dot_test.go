package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

var cycle5 = srg.RowSet{
	{0, 1, 0, 0, 1},
	{1, 0, 1, 0, 0},
	{0, 1, 0, 1, 0},
	{0, 0, 1, 0, 1},
	{1, 0, 0, 1, 0},
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(cycle5, Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, "layout=circo") {
		t.Error("ToDOT() should default to circo")
	}
	for _, edge := range []string{"v0 -- v1", "v1 -- v2", "v2 -- v3", "v3 -- v4", "v0 -- v4"} {
		if !strings.Contains(dot, edge) {
			t.Errorf("ToDOT() output missing edge %s", edge)
		}
	}
	if got := strings.Count(dot, " -- "); got != 5 {
		t.Errorf("edge count = %d, want 5", got)
	}
	if strings.Contains(dot, "dashed") {
		t.Error("complete row set should have no pending vertices")
	}
}

func TestToDOT_Partial(t *testing.T) {
	dot := ToDOT(cycle5[:2], Options{Title: "srg(5,2,0,1)", Layout: LayoutNeato})

	if !strings.Contains(dot, `label="srg(5,2,0,1)"`) {
		t.Error("ToDOT() missing title")
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("ToDOT() ignored layout")
	}
	// rows 0 and 1 fix edges v0-v1, v0-v4 and v1-v2
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("edge count = %d, want 3", got)
	}
	if got := strings.Count(dot, "dashed"); got != 3 {
		t.Errorf("pending vertices = %d, want 3", got)
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(nil, Options{N: 3})
	if strings.Contains(dot, " -- ") {
		t.Error("empty row set should have no edges")
	}
	if !strings.Contains(dot, "v2") {
		t.Error("vertices should still be drawn")
	}
}

func TestValidLayout(t *testing.T) {
	for _, l := range []string{"circo", "neato", "fdp", "dot"} {
		if !ValidLayout(l) {
			t.Errorf("ValidLayout(%q) = false", l)
		}
	}
	if ValidLayout("sfdp2") {
		t.Error("ValidLayout should reject unknown engines")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(cycle5, Options{}), Options{})
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
