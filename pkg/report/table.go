package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleOne    = styleCell.Foreground(colorCyan)
	styleZero   = styleCell.Foreground(colorDim)
	styleBad    = styleCell.Foreground(colorRed).Bold(true)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// Label returns the vertex label used in table headers.
func Label(i int) string { return "v" + strconv.Itoa(i) }

// AdjacencyTable renders rows as a table labeled by vertex.
func AdjacencyTable(rows [][]int) string {
	n := 0
	if len(rows) > 0 {
		n = len(rows[0])
	}
	return matrixTable(rows, n, func(i, j int) lipgloss.Style {
		if rows[i][j] == 1 {
			return styleOne
		}
		return styleZero
	})
}

// GramTable renders the Gram matrix. Off-diagonal entries that break the
// lambda/mu condition for spec are highlighted.
func GramTable(spec srg.Spec, rows, gram [][]int) string {
	return matrixTable(gram, len(gram), func(i, j int) lipgloss.Style {
		switch {
		case i >= len(rows) || j >= len(rows[i]):
			return styleCell
		case i == j:
			return styleZero
		case rows[i][j] == 1 && gram[i][j] != spec.Lambda,
			rows[i][j] == 0 && gram[i][j] != spec.Mu:
			return styleBad
		default:
			return styleCell
		}
	})
}

func matrixTable(m [][]int, cols int, style func(i, j int) lipgloss.Style) string {
	headers := make([]string, cols+1)
	for j := range cols {
		headers[j+1] = Label(j)
	}
	data := make([][]string, len(m))
	for i, r := range m {
		cells := make([]string, len(r)+1)
		cells[0] = Label(i)
		for j, v := range r {
			cells[j+1] = strconv.Itoa(v)
		}
		data[i] = cells
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return styleHeader
			}
			if row >= len(m) || col-1 >= len(m[row]) {
				return styleCell
			}
			return style(row, col-1)
		})
	return t.Render()
}

// Render writes the terminal report: summary, adjacency table, Gram table
// and any violations.
func Render(w io.Writer, d *Document) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("%s %s", d.Spec, d.Status)))
	b.WriteString("\n\n")
	writeKV(&b, "rows", fmt.Sprintf("%d/%d", len(d.Rows), d.Spec.N))
	writeKV(&b, "run time", (time.Duration(d.ElapsedMS) * time.Millisecond).String())
	writeKV(&b, "seed", strconv.FormatUint(d.Seed, 10))
	writeKV(&b, "iterations", strconv.FormatInt(d.Stats.Iterations, 10))
	writeKV(&b, "accepted", strconv.FormatInt(d.Stats.Accepted, 10))
	writeKV(&b, "rejected", strconv.FormatInt(d.Stats.Rejected+d.Stats.Infeasible, 10))
	writeKV(&b, "backtracks", strconv.FormatInt(d.Stats.Backtracks, 10))
	writeKV(&b, "deepest", strconv.Itoa(d.Stats.MaxRows))

	if len(d.Rows) > 0 {
		b.WriteString("\nAdjacency\n")
		b.WriteString(AdjacencyTable(d.Rows))
		b.WriteString("\n\nGram\n")
		b.WriteString(GramTable(d.Spec, d.Rows, d.Gram))
		b.WriteString("\n")
	}

	if rows, err := d.RowSet(); err == nil {
		b.WriteString("\n")
		b.WriteString(RenderViolations(d.Spec, rows))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderViolations lists the failing pairs, or a success line when there
// are none.
func RenderViolations(spec srg.Spec, rows srg.RowSet) string {
	vs := srg.Violations(spec, rows, srg.Evaluate(rows))
	if len(vs) == 0 {
		return styleOK.Render("✓ all pairs satisfy "+spec.String()) + "\n"
	}
	var b strings.Builder
	for _, v := range vs {
		kind, param := "non-adjacent", "mu"
		if v.Adjacent {
			kind, param = "adjacent", "lambda"
		}
		b.WriteString(styleBad.UnsetPadding().Render("✗"))
		fmt.Fprintf(&b, " %s %s-%s share %d neighbors, %s=%d\n",
			kind, Label(v.I), Label(v.J), v.Got, param, v.Want)
	}
	return b.String()
}

func writeKV(b *strings.Builder, key, value string) {
	b.WriteString(styleKey.Render(key))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
