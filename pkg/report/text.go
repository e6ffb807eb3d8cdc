package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// WriteText writes the plain text report: a commented header, the adjacency
// rows, the Gram matrix and the run time. The rows can be read back with
// [ReadRows].
func WriteText(d *Document, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s\n", d.Spec, d.Status)
	fmt.Fprintf(bw, "# seed %d, %d iterations, %d backtracks\n", d.Seed, d.Stats.Iterations, d.Stats.Backtracks)
	for _, r := range d.Rows {
		bw.WriteString(joinInts(r))
		bw.WriteByte('\n')
	}
	bw.WriteString("\nGram matrix:\n")
	for _, r := range d.Gram {
		bw.WriteString(joinInts(r))
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "\nRun time: %s\n", time.Duration(d.ElapsedMS)*time.Millisecond)
	return bw.Flush()
}

// ExportText writes the text report to path.
func ExportText(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteText(d, f)
}

func joinInts(r []int) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
