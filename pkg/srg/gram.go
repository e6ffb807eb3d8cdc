package srg

// GramMatrix holds pairwise dot products of rows: entry (i, j) is the number
// of positions where rows i and j both have a one.
type GramMatrix [][]int

// Evaluate computes the Gram matrix of rows. The result is c×c for c rows and
// is always recomputed from scratch.
func Evaluate(rows RowSet) GramMatrix {
	c := len(rows)
	g := make(GramMatrix, c)
	for i := range g {
		g[i] = make([]int, c)
	}
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			d := dot(rows[i], rows[j])
			g[i][j] = d
			g[j][i] = d
		}
	}
	return g
}

func dot(a, b Row) int {
	s := 0
	for g := range a {
		s += int(a[g] & b[g])
	}
	return s
}

// gramCache keeps the Gram matrix of the search's current row set and extends
// it one row at a time. It always equals Evaluate of the same rows.
type gramCache struct {
	m GramMatrix
}

// push appends the row/column for row, which is rows[len(rows)-1].
func (c *gramCache) push(rows RowSet) {
	last := len(rows) - 1
	row := rows[last]
	col := make([]int, last+1)
	for i := 0; i < last; i++ {
		d := dot(rows[i], row)
		col[i] = d
		c.m[i] = append(c.m[i], d)
	}
	col[last] = row.Degree()
	c.m = append(c.m, col)
}

// truncate shrinks the cache to the first n rows.
func (c *gramCache) truncate(n int) {
	c.m = c.m[:n]
	for i := range c.m {
		c.m[i] = c.m[i][:n]
	}
}

// reset rebuilds the cache from rows.
func (c *gramCache) reset(rows RowSet) {
	c.m = Evaluate(rows)
}
