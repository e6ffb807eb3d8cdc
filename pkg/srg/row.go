package srg

import (
	"fmt"
	"strings"
)

// Row is one row of an adjacency matrix: n entries, each 0 or 1.
type Row []uint8

// Degree returns the number of ones in the row.
func (r Row) Degree() int {
	d := 0
	for _, v := range r {
		d += int(v)
	}
	return d
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	return append(Row(nil), r...)
}

// String formats the row as space-separated digits, e.g. "0 1 0 0 1".
func (r Row) String() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('0' + v)
	}
	return b.String()
}

// RowSet is an ordered list of rows; the position of a row is its vertex index.
type RowSet []Row

// Clone returns a deep copy of the row set.
func (rs RowSet) Clone() RowSet {
	if rs == nil {
		return nil
	}
	out := make(RowSet, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}

// Ints converts the row set to a plain integer matrix, convenient for JSON and tables.
func (rs RowSet) Ints() [][]int {
	out := make([][]int, len(rs))
	for i, r := range rs {
		out[i] = make([]int, len(r))
		for j, v := range r {
			out[i][j] = int(v)
		}
	}
	return out
}

// RowSetFromInts builds a row set from an integer matrix. Entries other than
// 0 and 1 are rejected.
func RowSetFromInts(m [][]int) (RowSet, error) {
	rs := make(RowSet, len(m))
	for i, src := range m {
		row := make(Row, len(src))
		for j, v := range src {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("row %d col %d: value %d is not 0 or 1", i, j, v)
			}
			row[j] = uint8(v)
		}
		rs[i] = row
	}
	return rs, nil
}

// ValidateRows checks that rows are a valid prefix of an SRG adjacency matrix
// for spec: at most n rows, each of length n with exactly k ones and a zero
// diagonal, symmetric among themselves, and passing [IsValid].
// Any failure wraps [ErrSpecViolation].
func ValidateRows(spec Spec, rows RowSet) error {
	if len(rows) > spec.N {
		return fmt.Errorf("%w: %d rows exceed n=%d", ErrSpecViolation, len(rows), spec.N)
	}
	for i, r := range rows {
		if len(r) != spec.N {
			return fmt.Errorf("%w: row %d has length %d, want %d", ErrSpecViolation, i, len(r), spec.N)
		}
		for j, v := range r {
			if v > 1 {
				return fmt.Errorf("%w: row %d col %d: value %d is not 0 or 1", ErrSpecViolation, i, j, v)
			}
		}
		if d := r.Degree(); d != spec.K {
			return fmt.Errorf("%w: row %d has degree %d, want %d", ErrSpecViolation, i, d, spec.K)
		}
		if r[i] != 0 {
			return fmt.Errorf("%w: row %d has a self-loop", ErrSpecViolation, i)
		}
	}
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if rows[i][j] != rows[j][i] {
				return fmt.Errorf("%w: rows %d and %d are not symmetric", ErrSpecViolation, i, j)
			}
		}
	}
	if !IsValid(spec, rows, Evaluate(rows)) {
		return fmt.Errorf("%w: rows violate lambda=%d/mu=%d", ErrSpecViolation, spec.Lambda, spec.Mu)
	}
	return nil
}
