package srg

// Violation describes one pair of rows whose shared-neighbor count is wrong.
type Violation struct {
	I        int  `json:"i"` // row indices, I < J
	J        int  `json:"j"`
	Adjacent bool `json:"adjacent"` // rows[I][J] == 1
	Want     int  `json:"want"`     // lambda for adjacent pairs, mu otherwise
	Got      int  `json:"got"`      // gram[I][J]
}

// IsValid reports whether every pair of distinct rows i, j satisfies the SRG
// condition: gram[i][j] == Lambda when rows[i][j] == 1, and gram[i][j] == Mu
// when rows[i][j] == 0. Diagonal entries are not checked.
//
// gram must be the Gram matrix of rows (see [Evaluate]). A row set with a
// row shorter than the number of rows is never valid.
func IsValid(spec Spec, rows RowSet, gram GramMatrix) bool {
	for i := range rows {
		if len(rows[i]) < len(rows) {
			return false
		}
		for j := range rows {
			if i != j && !pairHolds(spec, rows, gram, i, j) {
				return false
			}
		}
	}
	return true
}

// Violations returns every pair (i < j) that fails the SRG condition, in row
// order. Pairs that fall outside a short row are skipped; [ValidateRows]
// reports the shape error for them.
func Violations(spec Spec, rows RowSet, gram GramMatrix) []Violation {
	var out []Violation
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			switch {
			case j >= len(rows[i]) || i >= len(rows[j]):
				continue
			case !pairHolds(spec, rows, gram, i, j):
				out = append(out, violation(spec, rows, gram, i, j))
			case !pairHolds(spec, rows, gram, j, i):
				// asymmetric rows: the failure is only visible from row j
				v := violation(spec, rows, gram, j, i)
				v.I, v.J = i, j
				out = append(out, v)
			}
		}
	}
	return out
}

func violation(spec Spec, rows RowSet, gram GramMatrix, i, j int) Violation {
	v := Violation{I: i, J: j, Adjacent: rows[i][j] == 1, Got: gram[i][j], Want: spec.Mu}
	if v.Adjacent {
		v.Want = spec.Lambda
	}
	return v
}

// lastRowValid checks only the pairs involving the last row. The driver uses
// it because earlier pairs were checked when their rows were accepted.
func lastRowValid(spec Spec, rows RowSet, gram GramMatrix) bool {
	last := len(rows) - 1
	for i := 0; i < last; i++ {
		if !pairHolds(spec, rows, gram, i, last) || !pairHolds(spec, rows, gram, last, i) {
			return false
		}
	}
	return true
}

func pairHolds(spec Spec, rows RowSet, gram GramMatrix, i, j int) bool {
	if rows[i][j] == 1 {
		return lambdaHolds(spec, gram, i, j)
	}
	return muHolds(spec, gram, i, j)
}

func lambdaHolds(spec Spec, gram GramMatrix, i, j int) bool { return gram[i][j] == spec.Lambda }

func muHolds(spec Spec, gram GramMatrix, i, j int) bool { return gram[i][j] == spec.Mu }
