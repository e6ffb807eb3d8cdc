package srg

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns a PCG-backed random source for seed.
// Equal seeds yield equal searches.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// KnownPrefix returns the entries of the next row that earlier rows already
// determine. For a row set of size c the result has c+1 entries: entry i is
// rows[i][c] (the matrix is symmetric) and entry c, the diagonal, is 0.
//
// Every row must be longer than c.
func KnownPrefix(rows RowSet) []uint8 {
	c := len(rows)
	prefix := make([]uint8, c+1)
	for i, r := range rows {
		prefix[i] = r[c]
	}
	return prefix
}

// GenerateRow builds a candidate row of length spec.N that starts with prefix
// and has exactly spec.K ones. The last prefix entry is the diagonal and is
// always set to 0.
//
// Values for the free positions are decided left to right: once the ones still
// required fill every remaining position they are forced, otherwise a fair coin
// decides. The decided values are then shuffled over the free positions so the
// ones land uniformly at random.
//
// It returns [ErrRowInfeasible] when the prefix already holds more than K ones
// or leaves too few free positions. With a prefix of only the diagonal that
// can only be caused by spec, and [ErrSpecViolation] is returned instead.
func GenerateRow(spec Spec, prefix []uint8, rng *rand.Rand) (Row, error) {
	if len(prefix) == 0 || len(prefix) > spec.N {
		return nil, fmt.Errorf("%w: prefix length %d for n=%d", ErrSpecViolation, len(prefix), spec.N)
	}

	row := make(Row, spec.N)
	copy(row, prefix)
	row[len(prefix)-1] = 0

	placed := row[:len(prefix)].Degree()
	free := row[len(prefix):]
	need := spec.K - placed
	if need < 0 || need > len(free) {
		if len(prefix) == 1 {
			return nil, fmt.Errorf("%w: degree %d needs more than %d free positions", ErrSpecViolation, spec.K, len(free))
		}
		return nil, fmt.Errorf("%w: need %d ones in %d free positions", ErrRowInfeasible, need, len(free))
	}

	left := need
	for i := range free {
		remaining := len(free) - i
		switch {
		case left == 0:
			free[i] = 0
		case left >= remaining:
			free[i] = 1
			left--
		case rng.IntN(2) == 1:
			free[i] = 1
			left--
		default:
			free[i] = 0
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	return row, nil
}

// NextRow generates a candidate for row len(rows), honoring the entries the
// existing rows force on it.
func NextRow(spec Spec, rows RowSet, rng *rand.Rand) (Row, error) {
	if len(rows) >= spec.N {
		return nil, fmt.Errorf("%w: row set already has %d rows", ErrSpecViolation, len(rows))
	}
	return GenerateRow(spec, KnownPrefix(rows), rng)
}

// RandomRow generates an unconstrained first row: position 0 is zero and the
// other n-1 positions hold k ones.
func RandomRow(spec Spec, rng *rand.Rand) (Row, error) {
	return GenerateRow(spec, []uint8{0}, rng)
}

// SamplePlacement generates samples candidates for the row following rows and
// counts how often each position received a one. Forced positions show up as
// 0 or samples; free positions should be close to uniform.
func SamplePlacement(spec Spec, rows RowSet, samples int, rng *rand.Rand) ([]int, error) {
	counts := make([]int, spec.N)
	for range samples {
		row, err := NextRow(spec, rows, rng)
		if err != nil {
			return nil, err
		}
		for i, v := range row {
			counts[i] += int(v)
		}
	}
	return counts, nil
}
