package srg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownPrefix(t *testing.T) {
	rows := RowSet{
		{0, 1, 0, 0, 1},
		{1, 0, 1, 0, 0},
	}
	assert.Equal(t, []uint8{0, 1, 0}, KnownPrefix(rows))
	assert.Equal(t, []uint8{0}, KnownPrefix(nil))
}

func TestGenerateRowDegreeAndDiagonal(t *testing.T) {
	rng := NewRand(1)
	specs := []Spec{
		{N: 5, K: 2, Lambda: 0, Mu: 1},
		{N: 10, K: 3, Lambda: 0, Mu: 1},
		{N: 16, K: 5, Lambda: 0, Mu: 2},
		{N: 20, K: 18, Lambda: 16, Mu: 18},
		{N: 4, K: 0, Lambda: 0, Mu: 0},
	}
	for _, spec := range specs {
		t.Run(spec.String(), func(t *testing.T) {
			for range 200 {
				row, err := RandomRow(spec, rng)
				require.NoError(t, err)
				require.Len(t, row, spec.N)
				assert.Equal(t, spec.K, row.Degree())
				assert.Zero(t, row[0])
			}
		})
	}
}

func TestGenerateRowKeepsPrefix(t *testing.T) {
	spec := Spec{N: 10, K: 3, Lambda: 0, Mu: 1}
	rng := NewRand(7)
	prefix := []uint8{1, 0, 1, 0}
	for range 200 {
		row, err := GenerateRow(spec, prefix, rng)
		require.NoError(t, err)
		assert.Equal(t, Row{1, 0, 1, 0}, row[:4])
		assert.Equal(t, 3, row.Degree())
	}
}

func TestGenerateRowForcesDiagonal(t *testing.T) {
	spec := Spec{N: 5, K: 2, Lambda: 0, Mu: 1}
	row, err := GenerateRow(spec, []uint8{1, 1}, NewRand(3))
	require.NoError(t, err)
	assert.Zero(t, row[1])
	assert.Equal(t, 2, row.Degree())
}

func TestGenerateRowForcedOnes(t *testing.T) {
	// Prefix holds no ones and only k free positions remain: all forced.
	spec := Spec{N: 6, K: 3, Lambda: 0, Mu: 3}
	row, err := GenerateRow(spec, []uint8{0, 0, 0}, NewRand(11))
	require.NoError(t, err)
	assert.Equal(t, Row{0, 0, 0, 1, 1, 1}, row)
}

func TestGenerateRowInfeasible(t *testing.T) {
	spec := Spec{N: 6, K: 3, Lambda: 0, Mu: 3}
	tests := []struct {
		name   string
		prefix []uint8
	}{
		{"too many ones in prefix", []uint8{1, 1, 1, 1, 0}},
		{"too few free positions", []uint8{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateRow(spec, tt.prefix, NewRand(1))
			assert.ErrorIs(t, err, ErrRowInfeasible)
		})
	}
}

func TestGenerateRowSpecViolation(t *testing.T) {
	_, err := RandomRow(Spec{N: 4, K: 4}, NewRand(1))
	assert.ErrorIs(t, err, ErrSpecViolation)

	_, err = GenerateRow(Spec{N: 4, K: 1}, nil, NewRand(1))
	assert.ErrorIs(t, err, ErrSpecViolation)

	_, err = NextRow(Spec{N: 2, K: 1}, RowSet{{0, 1}, {1, 0}}, NewRand(1))
	assert.ErrorIs(t, err, ErrSpecViolation)
}

func TestNextRowSymmetry(t *testing.T) {
	spec := Spec{N: 10, K: 3, Lambda: 0, Mu: 1}
	rows := RowSet{{0, 1, 0, 0, 1, 1, 0, 0, 0, 0}}
	rng := NewRand(5)
	for range 100 {
		row, err := NextRow(spec, rows, rng)
		require.NoError(t, err)
		assert.Equal(t, rows[0][1], row[0])
		assert.Zero(t, row[1])
	}
}

func TestSamplePlacementUniform(t *testing.T) {
	// With an empty prefix every position but the diagonal is free, so each
	// should receive a one about k/(n-1) of the time.
	spec := Spec{N: 20, K: 6, Lambda: 1, Mu: 2}
	const samples = 40_000
	counts, err := SamplePlacement(spec, nil, samples, NewRand(99))
	require.NoError(t, err)

	assert.Zero(t, counts[0])
	want := float64(samples) * float64(spec.K) / float64(spec.N-1)
	for i := 1; i < spec.N; i++ {
		assert.InEpsilon(t, want, float64(counts[i]), 0.05, "position %d", i)
	}
}
