package srg

import (
	"errors"
	"fmt"
)

// Sentinel errors for search operations.
var (
	// ErrSpecViolation is returned when graph parameters or seed rows cannot
	// describe a strongly regular graph. It is fatal and never retried.
	ErrSpecViolation = errors.New("spec violation")

	// ErrRowInfeasible is returned when the values forced by earlier rows
	// leave no way to complete a row with exactly k ones.
	ErrRowInfeasible = errors.New("row infeasible")

	// ErrBudgetExceeded is returned when the caller's iteration or time budget
	// runs out before a complete row set is found.
	ErrBudgetExceeded = errors.New("no solution found within budget")
)

// Spec holds the parameters of a strongly regular graph SRG(n, k, λ, μ).
type Spec struct {
	N      int `json:"n" toml:"n"`           // vertex count
	K      int `json:"k" toml:"k"`           // degree
	Lambda int `json:"lambda" toml:"lambda"` // common neighbors of adjacent vertices
	Mu     int `json:"mu" toml:"mu"`         // common neighbors of non-adjacent vertices
}

// String returns the conventional srg(n,k,λ,μ) notation.
func (s Spec) String() string {
	return fmt.Sprintf("srg(%d,%d,%d,%d)", s.N, s.K, s.Lambda, s.Mu)
}

// Validate checks that N ≥ 1 and that K, Lambda and Mu all lie in [0, N-1].
func (s Spec) Validate() error {
	if s.N < 1 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrSpecViolation, s.N)
	}
	for _, p := range []struct {
		name string
		v    int
	}{{"k", s.K}, {"lambda", s.Lambda}, {"mu", s.Mu}} {
		if p.v < 0 || p.v > s.N-1 {
			return fmt.Errorf("%w: %s=%d outside [0, %d]", ErrSpecViolation, p.name, p.v, s.N-1)
		}
	}
	return nil
}
