package srg

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/srgsearch/pkg/observability"
)

const (
	// DefaultFailureThreshold is the number of consecutive rejected rows that
	// triggers a backtrack.
	DefaultFailureThreshold = 200_000

	// DefaultProgressEvery is the number of iterations between progress reports.
	DefaultProgressEvery = 250_000
)

// State is the phase of a search.
type State int

const (
	// Growing means the row set has fewer than n rows.
	Growing State = iota
	// Complete means a full n-row adjacency matrix was found.
	Complete
	// Aborted means the caller cancelled the search.
	Aborted
	// Exhausted means the iteration or time budget ran out.
	Exhausted
)

var stateNames = [...]string{"growing", "complete", "aborted", "exhausted"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options configures a search. The zero value is not usable; start from
// [DefaultOptions].
type Options struct {
	// FailureThreshold is the length of a rejection streak that triggers
	// the backtrack policy.
	FailureThreshold int

	// Backtrack decides how many rows survive a stall.
	Backtrack BacktrackPolicy

	// PinSeeds keeps the caller's seed rows through every backtrack.
	PinSeeds bool

	// MaxIterations stops the search after this many candidate rows.
	// Zero means no limit.
	MaxIterations int64

	// MaxDuration stops the search after this much wall-clock time.
	// Zero means no limit.
	MaxDuration time.Duration

	// Seed seeds the PCG random source when Rand is nil. Zero picks a
	// random seed, reported in Result.Seed.
	Seed uint64

	// Rand overrides the random source.
	Rand *rand.Rand

	// Progress, if set, is called every ProgressEvery iterations and once
	// when the search ends. It runs on the search goroutine.
	Progress      func(Progress)
	ProgressEvery int64
}

// DefaultOptions returns the search defaults.
func DefaultOptions() Options {
	return Options{
		FailureThreshold: DefaultFailureThreshold,
		Backtrack:        DefaultBacktrackPolicy(),
		PinSeeds:         true,
		ProgressEvery:    DefaultProgressEvery,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.FailureThreshold <= 0 {
		return fmt.Errorf("failure threshold must be positive, got %d", o.FailureThreshold)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations must not be negative, got %d", o.MaxIterations)
	}
	if o.MaxDuration < 0 {
		return fmt.Errorf("max duration must not be negative, got %s", o.MaxDuration)
	}
	return o.Backtrack.Validate()
}

// Stats counts what happened during a search.
type Stats struct {
	Iterations int64 `json:"iterations"`
	Accepted   int64 `json:"accepted"`
	Rejected   int64 `json:"rejected"`
	Infeasible int64 `json:"infeasible"`
	Backtracks int64 `json:"backtracks"`
	MaxRows    int   `json:"max_rows"`
}

// Progress is a snapshot passed to Options.Progress.
type Progress struct {
	Rows    int
	N       int
	Stats   Stats
	Elapsed time.Duration
}

// Result is the outcome of a search.
type Result struct {
	Spec    Spec
	State   State
	Rows    RowSet
	Gram    GramMatrix
	Seed    uint64
	Elapsed time.Duration
	Stats   Stats
}

// searchState is owned by a single Solve call.
type searchState struct {
	rows     RowSet
	gram     gramCache
	failures int
	start    time.Time
	stats    Stats
}

// Solver runs searches for one Spec.
type Solver struct {
	spec Spec
	opts Options
}

// NewSolver validates spec and opts and returns a Solver.
func NewSolver(spec Spec, opts Options) (*Solver, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	return &Solver{spec: spec, opts: opts}, nil
}

// Solve is a convenience wrapper around [NewSolver] and [Solver.Solve].
func Solve(ctx context.Context, spec Spec, seeds RowSet, opts Options) (*Result, error) {
	s, err := NewSolver(spec, opts)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, seeds)
}

// Spec returns the graph parameters the solver searches for.
func (s *Solver) Spec() Spec { return s.spec }

// Solve grows seeds into a complete row set.
//
// It returns a Complete result and nil error on success. When ctx is
// cancelled it returns an Aborted result holding the last consistent row set
// together with ctx.Err(); when the budget runs out it returns an Exhausted
// result with [ErrBudgetExceeded]. Invalid seeds yield [ErrSpecViolation] and
// no result.
func (s *Solver) Solve(ctx context.Context, seeds RowSet) (*Result, error) {
	if err := ValidateRows(s.spec, seeds); err != nil {
		return nil, fmt.Errorf("seed rows: %w", err)
	}

	seed, rng := s.random()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, s.spec.String(), len(seeds))

	st := &searchState{rows: seeds.Clone(), start: time.Now()}
	st.gram.reset(st.rows)
	st.stats.MaxRows = len(st.rows)

	res, err := s.run(ctx, st, rng)
	state := "failed"
	if res != nil {
		res.Seed = seed
		state = res.State.String()
	}
	hooks.OnSearchComplete(ctx, s.spec.String(), state, st.stats.Iterations, time.Since(st.start), err)
	return res, err
}

func (s *Solver) run(ctx context.Context, st *searchState, rng *rand.Rand) (*Result, error) {
	n := s.spec.N
	pinned := 0
	if s.opts.PinSeeds {
		pinned = len(st.rows)
	}
	var deadline time.Time
	if s.opts.MaxDuration > 0 {
		deadline = st.start.Add(s.opts.MaxDuration)
	}
	hooks := observability.Search()

	for len(st.rows) < n {
		select {
		case <-ctx.Done():
			return s.finish(st, Aborted), ctx.Err()
		default:
		}
		if s.opts.MaxIterations > 0 && st.stats.Iterations >= s.opts.MaxIterations {
			return s.finish(st, Exhausted), ErrBudgetExceeded
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return s.finish(st, Exhausted), ErrBudgetExceeded
		}

		st.stats.Iterations++
		if s.opts.Progress != nil && st.stats.Iterations%s.opts.ProgressEvery == 0 {
			s.opts.Progress(st.progress(n))
		}

		row, err := NextRow(s.spec, st.rows, rng)
		switch {
		case errors.Is(err, ErrRowInfeasible):
			st.stats.Infeasible++
			st.failures++
		case err != nil:
			return nil, err
		case st.try(s.spec, row):
			hooks.OnRowAccepted(ctx, len(st.rows))
		}

		if st.failures >= s.opts.FailureThreshold {
			from := len(st.rows)
			if err := s.backtrack(st, pinned, rng); err != nil {
				return nil, err
			}
			hooks.OnBacktrack(ctx, from, len(st.rows))
		}
	}
	return s.finish(st, Complete), nil
}

// try appends row and keeps it when every new pair satisfies lambda/mu.
// A rejected row is removed again, leaving the row set as it was.
func (st *searchState) try(spec Spec, row Row) bool {
	st.rows = append(st.rows, row)
	st.gram.push(st.rows)
	if lastRowValid(spec, st.rows, st.gram.m) {
		st.failures = 0
		st.stats.Accepted++
		st.stats.MaxRows = max(st.stats.MaxRows, len(st.rows))
		return true
	}
	last := len(st.rows) - 1
	st.rows = st.rows[:last]
	st.gram.truncate(last)
	st.failures++
	st.stats.Rejected++
	return false
}

func (s *Solver) backtrack(st *searchState, pinned int, rng *rand.Rand) error {
	kept := s.opts.Backtrack.Backtrack(st.rows, len(st.rows), s.spec.N)
	keep := max(len(kept), pinned)
	st.rows = st.rows[:keep]
	st.gram.truncate(keep)
	st.failures = 0
	st.stats.Backtracks++

	if s.opts.Backtrack.Reseed(keep) {
		row, err := RandomRow(s.spec, rng)
		if err != nil {
			return err
		}
		st.rows = append(st.rows, row)
		st.gram.push(st.rows)
	}
	return nil
}

func (s *Solver) finish(st *searchState, state State) *Result {
	res := &Result{
		Spec:    s.spec,
		State:   state,
		Rows:    st.rows.Clone(),
		Gram:    Evaluate(st.rows),
		Elapsed: time.Since(st.start),
		Stats:   st.stats,
	}
	if s.opts.Progress != nil {
		s.opts.Progress(st.progress(s.spec.N))
	}
	return res
}

func (st *searchState) progress(n int) Progress {
	return Progress{Rows: len(st.rows), N: n, Stats: st.stats, Elapsed: time.Since(st.start)}
}

func (s *Solver) random() (uint64, *rand.Rand) {
	if s.opts.Rand != nil {
		return s.opts.Seed, s.opts.Rand
	}
	seed := s.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return seed, NewRand(seed)
}
