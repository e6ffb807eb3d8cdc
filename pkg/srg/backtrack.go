package srg

import (
	"fmt"
	"strings"
)

// Strategy selects how a [BacktrackPolicy] shrinks a stalled row set.
type Strategy int

const (
	// FullReset discards every row.
	FullReset Strategy = iota
	// PartialRetention keeps a leading share of the rows once enough of the
	// matrix has been built.
	PartialRetention
)

var strategyNames = map[Strategy]string{
	FullReset:        "full-reset",
	PartialRetention: "partial-retention",
}

// String returns the strategy name used in flags and config files.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy parses "full-reset" or "partial-retention" (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	for st, name := range strategyNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid strategy: %q (must be 'full-reset' or 'partial-retention')", s)
}

// BacktrackPolicy decides how many leading rows survive a failure streak.
type BacktrackPolicy struct {
	Strategy Strategy

	// RetentionThresholdPercent is the share of n (in percent) the row set
	// must reach before PartialRetention keeps anything.
	RetentionThresholdPercent int

	// RetainPercent is the share of the rows found (in percent) that
	// PartialRetention keeps.
	RetainPercent int

	// SeedOnReset asks the driver to start over from one freshly generated
	// row after a FullReset backtrack leaves the row set empty. It has no
	// effect with PartialRetention, even when nothing is retained.
	SeedOnReset bool
}

// DefaultBacktrackPolicy keeps half the rows once 80% of the matrix is built.
func DefaultBacktrackPolicy() BacktrackPolicy {
	return BacktrackPolicy{
		Strategy:                  PartialRetention,
		RetentionThresholdPercent: 80,
		RetainPercent:             50,
	}
}

// Validate checks the percentages. RetainPercent must be below 100, otherwise
// a backtrack would never remove anything.
func (p BacktrackPolicy) Validate() error {
	if _, ok := strategyNames[p.Strategy]; !ok {
		return fmt.Errorf("unknown backtrack strategy %d", int(p.Strategy))
	}
	if p.RetentionThresholdPercent < 0 || p.RetentionThresholdPercent > 100 {
		return fmt.Errorf("retention threshold %d%% outside [0, 100]", p.RetentionThresholdPercent)
	}
	if p.RetainPercent < 0 || p.RetainPercent >= 100 {
		return fmt.Errorf("retain percent %d%% outside [0, 100)", p.RetainPercent)
	}
	return nil
}

// Keep returns how many leading rows survive for rowsFound rows out of n.
func (p BacktrackPolicy) Keep(rowsFound, n int) int {
	if p.Strategy != PartialRetention || n <= 0 {
		return 0
	}
	if rowsFound*100 < p.RetentionThresholdPercent*n {
		return 0
	}
	return rowsFound * p.RetainPercent / 100
}

// Backtrack truncates rows to the prefix chosen by the policy. It has no
// randomness; SeedOnReset is applied by the driver.
func (p BacktrackPolicy) Backtrack(rows RowSet, rowsFound, n int) RowSet {
	keep := min(p.Keep(rowsFound, n), len(rows))
	return rows[:keep]
}

// Reseed reports whether the driver should seed a fresh row after a
// backtrack that kept the given number of rows.
func (p BacktrackPolicy) Reseed(kept int) bool {
	return p.SeedOnReset && p.Strategy == FullReset && kept == 0
}
