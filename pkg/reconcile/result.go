package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Result describes the outcome of a reconciliation run. A Result is
// produced even when the run fails partway; State and Errors say how far
// it got.
type Result struct {
	// Plan is the set of merges the run computed, whether or not they
	// were applied.
	Plan *Plan

	// State is the stage the run finished in: StateDone on success,
	// StateFailed otherwise.
	State State

	// Metadata about the run.
	Metadata ResultMetadata

	// Errors encountered during persistence. Per-document failures are
	// collected here without aborting the run.
	Errors []error

	// Warnings raised during the run.
	Warnings []string

	// failedStage records the stage the run was in when it failed.
	failedStage State
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// DryRun indicates the plan was computed but not applied.
	DryRun bool

	Stats ResultStatistics
}

// ResultStatistics counts what the run saw and did.
type ResultStatistics struct {
	// Scanned is the number of documents read from the store,
	// including malformed ones.
	Scanned int

	// Malformed counts documents excluded from grouping: unparseable
	// documents plus records whose scientificName is not a string.
	Malformed int

	// Groups is the number of multi-member groups found.
	Groups int

	// Merged counts loser records folded into winners.
	Merged int

	// Deleted counts loser documents removed from the store.
	Deleted int

	// Errored counts documents whose persistence failed.
	Errored int
}

// IsSuccess reports whether the run completed without errors.
func (r *Result) IsSuccess() bool {
	return r.State == StateDone && len(r.Errors) == 0
}

// Summary returns a human-readable account of the run, one line per
// merge plus a closing tally.
func (r *Result) Summary() string {
	var b strings.Builder

	if r.Plan != nil {
		for _, m := range r.Plan.Merges {
			fmt.Fprintf(&b, "merge %s: %s <- %s\n",
				m.Key, m.Winner, strings.Join(m.Losers, ", "))
		}
	}

	stats := r.Metadata.Stats
	verb := "merged"
	if r.Metadata.DryRun {
		verb = "would merge"
	}
	fmt.Fprintf(&b, "scanned %d records (%d malformed), %d groups, %s %d, deleted %d",
		stats.Scanned, stats.Malformed, stats.Groups, verb, stats.Merged, stats.Deleted)

	if stats.Errored > 0 {
		fmt.Fprintf(&b, ", %d errored", stats.Errored)
	}
	if r.State == StateFailed {
		fmt.Fprintf(&b, " (failed in %s)", r.stageName())
	}
	return b.String()
}

// stageName names the stage recorded at failure time for the summary.
func (r *Result) stageName() string {
	return r.failedStage.String()
}

// newResult creates a result with the clock started.
func newResult(dryRun bool) *Result {
	return &Result{
		Plan:  &Plan{},
		State: StateLoading,
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			DryRun:    dryRun,
		},
	}
}

// finish stamps the end time and final state.
func (r *Result) finish(state State) *Result {
	if state == StateFailed {
		r.failedStage = r.State
	}
	r.State = state
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	return r
}
