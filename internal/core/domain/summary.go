package domain

import "time"

// AgencySummary reports the outcome of syncing one agency.
type AgencySummary struct {
	// Agency is the configured agency identifier.
	Agency string

	// Processed counts notices whose documents were durably archived
	// (or recovered) and recorded in the index during this run.
	Processed int

	// Skipped counts notices already present in the index.
	Skipped int

	// Failed counts notices whose document fetch or write failed.
	Failed int

	// Elapsed is the wall-clock time spent on this agency.
	Elapsed time.Duration

	// Err is set when the agency failed structurally (unknown agency,
	// listing failure). Per-notice failures never set it.
	Err error
}

// RunSummary aggregates the outcome of a whole run.
type RunSummary struct {
	// RunID uniquely identifies this invocation.
	RunID string

	// Mode is the traversal mode the run was invoked with.
	Mode SyncMode

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the total wall-clock duration.
	Elapsed time.Duration

	// Agencies holds one summary per configured agency, in configured order.
	Agencies []AgencySummary
}

// TotalProcessed returns the number of notices archived across all agencies.
func (r *RunSummary) TotalProcessed() int {
	total := 0
	for _, a := range r.Agencies {
		total += a.Processed
	}
	return total
}

// TotalSkipped returns the number of already-indexed notices encountered.
func (r *RunSummary) TotalSkipped() int {
	total := 0
	for _, a := range r.Agencies {
		total += a.Skipped
	}
	return total
}

// TotalFailed returns the number of per-notice failures across all agencies.
func (r *RunSummary) TotalFailed() int {
	total := 0
	for _, a := range r.Agencies {
		total += a.Failed
	}
	return total
}

// AgenciesFailed returns the number of agencies that failed structurally.
func (r *RunSummary) AgenciesFailed() int {
	total := 0
	for _, a := range r.Agencies {
		if a.Err != nil {
			total++
		}
	}
	return total
}
