package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driving"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.RunController = (*Runner)(nil)

// Runner is the top-level loop over configured agencies. It owns the
// index lifecycle for the run: one load before construction, optional
// checkpoints after each agency, and a final persist at run end.
type Runner struct {
	syncer   driving.AgencySyncer
	index    *AbstractIndex
	agencies []string

	// checkpointEachAgency persists the index after every agency to
	// bound data loss on crash. A checkpoint failure is logged and the
	// run continues; the final persist failing fails the run.
	checkpointEachAgency bool
}

// NewRunner creates a run controller over an already-loaded index.
func NewRunner(syncer driving.AgencySyncer, index *AbstractIndex, agencies []string, checkpointEachAgency bool) *Runner {
	return &Runner{
		syncer:               syncer,
		index:                index,
		agencies:             agencies,
		checkpointEachAgency: checkpointEachAgency,
	}
}

// Run syncs every configured agency in configured order. An agency that
// fails structurally is reported and the run continues with the next
// one. The index is persisted at run end regardless of agency failures.
//
// The error is non-nil when any agency failed structurally or the final
// persist failed; per-notice failures alone leave it nil.
func (r *Runner) Run(ctx context.Context, mode domain.SyncMode) (*domain.RunSummary, error) {
	start := time.Now()
	run := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: start,
	}

	logger.Info("Starting %s run %s over %d agencies", mode, run.RunID, len(r.agencies))

	var errs []error
	for _, agency := range r.agencies {
		summary, err := r.syncer.SyncAgency(ctx, agency, mode)
		if err != nil {
			summary.Err = err
			errs = append(errs, fmt.Errorf("agency %s: %w", agency, err))
			logger.Warn("Agency %s failed: %v", agency, err)
		}
		run.Agencies = append(run.Agencies, *summary)

		if r.checkpointEachAgency {
			if err := r.index.Persist(ctx); err != nil {
				logger.Warn("Checkpoint persist after %s failed: %v", agency, err)
			}
		}

		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
	}

	if err := r.index.Persist(ctx); err != nil {
		errs = append(errs, err)
	}

	run.Elapsed = time.Since(start)
	logger.Info("Run %s finished in %s: %d archived, %d skipped, %d failed, %d agencies failed",
		run.RunID, run.Elapsed.Round(time.Millisecond),
		run.TotalProcessed(), run.TotalSkipped(), run.TotalFailed(), run.AgenciesFailed())

	if len(errs) > 0 {
		return run, errors.Join(errs...)
	}
	return run, nil
}
