package driving

import (
	"context"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
)

// AgencySyncer reconciles one agency's remote notice stream against the
// abstract index.
type AgencySyncer interface {
	// SyncAgency archives every unseen notice for agency. The returned
	// summary is non-nil even on error. A non-nil error means the agency
	// failed structurally (unknown agency, listing failure); per-notice
	// failures are counted in the summary instead.
	SyncAgency(ctx context.Context, agency string, mode domain.SyncMode) (*domain.AgencySummary, error)
}

// RunController drives a whole archive run across all configured agencies.
type RunController interface {
	// Run syncs every configured agency in order and persists the index.
	// The returned summary is non-nil even on error. A non-nil error
	// signals a structural failure and maps to a nonzero exit status.
	Run(ctx context.Context, mode domain.SyncMode) (*domain.RunSummary, error)
}
