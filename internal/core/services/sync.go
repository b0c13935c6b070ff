package services

import (
	"context"
	"fmt"
	"time"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driven"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driving"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// documentContentType is the content type of archived notice documents.
const documentContentType = "application/pdf"

// Ensure SyncEngine implements the interface.
var _ driving.AgencySyncer = (*SyncEngine)(nil)

// SyncEngine reconciles an agency's remote notice stream against the
// abstract index and ensures every unseen notice is durably stored
// exactly once.
type SyncEngine struct {
	source       driven.NoticeSource
	store        driven.ObjectStore
	index        *AbstractIndex
	parentFolder string
	agencies     map[string]struct{}
}

// NewSyncEngine creates a sync engine over the given source and store.
// agencies is the configured agency list; SyncAgency rejects anything
// outside it.
func NewSyncEngine(
	source driven.NoticeSource,
	store driven.ObjectStore,
	index *AbstractIndex,
	parentFolder string,
	agencies []string,
) *SyncEngine {
	set := make(map[string]struct{}, len(agencies))
	for _, a := range agencies {
		set[a] = struct{}{}
	}
	return &SyncEngine{
		source:       source,
		store:        store,
		index:        index,
		parentFolder: parentFolder,
		agencies:     set,
	}
}

// SyncAgency pages through the agency's notices newest-first and
// archives every unseen one. In incremental mode the traversal stops at
// the first already-indexed notice; in full mode known notices are
// skipped without re-fetching and the traversal continues to the end.
//
// Unseen notices are collected during traversal and archived oldest-first,
// so that each prepended index entry keeps the agency's list newest-first
// and a crash mid-batch leaves the watermark on an already-recorded,
// older notice.
//
// Per-notice fetch or write failures are counted and skipped; only a
// structural failure (unknown agency, listing error) returns a non-nil
// error. The returned summary is always non-nil.
func (e *SyncEngine) SyncAgency(ctx context.Context, agency string, mode domain.SyncMode) (*domain.AgencySummary, error) {
	start := time.Now()
	summary := &domain.AgencySummary{Agency: agency}
	defer func() { summary.Elapsed = time.Since(start) }()

	if _, ok := e.agencies[agency]; !ok {
		return summary, fmt.Errorf("%w: %q is not in the configured agency list", domain.ErrUnknownAgency, agency)
	}

	ref, err := e.source.ResolveAgency(ctx, agency)
	if err != nil {
		return summary, fmt.Errorf("resolve agency %q: %w", agency, err)
	}

	logger.Section(fmt.Sprintf("Syncing %s (%s)", agency, ref.Name))

	pending, listErr := e.collectUnseen(ctx, agency, ref, mode, summary)

	// Archive oldest-first (reverse of traversal order).
	for i := len(pending) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		notice := pending[i]
		if err := e.archiveNotice(ctx, ref.Slug, notice); err != nil {
			summary.Failed++
			logger.Warn("Failed to archive %s: %v", notice.DocumentNumber, err)
			continue
		}
		summary.Processed++
	}

	if listErr != nil {
		return summary, fmt.Errorf("list notices for %q: %w", agency, listErr)
	}

	logger.Info("Agency %s done: %d archived, %d skipped, %d failed",
		agency, summary.Processed, summary.Skipped, summary.Failed)
	return summary, nil
}

// collectUnseen walks the agency's feed newest-first and returns the
// unseen notices in traversal order. In incremental mode the walk stops
// at the first already-indexed notice. A listing failure ends the walk
// and is returned so the notices gathered before it can still be
// archived.
func (e *SyncEngine) collectUnseen(
	ctx context.Context,
	agency string,
	ref *driven.AgencyRef,
	mode domain.SyncMode,
	summary *domain.AgencySummary,
) ([]domain.Notice, error) {
	var pending []domain.Notice

	pageURL := ref.DocumentsURL
	for pageURL != "" {
		if err := ctx.Err(); err != nil {
			return pending, err
		}

		logger.Debug("Fetching notices from %s", pageURL)
		notices, nextPage, err := e.source.ListNotices(ctx, pageURL)
		if err != nil {
			return pending, err
		}

		for _, notice := range notices {
			notice.Agency = agency

			if e.index.Contains(agency, notice.DocumentNumber) {
				if mode == domain.ModeIncremental {
					// Everything older is already archived; the index is
					// newest-first and so is the feed.
					logger.Debug("Reached known notice %s, stopping traversal", notice.DocumentNumber)
					return pending, nil
				}
				summary.Skipped++
				continue
			}
			pending = append(pending, notice)
		}

		pageURL = nextPage
	}

	return pending, nil
}

// archiveNotice stores the notice's document and records its index
// entry. The index entry is only created after the document write
// succeeded. A document already present in the store (a previous run
// crashed between the write and the index persist) is recorded without
// re-fetching.
func (e *SyncEngine) archiveNotice(ctx context.Context, agencySlug string, notice domain.Notice) error {
	key := domain.DocumentKey(e.parentFolder, agencySlug, notice)

	stored, err := e.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check %s: %w", key, err)
	}

	if stored {
		logger.Debug("Document %s already stored, recording entry only", notice.DocumentNumber)
	} else {
		data, err := e.source.FetchDocument(ctx, notice.DocumentURL)
		if err != nil {
			return fmt.Errorf("fetch document %s: %w", notice.DocumentNumber, err)
		}
		if err := e.store.Put(ctx, key, data, documentContentType); err != nil {
			return fmt.Errorf("store document %s: %w", notice.DocumentNumber, err)
		}
		logger.Debug("Archived %s (%d bytes) at %s", notice.DocumentNumber, len(data), key)
	}

	e.index.Record(notice.Agency, domain.EntryFromNotice(notice, key))
	return nil
}
