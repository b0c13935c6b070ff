package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driven"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// indexContentType is the content type of the persisted index blob.
const indexContentType = "application/json"

// AbstractIndex is the durable record of every notice ever processed,
// keyed by agency. Entries are kept newest-first per agency, matching
// the register's retrieval order; the first entry is the agency's
// resumption watermark.
//
// The index is exclusively owned by the run that loaded it. It is not
// safe for concurrent use.
type AbstractIndex struct {
	store driven.ObjectStore
	key   string

	// entries holds the ordered (newest-first) lists per agency.
	entries map[string][]domain.AbstractEntry

	// seen provides O(1) membership checks beside the ordered lists.
	seen map[string]map[string]struct{}
}

// LoadIndex reads the persisted index blob at key from store. An absent
// blob initialises an empty index for the configured agencies. A blob
// that is present but unparsable returns domain.ErrCorruptIndex: the
// run must abort rather than silently re-download everything.
func LoadIndex(ctx context.Context, store driven.ObjectStore, key string, agencies []string) (*AbstractIndex, error) {
	idx := &AbstractIndex{
		store:   store,
		key:     key,
		entries: make(map[string][]domain.AbstractEntry),
		seen:    make(map[string]map[string]struct{}),
	}
	for _, agency := range agencies {
		idx.entries[agency] = []domain.AbstractEntry{}
		idx.seen[agency] = make(map[string]struct{})
	}

	data, err := store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Info("No existing index at %s, starting empty", key)
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load index %s: %w", key, err)
	}

	var persisted map[string][]domain.AbstractEntry
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptIndex, key, err)
	}

	for agency, list := range persisted {
		if list == nil {
			list = []domain.AbstractEntry{}
		}
		idx.entries[agency] = list
		set := make(map[string]struct{}, len(list))
		for _, entry := range list {
			set[entry.DocumentNumber] = struct{}{}
		}
		idx.seen[agency] = set
	}

	logger.Info("Loaded index from %s: %d agencies, %d entries", key, len(idx.entries), idx.TotalEntries())
	return idx, nil
}

// Contains reports whether the agency already has an entry for
// documentNumber.
func (x *AbstractIndex) Contains(agency, documentNumber string) bool {
	_, ok := x.seen[agency][documentNumber]
	return ok
}

// Record prepends entry to the agency's list, keeping it newest-first.
// Recording a document number the agency already holds is a no-op.
func (x *AbstractIndex) Record(agency string, entry domain.AbstractEntry) {
	if x.Contains(agency, entry.DocumentNumber) {
		return
	}
	if x.seen[agency] == nil {
		x.seen[agency] = make(map[string]struct{})
	}
	x.entries[agency] = append([]domain.AbstractEntry{entry}, x.entries[agency]...)
	x.seen[agency][entry.DocumentNumber] = struct{}{}
}

// Entries returns a copy of the agency's ordered list, newest-first.
func (x *AbstractIndex) Entries(agency string) []domain.AbstractEntry {
	list := x.entries[agency]
	out := make([]domain.AbstractEntry, len(list))
	copy(out, list)
	return out
}

// TotalEntries returns the number of entries across all agencies.
func (x *AbstractIndex) TotalEntries() int {
	total := 0
	for _, list := range x.entries {
		total += len(list)
	}
	return total
}

// Persist serialises the full index back to its well-known key. The
// write relies on the store's atomic overwrite, so a reader never
// observes a half-written index.
func (x *AbstractIndex) Persist(ctx context.Context) error {
	data, err := json.Marshal(x.entries)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := x.store.Put(ctx, x.key, data, indexContentType); err != nil {
		return fmt.Errorf("persist index %s: %w", x.key, err)
	}
	logger.Debug("Persisted index to %s (%d entries)", x.key, x.TotalEntries())
	return nil
}
