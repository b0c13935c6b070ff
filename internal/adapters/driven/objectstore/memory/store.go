// Package memory provides an in-memory ObjectStore implementation,
// used by tests and as a dry-run backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Store is an in-memory implementation of driven.ObjectStore.
// Put replaces the whole object under lock, so overwrite is atomic.
type Store struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// NewStore creates an empty in-memory object store.
func NewStore() *Store {
	return &Store{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// Put writes data at key.
func (s *Store) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	s.contentTypes[key] = contentType
	return nil
}

// Get reads the object at key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Exists reports whether an object is stored at key.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// ContentType returns the stored content type for key, or empty string.
func (s *Store) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contentTypes[key]
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
