package driven

import "context"

// ObjectStore persists binary blobs keyed by path.
// Put must be atomic from a reader's perspective: a concurrent or
// subsequent reader sees either the previous object or the new one,
// never a partial write. Both shipped adapters (MinIO, in-memory)
// provide atomic overwrite.
type ObjectStore interface {
	// Put writes data at key with the given content type.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the object at key. Returns domain.ErrNotFound (wrapped)
	// when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}
