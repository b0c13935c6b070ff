package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested object (document or index blob)
	// does not exist in the store or at the source.
	ErrNotFound = errors.New("not found")

	// ErrUnknownAgency indicates an agency is not in the configured list
	// or could not be matched against the register's agency directory.
	// Fatal to the affected agency only, never to the run.
	ErrUnknownAgency = errors.New("unknown agency")

	// ErrCorruptIndex indicates the persisted index blob exists but
	// cannot be parsed. Fatal to the run: proceeding with an empty index
	// would silently re-download every document.
	ErrCorruptIndex = errors.New("corrupt abstract index")

	// ErrStoreWrite indicates a document or index write to the object
	// store failed.
	ErrStoreWrite = errors.New("object store write failed")

	// ErrTransport indicates a network-level failure talking to the
	// register or the object store.
	ErrTransport = errors.New("transport error")

	// ErrInvalidConfig indicates the configuration is malformed or
	// missing required values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
