// Package domain defines the core business entities for regsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Notice: A single published item from the register's feed
//   - AbstractEntry: The persisted record of a processed notice
//   - SyncMode: Incremental vs full-refresh traversal
//   - AgencySummary / RunSummary: Per-agency and per-run statistics
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
