// Package services implements the driving port interfaces.
// Services contain the core business logic - the abstract index and the
// incremental synchronization engine - and orchestrate calls to driven
// ports (adapters).
//
// Services are pure Go with no external I/O of their own; all network
// and storage access goes through the driven ports.
package services
