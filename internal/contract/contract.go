// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// ProvenanceStore defines the interface for tracking applied patch runs.
// This allows the store to be mocked for testing and disabled entirely.
type ProvenanceStore interface {
	// BeginRun creates a new patch run and returns its unique ID
	BeginRun(runTime time.Time, scenario, sourcePath, outputPath string) (int64, error)

	// RecordChange stores one before/after change belonging to a run
	RecordChange(runID int64, change schema.PatchChange) error

	// EndRun updates the run with completion counters
	EndRun(runID int64, changes, warnings int) error

	// GetStatus returns status information about the store
	GetStatus() (schema.ProvenanceStatus, error)

	// GetAllRuns retrieves all stored patch runs
	GetAllRuns() ([]schema.PatchRunRecord, error)

	// GetAllChanges retrieves all stored per-date changes
	GetAllChanges() ([]schema.PatchChangeRecord, error)

	// Close closes the underlying connection
	Close() error
}
