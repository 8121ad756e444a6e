package schema

import "time"

// PatchRunRecord is the stored metadata of one fix invocation.
type PatchRunRecord struct {
	RunID      int64
	RunTime    time.Time
	Scenario   string // Scenario name or "ramp"
	SourcePath string
	OutputPath string
	Changes    int
	Warnings   int
}

// PatchChangeRecord is one stored before/after change belonging to a run.
type PatchChangeRecord struct {
	RunID    int64
	Date     time.Time
	Before   float64
	After    float64
	Inserted bool
}

// ProvenanceStatus reports the state of the patch provenance store.
type ProvenanceStatus struct {
	Path          string
	Connected     bool
	TotalRuns     int64
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
	TotalChanges  int64
	TableSizes    map[string]int64
}
