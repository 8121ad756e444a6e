package schema

import "time"

// Milestone is a known-good reference point a fixed series is checked
// against (e.g. the official campaign start date).
type Milestone struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Found bool      `json:"found"`
}

// FixResult bundles everything a fix run produced, for reporting: the
// structured patch outcome plus the transition window before and after.
type FixResult struct {
	Scenario   string      `json:"scenario"`
	SourcePath string      `json:"source_path"`
	OutputPath string      `json:"output_path"`
	Patch      PatchResult `json:"patch"`
	Before     []Row       `json:"before"` // Transition window of the source table
	After      []Row       `json:"after"`  // Same window after patching
	Milestones []Milestone `json:"milestones,omitempty"`
}
