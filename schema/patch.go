package schema

import "time"

// PatchEntry is a single literal override: set the value for this date.
type PatchEntry struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PatchSpec describes a targeted modification of a date range. Exactly one of
// the two forms is used: a list of literal overrides, or a generated ramp of
// Count values between the Start and End anchors (endpoints excluded).
type PatchSpec struct {
	Literal []PatchEntry `json:"literal,omitempty"`

	Start   Anchor      `json:"start,omitempty"`
	End     Anchor      `json:"end,omitempty"`
	Count   int         `json:"count,omitempty"`
	Spacing SpacingMode `json:"spacing,omitempty"`
}

// IsLiteral reports whether the patch is a literal override list.
func (p PatchSpec) IsLiteral() bool {
	return len(p.Literal) > 0
}

// PatchChange records the before/after state of one patched date.
type PatchChange struct {
	Date     time.Time `json:"date"`
	Before   float64   `json:"before"` // Zero for inserted rows
	After    float64   `json:"after"`
	Inserted bool      `json:"inserted"` // True when a new row was created
}

// PatchResult is the structured outcome of applying a PatchSpec. The smoother
// returns it instead of printing, so reporting stays in the output layer.
type PatchResult struct {
	Changes  []PatchChange `json:"changes"`
	Skipped  []time.Time   `json:"skipped,omitempty"`  // Literal dates with no matching row
	Warnings []string      `json:"warnings,omitempty"` // Monotonicity / range violations
}

// Discontinuity describes an abrupt jump between the last zero value and the
// first positive value of the series.
type Discontinuity struct {
	Found        bool    `json:"found"`
	LastZero     Row     `json:"last_zero,omitempty"`
	FirstNonzero Row     `json:"first_nonzero,omitempty"`
	GapDays      int     `json:"gap_days,omitempty"`
	Jump         float64 `json:"jump,omitempty"` // Percentage points
}
