// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteExplore prints the diagnostic results using the configured output format.
func (ow *OutWriter) WriteExplore(result schema.ExploreResult, cfg *contract.Config, duration time.Duration) error {
	return PrintExploreResults(result, cfg, duration)
}

// WriteAnalyze prints the raw dose-count analysis using the configured output format.
func (ow *OutWriter) WriteAnalyze(wide schema.WideSummary, comparison schema.RawComparison, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalyzeResults(wide, comparison, cfg, duration)
}

// WriteFix prints a fix report using the configured output format.
func (ow *OutWriter) WriteFix(fix schema.FixResult, cfg *contract.Config, duration time.Duration) error {
	return PrintFixResults(fix, cfg, duration)
}
