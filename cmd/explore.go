package cmd

import (
	"github.com/ClemoAcevedo/vaxseries/core"
	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/spf13/cobra"
)

// exploreCmd runs the read-only diagnostics over the vaccination data files.
var exploreCmd = &cobra.Command{
	Use:   "explore [data-csv]",
	Short: "Diagnose the vaccination series and locate the artificial jump",
	Long: `Run read-only diagnostics over the preprocessed vaccination series.

Reports:
- Record count, date range and first nonzero entry
- Entries near a suspect value band (default around 15%)
- The discontinuity: last 0% date, first >0% date, jump size and gap
- Raw dose-count and deaths file summaries when provided
- Whether the chart axis domain is hardcoded away from zero

Each diagnostic step is best-effort: a missing or malformed side file is
reported and skipped without aborting the rest.

Examples:
  # Basic series diagnostics
  vaxseries explore assets/data.csv

  # Include the raw dose counts and the chart configuration
  vaxseries explore assets/data.csv --doses-file assets/doses.csv --chart-file chart.js

  # Widen the suspect band
  vaxseries explore assets/data.csv --around 15 --band 1.0`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExplore(cfg); err != nil {
			contract.LogFatal("Cannot run exploration", err)
		}
	},
}
