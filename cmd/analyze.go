package cmd

import (
	"github.com/ClemoAcevedo/vaxseries/core"
	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd compares the raw weekly dose counts against the series.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [data-csv]",
	Short: "Map raw weekly dose counts to dates and compare with the series",
	Long: `Analyze the raw dose-count CSV, whose columns are epidemiological week
numbers rather than dates.

Week 1 of a year starts on the first Monday of January, so week 1 of 2021
begins on January 4. The command finds the first week with a positive dose
count, maps it to a calendar date, and estimates the population coverage it
represents. When the preprocessed series is readable, its first nonzero
entry is shown next to the raw signal for comparison.

Requires: --doses-file

Examples:
  # Compare the national first-dose counts with the series
  vaxseries analyze assets/data.csv --doses-file assets/doses.csv

  # Different population estimate
  vaxseries analyze assets/data.csv --doses-file assets/doses.csv --population 19458000

  # Second doses in a specific region
  vaxseries analyze assets/data.csv --doses-file assets/doses.csv --region Valparaiso --dose Segunda`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(cfg); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
