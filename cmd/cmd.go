// Package cmd defines the command-line interface for vaxseries.
package cmd

import (
	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the fix subcommands to the parent fix command
	fixCmd.AddCommand(fixRampCmd)
	fixCmd.AddCommand(fixSmoothCmd)
	fixCmd.AddCommand(fixFactualCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("value-column", contract.DefaultValueColumn, "Name of the percentage column in the series CSV")
	rootCmd.PersistentFlags().String("doses-file", "", "Path to the raw weekly dose-count CSV")
	rootCmd.PersistentFlags().String("out", "", "Output path for the corrected CSV (default: derived from source name)")
	rootCmd.PersistentFlags().String("window-start", contract.DefaultWindowStart, "Start of the transition window shown in reports")
	rootCmd.PersistentFlags().String("window-end", contract.DefaultWindowEnd, "End of the transition window shown in reports")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("provenance", "sqlite", "Patch audit backend: sqlite or none")
	rootCmd.PersistentFlags().String("provenance-db", "", "Path to the patch audit database (default: ~/.vaxseries_history.db)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exploreCmd to Viper
	exploreCmd.Flags().String("deaths-file", "", "Path to the deaths CSV (shape check only)")
	exploreCmd.Flags().String("chart-file", "", "Path to the chart configuration to scan for a hardcoded axis")
	exploreCmd.Flags().Float64("around", contract.DefaultAround, "Center of the value band to list entries around")
	exploreCmd.Flags().Float64("band", contract.DefaultBand, "Half-width of the value band")
	if err := viper.BindPFlags(exploreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding explore flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Int64("population", contract.DefaultPopulation, "Population used to estimate coverage from dose counts")
	analyzeCmd.Flags().Int("epi-year", contract.DefaultEpiYear, "Year the epidemiological week columns belong to")
	analyzeCmd.Flags().String("region", contract.DefaultDoseFilter["Region"], "Region row to select in the raw CSV")
	analyzeCmd.Flags().String("dose", contract.DefaultDoseFilter["Dosis"], "Dose row to select in the raw CSV")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of fixRampCmd to Viper
	fixRampCmd.Flags().Int("lead-days", contract.DefaultLeadDays, "Days before the last zero date where the ramp starts")
	fixRampCmd.Flags().String("spacing", string(schema.LinearSpacing), "Interpolation spacing: linear or geometric")
	if err := viper.BindPFlags(fixRampCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fix ramp flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
