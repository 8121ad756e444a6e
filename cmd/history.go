package cmd

import (
	"fmt"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/internal/provenance"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := viper.GetString("provenance")
	if backend != "" && backend != "sqlite" && backend != "none" {
		return fmt.Errorf("invalid provenance backend: %s (expected sqlite or none)", backend)
	}

	cfg.ProvenanceEnabled = backend != "none"
	cfg.ProvenanceDB = viper.GetString("provenance-db")
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historyDBPath resolves the audit database path from config or the default.
func historyDBPath() string {
	if cfg.ProvenanceDB != "" {
		return cfg.ProvenanceDB
	}
	return contract.GetProvenanceDBFilePath()
}

// historyCmd focused on patch audit data management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by data commands. This avoids data file
// validation for simple store operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the patch run history and exports",
	Long: `Manage the audit history of patch runs.

When enabled, vaxseries records every fix run, storing:
- Run metadata (timestamp, strategy, source and output paths)
- Every changed entry (date, value before and after, inserted flag)

This enables comparing strategies across runs and exporting the history
for analytics.

Subcommands:
  status  - Show audit store statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all stored history
  migrate - Run database schema migrations

Examples:
  # Check what has been recorded
  vaxseries history status

  # Export for analysis in pandas/DuckDB
  vaxseries history export --output-file history`,
}

// historyStatusCmd shows audit store statistics.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display patch history statistics and connection details",
	Long: `Show detailed information about the patch audit store.

Displays:
- Database path and connection status
- Total number of patch runs stored
- Last and oldest run timestamps
- Total changed entries across all runs
- Database table sizes

Examples:
  # Check audit store status
  vaxseries history status`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := provenance.NewStore(historyDBPath())
		if err != nil {
			contract.LogFatal("Cannot open patch history", err)
		}
		defer func() { _ = store.Close() }()
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot read patch history status", err)
		}
		provenance.PrintStatus(status)
	},
}

// historyExportCmd exports the audit data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export patch history to Parquet for analytics",
	Long: `Export all stored patch history to Parquet format.

Exports two datasets:
- Patch runs - metadata about each fix execution
- Patch changes - every changed entry with before/after values

Requires: --output-file, used as the prefix for both files.

Examples:
  # Writes history.patch_runs.parquet and history.patch_changes.parquet
  vaxseries history export --output-file history

  # Query with DuckDB afterwards
  duckdb -c "SELECT * FROM read_parquet('history.patch_runs.parquet')"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := provenance.NewStore(historyDBPath())
		if err != nil {
			contract.LogFatal("Cannot open patch history", err)
		}
		defer func() { _ = store.Close() }()
		if err := provenance.ExecuteExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot export patch history", err)
		}
	},
}

// historyClearCmd clears the audit data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored patch history",
	Long: `Delete all recorded patch runs and their change entries.

WARNING: This action cannot be undone. Consider exporting first.

Examples:
  # Export before clearing
  vaxseries history export --output-file backup
  vaxseries history clear`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := provenance.Clear(historyDBPath()); err != nil {
			contract.LogFatal("Cannot clear patch history", err)
		}
		fmt.Println("Patch history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the audit store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the patch audit store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  vaxseries history migrate

  # Rollback to the initial state
  vaxseries history migrate --target-version 0`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := provenance.Migrate(historyDBPath(), targetVersion); err != nil {
			contract.LogFatal("Cannot run migrations", err)
		}
	},
}
