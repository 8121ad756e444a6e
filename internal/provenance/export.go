package provenance

import (
	"errors"
	"fmt"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// ExecuteExport writes all stored patch runs and changes to Parquet files
// for downstream analytics.
func ExecuteExport(store contract.ProvenanceStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get provenance status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no patch history found to export")
	}

	fmt.Printf("Exporting patch history from %s...\n", status.Path)
	fmt.Printf("Total patch runs: %d\n", status.TotalRuns)
	fmt.Printf("Total recorded changes: %d\n", status.TotalChanges)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve patch runs: %w", err)
	}
	changes, err := store.GetAllChanges()
	if err != nil {
		return fmt.Errorf("failed to retrieve patch changes: %w", err)
	}

	runsFile := outputFile + ".patch_runs.parquet"
	if err := WritePatchRunsParquet(ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write patch runs: %w", err)
	}
	fmt.Printf("Exported %d patch runs to: %s\n", len(runs), runsFile)

	changesFile := outputFile + ".patch_changes.parquet"
	if err := WritePatchChangesParquet(ConvertChangeRecords(changes), changesFile); err != nil {
		return fmt.Errorf("failed to write patch changes: %w", err)
	}
	fmt.Printf("Exported %d change records to: %s\n", len(changes), changesFile)

	return nil
}

// PrintStatus prints provenance status information.
func PrintStatus(status schema.ProvenanceStatus) {
	fmt.Printf("Provenance DB: %s\n", status.Path)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Changes Recorded: %d\n", status.TotalChanges)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
