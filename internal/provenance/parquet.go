package provenance

import (
	"fmt"
	"os"
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/parquet-go/parquet-go"
)

// PatchRun maps the vaxseries_patch_runs table to a Parquet schema.
type PatchRun struct {
	RunID      int64     `parquet:"run_id,snappy"`
	RunTime    time.Time `parquet:"run_time,snappy"`
	Scenario   string    `parquet:"scenario,snappy"`
	SourcePath string    `parquet:"source_path,snappy"`
	OutputPath string    `parquet:"output_path,snappy"`
	Changes    int32     `parquet:"changes,snappy"`
	Warnings   int32     `parquet:"warnings,snappy"`
}

// PatchChange maps the vaxseries_patch_changes table to a Parquet schema.
type PatchChange struct {
	RunID    int64   `parquet:"run_id,snappy"`
	Date     string  `parquet:"date,snappy"` // ISO 8601 date
	Before   float64 `parquet:"before_value,snappy"`
	After    float64 `parquet:"after_value,snappy"`
	Inserted bool    `parquet:"inserted,snappy"`
}

// WritePatchRunsParquet writes a slice of PatchRun structs to a Parquet file.
func WritePatchRunsParquet(data []PatchRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema inference from the struct tags.
	writer := parquet.NewGenericWriter[PatchRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WritePatchChangesParquet writes a slice of PatchChange structs to a Parquet file.
func WritePatchChangesParquet(data []PatchChange, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[PatchChange](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts stored run records for Parquet export.
func ConvertRunRecords(records []schema.PatchRunRecord) []PatchRun {
	result := make([]PatchRun, len(records))
	for i, record := range records {
		result[i] = PatchRun{
			RunID:      record.RunID,
			RunTime:    record.RunTime,
			Scenario:   record.Scenario,
			SourcePath: record.SourcePath,
			OutputPath: record.OutputPath,
			Changes:    int32(record.Changes),
			Warnings:   int32(record.Warnings),
		}
	}
	return result
}

// ConvertChangeRecords converts stored change records for Parquet export.
func ConvertChangeRecords(records []schema.PatchChangeRecord) []PatchChange {
	result := make([]PatchChange, len(records))
	for i, record := range records {
		result[i] = PatchChange{
			RunID:    record.RunID,
			Date:     record.Date.Format(schema.DateFormat),
			Before:   record.Before,
			After:    record.After,
			Inserted: record.Inserted,
		}
	}
	return result
}
