// Package provenance stores an audit trail of applied patch runs in SQLite,
// so every corrected CSV variant can be traced back to the exact before and
// after values that produced it.
package provenance

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"

	// SQLite driver registration.
	_ "modernc.org/sqlite"
)

// Table names for patch tracking.
const (
	patchRunsTable    = "vaxseries_patch_runs"
	patchChangesTable = "vaxseries_patch_changes"
)

// Store implements contract.ProvenanceStore on SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ contract.ProvenanceStore = &Store{} // Compile-time check

// NewStore opens (or creates) the provenance database at the given path. An
// empty path falls back to the default location in the home directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = contract.GetProvenanceDBFilePath()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database at %q: %w", path, err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create provenance tables: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// createTables creates the patch tracking tables.
func createTables(db *sql.DB) error {
	queries := []struct {
		name  string
		query string
	}{
		{patchRunsTable, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_time TEXT NOT NULL,
				scenario TEXT NOT NULL,
				source_path TEXT NOT NULL,
				output_path TEXT NOT NULL,
				changes INTEGER,
				warnings INTEGER
			);
		`, patchRunsTable)},
		{patchChangesTable, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				date TEXT NOT NULL,
				before_value REAL NOT NULL,
				after_value REAL NOT NULL,
				inserted INTEGER NOT NULL,
				PRIMARY KEY (run_id, date)
			);
		`, patchChangesTable)},
	}

	for _, q := range queries {
		if _, err := db.Exec(q.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", q.name, err)
		}
	}
	return nil
}

// BeginRun creates a new patch run and returns its unique ID.
func (s *Store) BeginRun(runTime time.Time, scenario, sourcePath, outputPath string) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (run_time, scenario, source_path, output_path) VALUES (?, ?, ?, ?)`, patchRunsTable)
	result, err := s.db.Exec(query, runTime.Format(time.RFC3339Nano), scenario, sourcePath, outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert patch run: %w", err)
	}
	return result.LastInsertId()
}

// RecordChange stores one before/after change belonging to a run.
func (s *Store) RecordChange(runID int64, change schema.PatchChange) error {
	query := fmt.Sprintf(`INSERT INTO %s (run_id, date, before_value, after_value, inserted) VALUES (?, ?, ?, ?, ?)`, patchChangesTable)
	inserted := 0
	if change.Inserted {
		inserted = 1
	}
	_, err := s.db.Exec(query, runID, change.Date.Format(schema.DateFormat), change.Before, change.After, inserted)
	if err != nil {
		return fmt.Errorf("failed to insert patch change: %w", err)
	}
	return nil
}

// EndRun updates the run with completion counters.
func (s *Store) EndRun(runID int64, changes, warnings int) error {
	query := fmt.Sprintf(`UPDATE %s SET changes = ?, warnings = ? WHERE run_id = ?`, patchRunsTable)
	if _, err := s.db.Exec(query, changes, warnings, runID); err != nil {
		return fmt.Errorf("failed to update patch run: %w", err)
	}
	return nil
}

// GetStatus returns status information about the provenance store.
func (s *Store) GetStatus() (schema.ProvenanceStatus, error) {
	status := schema.ProvenanceStatus{
		Path:       s.path,
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", patchRunsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTimeStr string
		row = s.db.QueryRow(fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id DESC LIMIT 1", patchRunsTable))
		if err := row.Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		var oldestRunTimeStr string
		row = s.db.QueryRow(fmt.Sprintf("SELECT run_time FROM %s ORDER BY run_id ASC LIMIT 1", patchRunsTable))
		if err := row.Scan(&oldestRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	row = s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", patchChangesTable))
	if err := row.Scan(&status.TotalChanges); err != nil {
		return status, fmt.Errorf("failed to get total changes: %w", err)
	}

	status.TableSizes[patchRunsTable] = status.TotalRuns
	status.TableSizes[patchChangesTable] = status.TotalChanges
	return status, nil
}

// GetAllRuns retrieves all patch runs from the store.
func (s *Store) GetAllRuns() ([]schema.PatchRunRecord, error) {
	query := fmt.Sprintf("SELECT run_id, run_time, scenario, source_path, output_path, COALESCE(changes, 0), COALESCE(warnings, 0) FROM %s ORDER BY run_id", patchRunsTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patch runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PatchRunRecord
	for rows.Next() {
		var record schema.PatchRunRecord
		var runTimeStr string
		if err := rows.Scan(&record.RunID, &runTimeStr, &record.Scenario, &record.SourcePath, &record.OutputPath, &record.Changes, &record.Warnings); err != nil {
			return nil, fmt.Errorf("failed to scan patch run: %w", err)
		}
		record.RunTime, err = time.Parse(time.RFC3339Nano, runTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run_time: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patch runs: %w", err)
	}
	return results, nil
}

// GetAllChanges retrieves all per-date changes from the store.
func (s *Store) GetAllChanges() ([]schema.PatchChangeRecord, error) {
	query := fmt.Sprintf("SELECT run_id, date, before_value, after_value, inserted FROM %s ORDER BY run_id, date", patchChangesTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patch changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PatchChangeRecord
	for rows.Next() {
		var record schema.PatchChangeRecord
		var dateStr string
		var inserted int
		if err := rows.Scan(&record.RunID, &dateStr, &record.Before, &record.After, &inserted); err != nil {
			return nil, fmt.Errorf("failed to scan patch change: %w", err)
		}
		record.Date, err = time.Parse(schema.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse change date: %w", err)
		}
		record.Inserted = inserted != 0
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patch changes: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Clear removes the provenance database file entirely.
func Clear(path string) error {
	if path == "" {
		path = contract.GetProvenanceDBFilePath()
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove provenance database %s: %w", path, err)
	}
	return nil
}
