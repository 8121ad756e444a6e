package provenance

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a store backed by a temp database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestStoreRoundTrip tests recording a full run and reading it back.
func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	runTime := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(runTime, "smooth", "data.csv", "data_continuous.csv")
	require.NoError(t, err)
	require.Positive(t, runID)

	changes := []schema.PatchChange{
		{Date: schema.MustDate("2020-12-30"), Before: 0, After: 7.1},
		{Date: schema.MustDate("2020-12-31"), Before: 0, After: 9.0},
		{Date: schema.MustDate("2020-12-29"), After: 5.2, Inserted: true},
	}
	for _, c := range changes {
		require.NoError(t, store.RecordChange(runID, c))
	}
	require.NoError(t, store.EndRun(runID, len(changes), 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "smooth", runs[0].Scenario)
	assert.Equal(t, "data_continuous.csv", runs[0].OutputPath)
	assert.Equal(t, 3, runs[0].Changes)
	assert.Equal(t, 1, runs[0].Warnings)
	assert.True(t, runs[0].RunTime.Equal(runTime))

	stored, err := store.GetAllChanges()
	require.NoError(t, err)
	require.Len(t, stored, 3)
	// Ordered by date within the run
	assert.Equal(t, schema.MustDate("2020-12-29"), stored[0].Date)
	assert.True(t, stored[0].Inserted)
	assert.InDelta(t, 9.0, stored[2].After, 0.0001)
}

// TestStoreStatus tests the aggregate counters.
func TestStoreStatus(t *testing.T) {
	store := newTestStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	first, err := store.BeginRun(time.Now().Add(-time.Hour), "ramp", "data.csv", "data_fixed.csv")
	require.NoError(t, err)
	require.NoError(t, store.RecordChange(first, schema.PatchChange{Date: schema.MustDate("2020-12-31"), After: 5}))
	require.NoError(t, store.EndRun(first, 1, 0))

	second, err := store.BeginRun(time.Now(), "factual", "data.csv", "data_factual.csv")
	require.NoError(t, err)
	require.NoError(t, store.EndRun(second, 0, 0))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, int64(1), status.TotalChanges)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
}

// TestClear tests database file removal, including the missing-file case.
func TestClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, Clear(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is not an error
	assert.NoError(t, Clear(path))
}
