//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runVaxseries runs the built binary and returns its stdout.
func runVaxseries(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command(getVaxseriesBinary(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())
	return stdout.String()
}

// TestExploreCommand runs the explore diagnostics against the fixture series.
func TestExploreCommand(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeJumpSeries(t, dir)

	out := runVaxseries(t, dir, "explore", dataPath, "--color", "no", "--provenance", "none")

	assert.Contains(t, out, "Total records: 11")
	assert.Contains(t, out, "Last 0%: 2020-12-31")
	assert.Contains(t, out, "First >0%: 2021-01-01")
	assert.Contains(t, out, "Severe")
}

// TestFixCommands runs each strategy and checks the written variants.
func TestFixCommands(t *testing.T) {
	tests := []struct {
		name    string
		subcmd  string
		outName string
	}{
		{name: "ramp", subcmd: "ramp", outName: "data_fixed.csv"},
		{name: "smooth", subcmd: "smooth", outName: "data_continuous.csv"},
		{name: "factual", subcmd: "factual", outName: "data_factual.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			dataPath := writeJumpSeries(t, dir)

			out := runVaxseries(t, dir, "fix", tt.subcmd, dataPath, "--color", "no", "--provenance", "none")
			assert.Contains(t, out, tt.outName)

			// The variant exists and the source is untouched
			patched, err := os.ReadFile(filepath.Join(dir, tt.outName))
			require.NoError(t, err)
			assert.Contains(t, string(patched), "2021-01-01,10.13")

			source, err := os.ReadFile(dataPath)
			require.NoError(t, err)
			assert.Contains(t, string(source), "2020-12-31,0")
		})
	}
}

// TestFixRecordsHistory runs a fix with tracking on and then inspects the
// history commands.
func TestFixRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeJumpSeries(t, dir)
	dbPath := filepath.Join(dir, "history.db")

	runVaxseries(t, dir, "fix", "smooth", dataPath, "--color", "no", "--provenance-db", dbPath)

	status := runVaxseries(t, dir, "history", "status", "--provenance-db", dbPath)
	assert.Contains(t, status, "Total Runs: 1")

	exportPrefix := filepath.Join(dir, "export")
	runVaxseries(t, dir, "history", "export", "--provenance-db", dbPath, "--output-file", exportPrefix)
	for _, suffix := range []string{".patch_runs.parquet", ".patch_changes.parquet"} {
		info, err := os.Stat(exportPrefix + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	runVaxseries(t, dir, "history", "clear", "--provenance-db", dbPath)
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

// TestJSONOutput checks the machine-readable explore output.
func TestJSONOutput(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeJumpSeries(t, dir)

	out := runVaxseries(t, dir, "explore", dataPath, "--output", "json", "--provenance", "none")
	assert.True(t, strings.Contains(out, "\"discontinuity\"") || strings.Contains(out, "\"series\""))
	assert.Contains(t, out, "10.13")
}
