package tableio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempFile writes content to a file under dir and returns its path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestCheckChart tests the hardcoded-axis detection on chart sources.
func TestCheckChart(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		hardcoded bool
		low       int
	}{
		{
			name:      "hardcoded lower bound",
			source:    "var y = d3.scaleLinear().domain([15, 100]).range([height, 0]);",
			hardcoded: true,
			low:       15,
		},
		{
			name:      "zero-based axis",
			source:    "var y = d3.scaleLinear().domain([0, 100]).range([height, 0]);",
			hardcoded: false,
			low:       0,
		},
		{
			name: "other domains are skipped",
			source: "var x = d3.scaleLinear().domain([0, 365]).range([0, width]);\n" +
				"var y = d3.scaleLinear().domain([ 15 , 100 ]).range([height, 0]);",
			hardcoded: true,
			low:       15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, t.TempDir(), "chart.js", tt.source)
			check, err := CheckChart(path)
			require.NoError(t, err)
			assert.True(t, check.AxisFound)
			assert.Equal(t, tt.hardcoded, check.Hardcoded)
			assert.Equal(t, tt.low, check.DomainLow)
			assert.Equal(t, 100, check.DomainHigh)
		})
	}
}

// TestCheckChartNoAxis tests the error when no percentage axis exists.
func TestCheckChartNoAxis(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "chart.js", "var x = d3.scaleTime().range([0, width]);")
	_, err := CheckChart(path)
	assert.Error(t, err)
}
