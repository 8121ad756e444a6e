package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateFormatter tests precision handling.
func TestCreateFormatter(t *testing.T) {
	fmtFloat := createFormatter(2)
	assert.Equal(t, "10.13", fmtFloat(10.13))
	assert.Equal(t, "0.00", fmtFloat(0))

	fmtFloat = createFormatter(0)
	assert.Equal(t, "10", fmtFloat(10.13))
}

// TestWriteJSON tests the indented encoder.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"changes": 7}))
	assert.Contains(t, buf.String(), "\"changes\": 7")
}

// TestWriteCSVWithHeader tests the header-then-rows pattern.
func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

// TestGetMaxPathWidth tests the width override and its clamping.
func TestGetMaxPathWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{
			name:     "narrow override clamps to minimum",
			width:    30,
			expected: 15,
		},
		{
			name:     "mid-range override",
			width:    80,
			expected: 50,
		},
		{
			name:     "wide override clamps to maximum",
			width:    200,
			expected: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, getMaxPathWidth(cfg))
		})
	}
}
