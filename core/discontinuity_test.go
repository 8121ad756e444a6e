package core

import (
	"testing"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindDiscontinuity tests the jump detection on the recorded shape: a run
// of zeros followed by an abrupt double-digit value.
func TestFindDiscontinuity(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-29": 0,
		"2020-12-30": 0,
		"2020-12-31": 0,
		"2021-01-01": 10.13,
		"2021-01-02": 12,
	})

	disc := FindDiscontinuity(table)
	require.True(t, disc.Found)
	assert.Equal(t, schema.MustDate("2020-12-31"), disc.LastZero.Date)
	assert.Equal(t, schema.MustDate("2021-01-01"), disc.FirstNonzero.Date)
	assert.InDelta(t, 10.13, disc.Jump, 0.0001)
	assert.Equal(t, 1, disc.GapDays)
}

// TestFindDiscontinuityGap tests that missing days between the two sides are
// counted.
func TestFindDiscontinuityGap(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-28": 0,
		"2021-01-02": 9.5,
	})

	disc := FindDiscontinuity(table)
	require.True(t, disc.Found)
	assert.Equal(t, 5, disc.GapDays)
}

// TestFindDiscontinuityNotFound tests series with no zero or no positive side.
func TestFindDiscontinuityNotFound(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]float64
	}{
		{
			name:   "all positive",
			values: map[string]float64{"2021-01-01": 10.13, "2021-01-02": 11},
		},
		{
			name:   "all zero",
			values: map[string]float64{"2020-12-30": 0, "2020-12-31": 0},
		},
		{
			name:   "empty",
			values: map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc := FindDiscontinuity(decemberTable(tt.values))
			assert.False(t, disc.Found)
		})
	}
}
