package core

import (
	"testing"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decemberTable builds a small series around the jump between 2020 and 2021.
func decemberTable(values map[string]float64) *schema.Table {
	table := &schema.Table{
		Columns:     []string{"date", "vaccinated_pct", "region"},
		ValueColumn: "vaccinated_pct",
	}
	for dateStr, v := range values {
		table.Rows = append(table.Rows, schema.Row{
			Date:   schema.MustDate(dateStr),
			Value:  v,
			Extras: map[string]string{"region": "Total"},
		})
	}
	table.Sort()
	return table
}

// TestApplyLiteralPatchOverwrites tests that a literal patch only touches
// rows whose dates exist in the table.
func TestApplyLiteralPatchOverwrites(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-30": 0,
		"2020-12-31": 0,
		"2021-01-01": 10.13,
		"2021-01-02": 11.5,
	})

	entries := []schema.PatchEntry{
		{Date: schema.MustDate("2020-12-30"), Value: 4.0},
		{Date: schema.MustDate("2020-12-31"), Value: 6.2},
		{Date: schema.MustDate("2020-12-01"), Value: 1.0}, // Absent from the table
	}
	patched, result, err := ApplyLiteralPatch(table, entries)
	require.NoError(t, err)

	// Row count never changes for literal patches
	assert.Len(t, patched.Rows, len(table.Rows))
	assert.Len(t, result.Changes, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, schema.MustDate("2020-12-01"), result.Skipped[0])

	// Untouched dates keep their values
	row, ok := patched.RowAt(schema.MustDate("2021-01-01"))
	require.True(t, ok)
	assert.InDelta(t, 10.13, row.Value, 0.0001)

	row, ok = patched.RowAt(schema.MustDate("2020-12-31"))
	require.True(t, ok)
	assert.InDelta(t, 6.2, row.Value, 0.0001)

	// The input table is not mutated
	row, ok = table.RowAt(schema.MustDate("2020-12-31"))
	require.True(t, ok)
	assert.Zero(t, row.Value)
}

// TestApplyLiteralPatchErrors tests the nil-table and empty-patch guards.
func TestApplyLiteralPatchErrors(t *testing.T) {
	_, _, err := ApplyLiteralPatch(nil, []schema.PatchEntry{{Date: schema.MustDate("2021-01-01"), Value: 1}})
	assert.Error(t, err)

	table := decemberTable(map[string]float64{"2021-01-01": 10.13})
	_, _, err = ApplyLiteralPatch(table, nil)
	assert.Error(t, err)
}

// TestApplyInterpolatedPatch tests the daily ramp across the recorded jump:
// values strictly between the anchors, anchors untouched, missing dates
// inserted with cloned metadata.
func TestApplyInterpolatedPatch(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-24": 0,
		"2020-12-31": 0,
		"2021-01-01": 10.13,
		"2021-01-02": 11.5,
	})

	start := schema.Anchor{Date: schema.MustDate("2020-12-24"), Value: 0}
	end := schema.Anchor{Date: schema.MustDate("2021-01-01"), Value: 10.13}
	patched, result, err := ApplyInterpolatedPatch(table, start, end, 7, schema.LinearSpacing)
	require.NoError(t, err)

	// 7 daily points between the anchors: 12-25 through 12-31. Six are new
	// rows, 12-31 already existed.
	assert.Len(t, result.Changes, 7)
	inserted := 0
	for _, c := range result.Changes {
		if c.Inserted {
			inserted++
		}
	}
	assert.Equal(t, 6, inserted)
	assert.Len(t, patched.Rows, len(table.Rows)+6)

	// Anchor values stay exactly as recorded
	row, ok := patched.RowAt(schema.MustDate("2020-12-24"))
	require.True(t, ok)
	assert.Zero(t, row.Value)
	row, ok = patched.RowAt(schema.MustDate("2021-01-01"))
	require.True(t, ok)
	assert.InDelta(t, 10.13, row.Value, 0.0001)

	// The ramp is strictly increasing and strictly inside (0, 10.13)
	prev := 0.0
	for _, c := range result.Changes {
		assert.Greater(t, c.After, prev, "ramp value for %s", c.Date)
		assert.Less(t, c.After, 10.13)
		prev = c.After
	}

	// Inserted rows clone the metadata of their nearest neighbor
	row, ok = patched.RowAt(schema.MustDate("2020-12-27"))
	require.True(t, ok)
	assert.Equal(t, "Total", row.Extras["region"])

	// No duplicate dates after the merge
	seen := make(map[string]bool)
	for _, r := range patched.Rows {
		key := r.Date.Format(schema.DateFormat)
		assert.False(t, seen[key], "duplicate date %s", key)
		seen[key] = true
	}
}

// TestApplyInterpolatedPatchRejectsBadAnchors tests anchor ordering and count
// validation.
func TestApplyInterpolatedPatchRejectsBadAnchors(t *testing.T) {
	table := decemberTable(map[string]float64{"2021-01-01": 10.13})
	start := schema.Anchor{Date: schema.MustDate("2021-01-01"), Value: 0}
	end := schema.Anchor{Date: schema.MustDate("2020-12-24"), Value: 10}

	_, _, err := ApplyInterpolatedPatch(table, start, end, 3, schema.LinearSpacing)
	assert.Error(t, err)

	_, _, err = ApplyInterpolatedPatch(table, end, start, 0, schema.LinearSpacing)
	assert.Error(t, err)

	// More points than whole days between the anchors would collide on the
	// same truncated date
	_, _, err = ApplyInterpolatedPatch(table, end, start, 8, schema.LinearSpacing)
	assert.Error(t, err)
}

// TestApplyPatchDispatch tests that the patch form selects the right strategy.
func TestApplyPatchDispatch(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-24": 0,
		"2020-12-31": 0,
		"2021-01-01": 10.13,
	})

	_, result, err := ApplyPatch(table, schema.PatchSpec{
		Literal: []schema.PatchEntry{{Date: schema.MustDate("2020-12-31"), Value: 9.0}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Changes, 1)
	assert.False(t, result.Changes[0].Inserted)

	_, result, err = ApplyPatch(table, schema.PatchSpec{
		Start:   schema.Anchor{Date: schema.MustDate("2020-12-24")},
		End:     schema.Anchor{Date: schema.MustDate("2021-01-01"), Value: 10.13},
		Count:   7,
		Spacing: schema.LinearSpacing,
	})
	require.NoError(t, err)
	assert.Len(t, result.Changes, 7)
}

// TestLinspace tests the endpoint-excluded linear spacing.
func TestLinspace(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   float64
		count    int
		expected []float64
	}{
		{
			name:     "unit interval",
			lo:       0,
			hi:       1,
			count:    3,
			expected: []float64{0.25, 0.5, 0.75},
		},
		{
			name:     "single midpoint",
			lo:       2,
			hi:       4,
			count:    1,
			expected: []float64{3},
		},
		{
			name:     "descending anchors",
			lo:       10,
			hi:       0,
			count:    4,
			expected: []float64{8, 6, 4, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Linspace(tt.lo, tt.hi, tt.count)
			require.Len(t, result, tt.count)
			for i, want := range tt.expected {
				assert.InDelta(t, want, result[i], 0.0001)
			}
		})
	}
}

// TestGeomspace tests the endpoint-excluded geometric spacing.
func TestGeomspace(t *testing.T) {
	result, err := Geomspace(1, 16, 3)
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.InDelta(t, 2, result[0], 0.0001)
	assert.InDelta(t, 4, result[1], 0.0001)
	assert.InDelta(t, 8, result[2], 0.0001)

	_, err = Geomspace(0, 10, 3)
	assert.Error(t, err)
}

// TestValidatePatchedWarnings tests that out-of-range and non-monotonic
// patches surface as warnings, not errors.
func TestValidatePatchedWarnings(t *testing.T) {
	table := decemberTable(map[string]float64{
		"2020-12-30": 0,
		"2020-12-31": 0,
		"2021-01-01": 10.13,
	})

	entries := []schema.PatchEntry{
		{Date: schema.MustDate("2020-12-30"), Value: 120}, // Above 100 and above the next row
	}
	_, result, err := ApplyLiteralPatch(table, entries)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
}
