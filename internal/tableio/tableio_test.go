package tableio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadTable tests parsing, sorting and extra-column retention.
func TestReadTable(t *testing.T) {
	csvData := `date,vaccinated_pct,region
2021-01-02,11.2,Total
2020-12-31,0,Total
2021-01-01,10.13,Total
`
	table, err := ReadTable(strings.NewReader(csvData), "vaccinated_pct")
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"date", "vaccinated_pct", "region"}, table.Columns)

	// Rows come back sorted regardless of file order
	assert.Equal(t, schema.MustDate("2020-12-31"), table.Rows[0].Date)
	assert.Equal(t, schema.MustDate("2021-01-02"), table.Rows[2].Date)
	assert.InDelta(t, 10.13, table.Rows[1].Value, 0.0001)
	assert.Equal(t, "Total", table.Rows[0].Extras["region"])
}

// TestReadTableErrors tests header and record validation.
func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing date column",
			csv:  "day,vaccinated_pct\n2021-01-01,10.13\n",
		},
		{
			name: "missing value column",
			csv:  "date,other\n2021-01-01,10.13\n",
		},
		{
			name: "invalid date",
			csv:  "date,vaccinated_pct\nnot-a-date,10.13\n",
		},
		{
			name: "invalid value",
			csv:  "date,vaccinated_pct\n2021-01-01,abc\n",
		},
		{
			name: "duplicate date",
			csv:  "date,vaccinated_pct\n2021-01-01,10.13\n2021-01-01,11\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.csv), "vaccinated_pct")
			assert.Error(t, err)
		})
	}
}

// TestWriteTableRoundTrip tests that a written table reads back identically,
// with lossless value formatting.
func TestWriteTableRoundTrip(t *testing.T) {
	csvData := `date,vaccinated_pct,region
2020-12-31,0,Total
2021-01-01,10.13,Total
`
	table, err := ReadTable(strings.NewReader(csvData), "vaccinated_pct")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, table))
	written := buf.String()

	back, err := ReadTable(&buf, "vaccinated_pct")
	require.NoError(t, err)
	require.Len(t, back.Rows, 2)
	assert.Equal(t, table.Rows, back.Rows)
	assert.Contains(t, written, "10.13")
}

// TestWriteTableRefusesSource tests the source immutability guard.
func TestWriteTableRefusesSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(source, []byte("date,vaccinated_pct\n2021-01-01,10.13\n"), 0o644))

	table, err := LoadTable(source, "vaccinated_pct")
	require.NoError(t, err)

	err = WriteTable(table, source, source)
	assert.ErrorContains(t, err, "refusing to overwrite")

	// Relative vs cleaned paths still count as the same file
	err = WriteTable(table, filepath.Join(dir, ".", "data.csv"), source)
	assert.Error(t, err)

	// A sibling path is fine
	require.NoError(t, WriteTable(table, filepath.Join(dir, "data_fixed.csv"), source))
}
