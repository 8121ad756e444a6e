// Package schema has the data model, enums and built-in patch scenarios for vaxseries.
package schema

import (
	"sort"
	"time"
)

// Row represents a single record of the daily vaccination time series.
// Value holds the tracked percentage column; all other CSV columns are kept
// verbatim in Extras so inserted rows can clone the shape of a neighbor.
type Row struct {
	Date   time.Time         `json:"date"`
	Value  float64           `json:"value"`
	Extras map[string]string `json:"extras,omitempty"`
}

// Table is an ordered time-series table read from a CSV file.
// Invariant: rows are sorted by date and dates are unique.
type Table struct {
	Columns     []string // Header order from the source CSV
	ValueColumn string   // Name of the tracked numeric column
	Rows        []Row
}

// Anchor is a trusted (date, value) pair used as a boundary condition
// for interpolation across a suspect date range.
type Anchor struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Clone returns a deep copy of the table. Patch operations work on clones so
// the loaded source table is never mutated.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns:     append([]string(nil), t.Columns...),
		ValueColumn: t.ValueColumn,
		Rows:        make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Clone returns a copy of the row with its own Extras map.
func (r Row) Clone() Row {
	out := Row{Date: r.Date, Value: r.Value}
	if r.Extras != nil {
		out.Extras = make(map[string]string, len(r.Extras))
		for k, v := range r.Extras {
			out.Extras[k] = v
		}
	}
	return out
}

// Sort orders the rows by date ascending.
func (t *Table) Sort() {
	sort.Slice(t.Rows, func(i, j int) bool {
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})
}

// IndexOf returns the index of the row for the given date, or -1 if absent.
// Dates are compared at day granularity.
func (t *Table) IndexOf(date time.Time) int {
	day := Day(date)
	for i, r := range t.Rows {
		if Day(r.Date).Equal(day) {
			return i
		}
	}
	return -1
}

// RowAt returns the row for the given date, if one exists.
func (t *Table) RowAt(date time.Time) (Row, bool) {
	if i := t.IndexOf(date); i >= 0 {
		return t.Rows[i], true
	}
	return Row{}, false
}

// Slice returns the rows with start <= date <= end, in order.
func (t *Table) Slice(start, end time.Time) []Row {
	var out []Row
	for _, r := range t.Rows {
		d := Day(r.Date)
		if !d.Before(Day(start)) && !d.After(Day(end)) {
			out = append(out, r)
		}
	}
	return out
}

// Day truncates a timestamp to midnight UTC. All date arithmetic in the
// smoother happens at day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MustDate parses an ISO 8601 date or panics. Only for static scenario tables
// and tests; runtime input goes through tableio parsing.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}
