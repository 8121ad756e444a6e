// Package core has the date-range value smoother and the diagnostic and fix
// executors built on top of it.
package core

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// Percentage bounds for the tracked column.
const (
	minPct = 0.0
	maxPct = 100.0
)

// ApplyPatch applies either form of a PatchSpec: the literal override list,
// or the generated ramp between its anchors.
func ApplyPatch(table *schema.Table, spec schema.PatchSpec) (*schema.Table, schema.PatchResult, error) {
	if spec.IsLiteral() {
		return ApplyLiteralPatch(table, spec.Literal)
	}
	return ApplyInterpolatedPatch(table, spec.Start, spec.End, spec.Count, spec.Spacing)
}

// ApplyLiteralPatch overwrites the value of existing rows only. Dates in the
// patch with no matching row are reported as skipped, never inserted. The
// input table is not mutated; row count and all dates outside the patch keys
// stay untouched.
func ApplyLiteralPatch(table *schema.Table, entries []schema.PatchEntry) (*schema.Table, schema.PatchResult, error) {
	if table == nil {
		return nil, schema.PatchResult{}, errors.New("table is nil")
	}
	if len(entries) == 0 {
		return nil, schema.PatchResult{}, errors.New("literal patch has no entries")
	}

	out := table.Clone()
	var result schema.PatchResult

	for _, e := range entries {
		i := out.IndexOf(e.Date)
		if i < 0 {
			result.Skipped = append(result.Skipped, schema.Day(e.Date))
			continue
		}
		result.Changes = append(result.Changes, schema.PatchChange{
			Date:   schema.Day(e.Date),
			Before: out.Rows[i].Value,
			After:  e.Value,
		})
		out.Rows[i].Value = e.Value
	}

	result.Warnings = validatePatched(out, result.Changes)
	return out, result, nil
}

// ApplyInterpolatedPatch generates count values strictly between the anchor
// values and count dates evenly spaced strictly between the anchor dates,
// then merges them into the table: overwrite on date collision, insert
// otherwise. Inserted rows clone the Extras of the nearest existing row so
// the table shape stays uniform. The result is re-sorted and duplicate-free.
func ApplyInterpolatedPatch(table *schema.Table, start, end schema.Anchor, count int, spacing schema.SpacingMode) (*schema.Table, schema.PatchResult, error) {
	if table == nil {
		return nil, schema.PatchResult{}, errors.New("table is nil")
	}
	if count < 1 {
		return nil, schema.PatchResult{}, errors.New("count must be at least 1")
	}
	d0, d1 := schema.Day(start.Date), schema.Day(end.Date)
	if !d0.Before(d1) {
		return nil, schema.PatchResult{}, fmt.Errorf("start anchor %s must precede end anchor %s",
			d0.Format(schema.DateFormat), d1.Format(schema.DateFormat))
	}
	// Dates are truncated to day granularity, so more points than whole days
	// between the anchors would collide on the same date.
	if days := int(d1.Sub(d0).Hours() / 24); count > days-1 {
		return nil, schema.PatchResult{}, fmt.Errorf("count %d exceeds the %d whole days between the anchors", count, days-1)
	}

	var values []float64
	switch spacing {
	case schema.GeometricSpacing:
		var err error
		values, err = Geomspace(start.Value, end.Value, count)
		if err != nil {
			return nil, schema.PatchResult{}, err
		}
	default:
		values = Linspace(start.Value, end.Value, count)
	}
	dates := dateSpace(d0, d1, count)

	out := table.Clone()
	var result schema.PatchResult

	for k, date := range dates {
		if i := out.IndexOf(date); i >= 0 {
			result.Changes = append(result.Changes, schema.PatchChange{
				Date:   date,
				Before: out.Rows[i].Value,
				After:  values[k],
			})
			out.Rows[i].Value = values[k]
			continue
		}
		row := schema.Row{Date: date, Value: values[k]}
		if nearest := nearestRow(out, date); nearest != nil {
			row.Extras = nearest.Clone().Extras
		}
		out.Rows = append(out.Rows, row)
		result.Changes = append(result.Changes, schema.PatchChange{
			Date:     date,
			After:    values[k],
			Inserted: true,
		})
	}

	out.Sort()
	result.Warnings = validatePatched(out, result.Changes)
	return out, result, nil
}

// Linspace returns count values evenly spaced strictly between lo and hi,
// excluding both endpoints. For lo < hi the sequence is strictly increasing.
func Linspace(lo, hi float64, count int) []float64 {
	step := (hi - lo) / float64(count+1)
	out := make([]float64, count)
	for i := range out {
		out[i] = lo + step*float64(i+1)
	}
	return out
}

// Geomspace returns count geometrically spaced values strictly between lo and
// hi, excluding both endpoints. Both anchors must be positive.
func Geomspace(lo, hi float64, count int) ([]float64, error) {
	if lo <= 0 || hi <= 0 {
		return nil, errors.New("geometric spacing requires positive anchor values")
	}
	ratio := math.Pow(hi/lo, 1/float64(count+1))
	out := make([]float64, count)
	v := lo
	for i := range out {
		v *= ratio
		out[i] = v
	}
	return out, nil
}

// dateSpace returns count dates evenly spaced strictly between d0 and d1,
// truncated to day granularity.
func dateSpace(d0, d1 time.Time, count int) []time.Time {
	span := d1.Sub(d0)
	out := make([]time.Time, count)
	for i := range out {
		frac := float64(i+1) / float64(count+1)
		out[i] = schema.Day(d0.Add(time.Duration(frac * float64(span))))
	}
	return out
}

// nearestRow returns the existing row closest in time to the given date.
func nearestRow(table *schema.Table, date time.Time) *schema.Row {
	var best *schema.Row
	var bestDist time.Duration
	for i := range table.Rows {
		dist := table.Rows[i].Date.Sub(date)
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best = &table.Rows[i]
			bestDist = dist
		}
	}
	return best
}

// validatePatched checks the patched dates against the percentage bounds and
// against monotonicity with their neighbors. Violations are reported as
// warnings rather than errors: the scenarios are hand-tuned corrections and
// the caller decides whether a local decrease is acceptable.
func validatePatched(table *schema.Table, changes []schema.PatchChange) []string {
	var warnings []string
	for _, c := range changes {
		if c.After < minPct || c.After > maxPct {
			warnings = append(warnings, fmt.Sprintf("%s: value %.2f outside [0, 100]",
				c.Date.Format(schema.DateFormat), c.After))
		}
		i := table.IndexOf(c.Date)
		if i < 0 {
			continue
		}
		if i > 0 && table.Rows[i-1].Value > table.Rows[i].Value {
			warnings = append(warnings, fmt.Sprintf("%s: value %.2f breaks non-decreasing order with %s (%.2f)",
				c.Date.Format(schema.DateFormat), table.Rows[i].Value,
				table.Rows[i-1].Date.Format(schema.DateFormat), table.Rows[i-1].Value))
		}
		if i < len(table.Rows)-1 && table.Rows[i].Value > table.Rows[i+1].Value {
			warnings = append(warnings, fmt.Sprintf("%s: value %.2f exceeds next row %s (%.2f)",
				c.Date.Format(schema.DateFormat), table.Rows[i].Value,
				table.Rows[i+1].Date.Format(schema.DateFormat), table.Rows[i+1].Value))
		}
	}
	return warnings
}
