package core

import (
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// FindDiscontinuity scans the sorted table for the last row with value == 0
// and the first row with value > 0, and reports the gap in days plus the jump
// magnitude between them. It is a diagnostic: when either side is missing the
// result carries Found=false instead of an error.
func FindDiscontinuity(table *schema.Table) schema.Discontinuity {
	var lastZero, firstNonzero *schema.Row
	for i := range table.Rows {
		r := &table.Rows[i]
		if r.Value == 0 {
			lastZero = r
		} else if r.Value > 0 && firstNonzero == nil {
			firstNonzero = r
		}
	}
	if lastZero == nil || firstNonzero == nil {
		return schema.Discontinuity{}
	}

	gap := int(schema.Day(firstNonzero.Date).Sub(schema.Day(lastZero.Date)).Hours() / 24)
	return schema.Discontinuity{
		Found:        true,
		LastZero:     *lastZero,
		FirstNonzero: *firstNonzero,
		GapDays:      gap,
		Jump:         firstNonzero.Value - lastZero.Value,
	}
}
