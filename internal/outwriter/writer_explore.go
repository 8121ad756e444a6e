package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// writeCSVResultsForExplore writes the schema.ExploreResult data rows to CSV.
// Each row tags its diagnostic section so consumers can filter.
func writeCSVResultsForExplore(w io.Writer, result schema.ExploreResult, fmtFloat func(float64) string) error {
	header := []string{
		"section",
		"date",
		"value",
		"detail",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if s := result.Series; s != nil {
			for _, r := range s.LeadingEntries {
				row := []string{
					"leading",
					r.Date.Format(schema.DateFormat),
					fmtFloat(r.Value),
					"",
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			for _, r := range s.BandMatches {
				row := []string{
					"band",
					r.Date.Format(schema.DateFormat),
					fmtFloat(r.Value),
					"",
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		if d := result.Discontinuity; d != nil && d.Found {
			rows := [][]string{
				{"discontinuity", d.LastZero.Date.Format(schema.DateFormat), fmtFloat(d.LastZero.Value), "last_zero"},
				{"discontinuity", d.FirstNonzero.Date.Format(schema.DateFormat), fmtFloat(d.FirstNonzero.Value), "first_nonzero"},
				{"discontinuity", "", fmtFloat(d.Jump), "jump"},
				{"discontinuity", "", strconv.Itoa(d.GapDays), "gap_days"},
			}
			for _, row := range rows {
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
