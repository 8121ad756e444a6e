package outwriter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// writeCSVResultsForFix writes one CSV record per patched entry.
func writeCSVResultsForFix(w io.Writer, fix schema.FixResult, fmtFloat func(float64) string) error {
	header := []string{
		"scenario",
		"date",
		"before",
		"after",
		"inserted",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range fix.Patch.Changes {
			before := ""
			if !c.Inserted {
				before = fmtFloat(c.Before)
			}
			row := []string{
				fix.Scenario,
				c.Date.Format(schema.DateFormat),
				before,
				fmtFloat(c.After),
				strconv.FormatBool(c.Inserted),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// sortRowsByDate orders rendered table rows by their first (date) cell.
func sortRowsByDate(rows [][]string) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})
}
