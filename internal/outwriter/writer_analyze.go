package outwriter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// analyzeOutput is the JSON envelope for the analyze command.
type analyzeOutput struct {
	Doses      schema.WideSummary   `json:"doses"`
	Comparison schema.RawComparison `json:"comparison"`
}

// writeJSONResultsForAnalyze marshals the analysis to JSON and writes it.
func writeJSONResultsForAnalyze(w io.Writer, wide schema.WideSummary, comparison schema.RawComparison) error {
	return writeJSON(w, analyzeOutput{Doses: wide, Comparison: comparison})
}

// writeCSVResultsForAnalyze writes the comparison as a single CSV record.
func writeCSVResultsForAnalyze(w io.Writer, comparison schema.RawComparison, fmtFloat func(float64) string) error {
	header := []string{
		"first_raw_period",
		"first_raw_date",
		"first_raw_doses",
		"estimated_pct",
		"population",
		"first_series_date",
		"first_series_value",
		"lag_days",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rawDate := ""
		if !comparison.FirstRawDate.IsZero() {
			rawDate = comparison.FirstRawDate.Format(schema.DateFormat)
		}
		seriesDate := ""
		if !comparison.FirstSeriesDate.IsZero() {
			seriesDate = comparison.FirstSeriesDate.Format(schema.DateFormat)
		}
		row := []string{
			comparison.FirstRawPeriod,
			rawDate,
			fmtFloat(comparison.FirstRawDoses),
			fmtFloat(comparison.EstimatedPct),
			strconv.FormatInt(comparison.Population, 10),
			seriesDate,
			fmtFloat(comparison.FirstSeriesValue),
			strconv.Itoa(comparison.LagDays),
		}
		return cw.Write(row)
	})
}

// sortedKeys returns the keys of a string map in lexical order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
