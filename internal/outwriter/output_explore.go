package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// PrintExploreResults outputs the diagnostic results, dispatching based on
// the output format configured.
func PrintExploreResults(result schema.ExploreResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForExplore(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForExplore(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printExploreText(result, cfg, duration); err != nil {
			return fmt.Errorf("error writing explore output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForExplore handles opening the file and calling the JSON writer.
func printJSONResultsForExplore(result schema.ExploreResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON explore results")
}

// printCSVResultsForExplore handles opening the file and calling the CSV writer.
func printCSVResultsForExplore(result schema.ExploreResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForExplore(w, result, createFormatter(cfg.Precision))
	}, "Wrote CSV explore results")
}

// printExploreText renders the human-readable section report.
func printExploreText(result schema.ExploreResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmtFloat := createFormatter(cfg.Precision)
		pathWidth := getMaxPathWidth(cfg)

		if s := result.Series; s != nil {
			fmt.Fprintf(w, "=== Preprocessed series (%s) ===\n", contract.TruncatePath(s.Path, pathWidth))
			fmt.Fprintf(w, "Total records: %d\n", s.TotalRecords)
			fmt.Fprintf(w, "Date range: %s to %s\n",
				s.FirstDate.Format(schema.DateFormat), s.LastDate.Format(schema.DateFormat))
			if s.HasNonzero {
				fmt.Fprintf(w, "First vaccination entry: %s with %s%%\n",
					s.FirstNonzero.Date.Format(schema.DateFormat), fmtFloat(s.FirstNonzero.Value))
			} else {
				fmt.Fprintln(w, "No nonzero vaccination entries found")
			}

			fmt.Fprintf(w, "\nEntries around %s%% (±%s):\n", fmtFloat(s.BandCenter), fmtFloat(s.BandHalfWidth))
			if len(s.BandMatches) == 0 {
				fmt.Fprintln(w, "  none found")
			}
			for _, r := range s.BandMatches {
				fmt.Fprintf(w, "  %s: %s%%\n", r.Date.Format(schema.DateFormat), fmtFloat(r.Value))
			}

			if len(s.LeadingEntries) > 0 {
				fmt.Fprintf(w, "\nFirst %d vaccination entries:\n", len(s.LeadingEntries))
				for _, r := range s.LeadingEntries {
					fmt.Fprintf(w, "  %s: %s%%\n", r.Date.Format(schema.DateFormat), fmtFloat(r.Value))
				}
			}
		}

		if d := result.Discontinuity; d != nil {
			fmt.Fprintln(w, "\n=== Discontinuity ===")
			writeDiscontinuityText(w, *d, cfg, fmtFloat)
		}

		if doses := result.Doses; doses != nil {
			fmt.Fprintf(w, "\n=== Raw dose counts (%s) ===\n", contract.TruncatePath(doses.Path, pathWidth))
			fmt.Fprintf(w, "Rows: %d, key columns: %s, period columns: %d\n",
				doses.Rows, strings.Join(doses.KeyColumns, ", "), doses.PeriodCount)
			if len(doses.FirstPeriods) > 0 {
				fmt.Fprintf(w, "First periods: %s\n", strings.Join(doses.FirstPeriods, ", "))
			}
		}

		if deaths := result.Deaths; deaths != nil {
			fmt.Fprintf(w, "\n=== Deaths data (%s) ===\n", contract.TruncatePath(deaths.Path, pathWidth))
			fmt.Fprintf(w, "Rows: %d, columns: %d\n", deaths.Rows, len(deaths.Columns))
			fmt.Fprintf(w, "Column names: %s\n", strings.Join(deaths.Columns, ", "))
		}

		if chart := result.Chart; chart != nil {
			fmt.Fprintf(w, "\n=== Chart configuration (%s) ===\n", contract.TruncatePath(chart.Path, pathWidth))
			if chart.Hardcoded {
				fmt.Fprintf(w, "WARNING: percentage axis has hardcoded domain [%d, %d]\n", chart.DomainLow, chart.DomainHigh)
			} else {
				fmt.Fprintf(w, "Percentage axis domain [%d, %d] starts at zero as expected\n", chart.DomainLow, chart.DomainHigh)
			}
		}

		for _, msg := range result.StepErrors {
			fmt.Fprintf(w, "\nSkipped step (%s)\n", msg)
		}

		fmt.Fprintf(w, "\nExploration completed in %v\n", duration)
		return nil
	}, "Wrote explore results")
}

// writeDiscontinuityText renders the jump details with a severity label.
func writeDiscontinuityText(w io.Writer, d schema.Discontinuity, cfg *contract.Config, fmtFloat func(float64) string) {
	if !d.Found {
		fmt.Fprintln(w, "No discontinuity found (series has no zero or no positive values)")
		return
	}

	label := contract.GetPlainLabel(d.Jump)
	if cfg.UseColors {
		label = contract.GetColorLabel(d.Jump)
	}
	fmt.Fprintf(w, "Last 0%%: %s\n", d.LastZero.Date.Format(schema.DateFormat))
	fmt.Fprintf(w, "First >0%%: %s = %s%%\n", d.FirstNonzero.Date.Format(schema.DateFormat), fmtFloat(d.FirstNonzero.Value))
	fmt.Fprintf(w, "Jump size: %s percentage points [%s]\n", fmtFloat(d.Jump), label)
	fmt.Fprintf(w, "Days between: %d\n", d.GapDays)
}
