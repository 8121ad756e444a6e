package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// PrintAnalyzeResults outputs the raw dose-count analysis, dispatching based
// on the output format configured.
func PrintAnalyzeResults(wide schema.WideSummary, comparison schema.RawComparison, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForAnalyze(wide, comparison, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForAnalyze(comparison, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printAnalyzeText(wide, comparison, cfg, duration); err != nil {
			return fmt.Errorf("error writing analyze output: %w", err)
		}
	}
	return nil
}

func printJSONResultsForAnalyze(wide schema.WideSummary, comparison schema.RawComparison, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForAnalyze(w, wide, comparison)
	}, "Wrote JSON analyze results")
}

func printCSVResultsForAnalyze(comparison schema.RawComparison, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForAnalyze(w, comparison, createFormatter(cfg.Precision))
	}, "Wrote CSV analyze results")
}

func printAnalyzeText(wide schema.WideSummary, comparison schema.RawComparison, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmtFloat := createFormatter(cfg.Precision)
		pathWidth := getMaxPathWidth(cfg)

		fmt.Fprintf(w, "=== Raw dose counts (%s) ===\n", contract.TruncatePath(wide.Path, pathWidth))
		fmt.Fprintf(w, "Rows: %d, key columns: %s, period columns: %d\n",
			wide.Rows, strings.Join(wide.KeyColumns, ", "), wide.PeriodCount)
		fmt.Fprintf(w, "Filter: %s\n", formatFilter(cfg.DoseFilter))

		fmt.Fprintln(w, "\n=== First vaccination signal ===")
		fmt.Fprintf(w, "First positive period: week %s", comparison.FirstRawPeriod)
		if !comparison.FirstRawDate.IsZero() {
			fmt.Fprintf(w, " (starting %s)", comparison.FirstRawDate.Format(schema.DateFormat))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Doses that week: %s\n", fmtFloat(comparison.FirstRawDoses))
		fmt.Fprintf(w, "Estimated coverage: %s%% of %d people\n", fmtFloat(comparison.EstimatedPct), comparison.Population)

		if !comparison.FirstSeriesDate.IsZero() {
			fmt.Fprintln(w, "\n=== Preprocessed series comparison ===")
			fmt.Fprintf(w, "Series first nonzero: %s = %s%%\n",
				comparison.FirstSeriesDate.Format(schema.DateFormat), fmtFloat(comparison.FirstSeriesValue))
			fmt.Fprintf(w, "Raw signal lags series start by %d days\n", comparison.LagDays)
		}

		fmt.Fprintf(w, "\nAnalysis completed in %v\n", duration)
		return nil
	}, "Wrote analyze results")
}

// formatFilter renders a key filter map with stable ordering for display.
func formatFilter(filter map[string]string) string {
	parts := make([]string, 0, len(filter))
	for _, k := range sortedKeys(filter) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, filter[k]))
	}
	return strings.Join(parts, ", ")
}
