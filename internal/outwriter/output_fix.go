package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintFixResults outputs a fix report, dispatching based on the output
// format configured.
func PrintFixResults(fix schema.FixResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForFix(fix, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForFix(fix, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printFixText(fix, cfg, duration); err != nil {
			return fmt.Errorf("error writing fix output: %w", err)
		}
	}
	return nil
}

func printJSONResultsForFix(fix schema.FixResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, fix)
	}, "Wrote JSON fix results")
}

func printCSVResultsForFix(fix schema.FixResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForFix(w, fix, createFormatter(cfg.Precision))
	}, "Wrote CSV fix results")
}

// printFixText renders the transition window as a table plus the change
// summary, warnings and follow-up instructions.
func printFixText(fix schema.FixResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmtFloat := createFormatter(cfg.Precision)
		pathWidth := getMaxPathWidth(cfg)

		fmt.Fprintf(w, "Applied %q patch to %s\n", fix.Scenario, contract.TruncatePath(fix.SourcePath, pathWidth))
		if err := writeTransitionTable(w, fix, fmtFloat); err != nil {
			return err
		}

		inserted := 0
		for _, c := range fix.Patch.Changes {
			if c.Inserted {
				inserted++
			}
		}
		fmt.Fprintf(w, "Changed %d entries (%d inserted)", len(fix.Patch.Changes), inserted)
		if len(fix.Patch.Skipped) > 0 {
			fmt.Fprintf(w, ", skipped %d absent dates", len(fix.Patch.Skipped))
		}
		fmt.Fprintln(w)

		for _, warning := range fix.Patch.Warnings {
			fmt.Fprintf(w, "WARNING: %s\n", warning)
		}

		for _, m := range fix.Milestones {
			if m.Found {
				fmt.Fprintf(w, "Milestone %s: %s = %s%%\n", m.Label, m.Date.Format(schema.DateFormat), fmtFloat(m.Value))
			} else {
				fmt.Fprintf(w, "Milestone %s: expected %s but no entry found\n", m.Label, m.Date.Format(schema.DateFormat))
			}
		}

		fmt.Fprintf(w, "Wrote patched series to %s\n", fix.OutputPath)
		fmt.Fprintf(w, "Next step: update the chart data reference to load %s\n", fix.OutputPath)
		fmt.Fprintf(w, "Fix completed in %v\n", duration)
		return nil
	}, "Wrote fix results")
}

// writeTransitionTable prints the before/after values around the patched
// window using the tablewriter API.
func writeTransitionTable(w io.Writer, fix schema.FixResult, fmtFloat func(float64) string) error {
	afterByDate := make(map[string]schema.Row, len(fix.After))
	for _, r := range fix.After {
		afterByDate[r.Date.Format(schema.DateFormat)] = r
	}
	changed := make(map[string]bool, len(fix.Patch.Changes))
	insertedDates := make(map[string]bool)
	for _, c := range fix.Patch.Changes {
		key := c.Date.Format(schema.DateFormat)
		changed[key] = true
		if c.Inserted {
			insertedDates[key] = true
		}
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Date", "Before", "After", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	beforeByDate := make(map[string]bool, len(fix.Before))
	var data [][]string
	for _, r := range fix.Before {
		key := r.Date.Format(schema.DateFormat)
		beforeByDate[key] = true
		afterVal := ""
		if after, ok := afterByDate[key]; ok {
			afterVal = fmtFloat(after.Value)
		}
		status := ""
		if changed[key] {
			status = "patched"
		}
		data = append(data, []string{key, fmtFloat(r.Value), afterVal, status})
	}
	// Inserted dates have no source-side row
	for _, r := range fix.After {
		key := r.Date.Format(schema.DateFormat)
		if beforeByDate[key] || !insertedDates[key] {
			continue
		}
		data = append(data, []string{key, "", fmtFloat(r.Value), "inserted"})
	}
	sortRowsByDate(data)

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
