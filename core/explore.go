package core

import (
	"fmt"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/internal/outwriter"
	"github.com/ClemoAcevedo/vaxseries/internal/tableio"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// maxLeadingEntries caps how many nonzero entries the summary lists.
const maxLeadingEntries = 10

// ExecuteExplore runs the best-effort diagnostic pass over the preprocessed
// series and the optional side inputs. Each step that fails is recorded and
// skipped; the run only errors if the final report cannot be written.
func ExecuteExplore(cfg *contract.Config) error {
	start := time.Now()
	var result schema.ExploreResult

	table, err := tableio.LoadTable(cfg.DataPath, cfg.ValueColumn)
	if err != nil {
		msg := fmt.Sprintf("series: %v", err)
		result.StepErrors = append(result.StepErrors, msg)
		contract.LogWarn("Cannot analyze preprocessed series", err)
	} else {
		summary := summarizeSeries(table, cfg)
		result.Series = &summary
		disc := FindDiscontinuity(table)
		result.Discontinuity = &disc
	}

	if cfg.DosesFile != "" {
		wide, err := tableio.LoadWide(cfg.DosesFile, cfg.KeyColumns)
		if err != nil {
			msg := fmt.Sprintf("doses: %v", err)
			result.StepErrors = append(result.StepErrors, msg)
			contract.LogWarn("Cannot analyze raw dose counts", err)
		} else {
			summary := wide.Summary()
			result.Doses = &summary
		}
	}

	if cfg.DeathsFile != "" {
		shape, err := tableio.LoadShape(cfg.DeathsFile)
		if err != nil {
			msg := fmt.Sprintf("deaths: %v", err)
			result.StepErrors = append(result.StepErrors, msg)
			contract.LogWarn("Cannot analyze deaths data", err)
		} else {
			result.Deaths = &shape
		}
	}

	if cfg.ChartFile != "" {
		check, err := tableio.CheckChart(cfg.ChartFile)
		if err != nil {
			msg := fmt.Sprintf("chart: %v", err)
			result.StepErrors = append(result.StepErrors, msg)
			contract.LogWarn("Cannot check chart configuration", err)
		} else {
			result.Chart = &check
		}
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteExplore(result, cfg, duration)
}

// summarizeSeries builds the series summary: record count, date range, first
// nonzero entry, leading nonzero entries, and the suspect value band matches.
func summarizeSeries(table *schema.Table, cfg *contract.Config) schema.SeriesSummary {
	summary := schema.SeriesSummary{
		Path:          cfg.DataPath,
		TotalRecords:  len(table.Rows),
		BandCenter:    cfg.Around,
		BandHalfWidth: cfg.Band,
	}
	if len(table.Rows) > 0 {
		summary.FirstDate = table.Rows[0].Date
		summary.LastDate = table.Rows[len(table.Rows)-1].Date
	}

	for _, r := range table.Rows {
		if r.Value > 0 {
			if !summary.HasNonzero {
				summary.FirstNonzero = r
				summary.HasNonzero = true
			}
			if len(summary.LeadingEntries) < maxLeadingEntries {
				summary.LeadingEntries = append(summary.LeadingEntries, r)
			}
		}
		if r.Value >= cfg.Around-cfg.Band && r.Value <= cfg.Around+cfg.Band {
			summary.BandMatches = append(summary.BandMatches, r)
		}
	}
	return summary
}
