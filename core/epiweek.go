package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/internal/outwriter"
	"github.com/ClemoAcevedo/vaxseries/internal/tableio"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// EpiWeekStart returns the start date of an epidemiological week. Week 1
// begins on the first Monday of January, so week 1 of 2021 starts on
// January 4, 2021 -- the reference the raw dose-count columns are mapped with.
func EpiWeekStart(year, week int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (8 - int(jan1.Weekday())) % 7
	firstMonday := jan1.AddDate(0, 0, offset)
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// ExecuteAnalyze maps the raw dose-count columns to calendar dates and
// compares the first raw vaccination signal against the preprocessed series.
func ExecuteAnalyze(cfg *contract.Config) error {
	start := time.Now()

	wide, err := tableio.LoadWide(cfg.DosesFile, cfg.KeyColumns)
	if err != nil {
		return fmt.Errorf("cannot load raw dose counts: %w", err)
	}

	row, ok := wide.Lookup(cfg.DoseFilter)
	if !ok {
		return fmt.Errorf("no row matching %v in %s", cfg.DoseFilter, cfg.DosesFile)
	}

	comparison, err := firstRawSignal(wide.Periods, row, cfg)
	if err != nil {
		return err
	}

	// The series comparison is informational; a missing series file does not
	// abort the raw analysis.
	table, err := tableio.LoadTable(cfg.DataPath, cfg.ValueColumn)
	if err != nil {
		contract.LogWarn("Cannot load preprocessed series for comparison", err)
	} else {
		for _, r := range table.Rows {
			if r.Value > 0 {
				comparison.FirstSeriesDate = r.Date
				comparison.FirstSeriesValue = r.Value
				comparison.LagDays = int(schema.Day(comparison.FirstRawDate).Sub(schema.Day(r.Date)).Hours() / 24)
				break
			}
		}
	}

	duration := time.Since(start)
	summary := wide.Summary()
	return outwriter.NewOutWriter().WriteAnalyze(summary, comparison, cfg, duration)
}

// firstRawSignal finds the first period column with a positive dose count and
// estimates the population percentage it represents.
func firstRawSignal(periods []string, counts map[string]float64, cfg *contract.Config) (schema.RawComparison, error) {
	for _, period := range periods {
		doses, ok := counts[period]
		if !ok || doses <= 0 {
			continue
		}
		comparison := schema.RawComparison{
			FirstRawPeriod: period,
			FirstRawDoses:  doses,
			Population:     cfg.Population,
			EstimatedPct:   doses / float64(cfg.Population) * 100,
		}
		if week, err := strconv.Atoi(period); err == nil {
			comparison.FirstRawDate = EpiWeekStart(cfg.EpiYear, week)
		}
		return comparison, nil
	}
	return schema.RawComparison{}, errors.New("no positive dose counts found in any period column")
}
