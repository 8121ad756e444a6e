package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/internal/outwriter"
	"github.com/ClemoAcevedo/vaxseries/internal/tableio"
	"github.com/ClemoAcevedo/vaxseries/schema"
)

// Output path suffixes per fix strategy. The source file is never
// overwritten; each strategy writes its own variant next to it.
const (
	rampSuffix    = "_fixed"
	smoothSuffix  = "_continuous"
	factualSuffix = "_factual"
)

// RampName labels the interpolated fix in reports and provenance records,
// alongside the literal scenario names.
const RampName = "ramp"

// ExecuteFixScenario applies a named literal scenario and writes the
// corrected CSV variant. Entries from the config file override the built-in
// table for the scenario, keeping the hand-picked values out of the code path.
func ExecuteFixScenario(cfg *contract.Config, scenario schema.Scenario, store contract.ProvenanceStore) error {
	start := time.Now()

	entries, err := scenarioEntries(cfg, scenario)
	if err != nil {
		return err
	}

	table, err := tableio.LoadTable(cfg.DataPath, cfg.ValueColumn)
	if err != nil {
		return fmt.Errorf("cannot load series: %w", err)
	}

	patched, result, err := ApplyPatch(table, schema.PatchSpec{Literal: entries})
	if err != nil {
		return err
	}

	suffix := smoothSuffix
	if scenario == schema.FactualScenario {
		suffix = factualSuffix
	}
	outPath := resolveOutPath(cfg, suffix)
	if err := tableio.WriteTable(patched, outPath, cfg.DataPath); err != nil {
		return err
	}

	fix := buildFixResult(string(scenario), cfg, outPath, table, patched, result)
	if scenario == schema.FactualScenario {
		fix.Milestones = factualMilestones(patched)
	}

	recordRun(store, fix)
	return outwriter.NewOutWriter().WriteFix(fix, cfg, time.Since(start))
}

// ExecuteFixRamp detects the discontinuity and replaces it with an
// interpolated daily ramp starting LeadDays before the last zero date.
// New dates are inserted; existing dates are overwritten.
func ExecuteFixRamp(cfg *contract.Config, store contract.ProvenanceStore) error {
	start := time.Now()

	table, err := tableio.LoadTable(cfg.DataPath, cfg.ValueColumn)
	if err != nil {
		return fmt.Errorf("cannot load series: %w", err)
	}

	disc := FindDiscontinuity(table)
	if !disc.Found {
		return fmt.Errorf("no discontinuity found in %s: nothing to fix", cfg.DataPath)
	}

	rampStart := schema.Anchor{
		Date:  schema.Day(disc.LastZero.Date).AddDate(0, 0, -cfg.LeadDays),
		Value: disc.LastZero.Value,
	}
	rampEnd := schema.Anchor{
		Date:  schema.Day(disc.FirstNonzero.Date),
		Value: disc.FirstNonzero.Value,
	}
	// One point per day strictly between the anchors, so the spacing produced
	// by dateSpace lands exactly on calendar days.
	count := int(rampEnd.Date.Sub(rampStart.Date).Hours()/24) - 1
	if count < 1 {
		return fmt.Errorf("ramp window of %d days is too short to interpolate", cfg.LeadDays)
	}

	// Geometric spacing needs a positive start anchor, but the ramp starts at
	// the last zero of the series. Seed it with the first linear step so the
	// curve still departs from near zero.
	if cfg.Spacing == schema.GeometricSpacing && rampStart.Value <= 0 {
		rampStart.Value = rampEnd.Value / float64(count+1)
	}

	patched, result, err := ApplyPatch(table, schema.PatchSpec{
		Start:   rampStart,
		End:     rampEnd,
		Count:   count,
		Spacing: cfg.Spacing,
	})
	if err != nil {
		return err
	}

	outPath := resolveOutPath(cfg, rampSuffix)
	if err := tableio.WriteTable(patched, outPath, cfg.DataPath); err != nil {
		return err
	}

	fix := buildFixResult(RampName, cfg, outPath, table, patched, result)
	recordRun(store, fix)
	return outwriter.NewOutWriter().WriteFix(fix, cfg, time.Since(start))
}

// scenarioEntries resolves the literal table for a scenario, preferring
// overrides from the config file over the built-in values.
func scenarioEntries(cfg *contract.Config, scenario schema.Scenario) ([]schema.PatchEntry, error) {
	if override, ok := cfg.ScenarioOverrides[string(scenario)]; ok && len(override) > 0 {
		return override, nil
	}
	return schema.ScenarioEntries(scenario)
}

// resolveOutPath returns the explicit --out path, or derives one from the
// source name: assets/data.csv becomes assets/data<suffix>.csv.
func resolveOutPath(cfg *contract.Config, suffix string) string {
	if cfg.OutPath != "" {
		return cfg.OutPath
	}
	ext := filepath.Ext(cfg.DataPath)
	stem := strings.TrimSuffix(cfg.DataPath, ext)
	return stem + suffix + ext
}

// buildFixResult assembles the report model: patch outcome plus the
// transition window sliced from the original and the patched table.
func buildFixResult(name string, cfg *contract.Config, outPath string, before, after *schema.Table, result schema.PatchResult) schema.FixResult {
	return schema.FixResult{
		Scenario:   name,
		SourcePath: cfg.DataPath,
		OutputPath: outPath,
		Patch:      result,
		Before:     before.Slice(cfg.WindowStart, cfg.WindowEnd),
		After:      after.Slice(cfg.WindowStart, cfg.WindowEnd),
	}
}

// factualMilestones checks the patched table against the official timeline:
// healthcare workers from December 24, 2020, and the recorded 10.13% on
// January 1, 2021, which the factual scenario must leave untouched.
func factualMilestones(table *schema.Table) []schema.Milestone {
	milestones := []schema.Milestone{
		{Label: "Campaign start (healthcare workers)", Date: schema.MustDate("2020-12-24")},
		{Label: "Original recorded data point", Date: schema.MustDate("2021-01-01")},
	}
	for i := range milestones {
		if row, ok := table.RowAt(milestones[i].Date); ok {
			milestones[i].Value = row.Value
			milestones[i].Found = true
		}
	}
	return milestones
}

// recordRun persists the fix to the provenance store. Failures are warnings:
// the corrected CSV was already written and losing the audit row should not
// fail the run.
func recordRun(store contract.ProvenanceStore, fix schema.FixResult) {
	if store == nil {
		return
	}
	runID, err := store.BeginRun(time.Now(), fix.Scenario, fix.SourcePath, fix.OutputPath)
	if err != nil {
		contract.LogWarn("Cannot record patch run", err)
		return
	}
	for _, c := range fix.Patch.Changes {
		if err := store.RecordChange(runID, c); err != nil {
			contract.LogWarn("Cannot record patch change", err)
			return
		}
	}
	if err := store.EndRun(runID, len(fix.Patch.Changes), len(fix.Patch.Warnings)); err != nil {
		contract.LogWarn("Cannot finalize patch run", err)
	}
}
