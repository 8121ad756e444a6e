package cmd

import (
	"github.com/ClemoAcevedo/vaxseries/core"
	"github.com/ClemoAcevedo/vaxseries/internal/contract"
	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/spf13/cobra"
)

// runFix opens the provenance store (when enabled) and runs one fix strategy.
func runFix(exec func(*contract.Config, contract.ProvenanceStore) error) {
	store, err := openProvenanceStore()
	if err != nil {
		contract.LogFatal("Cannot open patch history", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}
	if err := exec(cfg, store); err != nil {
		contract.LogFatal("Cannot apply fix", err)
	}
}

// fixCmd groups the patch strategies. Each subcommand writes its own CSV
// variant next to the source; the source file itself is never modified.
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Write a corrected variant of the vaccination series",
	Long: `Apply one of three patch strategies to the vaccination series and write
the result as a new CSV next to the source.

Strategies:
  ramp    - interpolate a daily ramp across the detected discontinuity
  smooth  - overwrite the final zero week with a hand-tuned gradual start
  factual - rebuild December 2020 from the official campaign timeline

The strategies are independent alternatives, not layers: each one patches
the original series and writes its own output file. The source CSV is left
untouched so every strategy can be rerun and compared.

Examples:
  # Interpolated ramp, written to assets/data_fixed.csv
  vaxseries fix ramp assets/data.csv

  # Hand-tuned smooth start, written to assets/data_continuous.csv
  vaxseries fix smooth assets/data.csv

  # Official timeline, written to assets/data_factual.csv
  vaxseries fix factual assets/data.csv`,
}

// fixRampCmd interpolates across the discontinuity.
var fixRampCmd = &cobra.Command{
	Use:   "ramp [data-csv]",
	Short: "Interpolate a daily ramp across the discontinuity",
	Long: `Detect the discontinuity and replace it with an interpolated daily ramp.

The ramp starts --lead-days before the last zero date, at that row's value,
and ends at the first nonzero entry. One value is generated per day strictly
between the anchors; the anchor rows themselves keep their recorded values.
Existing dates are overwritten, missing dates are inserted as new rows that
clone the metadata of their nearest neighbor.

Examples:
  # Default: linear ramp over the week before the jump
  vaxseries fix ramp assets/data.csv

  # Longer lead-in with geometric spacing
  vaxseries fix ramp assets/data.csv --lead-days 10 --spacing geometric

  # Explicit output path
  vaxseries fix ramp assets/data.csv --out assets/data_fixed.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runFix(core.ExecuteFixRamp)
	},
}

// fixSmoothCmd applies the hand-tuned literal patch.
var fixSmoothCmd = &cobra.Command{
	Use:   "smooth [data-csv]",
	Short: "Overwrite the final zero week with a gradual hand-tuned start",
	Long: `Overwrite the last week of zero values with a hand-tuned gradual ramp
ending just below the recorded January 1 value.

Only dates already present in the series are touched; no rows are inserted.
The built-in values can be overridden per date in the config file under the
"scenarios.smooth" key.

Examples:
  # Written to assets/data_continuous.csv
  vaxseries fix smooth assets/data.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runFix(func(c *contract.Config, store contract.ProvenanceStore) error {
			return core.ExecuteFixScenario(c, schema.SmoothScenario, store)
		})
	},
}

// fixFactualCmd applies the official-timeline literal patch.
var fixFactualCmd = &cobra.Command{
	Use:   "factual [data-csv]",
	Short: "Rebuild late December 2020 from the official campaign timeline",
	Long: `Rewrite late December 2020 to follow the official vaccination campaign:
healthcare workers from December 24, 2020, growing into the recorded 10.13%
on January 1, 2021.

The January 1 value itself is left untouched; the report verifies both the
campaign start and the original recorded point afterwards. The built-in
values can be overridden per date in the config file under the
"scenarios.factual" key.

Examples:
  # Written to assets/data_factual.csv
  vaxseries fix factual assets/data.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		runFix(func(c *contract.Config, store contract.ProvenanceStore) error {
			return core.ExecuteFixScenario(c, schema.FactualScenario, store)
		})
	},
}
