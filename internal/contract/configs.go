package contract

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// Default values for configuration.
const (
	DefaultValueColumn = "vaccinated_pct"
	DefaultPrecision   = 2
	DefaultAround      = 15.0 // Suspect starting value reported by the chart
	DefaultBand        = 0.5
	DefaultLeadDays    = 7
	DefaultPopulation  = 19_100_000 // Chile, approximate
	DefaultEpiYear     = 2021
	DefaultWindowStart = "2020-12-15"
	DefaultWindowEnd   = "2021-01-15"
)

// DefaultKeyColumns are the non-period columns of the raw dose-count CSV.
var DefaultKeyColumns = []string{"Region", "Dosis"}

// DefaultDoseFilter selects the national first-dose row of the raw CSV.
var DefaultDoseFilter = map[string]string{"Region": "Total", "Dosis": "Primera"}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	ValueColumn string `mapstructure:"value-column"`
	DosesFile   string `mapstructure:"doses-file"`
	DeathsFile  string `mapstructure:"deaths-file"`
	ChartFile   string `mapstructure:"chart-file"`

	Around float64 `mapstructure:"around"`
	Band   float64 `mapstructure:"band"`

	LeadDays   int    `mapstructure:"lead-days"`
	Spacing    string `mapstructure:"spacing"`
	OutPath    string `mapstructure:"out"`
	Population int64  `mapstructure:"population"`
	EpiYear    int    `mapstructure:"epi-year"`
	Region     string `mapstructure:"region"`
	Dose       string `mapstructure:"dose"`

	WindowStart string `mapstructure:"window-start"`
	WindowEnd   string `mapstructure:"window-end"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	Provenance   string `mapstructure:"provenance"`
	ProvenanceDB string `mapstructure:"provenance-db"`

	// Scenarios maps scenario name -> date string -> value, read from the
	// config file only. It overrides the built-in literal tables.
	Scenarios map[string]map[string]float64 `mapstructure:"scenarios"`

	// DataPathStr comes from the positional argument, not viper.
	DataPathStr string `mapstructure:"-"`
}

// Config holds the validated, final runtime configuration.
type Config struct {
	DataPath    string
	ValueColumn string
	DosesFile   string
	DeathsFile  string
	ChartFile   string

	Around float64
	Band   float64

	LeadDays   int
	Spacing    schema.SpacingMode
	OutPath    string
	Population int64
	EpiYear    int

	KeyColumns []string
	DoseFilter map[string]string

	WindowStart time.Time
	WindowEnd   time.Time

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ProvenanceEnabled bool
	ProvenanceDB      string

	ScenarioOverrides map[string][]schema.PatchEntry
}

// ProcessAndValidate populates cfg from the raw input, validating enums,
// dates and numeric ranges.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.DataPath = input.DataPathStr
	if cfg.DataPath == "" {
		return errors.New("a data CSV path is required")
	}

	cfg.ValueColumn = input.ValueColumn
	if cfg.ValueColumn == "" {
		cfg.ValueColumn = DefaultValueColumn
	}
	cfg.DosesFile = input.DosesFile
	cfg.DeathsFile = input.DeathsFile
	cfg.ChartFile = input.ChartFile

	if input.Band <= 0 {
		return fmt.Errorf("band must be positive, got %v", input.Band)
	}
	cfg.Around = input.Around
	cfg.Band = input.Band

	if input.LeadDays < 1 {
		return fmt.Errorf("lead-days must be at least 1, got %d", input.LeadDays)
	}
	cfg.LeadDays = input.LeadDays

	spacing := schema.SpacingMode(input.Spacing)
	if _, ok := schema.ValidSpacingModes[spacing]; !ok {
		return fmt.Errorf("invalid spacing mode: %s", input.Spacing)
	}
	cfg.Spacing = spacing

	cfg.OutPath = input.OutPath
	if input.Population < 1 {
		return fmt.Errorf("population must be positive, got %d", input.Population)
	}
	cfg.Population = input.Population
	cfg.EpiYear = input.EpiYear

	cfg.KeyColumns = DefaultKeyColumns
	cfg.DoseFilter = map[string]string{"Region": input.Region, "Dosis": input.Dose}

	var err error
	cfg.WindowStart, err = time.Parse(schema.DateFormat, input.WindowStart)
	if err != nil {
		return fmt.Errorf("invalid window-start: %w", err)
	}
	cfg.WindowEnd, err = time.Parse(schema.DateFormat, input.WindowEnd)
	if err != nil {
		return fmt.Errorf("invalid window-end: %w", err)
	}
	if cfg.WindowEnd.Before(cfg.WindowStart) {
		return errors.New("window-end precedes window-start")
	}

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode: %s", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", input.Precision)
	}
	cfg.Precision = input.Precision
	cfg.Width = input.Width

	cfg.UseColors, err = ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}

	switch input.Provenance {
	case "", "sqlite":
		cfg.ProvenanceEnabled = input.Provenance != ""
	case "none":
		cfg.ProvenanceEnabled = false
	default:
		return fmt.Errorf("invalid provenance backend: %s (expected sqlite or none)", input.Provenance)
	}
	cfg.ProvenanceDB = input.ProvenanceDB

	cfg.ScenarioOverrides, err = parseScenarioOverrides(input.Scenarios)
	return err
}

// parseScenarioOverrides converts the config-file scenario maps into sorted
// patch entry lists.
func parseScenarioOverrides(raw map[string]map[string]float64) (map[string][]schema.PatchEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string][]schema.PatchEntry, len(raw))
	for name, dates := range raw {
		if _, ok := schema.ValidScenarios[schema.Scenario(name)]; !ok {
			return nil, fmt.Errorf("unknown scenario in config file: %s", name)
		}
		entries := make([]schema.PatchEntry, 0, len(dates))
		for dateStr, value := range dates {
			date, err := time.Parse(schema.DateFormat, dateStr)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: invalid date %q: %w", name, dateStr, err)
			}
			entries = append(entries, schema.PatchEntry{Date: date, Value: value})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
		out[name] = entries
	}
	return out, nil
}
