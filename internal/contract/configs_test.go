package contract

import (
	"testing"

	"github.com/ClemoAcevedo/vaxseries/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataPathStr: "assets/data.csv",
		ValueColumn: DefaultValueColumn,
		Around:      DefaultAround,
		Band:        DefaultBand,
		LeadDays:    DefaultLeadDays,
		Spacing:     string(schema.LinearSpacing),
		Population:  DefaultPopulation,
		EpiYear:     DefaultEpiYear,
		Region:      "Total",
		Dose:        "Primera",
		WindowStart: DefaultWindowStart,
		WindowEnd:   DefaultWindowEnd,
		Output:      string(schema.TextOut),
		Precision:   DefaultPrecision,
		Color:       "yes",
		Provenance:  "sqlite",
	}
}

// TestProcessAndValidate tests the happy path end to end.
func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "assets/data.csv", cfg.DataPath)
	assert.Equal(t, DefaultValueColumn, cfg.ValueColumn)
	assert.Equal(t, schema.LinearSpacing, cfg.Spacing)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, map[string]string{"Region": "Total", "Dosis": "Primera"}, cfg.DoseFilter)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.ProvenanceEnabled)
	assert.True(t, cfg.WindowStart.Before(cfg.WindowEnd))
}

// TestProcessAndValidateErrors tests each rejected field.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{
			name:   "missing data path",
			mutate: func(in *ConfigRawInput) { in.DataPathStr = "" },
		},
		{
			name:   "non-positive band",
			mutate: func(in *ConfigRawInput) { in.Band = 0 },
		},
		{
			name:   "lead days below one",
			mutate: func(in *ConfigRawInput) { in.LeadDays = 0 },
		},
		{
			name:   "unknown spacing",
			mutate: func(in *ConfigRawInput) { in.Spacing = "cubic" },
		},
		{
			name:   "non-positive population",
			mutate: func(in *ConfigRawInput) { in.Population = 0 },
		},
		{
			name:   "bad window start",
			mutate: func(in *ConfigRawInput) { in.WindowStart = "12/15/2020" },
		},
		{
			name:   "window end precedes start",
			mutate: func(in *ConfigRawInput) { in.WindowEnd = "2020-01-01" },
		},
		{
			name:   "unknown output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "xml" },
		},
		{
			name:   "precision out of range",
			mutate: func(in *ConfigRawInput) { in.Precision = 11 },
		},
		{
			name:   "bad color flag",
			mutate: func(in *ConfigRawInput) { in.Color = "maybe" },
		},
		{
			name:   "unknown provenance backend",
			mutate: func(in *ConfigRawInput) { in.Provenance = "postgres" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestProcessAndValidateProvenanceNone tests that "none" disables tracking
// without failing validation.
func TestProcessAndValidateProvenanceNone(t *testing.T) {
	input := validInput()
	input.Provenance = "none"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.False(t, cfg.ProvenanceEnabled)
}

// TestParseScenarioOverrides tests the config-file scenario parsing: sorted
// entries, unknown names and bad dates rejected.
func TestParseScenarioOverrides(t *testing.T) {
	input := validInput()
	input.Scenarios = map[string]map[string]float64{
		"smooth": {
			"2020-12-31": 9.5,
			"2020-12-29": 5.0,
		},
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	entries := cfg.ScenarioOverrides["smooth"]
	require.Len(t, entries, 2)
	assert.Equal(t, schema.MustDate("2020-12-29"), entries[0].Date)
	assert.Equal(t, schema.MustDate("2020-12-31"), entries[1].Date)

	input.Scenarios = map[string]map[string]float64{"bogus": {"2020-12-31": 1}}
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.Scenarios = map[string]map[string]float64{"smooth": {"31-12-2020": 1}}
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}
