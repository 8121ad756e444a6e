package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SpacingMode represents how interpolated ramp values are spaced.
	SpacingMode string

	// Scenario represents a named, hand-picked correction scenario.
	Scenario string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All spacing modes supported.
const (
	LinearSpacing    SpacingMode = "linear" // default
	GeometricSpacing SpacingMode = "geometric"
)

// All built-in scenarios supported.
const (
	SmoothScenario  Scenario = "smooth"
	FactualScenario Scenario = "factual"
)

// DateFormat is the ISO 8601 date layout used by the source CSV files.
const DateFormat = "2006-01-02"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidSpacingModes lists all valid spacing modes.
var ValidSpacingModes = map[SpacingMode]struct{}{
	LinearSpacing:    {},
	GeometricSpacing: {},
}

// ValidScenarios lists all valid built-in scenarios.
var ValidScenarios = map[Scenario]struct{}{
	SmoothScenario:  {},
	FactualScenario: {},
}
