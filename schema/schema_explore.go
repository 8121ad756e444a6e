package schema

import "time"

// SeriesSummary describes the preprocessed time-series file as a whole.
type SeriesSummary struct {
	Path         string    `json:"path"`
	TotalRecords int       `json:"total_records"`
	FirstDate    time.Time `json:"first_date"`
	LastDate     time.Time `json:"last_date"`

	FirstNonzero   Row     `json:"first_nonzero,omitempty"`
	HasNonzero     bool    `json:"has_nonzero"`
	LeadingEntries []Row   `json:"leading_entries,omitempty"` // First nonzero entries of the series
	BandMatches    []Row   `json:"band_matches,omitempty"`    // Entries inside the suspect value band
	BandCenter     float64 `json:"band_center"`
	BandHalfWidth  float64 `json:"band_half_width"`
}

// WideSummary describes the raw region/dose wide CSV (one column per period).
type WideSummary struct {
	Path         string   `json:"path"`
	Rows         int      `json:"rows"`
	KeyColumns   []string `json:"key_columns"`
	PeriodCount  int      `json:"period_count"`
	FirstPeriods []string `json:"first_periods,omitempty"`
}

// ShapeSummary describes an informational CSV by shape only.
type ShapeSummary struct {
	Path    string   `json:"path"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// ChartCheck is the result of scanning the downstream chart configuration for
// a hardcoded axis offset.
type ChartCheck struct {
	Path       string `json:"path"`
	AxisFound  bool   `json:"axis_found"`
	DomainLow  int    `json:"domain_low"`
	DomainHigh int    `json:"domain_high"`
	Hardcoded  bool   `json:"hardcoded"` // True when the lower bound is not zero
}

// ExploreResult aggregates the best-effort diagnostic steps. Steps that
// failed carry a message instead of data and do not abort the run.
type ExploreResult struct {
	Series        *SeriesSummary `json:"series,omitempty"`
	Discontinuity *Discontinuity `json:"discontinuity,omitempty"`
	Doses         *WideSummary   `json:"doses,omitempty"`
	Deaths        *ShapeSummary  `json:"deaths,omitempty"`
	Chart         *ChartCheck    `json:"chart,omitempty"`
	StepErrors    []string       `json:"step_errors,omitempty"`
}

// RawComparison compares the first vaccination signal between the raw dose
// counts and the preprocessed percentage series.
type RawComparison struct {
	FirstRawPeriod   string    `json:"first_raw_period"`
	FirstRawDate     time.Time `json:"first_raw_date"`
	FirstRawDoses    float64   `json:"first_raw_doses"`
	EstimatedPct     float64   `json:"estimated_pct"`
	Population       int64     `json:"population"`
	FirstSeriesDate  time.Time `json:"first_series_date"`
	FirstSeriesValue float64   `json:"first_series_value"`
	LagDays          int       `json:"lag_days"` // Raw start minus series start
}
