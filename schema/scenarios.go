package schema

import "fmt"

// Built-in correction scenarios for the December 2020 discontinuity in the
// Chile vaccination series. Each is an independent, explicitly chosen patch;
// there is no rule reconciling them into a single "correct" timeline.

// SmoothRamp returns the hand-tuned gradual ramp over the last week of
// December 2020, reaching 9.0% the day before the recorded 10.13% on Jan 1.
func SmoothRamp() []PatchEntry {
	return []PatchEntry{
		{Date: MustDate("2020-12-25"), Value: 0.5},
		{Date: MustDate("2020-12-26"), Value: 1.2},
		{Date: MustDate("2020-12-27"), Value: 2.1},
		{Date: MustDate("2020-12-28"), Value: 3.5},
		{Date: MustDate("2020-12-29"), Value: 5.2},
		{Date: MustDate("2020-12-30"), Value: 7.1},
		{Date: MustDate("2020-12-31"), Value: 9.0},
	}
}

// FactualTimeline returns the timeline anchored on Chile's official campaign
// start: healthcare workers from December 24, 2020, ramping up to the
// recorded 10.13% on January 1, 2021 (which stays untouched).
func FactualTimeline() []PatchEntry {
	return []PatchEntry{
		{Date: MustDate("2020-12-24"), Value: 0.1},
		{Date: MustDate("2020-12-25"), Value: 0.2},
		{Date: MustDate("2020-12-26"), Value: 0.4},
		{Date: MustDate("2020-12-27"), Value: 0.7},
		{Date: MustDate("2020-12-28"), Value: 1.2},
		{Date: MustDate("2020-12-29"), Value: 2.1},
		{Date: MustDate("2020-12-30"), Value: 3.8},
		{Date: MustDate("2020-12-31"), Value: 6.2},
	}
}

// ScenarioEntries returns the literal patch table for a built-in scenario.
func ScenarioEntries(s Scenario) ([]PatchEntry, error) {
	switch s {
	case SmoothScenario:
		return SmoothRamp(), nil
	case FactualScenario:
		return FactualTimeline(), nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", s)
	}
}
