package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSmoothRamp tests the hand-tuned gradual start table.
func TestSmoothRamp(t *testing.T) {
	entries := SmoothRamp()
	require.Len(t, entries, 7)

	assert.Equal(t, MustDate("2020-12-25"), entries[0].Date)
	assert.Equal(t, MustDate("2020-12-31"), entries[len(entries)-1].Date)
	assert.InDelta(t, 9.0, entries[len(entries)-1].Value, 0.0001)

	// Strictly ascending, consecutive days, inside the percentage range
	for i, e := range entries {
		assert.GreaterOrEqual(t, e.Value, 0.0)
		assert.LessOrEqual(t, e.Value, 100.0)
		if i > 0 {
			assert.Greater(t, e.Value, entries[i-1].Value)
			assert.Equal(t, entries[i-1].Date.AddDate(0, 0, 1), e.Date)
		}
	}
}

// TestFactualTimeline tests the official campaign timeline table.
func TestFactualTimeline(t *testing.T) {
	entries := FactualTimeline()
	require.Len(t, entries, 8)

	// Healthcare workers start on December 24
	assert.Equal(t, MustDate("2020-12-24"), entries[0].Date)
	assert.InDelta(t, 0.1, entries[0].Value, 0.0001)

	// Ends below the recorded January 1 value
	assert.Equal(t, MustDate("2020-12-31"), entries[len(entries)-1].Date)
	assert.Less(t, entries[len(entries)-1].Value, 10.13)

	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Value, entries[i-1].Value)
	}
}

// TestScenarioEntries tests the scenario dispatcher.
func TestScenarioEntries(t *testing.T) {
	entries, err := ScenarioEntries(SmoothScenario)
	require.NoError(t, err)
	assert.Len(t, entries, 7)

	entries, err = ScenarioEntries(FactualScenario)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	_, err = ScenarioEntries(Scenario("bogus"))
	assert.Error(t, err)
}
