package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/testsupport/basedata"
)

func TestAnalyzeFieldGate(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	cfg.MinFieldSize = 5

	// one valid lap short of the gate
	assert.Nil(t, AnalyzeField(basedata.RaceWithFieldSize("race-1", 4), cfg))
	// exactly at the gate
	assert.NotNil(t, AnalyzeField(basedata.RaceWithFieldSize("race-2", 5), cfg))
}

func TestAnalyzeFieldStats(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	fa := AnalyzeField(basedata.SampleRace("race-1"), cfg)
	require.NotNil(t, fa)

	// 6 participants, one without a usable lap time
	assert.Equal(t, 6, fa.TotalParticipants)
	assert.Equal(t, 5, fa.ValidParticipants)
	assert.Len(t, fa.Entries, 5)
	assert.Equal(t, 2450, fa.StrengthOfField)

	// lap times: 84800, 85300, 85500, 86200, 87100
	assert.Equal(t, int64(84800), fa.FastestMs)
	assert.Equal(t, int64(87100), fa.SlowestMs)
	assert.InDelta(t, 85780.0, fa.AverageMs, 0.001)
	assert.InDelta(t, 85500.0, fa.MedianMs, 0.001)
}

func TestAnalyzeFieldSkipsInvalidTimes(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	cfg.MinFieldSize = 1
	race := basedata.RaceWithFieldSize("race-3", 2)
	fa := AnalyzeField(race, cfg)
	require.NotNil(t, fa)
	for _, e := range fa.Entries {
		assert.Positive(t, e.LapTimeMs)
	}
}
