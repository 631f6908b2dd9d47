package bests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/testsupport/basedata"
)

func silverstoneMcLaren(t *testing.T, db *model.DriverBests) *model.PersonalBestRecord {
	t.Helper()
	rec := BestForCarOnTrack(db, "McLaren 720S GT3", "Silverstone Circuit")
	require.NotNil(t, rec)
	return rec
}

func TestTransformScenario(t *testing.T) {
	tr := NewTransformer(nil)
	res := tr.Transform(basedata.ScenarioRaces())

	assert.Empty(t, res.IgnoredRaces)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.SourceRaces)
	assert.Equal(t, 3, res.ProcessedRaces)

	db := res.Bests
	assert.Equal(t, 2, db.TotalTrackLayouts)
	assert.Equal(t, 2, db.TotalCars)
	assert.Equal(t, 1, db.TotalSeries)
	assert.Equal(t, 3, db.TotalRaces)

	rec := silverstoneMcLaren(t, db)
	assert.Equal(t, "1:24.789", rec.FastestLap)
	assert.Equal(t, "race-3", rec.RaceID)

	// overall fastest is the McLaren lap at Silverstone
	assert.Equal(t, "1:24.789", db.FastestLap)
	assert.Equal(t, "Silverstone Circuit", db.FastestTrack)
	assert.Equal(t, "McLaren 720S GT3", db.FastestCar)
}

func TestTransformRollupInvariant(t *testing.T) {
	res := NewTransformer(nil).Transform(basedata.ScenarioRaces())
	for _, sb := range res.Bests.Series {
		for _, lb := range sb.Layouts {
			minMs := int64(0)
			for _, rec := range lb.Records {
				if minMs == 0 || rec.FastestLapMs < minMs {
					minMs = rec.FastestLapMs
				}
			}
			assert.Equal(t, minMs, lb.FastestLapMs)
		}
	}
}

func TestTransformIdempotent(t *testing.T) {
	tr := NewTransformer(nil)
	first := tr.Transform(basedata.ScenarioRaces())
	second := tr.Transform(basedata.ScenarioRaces())
	if diff := cmp.Diff(first.Bests, second.Bests); diff != "" {
		t.Errorf("driver bests differ between runs (-first +second):\n%s", diff)
	}
}

func TestTransformMonotonicity(t *testing.T) {
	slower := basedata.SimpleRace("race-4", "Silverstone Circuit", "McLaren 720S GT3", "1:26.000")
	res := NewTransformer(nil).Transform(append(basedata.ScenarioRaces(), slower))
	assert.Equal(t, "1:24.789", silverstoneMcLaren(t, res.Bests).FastestLap)

	faster := basedata.SimpleRace("race-5", "Silverstone Circuit", "McLaren 720S GT3", "1:24.000")
	res = NewTransformer(nil).Transform(append(basedata.ScenarioRaces(), faster))
	assert.Equal(t, "1:24.000", silverstoneMcLaren(t, res.Bests).FastestLap)
}

func TestTransformTieBreakFirstSeen(t *testing.T) {
	a := basedata.SimpleRace("race-a", "Silverstone Circuit", "McLaren 720S GT3", "1:25.000")
	b := basedata.SimpleRace("race-b", "Silverstone Circuit", "McLaren 720S GT3", "1:25.000")

	res := NewTransformer(nil).Transform([]*model.RaceRecord{a, b})
	assert.Equal(t, "race-a", silverstoneMcLaren(t, res.Bests).RaceID)

	res = NewTransformer(nil).Transform([]*model.RaceRecord{b, a})
	assert.Equal(t, "race-b", silverstoneMcLaren(t, res.Bests).RaceID)
}

func TestTransformCategoryFilter(t *testing.T) {
	formula := basedata.SimpleRace("race-f1", "Monza", "Dallara F3", "1:40.000")
	formula.Category = "Formula Car"
	races := append(basedata.ScenarioRaces(), formula)

	cfg := config.DefaultAnalysisConfig()
	cfg.Filters.Categories = []string{"Sports Car"}
	res := NewTransformer(cfg).Transform(races)

	require.Len(t, res.IgnoredRaces, 1)
	assert.Equal(t, "race-f1", res.IgnoredRaces[0].RaceID)
	assert.Contains(t, res.IgnoredRaces[0].Reason, "Formula Car")
	assert.Equal(t, 3, res.Bests.TotalRaces)
	assert.Equal(t, 2, res.Bests.TotalTrackLayouts)
}

func TestTransformMinRacesPerLayout(t *testing.T) {
	cfg := config.DefaultAnalysisConfig()
	cfg.Filters.MinRaces = 2
	res := NewTransformer(cfg).Transform(basedata.ScenarioRaces())

	// Spa has only one race and is dropped with a warning
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "below minimum 2")
	assert.Equal(t, 1, res.Bests.TotalTrackLayouts)
	assert.Nil(t, BestForCarOnTrack(res.Bests, "Ferrari 296 GT3", "Spa-Francorchamps"))
}

func TestTransformIgnoreReasons(t *testing.T) {
	noTrack := basedata.SimpleRace("race-nt", "", "Mazda MX-5", "1:10.000")
	noLap := basedata.SimpleRace("race-nl", "Okayama Short", "Mazda MX-5", model.LapTimeUnknown)
	badDate := basedata.SimpleRace("race-bd", "Okayama Short", "Mazda MX-5", "1:10.000")
	badDate.Date = "not-a-date"

	res := NewTransformer(nil).Transform([]*model.RaceRecord{noTrack, noLap, badDate})
	assert.Equal(t, 0, res.ProcessedRaces)
	require.Len(t, res.IgnoredRaces, 3)
	reasons := map[string]string{}
	for _, ign := range res.IgnoredRaces {
		reasons[ign.RaceID] = ign.Reason
	}
	assert.Equal(t, "no track layout", reasons["race-nt"])
	assert.Equal(t, "no valid lap time", reasons["race-nl"])
	assert.Contains(t, reasons["race-bd"], "unparsable race date")
}

func TestTransformRecoversFromPanic(t *testing.T) {
	res := NewTransformer(nil).Transform([]*model.RaceRecord{nil})
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "transformation failed")
	require.NotNil(t, res.Bests)
	assert.Equal(t, 0, res.Bests.TotalRaces)
}

func TestTransformEmptyInput(t *testing.T) {
	res := NewTransformer(nil).Transform(nil)
	assert.Equal(t, 0, res.SourceRaces)
	assert.NotNil(t, res.Bests)
	assert.Empty(t, res.Bests.Series)
}
