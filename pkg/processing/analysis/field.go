// Package analysis implements the skill equivalency pipeline: field
// analysis, pace percentile, rating estimate and delta classification.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/laptime"
)

// AnalyzeField builds the statistical summary of a race's field.
// Returns nil when fewer than cfg.MinFieldSize participants carry a
// usable lap time. This gate keeps statistically meaningless fields
// from producing confident looking numbers.
func AnalyzeField(race *model.RaceRecord, cfg *config.AnalysisConfig) *model.FieldAnalysis {
	entries := make([]model.FieldEntry, 0, len(race.Participants))
	for i := range race.Participants {
		p := &race.Participants[i]
		ms := laptime.ParseMs(p.FastestLap)
		if !laptime.IsValid(ms) {
			continue
		}
		entries = append(entries, model.FieldEntry{
			DisplayName: p.DisplayName,
			CustID:      p.CustID,
			IRating:     p.IRating,
			LapTime:     p.FastestLap,
			LapTimeMs:   ms,
		})
	}
	if len(entries) < cfg.MinFieldSize {
		return nil
	}

	times := make([]float64, len(entries))
	for i, e := range entries {
		times[i] = float64(e.LapTimeMs)
	}
	sort.Float64s(times)

	return &model.FieldAnalysis{
		TotalParticipants: len(race.Participants),
		ValidParticipants: len(entries),
		StrengthOfField:   race.StrengthOfField,
		FastestMs:         int64(times[0]),
		SlowestMs:         int64(times[len(times)-1]),
		AverageMs:         stat.Mean(times, nil),
		MedianMs:          stat.Quantile(0.5, stat.Empirical, times, nil),
		Entries:           entries,
	}
}
