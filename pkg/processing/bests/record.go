package bests

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/laptime"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/track"
)

// DriverFastestLap extracts the driver's own fastest valid lap from the
// primary participant. Lap level data wins; the participant's
// pre-computed fastest lap field is only used when no individual laps
// are present. Laps flagged invalid or carrying the sentinel are skipped.
func DriverFastestLap(race *model.RaceRecord) (formatted string, ms int64) {
	p := race.Primary()
	if p == nil {
		return model.LapTimeUnknown, laptime.InvalidMs
	}
	if len(p.Laps) > 0 {
		times := make([]string, 0, len(p.Laps))
		for i := range p.Laps {
			if p.Laps[i].Invalid {
				continue
			}
			times = append(times, p.Laps[i].Time)
		}
		return laptime.Fastest(times)
	}
	return laptime.Fastest([]string{p.FastestLap})
}

// FieldFastestLap extracts the fastest lap across the whole field,
// considering every participant's fastest lap field and every valid
// individual lap.
func FieldFastestLap(race *model.RaceRecord) (formatted string, ms int64) {
	times := make([]string, 0, len(race.Participants))
	for i := range race.Participants {
		p := &race.Participants[i]
		times = append(times, p.FastestLap)
		for j := range p.Laps {
			if p.Laps[j].Invalid {
				continue
			}
			times = append(times, p.Laps[j].Time)
		}
	}
	return laptime.Fastest(times)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// BuildRecord converts one race into a candidate personal best record.
// Returns nil when the lap time is not usable. Pure, no side effects.
func BuildRecord(
	race *model.RaceRecord,
	layout *track.Layout,
	date time.Time,
	lapFormatted string,
	lapMs int64,
) *model.PersonalBestRecord {
	if !laptime.IsValid(lapMs) {
		return nil
	}
	carKey := whitespaceRegex.ReplaceAllString(race.CarName, "_")
	return &model.PersonalBestRecord{
		ID:              fmt.Sprintf("%s_%d_%s", race.ID, layout.TrackID, carKey),
		RaceID:          race.ID,
		TrackID:         layout.TrackID,
		TrackName:       layout.TrackName,
		ConfigName:      layout.ConfigName,
		LayoutKey:       layout.Key(),
		CarName:         race.CarName,
		SeriesName:      race.SeriesName,
		Category:        race.Category,
		Season:          race.Season,
		Year:            race.Year,
		Date:            date,
		FinishPosition:  race.FinishPosition,
		StrengthOfField: race.StrengthOfField,
		FastestLap:      lapFormatted,
		FastestLapMs:    lapMs,
	}
}
