// Package basedata provides shared sample race data for tests.
package basedata

import (
	"fmt"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

const DriverCustID int64 = 1001

// SampleRace returns a race with a full field of six participants.
// The primary driver (cust id 1001) has lap level data with one invalid
// lap that is faster than every valid one.
func SampleRace(id string) *model.RaceRecord {
	return &model.RaceRecord{
		ID:              id,
		CustID:          DriverCustID,
		TrackName:       "Silverstone Circuit",
		TrackConfig:     "Grand Prix",
		CarName:         "McLaren 720S GT3",
		SeriesName:      "GT Sprint",
		Category:        "Sports Car",
		Date:            "2025-04-12T14:00:00Z",
		Season:          2,
		Year:            2025,
		FinishPosition:  3,
		Incidents:       2,
		StrengthOfField: 2450,
		Participants: []model.Participant{
			{
				DisplayName:    "Test Driver",
				CustID:         DriverCustID,
				StartPosition:  5,
				FinishPosition: 3,
				FastestLap:     "1:25.300",
				IRating:        2400,
				Laps: []model.Lap{
					{LapNumber: 1, Time: "1:27.456"},
					{LapNumber: 2, Time: "1:25.123"},
					{LapNumber: 3, Time: "1:24.001", Invalid: true},
					{LapNumber: 4, Time: "1:25.900"},
				},
			},
			{DisplayName: "Rival One", CustID: 2002, FastestLap: "1:24.800", IRating: 2800},
			{DisplayName: "Rival Two", CustID: 2003, FastestLap: "1:25.500", IRating: 2500},
			{DisplayName: "Rival Three", CustID: 2004, FastestLap: "1:26.200", IRating: 2200},
			{DisplayName: "Rival Four", CustID: 2005, FastestLap: "1:27.100", IRating: 1900},
			{DisplayName: "Rival Five", CustID: 2006, FastestLap: model.LapTimeUnknown, IRating: 1700},
		},
	}
}

// ScenarioRaces returns the three race scenario: two Silverstone races
// with the same car (the last one faster) and one Spa race.
func ScenarioRaces() []*model.RaceRecord {
	r1 := SimpleRace("race-1", "Silverstone Circuit", "McLaren 720S GT3", "1:25.123")
	r1.Date = "2025-03-01T14:00:00Z"
	r2 := SimpleRace("race-2", "Spa-Francorchamps", "Ferrari 296 GT3", "1:45.456")
	r2.Date = "2025-03-08T14:00:00Z"
	r3 := SimpleRace("race-3", "Silverstone Circuit", "McLaren 720S GT3", "1:24.789")
	r3.Date = "2025-03-15T14:00:00Z"
	return []*model.RaceRecord{r1, r2, r3}
}

// SimpleRace returns a single participant race for the primary driver.
func SimpleRace(id, trackName, carName, fastestLap string) *model.RaceRecord {
	return &model.RaceRecord{
		ID:              id,
		CustID:          DriverCustID,
		TrackName:       trackName,
		CarName:         carName,
		SeriesName:      "GT Sprint",
		Category:        "Sports Car",
		Date:            "2025-03-01T14:00:00Z",
		Season:          1,
		Year:            2025,
		FinishPosition:  1,
		StrengthOfField: 2000,
		Participants: []model.Participant{
			{
				DisplayName: "Test Driver",
				CustID:      DriverCustID,
				FastestLap:  fastestLap,
				IRating:     2400,
			},
		},
	}
}

// RaceWithFieldSize returns a race whose field has exactly validLaps
// participants with usable lap times plus one without.
func RaceWithFieldSize(id string, validLaps int) *model.RaceRecord {
	ret := SimpleRace(id, "Okayama Short", "Mazda MX-5", "1:10.000")
	ret.Participants = make([]model.Participant, 0, validLaps+1)
	for i := 0; i < validLaps; i++ {
		ret.Participants = append(ret.Participants, model.Participant{
			DisplayName: fmt.Sprintf("Driver %d", i+1),
			CustID:      int64(3000 + i),
			FastestLap:  fmt.Sprintf("1:1%d.000", i%10),
			IRating:     1500 + i*100,
		})
	}
	if validLaps > 0 {
		ret.Participants[0].CustID = DriverCustID
	}
	ret.Participants = append(ret.Participants, model.Participant{
		DisplayName: "No Data",
		CustID:      3999,
		FastestLap:  model.LapTimeUnknown,
	})
	return ret
}
