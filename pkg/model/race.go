package model

// Race data as delivered by the upstream client. The shapes are treated
// as read-only input; any field name reconciliation happens upstream.

// LapTimeUnknown is the sentinel the upstream uses for missing lap times.
const LapTimeUnknown = "N/A"

type Lap struct {
	LapNumber int    `json:"lapNumber"`
	Time      string `json:"time"` // formatted "M:SS.mmm" or "N/A"
	Invalid   bool   `json:"invalid"`
}

type Participant struct {
	DisplayName    string `json:"displayName"`
	CustID         int64  `json:"custId"`
	StartPosition  int    `json:"startPosition"`
	FinishPosition int    `json:"finishPosition"`
	Incidents      int    `json:"incidents"`
	FastestLap     string `json:"fastestLap"` // formatted or "N/A"
	IRating        int    `json:"iRating"`
	Laps           []Lap  `json:"laps,omitempty"`
}

type RaceRecord struct {
	ID              string        `json:"id"`
	CustID          int64         `json:"custId"` // the driver this race belongs to
	TrackName       string        `json:"trackName"`
	TrackConfig     string        `json:"trackConfig,omitempty"`
	CarName         string        `json:"carName"`
	SeriesName      string        `json:"seriesName"`
	Category        string        `json:"category"`
	Date            string        `json:"date"` // RFC3339
	Season          int           `json:"season"`
	Year            int           `json:"year"`
	FinishPosition  int           `json:"finishPosition"`
	Incidents       int           `json:"incidents"`
	StrengthOfField int           `json:"strengthOfField"`
	Participants    []Participant `json:"participants"`
}

// Primary returns the participant entry of the driver this race belongs to.
func (r *RaceRecord) Primary() *Participant {
	for i := range r.Participants {
		if r.Participants[i].CustID == r.CustID {
			return &r.Participants[i]
		}
	}
	return nil
}
