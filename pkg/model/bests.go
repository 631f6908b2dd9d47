package model

import "time"

// PersonalBestRecord is the atomic output unit: one car driven on one
// track layout in one race, with its fastest valid lap.
type PersonalBestRecord struct {
	ID              string          `json:"id"` // raceId_trackId_carName
	RaceID          string          `json:"raceId"`
	TrackID         uint32          `json:"trackId"`
	TrackName       string          `json:"trackName"`
	ConfigName      string          `json:"configName,omitempty"`
	LayoutKey       string          `json:"layoutKey"`
	CarName         string          `json:"carName"`
	SeriesName      string          `json:"seriesName"`
	Category        string          `json:"category"`
	Season          int             `json:"season"`
	Year            int             `json:"year"`
	Date            time.Time       `json:"date"`
	FinishPosition  int             `json:"finishPosition"`
	StrengthOfField int             `json:"strengthOfField"`
	FastestLap      string          `json:"fastestLap"`
	FastestLapMs    int64           `json:"fastestLapMs"`
	Analysis        *AnalysisResult `json:"analysis,omitempty"`
}

// TrackLayoutBests holds the best record per car for a single track layout.
type TrackLayoutBests struct {
	TrackID    uint32    `json:"trackId"`
	TrackName  string    `json:"trackName"`
	ConfigName string    `json:"configName,omitempty"`
	LayoutKey  string    `json:"layoutKey"`
	// keyed by car name
	Records          map[string]*PersonalBestRecord `json:"records"`
	TotalRaces       int                            `json:"totalRaces"`
	FastestLap       string                         `json:"fastestLap"`
	FastestLapMs     int64                          `json:"fastestLapMs"`
	MostRecentRace   time.Time                      `json:"mostRecentRace"`
}

// SeriesBests holds the track layouts raced in a single series.
type SeriesBests struct {
	SeriesName string `json:"seriesName"`
	// keyed by layout key
	Layouts            map[string]*TrackLayoutBests `json:"layouts"`
	TotalRaces         int                          `json:"totalRaces"`
	TotalTrackLayouts  int                          `json:"totalTrackLayouts"`
	TotalCars          int                          `json:"totalCars"`
	AvgStrengthOfField float64                      `json:"avgStrengthOfField"`
	FastestLap         string                       `json:"fastestLap"`
	FastestLapMs       int64                        `json:"fastestLapMs"`
}

// DriverBests is the root aggregate. It is rebuilt on every
// transformation call and never mutated in place.
type DriverBests struct {
	// keyed by series name
	Series            map[string]*SeriesBests `json:"series"`
	TotalRaces        int                     `json:"totalRaces"`
	TotalSeries       int                     `json:"totalSeries"`
	TotalTrackLayouts int                     `json:"totalTrackLayouts"`
	TotalCars         int                     `json:"totalCars"`
	FastestLap        string                  `json:"fastestLap"`
	FastestLapMs      int64                   `json:"fastestLapMs"`
	FastestTrack      string                  `json:"fastestTrack,omitempty"`
	FastestCar        string                  `json:"fastestCar,omitempty"`
}

func NewDriverBests() *DriverBests {
	return &DriverBests{
		Series:     make(map[string]*SeriesBests),
		FastestLap: LapTimeUnknown,
	}
}

// IgnoredRace records why a race did not contribute to the result.
type IgnoredRace struct {
	RaceID string `json:"raceId"`
	Reason string `json:"reason"`
}

// TransformResult is the observability surface of a transformation run.
// Every dropped race appears in IgnoredRaces with a reason.
type TransformResult struct {
	RunID          string        `json:"runId"`
	Bests          *DriverBests  `json:"bests"`
	SourceRaces    int           `json:"sourceRaces"`
	ProcessedRaces int           `json:"processedRaces"`
	Duration       time.Duration `json:"durationNs"`
	IgnoredRaces   []IgnoredRace `json:"ignoredRaces"`
	Warnings       []string      `json:"warnings"`
	Errors         []string      `json:"errors"`
}
