package model

import "time"

// PerformanceLevel is the qualitative band of a pace percentile.
type PerformanceLevel string

const (
	LevelElite        PerformanceLevel = "Elite"
	LevelExcellent    PerformanceLevel = "Excellent"
	LevelStrong       PerformanceLevel = "Strong"
	LevelAverage      PerformanceLevel = "Average"
	LevelBelowAverage PerformanceLevel = "Below Average"
	LevelStruggling   PerformanceLevel = "Struggling"
)

// PacePercentile ranks one lap time within one race's field.
// 100 means fastest in the field.
type PacePercentile struct {
	Percentile    float64          `json:"percentile"`
	FieldPosition int              `json:"fieldPosition"` // 1-based
	TotalDrivers  int              `json:"totalDrivers"`
	Level         PerformanceLevel `json:"level"`
}

// FieldEntry is a participant with a usable lap time.
type FieldEntry struct {
	DisplayName string `json:"displayName"`
	CustID      int64  `json:"custId"`
	IRating     int    `json:"iRating"`
	LapTime     string `json:"lapTime"`
	LapTimeMs   int64  `json:"lapTimeMs"`
}

// FieldAnalysis is the statistical summary of one race's field.
type FieldAnalysis struct {
	TotalParticipants int          `json:"totalParticipants"`
	ValidParticipants int          `json:"validParticipants"`
	StrengthOfField   int          `json:"strengthOfField"`
	FastestMs         int64        `json:"fastestMs"`
	SlowestMs         int64        `json:"slowestMs"`
	AverageMs         float64      `json:"averageMs"`
	MedianMs          float64      `json:"medianMs"`
	Entries           []FieldEntry `json:"entries"`
}

// ConfidenceFactors are the three normalized 0-100 signals contributing
// to the confidence of a skill equivalency estimate.
type ConfidenceFactors struct {
	FieldSize     float64 `json:"fieldSize"`
	FieldStrength float64 `json:"fieldStrength"`
	DataQuality   float64 `json:"dataQuality"`
}

type SkillEquivalency struct {
	EstimatedRating int               `json:"estimatedRating"`
	Confidence      float64           `json:"confidence"` // 0-100
	Factors         ConfidenceFactors `json:"factors"`
	Method          string            `json:"method"`
}

// DeltaAssessment is the qualitative band of a rating delta.
type DeltaAssessment string

const (
	SignificantlyAbove DeltaAssessment = "significantly_above"
	ModeratelyAbove    DeltaAssessment = "moderately_above"
	SlightlyAbove      DeltaAssessment = "slightly_above"
	Consistent         DeltaAssessment = "consistent"
	SlightlyBelow      DeltaAssessment = "slightly_below"
	ModeratelyBelow    DeltaAssessment = "moderately_below"
	SignificantlyBelow DeltaAssessment = "significantly_below"
)

type RatingDelta struct {
	EstimatedRating int             `json:"estimatedRating"`
	CurrentRating   int             `json:"currentRating"`
	Delta           int             `json:"delta"`
	Percent         float64         `json:"percent"` // rounded to 2 decimals
	Assessment      DeltaAssessment `json:"assessment"`
}

// AnalysisResult combines all analysis artifacts for one record.
// A failed analysis carries only RecordID and Error.
type AnalysisResult struct {
	RecordID        string            `json:"recordId"`
	Percentile      *PacePercentile   `json:"percentile,omitempty"`
	Equivalency     *SkillEquivalency `json:"equivalency,omitempty"`
	Delta           *RatingDelta      `json:"delta,omitempty"`
	AnalyzedAt      time.Time         `json:"analyzedAt"`
	FieldSize       int               `json:"fieldSize,omitempty"`
	StrengthOfField int               `json:"strengthOfField,omitempty"`
	LowConfidence   bool              `json:"lowConfidence,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	Error           string            `json:"error,omitempty"`
}

func (r *AnalysisResult) Failed() bool { return r.Error != "" }
