package analysis

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/iracing-bests-go/log"
	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/bests"
)

// BatchAnalyzer runs the skill equivalency pipeline over every record
// of a DriverBests hierarchy.
type BatchAnalyzer struct {
	cfg           *config.AnalysisConfig
	currentRating int
	workers       int
	l             *log.Logger
}

type BatchOption func(b *BatchAnalyzer)

func WithWorkers(workers int) BatchOption {
	return func(b *BatchAnalyzer) {
		if workers > 0 {
			b.workers = workers
		}
	}
}

func WithLogger(l *log.Logger) BatchOption {
	return func(b *BatchAnalyzer) {
		b.l = l
	}
}

func NewBatchAnalyzer(
	cfg *config.AnalysisConfig,
	currentRating int,
	opts ...BatchOption,
) *BatchAnalyzer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	ret := &BatchAnalyzer{
		cfg:           cfg,
		currentRating: currentRating,
		workers:       runtime.NumCPU(),
		l:             log.Default().Named("analysis.batch"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// BatchSummary counts successful and failed analyses of one run.
type BatchSummary struct {
	Analyzed int `json:"analyzed"`
	Failed   int `json:"failed"`
}

// Run joins every record back to its source race and attaches an
// AnalysisResult. Records whose race cannot be found (or whose field is
// too small) receive a failed result and stay otherwise unchanged.
// Analyses are independent, so they are fanned out over a worker pool;
// results are merged by record index to keep the output deterministic.
func (b *BatchAnalyzer) Run(
	driverBests *model.DriverBests,
	races []*model.RaceRecord,
) *BatchSummary {
	raceByID := lo.KeyBy(races, func(r *model.RaceRecord) string { return r.ID })
	records := bests.AllRecords(driverBests)
	results := make([]*model.AnalysisResult, len(records))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.analyzeRecord(records[i], raceByID[records[i].RaceID])
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := &BatchSummary{}
	for i, rec := range records {
		rec.Analysis = results[i]
		if results[i].Failed() {
			summary.Failed++
		} else {
			summary.Analyzed++
		}
	}
	b.l.Info("batch analysis done",
		log.Int("analyzed", summary.Analyzed),
		log.Int("failed", summary.Failed))
	return summary
}

func (b *BatchAnalyzer) analyzeRecord(
	rec *model.PersonalBestRecord,
	race *model.RaceRecord,
) *model.AnalysisResult {
	ret := &model.AnalysisResult{
		RecordID:   rec.ID,
		AnalyzedAt: time.Now(),
	}
	if race == nil {
		ret.Error = "race data not available"
		return ret
	}
	field := AnalyzeField(race, b.cfg)
	if field == nil {
		ret.Error = fmt.Sprintf("field below minimum size %d", b.cfg.MinFieldSize)
		return ret
	}
	fieldMs := lo.Map(field.Entries,
		func(e model.FieldEntry, _ int) int64 { return e.LapTimeMs })
	pace, err := CalcPacePercentile(rec.FastestLapMs, fieldMs)
	if err != nil {
		ret.Error = err.Error()
		return ret
	}
	equivalency := EstimateSkill(pace, field.StrengthOfField, field, b.cfg)
	delta := ClassifyDelta(equivalency.EstimatedRating, b.currentRating)

	ret.Percentile = pace
	ret.Equivalency = equivalency
	ret.Delta = delta
	ret.FieldSize = field.ValidParticipants
	ret.StrengthOfField = field.StrengthOfField
	ret.LowConfidence = field.StrengthOfField < b.cfg.MinStrengthOfField
	ret.Summary = buildSummary(pace, equivalency, delta)
	return ret
}

func buildSummary(
	pace *model.PacePercentile,
	equivalency *model.SkillEquivalency,
	delta *model.RatingDelta,
) string {
	return fmt.Sprintf(
		"%s pace (%.0f percentile) suggests ~%d iRating (%+d vs current, %s confidence)",
		pace.Level,
		pace.Percentile,
		equivalency.EstimatedRating,
		delta.Delta,
		confidenceQualifier(equivalency.Confidence))
}

func confidenceQualifier(confidence float64) string {
	switch {
	case confidence >= 75:
		return "high"
	case confidence >= 50:
		return "moderate"
	default:
		return "low"
	}
}
