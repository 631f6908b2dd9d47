package bests

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mpapenbr/iracing-bests-go/log"
	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/track"
)

// Transformer converts raw race results into the personal best hierarchy.
type Transformer struct {
	cfg *config.AnalysisConfig
	l   *log.Logger
}

type TransformerOption func(t *Transformer)

func WithLogger(l *log.Logger) TransformerOption {
	return func(t *Transformer) {
		t.l = l
	}
}

func NewTransformer(cfg *config.AnalysisConfig, opts ...TransformerOption) *Transformer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	ret := &Transformer{
		cfg: cfg,
		l:   log.Default().Named("transform"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Transform builds a fresh DriverBests from the given races.
// It never fails: expected data quality gaps end up in IgnoredRaces,
// anything unexpected is recovered into Errors and an empty but valid
// structure is returned.
func (t *Transformer) Transform(races []*model.RaceRecord) (res *model.TransformResult) {
	start := time.Now()
	res = &model.TransformResult{
		RunID:        uuid.NewString(),
		SourceRaces:  len(races),
		IgnoredRaces: make([]model.IgnoredRace, 0),
		Warnings:     make([]string, 0),
		Errors:       make([]string, 0),
	}
	defer func() {
		if r := recover(); r != nil {
			t.l.Error("transformation failed", log.Any("cause", r))
			res.Errors = append(res.Errors, fmt.Sprintf("transformation failed: %v", r))
			res.Bests = model.NewDriverBests()
		}
		res.Duration = time.Since(start)
	}()

	candidates := t.buildRecords(races, res)
	res.ProcessedRaces = len(candidates)
	res.Bests = t.aggregate(candidates, res)
	t.l.Info("transform done",
		log.String("runId", res.RunID),
		log.Int("sourceRaces", res.SourceRaces),
		log.Int("processedRaces", res.ProcessedRaces),
		log.Int("ignoredRaces", len(res.IgnoredRaces)),
		log.Duration("duration", time.Since(start)))
	return res
}

// buildRecords applies the transform filters and converts each
// remaining race into a candidate record, preserving input order.
func (t *Transformer) buildRecords(
	races []*model.RaceRecord,
	res *model.TransformResult,
) []*model.PersonalBestRecord {
	ret := make([]*model.PersonalBestRecord, 0, len(races))
	for _, race := range races {
		date, err := parseRaceDate(race.Date)
		if err != nil {
			t.ignore(res, race.ID, fmt.Sprintf("unparsable race date %q", race.Date))
			continue
		}
		if reason := t.filterReason(race, date); reason != "" {
			t.ignore(res, race.ID, reason)
			continue
		}
		layout := track.Identify(race)
		if layout == nil {
			t.ignore(res, race.ID, "no track layout")
			continue
		}
		lapFormatted, lapMs := DriverFastestLap(race)
		rec := BuildRecord(race, layout, date, lapFormatted, lapMs)
		if rec == nil {
			t.ignore(res, race.ID, "no valid lap time")
			continue
		}
		ret = append(ret, rec)
	}
	return ret
}

func (t *Transformer) ignore(res *model.TransformResult, raceID, reason string) {
	t.l.Debug("race ignored", log.String("raceId", raceID), log.String("reason", reason))
	res.IgnoredRaces = append(res.IgnoredRaces, model.IgnoredRace{RaceID: raceID, Reason: reason})
}

// filterReason checks the configured transform filters.
// An empty return means the race is kept.
func (t *Transformer) filterReason(race *model.RaceRecord, date time.Time) string {
	f := t.cfg.Filters
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, race.Category) {
		return fmt.Sprintf("category %s excluded by filter", race.Category)
	}
	if len(f.Series) > 0 && !slices.Contains(f.Series, race.SeriesName) {
		return fmt.Sprintf("series %s excluded by filter", race.SeriesName)
	}
	if f.DateFrom != nil && date.Before(*f.DateFrom) {
		return fmt.Sprintf("race date %s before filter start", race.Date)
	}
	if f.DateTo != nil && date.After(*f.DateTo) {
		return fmt.Sprintf("race date %s after filter end", race.Date)
	}
	if f.MinStrengthOfField > 0 && race.StrengthOfField < f.MinStrengthOfField {
		return fmt.Sprintf("strength of field %d below minimum %d",
			race.StrengthOfField, f.MinStrengthOfField)
	}
	return ""
}

func parseRaceDate(arg string) (time.Time, error) {
	if ret, err := time.Parse(time.RFC3339, arg); err == nil {
		return ret, nil
	}
	return time.Parse("2006-01-02", arg)
}

// aggregate performs the three stage fold: group candidates by track
// layout, select the best record per car and compute the layout/series
// rollups. Each stage constructs new maps, nothing is mutated in place.
func (t *Transformer) aggregate(
	records []*model.PersonalBestRecord,
	res *model.TransformResult,
) *model.DriverBests {
	ret := model.NewDriverBests()
	if len(records) == 0 {
		return ret
	}

	// stage 1: layout buckets in first-seen order
	buckets := make(map[string][]*model.PersonalBestRecord)
	keyOrder := make([]string, 0)
	for _, r := range records {
		if _, ok := buckets[r.LayoutKey]; !ok {
			keyOrder = append(keyOrder, r.LayoutKey)
		}
		buckets[r.LayoutKey] = append(buckets[r.LayoutKey], r)
	}

	// stage 2: best per car, grouped by the series of the first car winner
	layoutsBySeries := make(map[string][]*model.TrackLayoutBests)
	seriesOrder := make([]string, 0)
	for _, key := range keyOrder {
		bucket := buckets[key]
		if minRaces := t.cfg.Filters.MinRaces; minRaces > 0 && len(bucket) < minRaces {
			warning := fmt.Sprintf("layout %s dropped: %d races below minimum %d",
				key, len(bucket), minRaces)
			t.l.Warn("layout dropped", log.String("layout", key), log.Int("races", len(bucket)))
			res.Warnings = append(res.Warnings, warning)
			continue
		}
		layoutBests, firstWinner := buildLayoutBests(bucket)
		series := firstWinner.SeriesName
		if _, ok := layoutsBySeries[series]; !ok {
			seriesOrder = append(seriesOrder, series)
		}
		layoutsBySeries[series] = append(layoutsBySeries[series], layoutBests)
	}

	// stage 3: series and driver rollups
	allCars := make([]string, 0)
	for _, series := range seriesOrder {
		sb := buildSeriesBests(series, layoutsBySeries[series])
		ret.Series[series] = sb
		ret.TotalRaces += sb.TotalRaces
		ret.TotalTrackLayouts += sb.TotalTrackLayouts
		for _, lb := range layoutsBySeries[series] {
			for car, rec := range lb.Records {
				allCars = append(allCars, car)
				if !lapBeats(rec.FastestLapMs, ret.FastestLapMs) {
					continue
				}
				ret.FastestLapMs = rec.FastestLapMs
				ret.FastestLap = rec.FastestLap
				ret.FastestTrack = rec.TrackName
				ret.FastestCar = rec.CarName
			}
		}
	}
	ret.TotalSeries = len(ret.Series)
	ret.TotalCars = len(lo.Uniq(allCars))
	return ret
}

// buildLayoutBests selects the best record per car within one layout
// bucket. Exact lap time ties keep the record seen first in input
// order; this makes repeated runs on the same input idempotent.
func buildLayoutBests(
	bucket []*model.PersonalBestRecord,
) (*model.TrackLayoutBests, *model.PersonalBestRecord) {
	perCar := make(map[string]*model.PersonalBestRecord)
	carOrder := make([]string, 0)
	for _, r := range bucket {
		cur, ok := perCar[r.CarName]
		if !ok {
			perCar[r.CarName] = r
			carOrder = append(carOrder, r.CarName)
			continue
		}
		if r.FastestLapMs < cur.FastestLapMs {
			perCar[r.CarName] = r
		}
	}
	first := bucket[0]
	ret := &model.TrackLayoutBests{
		TrackID:    first.TrackID,
		TrackName:  first.TrackName,
		ConfigName: first.ConfigName,
		LayoutKey:  first.LayoutKey,
		Records:    perCar,
		TotalRaces: len(bucket),
		FastestLap: model.LapTimeUnknown,
	}
	for _, car := range carOrder {
		w := perCar[car]
		if lapBeats(w.FastestLapMs, ret.FastestLapMs) {
			ret.FastestLapMs = w.FastestLapMs
			ret.FastestLap = w.FastestLap
		}
		if w.Date.After(ret.MostRecentRace) {
			ret.MostRecentRace = w.Date
		}
	}
	return ret, perCar[carOrder[0]]
}

func buildSeriesBests(series string, layouts []*model.TrackLayoutBests) *model.SeriesBests {
	ret := &model.SeriesBests{
		SeriesName: series,
		Layouts:    make(map[string]*model.TrackLayoutBests),
		FastestLap: model.LapTimeUnknown,
	}
	winners := make([]*model.PersonalBestRecord, 0)
	for _, lb := range layouts {
		ret.Layouts[lb.LayoutKey] = lb
		ret.TotalRaces += lb.TotalRaces
		if lapBeats(lb.FastestLapMs, ret.FastestLapMs) {
			ret.FastestLapMs = lb.FastestLapMs
			ret.FastestLap = lb.FastestLap
		}
		winners = append(winners, lo.Values(lb.Records)...)
	}
	ret.TotalTrackLayouts = len(layouts)
	ret.TotalCars = len(lo.Uniq(lo.Map(winners,
		func(r *model.PersonalBestRecord, _ int) string { return r.CarName })))
	if len(winners) > 0 {
		sum := lo.SumBy(winners,
			func(r *model.PersonalBestRecord) int { return r.StrengthOfField })
		ret.AvgStrengthOfField = float64(sum) / float64(len(winners))
	}
	return ret
}

// lapBeats reports whether candidate is a better lap than current,
// treating a zero current as "nothing recorded yet".
func lapBeats(candidate, current int64) bool {
	return current == 0 || candidate < current
}
