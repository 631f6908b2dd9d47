package analysis

import (
	"errors"
	"slices"
	"sort"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// ErrEmptyField signals a contract violation: callers must gate the
// field size (AnalyzeField) before ranking a lap.
var ErrEmptyField = errors.New("cannot rank lap time against an empty field")

// CalcPacePercentile ranks a lap time against the field's lap times.
// Rank based, not interpolated: percentile = (n - idx) / n * 100 where
// idx is the first slot whose time is >= the lap. Ties take the
// earliest slot, giving the benefit of the tie to the faster
// interpretation. A single entrant field always yields 100.
func CalcPacePercentile(lapMs int64, fieldMs []int64) (*model.PacePercentile, error) {
	if len(fieldMs) == 0 {
		return nil, ErrEmptyField
	}
	times := slices.Clone(fieldMs)
	slices.Sort(times)
	n := len(times)
	idx := sort.Search(n, func(i int) bool { return times[i] >= lapMs })
	percentile := float64(n-idx) / float64(n) * 100
	percentile = max(0, min(100, percentile))
	return &model.PacePercentile{
		Percentile:    percentile,
		FieldPosition: idx + 1,
		TotalDrivers:  n,
		Level:         levelFor(percentile),
	}, nil
}

func levelFor(percentile float64) model.PerformanceLevel {
	switch {
	case percentile >= 95:
		return model.LevelElite
	case percentile >= 90:
		return model.LevelExcellent
	case percentile >= 75:
		return model.LevelStrong
	case percentile >= 25:
		return model.LevelAverage
	case percentile >= 10:
		return model.LevelBelowAverage
	default:
		return model.LevelStruggling
	}
}
