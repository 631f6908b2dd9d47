package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// ClassifyDelta compares an estimated rating against the current rating
// and assigns one of seven qualitative bands. The percentage is rounded
// to two decimals before classification. A zero current rating
// short-circuits to a pure sign check to avoid a division by zero.
func ClassifyDelta(estimated, current int) *model.RatingDelta {
	delta := estimated - current
	ret := &model.RatingDelta{
		EstimatedRating: estimated,
		CurrentRating:   current,
		Delta:           delta,
	}
	if current == 0 {
		switch {
		case delta > 0:
			ret.Assessment = model.SignificantlyAbove
		case delta < 0:
			ret.Assessment = model.SignificantlyBelow
		default:
			ret.Assessment = model.Consistent
		}
		return ret
	}
	percent := decimal.NewFromInt(int64(delta)).
		Div(decimal.NewFromInt(int64(current))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	ret.Percent = percent.InexactFloat64()
	ret.Assessment = assessDelta(ret.Percent)
	return ret
}

func assessDelta(percent float64) model.DeltaAssessment {
	switch {
	case percent >= 15:
		return model.SignificantlyAbove
	case percent >= 5:
		return model.ModeratelyAbove
	case percent >= 1:
		return model.SlightlyAbove
	case percent >= -1:
		return model.Consistent
	case percent >= -5:
		return model.SlightlyBelow
	case percent >= -15:
		return model.ModeratelyBelow
	default:
		return model.SignificantlyBelow
	}
}
