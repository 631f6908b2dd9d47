package analysis

import (
	"math"

	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// EstimateMethod names the algorithm used for the estimate.
const EstimateMethod = "sof_percentile"

// EstimateSkill converts a pace percentile and the field strength into
// an estimated rating with a confidence score.
func EstimateSkill(
	pace *model.PacePercentile,
	sof int,
	field *model.FieldAnalysis,
	cfg *config.AnalysisConfig,
) *model.SkillEquivalency {
	multiplier, ok := cfg.PercentileMultipliers[string(pace.Level)]
	if !ok {
		multiplier = 1.0
	}
	estimated := int(math.Round(float64(sof) * multiplier))
	estimated = max(cfg.MinIRating, min(cfg.MaxIRating, estimated))

	factors := model.ConfidenceFactors{
		FieldSize:     fieldSizeFactor(field.ValidParticipants, cfg),
		FieldStrength: fieldStrengthFactor(sof, cfg),
		DataQuality:   dataQualityFactor(field),
	}
	w := cfg.ConfidenceWeights
	confidence := w.FieldSize*factors.FieldSize +
		w.FieldStrength*factors.FieldStrength +
		w.DataQuality*factors.DataQuality
	confidence = max(0, min(100, confidence))

	return &model.SkillEquivalency{
		EstimatedRating: estimated,
		Confidence:      confidence,
		Factors:         factors,
		Method:          EstimateMethod,
	}
}

// saturates at the configured full confidence field size
func fieldSizeFactor(validParticipants int, cfg *config.AnalysisConfig) float64 {
	ratio := float64(validParticipants) / float64(cfg.FullConfidenceFieldSize)
	return min(1, ratio) * 100
}

// linear ramp between the minimum meaningful SoF and the high SoF ceiling
func fieldStrengthFactor(sof int, cfg *config.AnalysisConfig) float64 {
	if sof <= cfg.MinStrengthOfField {
		return 0
	}
	ratio := float64(sof-cfg.MinStrengthOfField) /
		float64(cfg.FullConfidenceSOF-cfg.MinStrengthOfField)
	return min(1, ratio) * 100
}

// fraction of participants with usable lap data
func dataQualityFactor(field *model.FieldAnalysis) float64 {
	if field.TotalParticipants == 0 {
		return 0
	}
	return float64(field.ValidParticipants) / float64(field.TotalParticipants) * 100
}
