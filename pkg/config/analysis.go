package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// ConfidenceWeights describes how the three confidence factors are
// combined. The weights must sum to 1.
type ConfidenceWeights struct {
	FieldSize     float64 `mapstructure:"fieldSize" yaml:"fieldSize"`
	FieldStrength float64 `mapstructure:"fieldStrength" yaml:"fieldStrength"`
	DataQuality   float64 `mapstructure:"dataQuality" yaml:"dataQuality"`
}

// FilterOptions are applied before any race enters the aggregation.
// Zero values disable the corresponding filter.
type FilterOptions struct {
	Categories         []string   `mapstructure:"categories" yaml:"categories"`
	Series             []string   `mapstructure:"series" yaml:"series"`
	DateFrom           *time.Time `mapstructure:"dateFrom" yaml:"dateFrom"`
	DateTo             *time.Time `mapstructure:"dateTo" yaml:"dateTo"`
	MinStrengthOfField int        `mapstructure:"minStrengthOfField" yaml:"minStrengthOfField"`
	MinRaces           int        `mapstructure:"minRaces" yaml:"minRaces"`
}

// AnalysisConfig holds all tunable values of the transformation and the
// skill equivalency analysis.
type AnalysisConfig struct {
	// minimum number of participants with usable lap data for a field analysis
	MinFieldSize int `mapstructure:"minFieldSize" yaml:"minFieldSize"`
	// below this SoF the confidence factor for field strength is 0
	MinStrengthOfField int `mapstructure:"minStrengthOfField" yaml:"minStrengthOfField"`
	// at this SoF the confidence factor for field strength saturates
	FullConfidenceSOF int `mapstructure:"fullConfidenceSof" yaml:"fullConfidenceSof"`
	// at this field size the confidence factor for field size saturates
	FullConfidenceFieldSize int `mapstructure:"fullConfidenceFieldSize" yaml:"fullConfidenceFieldSize"`
	// multiplier per performance level used for the rating estimate
	PercentileMultipliers map[string]float64 `mapstructure:"percentileMultipliers" yaml:"percentileMultipliers"`
	// clamp bounds for the estimated rating
	MinIRating int `mapstructure:"minIRating" yaml:"minIRating"`
	MaxIRating int `mapstructure:"maxIRating" yaml:"maxIRating"`

	ConfidenceWeights ConfidenceWeights `mapstructure:"confidenceWeights" yaml:"confidenceWeights"`
	Filters           FilterOptions     `mapstructure:"filters" yaml:"filters"`
}

func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		MinFieldSize:            5,
		MinStrengthOfField:      1000,
		FullConfidenceSOF:       3000,
		FullConfidenceFieldSize: 20,
		PercentileMultipliers: map[string]float64{
			"Elite":         1.25,
			"Excellent":     1.15,
			"Strong":        1.05,
			"Average":       0.95,
			"Below Average": 0.85,
			"Struggling":    0.75,
		},
		MinIRating: 350,
		MaxIRating: 12000,
		ConfidenceWeights: ConfidenceWeights{
			FieldSize:     0.4,
			FieldStrength: 0.3,
			DataQuality:   0.3,
		},
	}
}

// LoadAnalysisConfig reads an AnalysisConfig from a yaml file.
// Values not present in the file keep their defaults.
func LoadAnalysisConfig(fileName string) (*AnalysisConfig, error) {
	ret := DefaultAnalysisConfig()
	v := viper.New()
	v.SetConfigFile(fileName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	decodeTime := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(ret, decodeTime); err != nil {
		return nil, err
	}
	ret.PercentileMultipliers = normalizeMultipliers(ret.PercentileMultipliers)
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

var canonicalLevels = []string{
	"Elite", "Excellent", "Strong", "Average", "Below Average", "Struggling",
}

// viper lowercases configuration keys; map them back to the canonical
// performance level labels used during estimation.
func normalizeMultipliers(in map[string]float64) map[string]float64 {
	ret := make(map[string]float64, len(in))
	for k, v := range in {
		key := k
		for _, c := range canonicalLevels {
			if strings.EqualFold(k, c) {
				key = c
				break
			}
		}
		ret[key] = v
	}
	return ret
}

func (c *AnalysisConfig) Validate() error {
	if c.MinFieldSize < 1 {
		return errors.New("minFieldSize must be at least 1")
	}
	if c.MinIRating >= c.MaxIRating {
		return fmt.Errorf("invalid rating clamp [%d,%d]", c.MinIRating, c.MaxIRating)
	}
	if c.MinStrengthOfField >= c.FullConfidenceSOF {
		return fmt.Errorf("invalid sof ramp [%d,%d]",
			c.MinStrengthOfField, c.FullConfidenceSOF)
	}
	for k, m := range c.PercentileMultipliers {
		if m <= 0 {
			return fmt.Errorf("multiplier for %s must be positive", k)
		}
	}
	w := c.ConfidenceWeights
	sum := w.FieldSize + w.FieldStrength + w.DataQuality
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("confidence weights must sum to 1, got %.4f", sum)
	}
	return nil
}
