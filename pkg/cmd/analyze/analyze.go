package analyze

import (
	"fmt"
	"os"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/iracing-bests-go/log"
	"github.com/mpapenbr/iracing-bests-go/pkg/config"
	"github.com/mpapenbr/iracing-bests-go/pkg/model"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/analysis"
	"github.com/mpapenbr/iracing-bests-go/pkg/processing/bests"
)

var (
	categories []string
	series     []string
	dateFrom   string
	dateTo     string
	minSof     int
	minRaces   int
)

//nolint:funlen // flag definitions
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <race-file>",
		Short: "computes personal bests and skill equivalency from race results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0])
		},
	}
	cmd.Flags().StringVarP(&config.Output,
		"output",
		"o",
		"",
		"write the result to this file (default: stdout)")
	cmd.Flags().StringVar(&config.AnalysisConfigFile,
		"analysis-config",
		"",
		"path to a yaml file with analysis tuning values")
	cmd.Flags().IntVar(&config.CurrentRating,
		"current-rating",
		0,
		"current iRating of the driver (used by the skill equivalency analysis)")
	cmd.Flags().BoolVar(&config.RunAnalysis,
		"with-analysis",
		false,
		"run the skill equivalency analysis on every personal best record")
	cmd.Flags().IntVar(&config.Workers,
		"workers",
		0,
		"number of workers for the batch analysis (default: number of CPUs)")
	cmd.Flags().StringSliceVar(&categories,
		"category",
		nil,
		"only include races of these categories")
	cmd.Flags().StringSliceVar(&series,
		"series",
		nil,
		"only include races of these series")
	cmd.Flags().StringVar(&dateFrom,
		"date-from",
		"",
		"only include races on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateTo,
		"date-to",
		"",
		"only include races on or before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&minSof,
		"min-sof",
		0,
		"only include races with at least this strength of field")
	cmd.Flags().IntVar(&minRaces,
		"min-races",
		0,
		"drop track layouts with fewer races than this")
	return cmd
}

func runAnalyze(raceFile string) error {
	logger, err := setupLogger()
	if err != nil {
		return err
	}
	log.ResetDefault(logger)

	cfg, err := resolveAnalysisConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(raceFile)
	if err != nil {
		return fmt.Errorf("could not read race file: %w", err)
	}
	var races []*model.RaceRecord
	if err := oj.Unmarshal(data, &races); err != nil {
		return fmt.Errorf("could not parse race file: %w", err)
	}
	log.Info("races loaded",
		log.String("file", raceFile),
		log.Int("races", len(races)))

	transformer := bests.NewTransformer(cfg)
	result := transformer.Transform(races)
	for _, warning := range result.Warnings {
		log.Warn(warning)
	}

	if config.RunAnalysis {
		batch := analysis.NewBatchAnalyzer(cfg, config.CurrentRating,
			analysis.WithWorkers(config.Workers))
		summary := batch.Run(result.Bests, races)
		log.Info("analysis summary",
			log.Int("analyzed", summary.Analyzed),
			log.Int("failed", summary.Failed))
	}

	return writeResult(result)
}

func setupLogger() (*log.Logger, error) {
	if config.LogConfig != "" {
		logCfg, err := log.LoadConfig(config.LogConfig)
		if err != nil {
			return nil, fmt.Errorf("could not read log config: %w", err)
		}
		return log.NewWithConfig(os.Stderr, logCfg, log.WithCaller(true))
	}
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if config.LogFormat == "json" {
		return log.New(os.Stderr, level, log.WithCaller(true)), nil
	}
	return log.DevLogger(os.Stderr, level, log.WithCaller(true)), nil
}

func resolveAnalysisConfig() (*config.AnalysisConfig, error) {
	cfg := config.DefaultAnalysisConfig()
	if config.AnalysisConfigFile != "" {
		var err error
		if cfg, err = config.LoadAnalysisConfig(config.AnalysisConfigFile); err != nil {
			return nil, fmt.Errorf("could not load analysis config: %w", err)
		}
	}
	if len(categories) > 0 {
		cfg.Filters.Categories = categories
	}
	if len(series) > 0 {
		cfg.Filters.Series = series
	}
	if minSof > 0 {
		cfg.Filters.MinStrengthOfField = minSof
	}
	if minRaces > 0 {
		cfg.Filters.MinRaces = minRaces
	}
	if dateFrom != "" {
		from, err := parseFilterDate(dateFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid date-from: %w", err)
		}
		cfg.Filters.DateFrom = &from
	}
	if dateTo != "" {
		to, err := parseFilterDate(dateTo)
		if err != nil {
			return nil, fmt.Errorf("invalid date-to: %w", err)
		}
		cfg.Filters.DateTo = &to
	}
	return cfg, nil
}

func parseFilterDate(arg string) (time.Time, error) {
	if ret, err := time.Parse(time.RFC3339, arg); err == nil {
		return ret, nil
	}
	return time.Parse("2006-01-02", arg)
}

func writeResult(result *model.TransformResult) error {
	out, err := oj.Marshal(result, 2)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}
	if config.Output == "" {
		fmt.Println(string(out))
		return nil
	}
	//nolint:gosec // result file, no secrets
	if err := os.WriteFile(config.Output, out, 0o644); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	log.Info("result written", log.String("file", config.Output))
	return nil
}
