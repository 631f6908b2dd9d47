package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/iracing-bests-go/pkg/config"
)

func writeAnalysisConfig(t *testing.T, content string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), "analysis.yml")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0o600))
	return fileName
}

// the resolver reads package level flag vars; restore them after each test
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		config.AnalysisConfigFile = ""
		categories = nil
		series = nil
		dateFrom = ""
		dateTo = ""
		minSof = 0
		minRaces = 0
	})
}

func TestResolveAnalysisConfigKeepsFileFilters(t *testing.T) {
	resetFlags(t)
	config.AnalysisConfigFile = writeAnalysisConfig(t, `
filters:
  categories:
    - Sports Car
  series:
    - GT Sprint
`)
	cfg, err := resolveAnalysisConfig()
	require.NoError(t, err)
	// unset flags must not clear the file-loaded filters
	assert.Equal(t, []string{"Sports Car"}, cfg.Filters.Categories)
	assert.Equal(t, []string{"GT Sprint"}, cfg.Filters.Series)
}

func TestResolveAnalysisConfigFlagsOverrideFile(t *testing.T) {
	resetFlags(t)
	config.AnalysisConfigFile = writeAnalysisConfig(t, `
filters:
  categories:
    - Sports Car
  minStrengthOfField: 1500
`)
	categories = []string{"Formula Car"}
	minSof = 2000

	cfg, err := resolveAnalysisConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"Formula Car"}, cfg.Filters.Categories)
	assert.Equal(t, 2000, cfg.Filters.MinStrengthOfField)
}

func TestResolveAnalysisConfigWithoutFile(t *testing.T) {
	resetFlags(t)
	series = []string{"GT Sprint"}
	minRaces = 2

	cfg, err := resolveAnalysisConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"GT Sprint"}, cfg.Filters.Series)
	assert.Equal(t, 2, cfg.Filters.MinRaces)
	assert.Empty(t, cfg.Filters.Categories)
}

func TestResolveAnalysisConfigDateFlags(t *testing.T) {
	resetFlags(t)
	dateFrom = "2025-01-01"
	dateTo = "2025-06-30"

	cfg, err := resolveAnalysisConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Filters.DateFrom)
	require.NotNil(t, cfg.Filters.DateTo)
	assert.Equal(t, 2025, cfg.Filters.DateFrom.Year())
	assert.True(t, cfg.Filters.DateFrom.Before(*cfg.Filters.DateTo))
}

func TestResolveAnalysisConfigInvalidDate(t *testing.T) {
	resetFlags(t)
	dateFrom = "not-a-date"

	_, err := resolveAnalysisConfig()
	assert.ErrorContains(t, err, "invalid date-from")
}
