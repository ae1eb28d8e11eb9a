package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "results", cfg.Paths.ResultsDir)
	assert.Equal(t, "calendar.csv", cfg.Files.Calendar)
	assert.Equal(t, "sales_train_validation.csv", cfg.Files.SalesValidation)
	assert.Equal(t, "sales_train_evaluation.csv", cfg.Files.SalesEvaluation)
	assert.Equal(t, 28, cfg.Forecast.Horizon)
	assert.Equal(t, []int{1, 2, 3, 7, 14, 21, 28}, cfg.Forecast.LagFeatures)

	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("M5_PATHS_DATA_DIR", "/tmp/m5-fixtures")
	t.Setenv("M5_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/m5-fixtures", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults
	assert.Equal(t, "sell_prices.csv", cfg.Files.SellPrices)
}

func TestLoad_InvalidLevelRejected(t *testing.T) {
	t.Setenv("M5_LOGGING_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_FileOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	yaml := []byte("paths:\n  data_dir: fixtures/m5\nfiles:\n  calendar: cal.csv\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), yaml, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fixtures/m5", cfg.Paths.DataDir)
	assert.Equal(t, "cal.csv", cfg.Files.Calendar)
	// Fields absent from the file keep defaults
	assert.Equal(t, "sample_submission.csv", cfg.Files.SampleSubmission)
}

func TestFileKeys(t *testing.T) {
	cfg := Default()
	keys := cfg.FileKeys()

	assert.Len(t, keys, 5)
	assert.Equal(t, "calendar.csv", keys["calendar"])
	assert.Equal(t, "sales_train_validation.csv", keys["sales_train_validation"])
	assert.Equal(t, "sales_train_evaluation.csv", keys["sales_train_evaluation"])
}

func TestResultsPath(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("results", "melted.csv"), cfg.ResultsPath("melted.csv"))
	assert.Equal(t, "/abs/out.csv", cfg.ResultsPath("/abs/out.csv"))
}

func TestDefaultModels(t *testing.T) {
	models := DefaultModels()

	assert.Equal(t, 5, models.ARIMA.MaxP)
	assert.Equal(t, 7, models.ARIMA.M)
	assert.Equal(t, "multiplicative", models.Prophet.SeasonalityMode)
	assert.Equal(t, "rmse", models.LightGBM.Metric)
	assert.InDelta(t, 0.05, models.LightGBM.LearningRate, 1e-9)
}
