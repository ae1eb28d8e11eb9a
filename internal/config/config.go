package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Files    FilesConfig    `yaml:"files" envconfig:"FILES"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR" default:"results" validate:"required"`
	ModelsDir  string `yaml:"models_dir" envconfig:"MODELS_DIR" default:"models" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// FilesConfig names the five M5 input files inside the data directory.
// Kept configurable so the loader can run against fixture directories.
type FilesConfig struct {
	Calendar         string `yaml:"calendar" envconfig:"CALENDAR" default:"calendar.csv" validate:"required"`
	SalesValidation  string `yaml:"sales_validation" envconfig:"SALES_VALIDATION" default:"sales_train_validation.csv" validate:"required"`
	SalesEvaluation  string `yaml:"sales_evaluation" envconfig:"SALES_EVALUATION" default:"sales_train_evaluation.csv" validate:"required"`
	SellPrices       string `yaml:"sell_prices" envconfig:"SELL_PRICES" default:"sell_prices.csv" validate:"required"`
	SampleSubmission string `yaml:"sample_submission" envconfig:"SAMPLE_SUBMISSION" default:"sample_submission.csv" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/m5.log"`
}

// ServerConfig contains HTTP server configuration for the diagnostics API
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// ForecastConfig carries the modeling defaults consumed downstream. The
// loader itself only reads Paths and Files; these travel with the config
// so every tool sees the same horizon and feature windows.
type ForecastConfig struct {
	Horizon        int   `yaml:"horizon" envconfig:"HORIZON" default:"28" validate:"gt=0"`
	ValidationDays int   `yaml:"validation_days" envconfig:"VALIDATION_DAYS" default:"28" validate:"gt=0"`
	LagFeatures    []int `yaml:"lag_features" envconfig:"LAG_FEATURES" default:"1,2,3,7,14,21,28"`
	RollingWindows []int `yaml:"rolling_windows" envconfig:"ROLLING_WINDOWS" default:"7,14,28"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Environment variables first, prefixed M5_
	if err := envconfig.Process("M5", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Overlay from config file if one exists
	if configFile := findConfigFile(); configFile != "" {
		if err := overlayFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overlayFromFile merges YAML file values over cfg. File values win for
// fields the file actually sets; everything else keeps env/default values.
func overlayFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration with struct tag rules
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// FileKeys returns the file-key lookup the loader is constructed with.
func (c *Config) FileKeys() map[string]string {
	return map[string]string{
		"calendar":               c.Files.Calendar,
		"sales_train_validation": c.Files.SalesValidation,
		"sales_train_evaluation": c.Files.SalesEvaluation,
		"sell_prices":            c.Files.SellPrices,
		"sample_submission":      c.Files.SampleSubmission,
	}
}

// ResultsPath resolves a file name inside the results directory.
func (c *Config) ResultsPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.Paths.ResultsDir, filename)
}

// findConfigFile returns the path to the config file, if any
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ResultsDir: DefaultResultsDir,
			ModelsDir:  DefaultModelsDir,
			LogsDir:    DefaultLogsDir,
		},
		Files: FilesConfig{
			Calendar:         CalendarFile,
			SalesValidation:  SalesTrainValidationFile,
			SalesEvaluation:  SalesTrainEvaluationFile,
			SellPrices:       SellPricesFile,
			SampleSubmission: SampleSubmissionFile,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/m5.log",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Forecast: ForecastConfig{
			Horizon:        ForecastHorizon,
			ValidationDays: ValidationDays,
			LagFeatures:    append([]int(nil), LagFeatures...),
			RollingWindows: append([]int(nil), RollingWindowSizes...),
		},
	}
}
