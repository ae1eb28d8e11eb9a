package config

import "time"

// Application constants for the M5 data preparation tools
const (
	AppName    = "m5cli"
	AppVersion = "1.0.0"

	// Default directories (relative to the working directory)
	DefaultDataDir    = "data"
	DefaultResultsDir = "results"
	DefaultModelsDir  = "models"
	DefaultLogsDir    = "logs"

	// M5 competition input files
	CalendarFile             = "calendar.csv"
	SalesTrainValidationFile = "sales_train_validation.csv"
	SalesTrainEvaluationFile = "sales_train_evaluation.csv"
	SellPricesFile           = "sell_prices.csv"
	SampleSubmissionFile     = "sample_submission.csv"

	// M5 competition periods
	ForecastHorizon = 28 // days to forecast
	ValidationDays  = 28 // validation period length

	// Cross-validation settings for downstream modeling
	CVSplits = 5
	CVGap    = 0

	// Hyperparameter optimization budget
	OptimizationTrials  = 100
	OptimizationTimeout = time.Hour
)

// Feature engineering defaults shared by downstream modeling code
var (
	LagFeatures        = []int{1, 2, 3, 7, 14, 21, 28}
	RollingWindowSizes = []int{7, 14, 28}
	RollingStats       = []string{"mean", "std", "min", "max"}

	// EvaluationMetrics are the metric names reported by model evaluation
	EvaluationMetrics = []string{"mae", "mse", "rmse", "mape", "smape"}
)

// ARIMAConfig holds ARIMA model search bounds
type ARIMAConfig struct {
	MaxP     int  `yaml:"max_p"`
	MaxD     int  `yaml:"max_d"`
	MaxQ     int  `yaml:"max_q"`
	Seasonal bool `yaml:"seasonal"`
	M        int  `yaml:"m"`
}

// ProphetConfig holds Prophet seasonality settings
type ProphetConfig struct {
	YearlySeasonality bool   `yaml:"yearly_seasonality"`
	WeeklySeasonality bool   `yaml:"weekly_seasonality"`
	DailySeasonality  bool   `yaml:"daily_seasonality"`
	SeasonalityMode   string `yaml:"seasonality_mode"`
}

// LightGBMConfig holds gradient boosting hyperparameters
type LightGBMConfig struct {
	Objective       string  `yaml:"objective"`
	Metric          string  `yaml:"metric"`
	BoostingType    string  `yaml:"boosting_type"`
	NumLeaves       int     `yaml:"num_leaves"`
	LearningRate    float64 `yaml:"learning_rate"`
	FeatureFraction float64 `yaml:"feature_fraction"`
}

// ModelsConfig bundles the per-model hyperparameter presets
type ModelsConfig struct {
	ARIMA    ARIMAConfig    `yaml:"arima"`
	Prophet  ProphetConfig  `yaml:"prophet"`
	LightGBM LightGBMConfig `yaml:"lightgbm"`
}

// DefaultModels returns the model hyperparameter presets. These are static
// configuration consumed by downstream modeling code, not by the loader.
func DefaultModels() ModelsConfig {
	return ModelsConfig{
		ARIMA: ARIMAConfig{
			MaxP:     5,
			MaxD:     2,
			MaxQ:     5,
			Seasonal: true,
			M:        7, // weekly seasonality
		},
		Prophet: ProphetConfig{
			YearlySeasonality: true,
			WeeklySeasonality: true,
			DailySeasonality:  false,
			SeasonalityMode:   "multiplicative",
		},
		LightGBM: LightGBMConfig{
			Objective:       "regression",
			Metric:          "rmse",
			BoostingType:    "gbdt",
			NumLeaves:       31,
			LearningRate:    0.05,
			FeatureFraction: 0.9,
		},
	}
}
