// Package config provides configuration management for the prediction
// engine.
package config

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Store       StoreConfig       `mapstructure:"store"`
	Injury      InjuryConfig      `mapstructure:"injury"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Backtest    BacktestConfig    `mapstructure:"backtest"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	// SecretsName, when set, overlays secrets from AWS Secrets Manager.
	SecretsName string `mapstructure:"secrets_name"`
	AWSRegion   string `mapstructure:"aws_region"`
}

// CacheConfig configures the prediction lock.
type CacheConfig struct {
	TTLMinutes      int `mapstructure:"ttl_minutes" validate:"required,gt=0"`
	MaxSize         int `mapstructure:"max_size" validate:"required,gt=0"`
	DebounceMillis  int `mapstructure:"debounce_millis" validate:"gte=0"`
	PersistInterval int `mapstructure:"persist_interval_seconds" validate:"gte=0"`
}

// StoreConfig selects the persistence backend for the cache.
type StoreConfig struct {
	// Backend is "memory", "sqlite" or "postgres".
	Backend string `mapstructure:"backend" validate:"omitempty,storebackend"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path"`

	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// InjuryConfig configures the external injury-report provider. An empty
// URL disables the provider; the record-derived fallback is used.
type InjuryConfig struct {
	URL            string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// CalibrationConfig configures the confidence-calibration loop.
type CalibrationConfig struct {
	WindowSize     int     `mapstructure:"window_size" validate:"gte=0"`
	MinSamples     int     `mapstructure:"min_samples" validate:"gte=0"`
	PauseThreshold float64 `mapstructure:"pause_threshold" validate:"gte=0,lte=1"`
}

// BacktestConfig configures the backtest CLI defaults.
type BacktestConfig struct {
	InitialBankroll      float64 `mapstructure:"initial_bankroll" validate:"gt=0"`
	StakingPlan          string  `mapstructure:"staking_plan" validate:"omitempty,oneof=flat percentage kelly"`
	FlatStake            float64 `mapstructure:"flat_stake" validate:"gte=0"`
	StakePercent         float64 `mapstructure:"stake_percent" validate:"gte=0,lte=1"`
	KellyFraction        float64 `mapstructure:"kelly_fraction" validate:"gte=0,lte=1"`
	MinConfidence        float64 `mapstructure:"min_confidence" validate:"gte=0,lte=100"`
	CommissionRate       float64 `mapstructure:"commission_rate" validate:"gte=0,lte=0.1"`
	MonteCarloIterations int     `mapstructure:"monte_carlo_iterations" validate:"gte=0"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}
