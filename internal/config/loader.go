// Package config provides configuration management for the prediction
// engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields. A missing config file is not an error; defaults and environment
// variables alone produce a usable configuration.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("BETSMART")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bet-smart")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.debounce_millis", 1000)
	v.SetDefault("cache.persist_interval_seconds", 300)

	v.SetDefault("store.backend", "sqlite")
	v.SetDefault("store.path", "betsmart.db")
	v.SetDefault("store.ssl_mode", "disable")
	v.SetDefault("store.max_connections", 10)

	v.SetDefault("injury.timeout_seconds", 5)
	v.SetDefault("injury.max_retries", 3)
	v.SetDefault("injury.rate_limit", 2.0)

	v.SetDefault("calibration.window_size", 40)
	v.SetDefault("calibration.min_samples", 10)
	v.SetDefault("calibration.pause_threshold", 0.45)

	v.SetDefault("backtest.initial_bankroll", 1000.0)
	v.SetDefault("backtest.staking_plan", "flat")
	v.SetDefault("backtest.flat_stake", 10.0)
	v.SetDefault("backtest.stake_percent", 0.02)
	v.SetDefault("backtest.kelly_fraction", 0.25)
	v.SetDefault("backtest.min_confidence", 0)
	v.SetDefault("backtest.commission_rate", 0)
	v.SetDefault("backtest.monte_carlo_iterations", 1000)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

// IsProduction reports whether the application runs in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment reports whether the application runs in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
