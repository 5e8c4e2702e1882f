// Package config provides configuration management for the engine.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Environment EnvironmentConfig `yaml:"environment"`
	Broker      BrokerConfig      `yaml:"broker"`
	Selector    SelectorConfig    `yaml:"selector"`
	Risk        RiskConfig        `yaml:"risk"`
	Execution   ExecutionConfig   `yaml:"execution"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Storage     StorageConfig     `yaml:"storage"`
}

// EnvironmentConfig defines the environment settings.
type EnvironmentConfig struct {
	Mode     string `yaml:"mode"`      // paper | live
	LogLevel string `yaml:"log_level"` // debug | info | warn | error
}

// BrokerConfig defines broker API settings.
type BrokerConfig struct {
	Provider    string `yaml:"provider"`
	APIKey      string `yaml:"api_key"`
	APISecret   string `yaml:"api_secret"`
	APIEndpoint string `yaml:"api_endpoint"` // optional trading host override
	DataURL     string `yaml:"data_url"`     // optional market-data host override
	// CircuitBreaker gates whether brokerage calls run behind a breaker.
	CircuitBreaker bool `yaml:"circuit_breaker"`
}

// SelectorConfig defines strategy selection parameters.
type SelectorConfig struct {
	Phase       int      `yaml:"phase"`
	IVThreshold float64  `yaml:"iv_threshold"`
	Tickers     []string `yaml:"tickers"`
	Quantity    int      `yaml:"quantity"` // base contracts per leg
}

// RiskConfig defines sizing and protective-level parameters.
type RiskConfig struct {
	ATRPeriod       int     `yaml:"atr_period"`
	StopLossPct     float64 `yaml:"stop_loss_pct"`
	TakeProfitPct   float64 `yaml:"take_profit_pct"`
	ATRStopMult     float64 `yaml:"atr_stop_mult"`
	ATRProfitMult   float64 `yaml:"atr_profit_mult"`
	TrailingStopPct float64 `yaml:"trailing_stop_pct"`
}

// ExecutionConfig defines order submission parameters.
type ExecutionConfig struct {
	DryRun      bool   `yaml:"dry_run"`
	MaxAttempts int    `yaml:"max_attempts"`
	RetryDelay  string `yaml:"retry_delay"`
}

// ScheduleConfig defines the evaluation cadence.
type ScheduleConfig struct {
	Interval string `yaml:"interval"`
	Timezone string `yaml:"timezone"` // e.g., "America/New_York"
}

// StorageConfig defines where the trade journal lives.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Load reads and parses the configuration file from the specified path.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- configPath is a user-provided config file path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var config Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// applyDefaults fills unset optional fields before validation.
func (c *Config) applyDefaults() {
	if c.Selector.Phase == 0 {
		c.Selector.Phase = 1
	}
	if c.Selector.IVThreshold == 0 {
		c.Selector.IVThreshold = 0.25
	}
	if c.Selector.Quantity == 0 {
		c.Selector.Quantity = 1
	}
	if c.Risk.ATRPeriod == 0 {
		c.Risk.ATRPeriod = 14
	}
	if c.Risk.StopLossPct == 0 {
		c.Risk.StopLossPct = 0.01
	}
	if c.Risk.TakeProfitPct == 0 {
		c.Risk.TakeProfitPct = 0.08
	}
	if c.Execution.MaxAttempts == 0 {
		c.Execution.MaxAttempts = 3
	}
	if c.Execution.RetryDelay == "" {
		c.Execution.RetryDelay = "2s"
	}
	if c.Schedule.Interval == "" {
		c.Schedule.Interval = "15m"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/journal.json"
	}
}

// Validate checks that all configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.Environment.Mode != "paper" && c.Environment.Mode != "live" {
		return fmt.Errorf("environment.mode must be 'paper' or 'live'")
	}

	if c.Broker.APIKey == "" {
		return fmt.Errorf("broker.api_key is required")
	}
	if c.Broker.APISecret == "" {
		return fmt.Errorf("broker.api_secret is required")
	}

	if c.Selector.Phase < 1 {
		return fmt.Errorf("selector.phase must be >= 1")
	}
	if c.Selector.IVThreshold <= 0 || c.Selector.IVThreshold >= 1 {
		return fmt.Errorf("selector.iv_threshold must be in (0,1)")
	}
	if len(c.Selector.Tickers) == 0 {
		return fmt.Errorf("selector.tickers must list at least one symbol")
	}
	if c.Selector.Quantity <= 0 {
		return fmt.Errorf("selector.quantity must be > 0")
	}

	if c.Risk.ATRPeriod <= 0 {
		return fmt.Errorf("risk.atr_period must be > 0")
	}
	if c.Risk.StopLossPct <= 0 || c.Risk.StopLossPct >= 1 {
		return fmt.Errorf("risk.stop_loss_pct must be in (0,1)")
	}
	if c.Risk.TakeProfitPct <= 0 || c.Risk.TakeProfitPct >= 1 {
		return fmt.Errorf("risk.take_profit_pct must be in (0,1)")
	}
	if c.Risk.ATRStopMult < 0 || c.Risk.ATRProfitMult < 0 {
		return fmt.Errorf("risk ATR multipliers must be >= 0")
	}
	if c.Risk.TrailingStopPct < 0 || c.Risk.TrailingStopPct >= 1 {
		return fmt.Errorf("risk.trailing_stop_pct must be in [0,1)")
	}

	if c.Execution.MaxAttempts <= 0 {
		return fmt.Errorf("execution.max_attempts must be > 0")
	}
	if _, err := time.ParseDuration(c.Execution.RetryDelay); err != nil {
		return fmt.Errorf("execution.retry_delay invalid: %w", err)
	}

	if _, err := time.ParseDuration(c.Schedule.Interval); err != nil {
		return fmt.Errorf("schedule.interval invalid: %w", err)
	}
	if tz := c.Schedule.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("schedule.timezone invalid: %w", err)
		}
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	return nil
}

// IsPaperTrading returns true if the engine is configured for paper trading.
func (c *Config) IsPaperTrading() bool {
	return c.Environment.Mode == "paper"
}

// GetRetryDelay returns the parsed submission retry delay.
func (c *Config) GetRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.Execution.RetryDelay)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// GetInterval returns the parsed evaluation cadence.
func (c *Config) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Schedule.Interval)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
