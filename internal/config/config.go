// Package config loads the service configuration from YAML and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pricing_backend/internal/platform/db"
	"pricing_backend/internal/platform/redis"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
		AllowCron   bool     `yaml:"allow_cron"`
	} `yaml:"server"`
	Database db.Config    `yaml:"database"`
	Redis    redis.Config `yaml:"redis"`
	Provider struct {
		Name               string        `yaml:"name"`
		APIKey             string        `yaml:"api_key"`
		BaseURL            string        `yaml:"base_url"`
		Timeout            time.Duration `yaml:"timeout"`
		RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	} `yaml:"provider"`
	Refresh struct {
		Mode                string        `yaml:"mode"`
		MaxParallel         int           `yaml:"max_parallel"`
		FetchTimeout        time.Duration `yaml:"fetch_timeout"`
		PersistDisplayPrice bool          `yaml:"persist_display_price"`
		Currency            string        `yaml:"currency"`
	} `yaml:"refresh"`
	Schedule struct {
		Disabled bool          `yaml:"disabled"`
		Interval time.Duration `yaml:"interval"`
		Cron     string        `yaml:"cron"`
	} `yaml:"schedule"`
	Tickers struct {
		Defaults []string `yaml:"defaults"`
	} `yaml:"tickers"`
	Fallback struct {
		CashRates map[string]float64 `yaml:"cash_rates"`
	} `yaml:"fallback"`
	Symbols struct {
		Commodities map[string]string `yaml:"commodities"`
		Crypto      map[string]string `yaml:"crypto"`
	} `yaml:"symbols"`
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ALLOW_CRON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALLOW_CRON: %w", err)
		}
		c.Server.AllowCron = b
	}

	c.Database.ApplyEnv()

	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}

	if v := os.Getenv("QUOTE_PROVIDER"); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv("QUOTE_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}

	if v := os.Getenv("REFRESH_MODE"); v != "" {
		c.Refresh.Mode = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		c.Schedule.Interval = d
	}
	if v := os.Getenv("TICKERS"); v != "" {
		c.Tickers.Defaults = splitList(v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = db.DriverSQLite
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = time.Minute
	}
	if c.Provider.Name == "" {
		c.Provider.Name = "alphavantage"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 10 * time.Second
	}
	if c.Refresh.Mode == "" {
		c.Refresh.Mode = "parallel"
	}
	if c.Refresh.FetchTimeout == 0 {
		c.Refresh.FetchTimeout = c.Provider.Timeout
	}
	if c.Refresh.Currency == "" {
		c.Refresh.Currency = "USD"
	}
	if c.Schedule.Interval == 0 && c.Schedule.Cron == "" {
		c.Schedule.Interval = 15 * time.Minute
	}
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider.Name) {
	case "alphavantage", "twelvedata", "yahoo":
	default:
		return fmt.Errorf("provider.name %q is not supported", c.Provider.Name)
	}
	if c.Provider.Name != "yahoo" && c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required for %s", c.Provider.Name)
	}
	switch strings.ToLower(c.Refresh.Mode) {
	case "parallel", "sequential":
	default:
		return fmt.Errorf("refresh.mode must be parallel or sequential, got %q", c.Refresh.Mode)
	}
	if c.Refresh.MaxParallel < 0 {
		return fmt.Errorf("refresh.max_parallel must not be negative")
	}
	if c.Provider.RateLimitPerMinute < 0 {
		return fmt.Errorf("provider.rate_limit_per_minute must not be negative")
	}
	switch strings.ToLower(c.Database.Driver) {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if !c.Schedule.Disabled && c.Schedule.Cron == "" && c.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1s")
	}
	for k, v := range c.Fallback.CashRates {
		if v <= 0 {
			return fmt.Errorf("fallback.cash_rates[%s] must be positive", k)
		}
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
