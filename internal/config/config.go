// Package config provides configuration management for the prop-edge application.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Bankroll   BankrollConfig   `mapstructure:"bankroll" validate:"required"`
	DataSource DataSourceConfig `mapstructure:"data_source" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                  int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// BankrollConfig represents bankroll and risk limit configuration
type BankrollConfig struct {
	StartingBankroll float64 `mapstructure:"starting_bankroll" validate:"required,gt=0"`
	CurrentBankroll  float64 `mapstructure:"current_bankroll" validate:"gte=0"`
	UnitSize         float64 `mapstructure:"unit_size" validate:"required,gt=0"`
	StopLoss         float64 `mapstructure:"stop_loss" validate:"required,lt=0"`
	DailyTarget      float64 `mapstructure:"daily_target" validate:"required,gt=0"`
	SampleData       bool    `mapstructure:"sample_data"`
}

// DataSourceConfig represents the player data provider configuration
type DataSourceConfig struct {
	Kind           string  `mapstructure:"kind" validate:"required,oneof=static http"`
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	Strict         bool    `mapstructure:"strict"`
}

// CacheConfig represents the player profile cache configuration
type CacheConfig struct {
	Enabled                bool `mapstructure:"enabled"`
	TTLSeconds             int  `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	CleanupIntervalSeconds int  `mapstructure:"cleanup_interval_seconds" validate:"required,gt=0"`
	MaxItems               int  `mapstructure:"max_items" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// SchedulerConfig represents background job configuration
type SchedulerConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	CacheRefreshCron string   `mapstructure:"cache_refresh_cron" validate:"required_if=Enabled true"`
	DailyResetCron   string   `mapstructure:"daily_reset_cron"`
	WatchedPlayers   []string `mapstructure:"watched_players"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RequestTimeout returns the HTTP handler timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the player cache expiry
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CacheCleanupInterval returns how often expired cache entries are purged
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.Cache.CleanupIntervalSeconds) * time.Second
}

// DataSourceTimeout returns the per-request timeout for the player data provider
func (c *Config) DataSourceTimeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSeconds) * time.Second
}
