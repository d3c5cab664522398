package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// StaticSourceType serves the built-in player table
	StaticSourceType SourceType = "static"
	// HTTPSourceType calls a remote stats API
	HTTPSourceType SourceType = "http"
)

// NewSource creates the configured PlayerSource, wrapped in a cache when enabled
func NewSource(cfg *config.Config, logger logrus.FieldLogger) (PlayerSource, error) {
	var source PlayerSource

	switch SourceType(cfg.DataSource.Kind) {
	case StaticSourceType:
		source = NewSampleSource(cfg.DataSource.Strict)

	case HTTPSourceType:
		if cfg.DataSource.BaseURL == "" {
			return nil, fmt.Errorf("http data source requires a base URL")
		}
		clientCfg := DefaultHTTPClientConfig()
		clientCfg.Timeout = cfg.DataSourceTimeout()
		clientCfg.MaxRetries = cfg.DataSource.MaxRetries
		clientCfg.RateLimit = cfg.DataSource.RateLimit
		client := NewRateLimitedHTTPClient(clientCfg, logger)
		source = NewHTTPSource(client, cfg.DataSource.BaseURL, cfg.DataSource.APIKey, logger)

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.DataSource.Kind)
	}

	if logger != nil {
		logger.WithField("source", source.Name()).Info("Created player data source")
	}

	if !cfg.Cache.Enabled {
		return source, nil
	}
	return NewCachedSource(source, cfg.CacheTTL(), cleanupOrTTL(cfg), cfg.Cache.MaxItems), nil
}

func cleanupOrTTL(cfg *config.Config) time.Duration {
	if d := cfg.CacheCleanupInterval(); d > 0 {
		return d
	}
	return cfg.CacheTTL() * 2
}
