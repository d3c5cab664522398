// Package config provides configuration management for the prop-edge application.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("configuration validation failed")

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag or a nil function.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("cronspec", validateCronSpec)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Scheduler.Enabled {
		if err := cv.validator.Var(cfg.Scheduler.CacheRefreshCron, "cronspec"); err != nil {
			return fmt.Errorf("%w: scheduler.cache_refresh_cron %q is not a valid cron expression", ErrInvalidConfig, cfg.Scheduler.CacheRefreshCron)
		}
		if cfg.Scheduler.DailyResetCron != "" {
			if err := cv.validator.Var(cfg.Scheduler.DailyResetCron, "cronspec"); err != nil {
				return fmt.Errorf("%w: scheduler.daily_reset_cron %q is not a valid cron expression", ErrInvalidConfig, cfg.Scheduler.DailyResetCron)
			}
		}
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCronSpec accepts standard five-field cron expressions and descriptors such as @hourly
func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.DataSource.Kind == "http" && cfg.DataSource.BaseURL == "" {
		return fmt.Errorf("%w: data_source.base_url is required for the http source", ErrInvalidConfig)
	}

	if cfg.Cache.CleanupIntervalSeconds < cfg.Cache.TTLSeconds {
		return fmt.Errorf("%w: cache.cleanup_interval_seconds cannot be shorter than cache.ttl_seconds", ErrInvalidConfig)
	}

	// A daily stop below the whole bankroll can never trigger.
	if -cfg.Bankroll.StopLoss > cfg.Bankroll.StartingBankroll {
		return fmt.Errorf("%w: bankroll.stop_loss cannot exceed the starting bankroll", ErrInvalidConfig)
	}

	if cfg.Bankroll.UnitSize > cfg.Bankroll.StartingBankroll {
		return fmt.Errorf("%w: bankroll.unit_size cannot exceed the starting bankroll", ErrInvalidConfig)
	}

	if cfg.IsProduction() {
		if cfg.DataSource.Kind == "http" && isTestCredential(cfg.DataSource.APIKey) {
			return fmt.Errorf("%w: production environment should not use a test data source API key", ErrInvalidConfig)
		}
		if cfg.Bankroll.SampleData {
			return fmt.Errorf("%w: sample bankroll data must be disabled in production", ErrInvalidConfig)
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&b, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("%w:\n%s", ErrInvalidConfig, b.String())
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	if credential == "" {
		return true
	}
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
