// Package datasource provides player profile providers used to build projections.
package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/prop-edge/internal/models"
)

// PlayerSource defines the interface for fetching player history from a provider
type PlayerSource interface {
	// FetchPlayer retrieves the profile for a player by display name
	FetchPlayer(ctx context.Context, name string) (*models.PlayerProfile, error)

	// Name returns the name of the data source
	Name() string

	// Ping checks that the source is reachable
	Ping(ctx context.Context) error
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (%v)", e.Source, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Code, e.Message)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeCircuitOpen          = "circuit_open"
)

var (
	// ErrPlayerNotFound is wrapped by every not_found SourceError.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrCircuitOpen is returned while the HTTP client refuses requests.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode extracts the SourceError code from err, or "" when err is not a SourceError.
func ErrorCode(err error) string {
	var se SourceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
