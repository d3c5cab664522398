package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
)

const httpSourceName = "http"

// HTTPSource fetches player profiles from a stats API exposing GET /players/{name}
type HTTPSource struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     logrus.FieldLogger
}

// NewHTTPSource creates a new stats API client
func NewHTTPSource(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, logger logrus.FieldLogger) *HTTPSource {
	if logger == nil {
		logger = discardLogger()
	}
	return &HTTPSource{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchPlayer retrieves a player profile by name
func (s *HTTPSource) FetchPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewSourceError(httpSourceName, ErrCodeInvalidData, "player name is required", models.ErrPlayerNameRequired)
	}

	resp, err := s.get(ctx, fmt.Sprintf("%s/players/%s", s.baseURL, url.PathEscape(name)))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, NewSourceError(httpSourceName, ErrCodeNotFound, "unknown player "+name, ErrPlayerNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewSourceError(httpSourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusTooManyRequests:
		return nil, NewSourceError(httpSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewSourceError(httpSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var profile models.PlayerProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, NewSourceError(httpSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	if profile.Name == "" {
		profile.Name = name
	}
	if err := profile.Validate(); err != nil {
		return nil, NewSourceError(httpSourceName, ErrCodeInvalidData, "profile failed validation", err)
	}

	s.logger.WithFields(logrus.Fields{
		"player":      profile.Name,
		"sample_size": profile.SampleSize,
	}).Debug("Fetched player profile")

	return &profile, nil
}

// Name returns the name of the data source
func (s *HTTPSource) Name() string {
	return httpSourceName
}

// Ping checks the API health endpoint
func (s *HTTPSource) Ping(ctx context.Context) error {
	resp, err := s.get(ctx, s.baseURL+"/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return NewSourceError(httpSourceName, ErrCodeServerError, fmt.Sprintf("health check returned %d", resp.StatusCode), nil)
	}
	return nil
}

func (s *HTTPSource) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, NewSourceError(httpSourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		code := ErrCodeNetworkError
		if s.httpClient.IsOpen() {
			code = ErrCodeCircuitOpen
		}
		return nil, NewSourceError(httpSourceName, code, "request failed", err)
	}
	return resp, nil
}
