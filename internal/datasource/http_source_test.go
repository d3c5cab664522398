package datasource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
)

func testClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             2 * time.Second,
		MaxRetries:          0,
		RetryWaitMin:        time.Millisecond,
		RetryWaitMax:        5 * time.Millisecond,
		RateLimit:           1000,
		CircuitBreakerMax:   5,
		CircuitResetTimeout: time.Minute,
	}
}

func newTestSource(t *testing.T, handler http.HandlerFunc, cfg HTTPClientConfig) *HTTPSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPSource(NewRateLimitedHTTPClient(cfg, nil), server.URL+"/", "secret-key", nil)
}

func TestHTTPSourceFetchPlayer(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/Nikola Jokic", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PlayerProfile{
			Name:        "Nikola Jokic",
			ReboundsAvg: 11.1,
			AssistsAvg:  9.3,
			SampleSize:  25,
			Consistency: 0.82,
		})
	}, testClientConfig())

	profile, err := src.FetchPlayer(context.Background(), "Nikola Jokic")
	require.NoError(t, err)
	assert.Equal(t, 11.1, profile.ReboundsAvg)
	assert.Equal(t, "http", src.Name())
}

func TestHTTPSourceStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"not found", http.StatusNotFound, "", ErrCodeNotFound},
		{"unauthorized", http.StatusUnauthorized, "", ErrCodeAuthenticationFailed},
		{"rate limited", http.StatusTooManyRequests, "", ErrCodeRateLimitExceeded},
		{"server error", http.StatusInternalServerError, "boom", ErrCodeServerError},
		{"bad json", http.StatusOK, "{not json", ErrCodeInvalidData},
		{"invalid profile", http.StatusOK, `{"name":"X","consistency":4}`, ErrCodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, testClientConfig())

			_, err := src.FetchPlayer(context.Background(), "Anyone")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ErrorCode(err))
		})
	}
}

func TestHTTPSourceNotFoundWrapsSentinel(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, testClientConfig())

	_, err := src.FetchPlayer(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	cfg := testClientConfig()
	cfg.MaxRetries = 2

	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Nikola Jokic","assists_avg":9.3}`))
	}, cfg)

	profile, err := src.FetchPlayer(context.Background(), "Nikola Jokic")
	require.NoError(t, err)
	assert.Equal(t, 9.3, profile.AssistsAvg)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSourceCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	cfg := testClientConfig()
	cfg.CircuitBreakerMax = 2

	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, cfg)

	for i := 0; i < 2; i++ {
		_, err := src.FetchPlayer(context.Background(), "Anyone")
		assert.Equal(t, ErrCodeServerError, ErrorCode(err))
	}

	_, err := src.FetchPlayer(context.Background(), "Anyone")
	assert.Equal(t, ErrCodeCircuitOpen, ErrorCode(err))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSourcePing(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}, testClientConfig())
	assert.NoError(t, src.Ping(context.Background()))

	down := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, testClientConfig())
	assert.Equal(t, ErrCodeServerError, ErrorCode(down.Ping(context.Background())))
}
