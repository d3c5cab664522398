package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleHealth(t *testing.T) {
	c := NewChecker(Config{ServiceName: "prop-edge", Version: "1.2.0"})

	rec := httptest.NewRecorder()
	c.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "prop-edge", resp.Service)
	assert.Equal(t, "1.2.0", resp.Version)
}

func TestHandleReady(t *testing.T) {
	c := NewChecker(Config{ServiceName: "prop-edge"})
	healthy := true
	c.AddCheck("player_source", pingFunc(func(ctx context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("unreachable")
	}))

	ready := func() (int, ReadyResponse) {
		rec := httptest.NewRecorder()
		c.HandleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		var resp ReadyResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return rec.Code, resp
	}

	code, resp := ready()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", resp.Checks["service"])

	c.SetReady(true)
	code, resp = ready()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Checks["player_source"])

	healthy = false
	code, resp = ready()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error: unreachable", resp.Checks["player_source"])
}
