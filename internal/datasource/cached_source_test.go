package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/models"
)

type mockPlayerSource struct {
	mock.Mock
}

func (m *mockPlayerSource) FetchPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.PlayerProfile)
	return profile, args.Error(1)
}

func (m *mockPlayerSource) Name() string {
	return "mock"
}

func (m *mockPlayerSource) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestCachedSourceHitsAndMisses(t *testing.T) {
	inner := &mockPlayerSource{}
	inner.On("FetchPlayer", mock.Anything, "Nikola Jokic").
		Return(&models.PlayerProfile{Name: "Nikola Jokic", AssistsAvg: 9.3}, nil).Once()

	src := NewCachedSource(inner, time.Minute, 2*time.Minute, 0)

	first, err := src.FetchPlayer(context.Background(), "Nikola Jokic")
	require.NoError(t, err)
	first.AssistsAvg = 0

	second, err := src.FetchPlayer(context.Background(), "nikola jokic")
	require.NoError(t, err)
	assert.Equal(t, 9.3, second.AssistsAvg)

	stats := src.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRatio)
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, "cached_mock", src.Name())
	inner.AssertExpectations(t)
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := &mockPlayerSource{}
	inner.On("FetchPlayer", mock.Anything, "Nobody").
		Return(nil, NewSourceError("mock", ErrCodeNotFound, "unknown", ErrPlayerNotFound)).Twice()

	src := NewCachedSource(inner, time.Minute, 2*time.Minute, 0)
	for i := 0; i < 2; i++ {
		_, err := src.FetchPlayer(context.Background(), "Nobody")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	}
	assert.Equal(t, 0, src.Stats().Items)
	inner.AssertExpectations(t)
}

func TestCachedSourceMaxItems(t *testing.T) {
	inner := &mockPlayerSource{}
	inner.On("FetchPlayer", mock.Anything, mock.AnythingOfType("string")).
		Return(&models.PlayerProfile{Name: "x"}, nil)

	src := NewCachedSource(inner, time.Minute, 2*time.Minute, 2)
	for _, name := range []string{"a", "b", "c"} {
		_, err := src.FetchPlayer(context.Background(), name)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, src.Stats().Items)
}

func TestCachedSourceRefresh(t *testing.T) {
	inner := &mockPlayerSource{}
	inner.On("FetchPlayer", mock.Anything, "Nikola Jokic").
		Return(&models.PlayerProfile{Name: "Nikola Jokic", SampleSize: 26}, nil)
	inner.On("FetchPlayer", mock.Anything, "Ghost").
		Return(nil, errors.New("upstream down"))

	src := NewCachedSource(inner, time.Minute, 2*time.Minute, 0)
	refreshed, err := src.Refresh(context.Background(), []string{"Nikola Jokic", "Ghost"})
	assert.Equal(t, 1, refreshed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh Ghost")

	profile, err := src.FetchPlayer(context.Background(), "Nikola Jokic")
	require.NoError(t, err)
	assert.Equal(t, 26, profile.SampleSize)
	assert.Equal(t, uint64(1), src.Stats().Hits)

	src.Invalidate("Nikola Jokic")
	assert.Equal(t, 0, src.Stats().Items)
}

func TestCachedSourcePingDelegates(t *testing.T) {
	inner := &mockPlayerSource{}
	inner.On("Ping", mock.Anything).Return(errors.New("down"))

	src := NewCachedSource(inner, time.Minute, 2*time.Minute, 0)
	assert.EqualError(t, src.Ping(context.Background()), "down")
}

func TestNewSource(t *testing.T) {
	cfg := &config.Config{
		DataSource: config.DataSourceConfig{Kind: "static", TimeoutSeconds: 5, RateLimit: 5},
		Cache:      config.CacheConfig{Enabled: true, TTLSeconds: 60, CleanupIntervalSeconds: 120},
	}

	src, err := NewSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "cached_static", src.Name())

	cfg.Cache.Enabled = false
	src, err = NewSource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &StaticSource{}, src)

	cfg.DataSource = config.DataSourceConfig{Kind: "http", BaseURL: "http://localhost:1", TimeoutSeconds: 1, RateLimit: 5}
	src, err = NewSource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	cfg.DataSource.BaseURL = ""
	_, err = NewSource(cfg, nil)
	assert.Error(t, err)

	cfg.DataSource.Kind = "csv"
	_, err = NewSource(cfg, nil)
	assert.Error(t, err)
}
