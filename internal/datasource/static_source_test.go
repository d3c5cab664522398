package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSourceKnownPlayer(t *testing.T) {
	src := NewSampleSource(false)

	profile, err := src.FetchPlayer(context.Background(), "  nikola   JOKIC ")
	require.NoError(t, err)
	assert.Equal(t, "Nikola Jokic", profile.Name)
	assert.Equal(t, 11.1, profile.ReboundsAvg)
	assert.Len(t, profile.LastGames, 10)

	// Returned profiles are copies.
	profile.LastGames[0] = 99
	again, err := src.FetchPlayer(context.Background(), "Nikola Jokic")
	require.NoError(t, err)
	assert.Equal(t, 25.0, again.LastGames[0])
}

func TestStaticSourceUnknownPlayerFallsBack(t *testing.T) {
	src := NewSampleSource(false)

	profile, err := src.FetchPlayer(context.Background(), "Some Rookie")
	require.NoError(t, err)
	assert.Equal(t, "Some Rookie", profile.Name)
	assert.Equal(t, 20.0, profile.SeasonAvg)
	assert.Equal(t, 10, profile.SampleSize)
}

func TestStaticSourceStrict(t *testing.T) {
	src := NewSampleSource(true)

	_, err := src.FetchPlayer(context.Background(), "Some Rookie")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))

	var se SourceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "static", se.Source)
}

func TestStaticSourceEmptyName(t *testing.T) {
	_, err := NewSampleSource(false).FetchPlayer(context.Background(), "   ")
	assert.Equal(t, ErrCodeInvalidData, ErrorCode(err))
}

func TestStaticSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSampleSource(false)
	_, err := src.FetchPlayer(ctx, "Nikola Jokic")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, src.Ping(ctx), context.Canceled)
}

func TestSourceErrorMessage(t *testing.T) {
	err := NewSourceError("http", ErrCodeServerError, "boom", nil)
	assert.Equal(t, "http: server_error: boom", err.Error())

	wrapped := NewSourceError("http", ErrCodeNetworkError, "request failed", errors.New("dial tcp"))
	assert.Equal(t, "http: network_error: request failed (dial tcp)", wrapped.Error())
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
}
