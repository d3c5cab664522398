package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/engine"
)

func TestPlayerProfileToContextDefaults(t *testing.T) {
	p := &PlayerProfile{Name: "Rookie"}

	ctx := p.ToContext()
	assert.Equal(t, 20.0, ctx.SeasonAvg)
	assert.Equal(t, 8.0, ctx.ReboundsAvg)
	assert.Equal(t, 5.0, ctx.AssistsAvg)
	assert.Equal(t, 35.0, ctx.MinutesPerGame)
	assert.Equal(t, 100.0, ctx.TeamPace)
	assert.Equal(t, 25.0, ctx.UsageRate)
	assert.Equal(t, 1.0, ctx.OppRebDef)
	assert.Equal(t, 10, ctx.SampleSize)
	assert.Equal(t, 0.7, ctx.Consistency)
	assert.False(t, ctx.Home)
}

func TestPlayerProfileToContextKeepsValues(t *testing.T) {
	p := &PlayerProfile{
		Name:           "Nikola Jokic",
		SeasonAvg:      24.5,
		ReboundsAvg:    11.1,
		AssistsAvg:     9.3,
		MinutesPerGame: 34.6,
		Home:           true,
		RecentTrend:    8.7,
		MatchupAdj:     2.1,
		TeamPace:       97.8,
		UsageRate:      28.3,
		OppRebDef:      0.95,
		SampleSize:     25,
		Consistency:    0.82,
	}

	ctx := p.ToContext()
	assert.Equal(t, engine.PlayerContext{
		SeasonAvg:      24.5,
		ReboundsAvg:    11.1,
		AssistsAvg:     9.3,
		MinutesPerGame: 34.6,
		Home:           true,
		RecentTrend:    8.7,
		MatchupAdj:     2.1,
		TeamPace:       97.8,
		UsageRate:      28.3,
		OppRebDef:      0.95,
		SampleSize:     25,
		Consistency:    0.82,
	}, ctx)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile("Unknown Player")
	require.NoError(t, p.Validate())

	ctx := p.ToContext()
	assert.Equal(t, 32.0, ctx.MinutesPerGame)
	assert.True(t, ctx.Home)
	assert.Equal(t, 1.0, ctx.OppRebDef)
}

func TestPlayerProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile PlayerProfile
		wantErr error
	}{
		{"valid", PlayerProfile{Name: "A", Consistency: 0.5}, nil},
		{"missing name", PlayerProfile{Name: "  "}, ErrPlayerNameRequired},
		{"consistency above one", PlayerProfile{Name: "A", Consistency: 1.2}, ErrInvalidProfile},
		{"negative rebounds", PlayerProfile{Name: "A", ReboundsAvg: -1}, ErrInvalidProfile},
		{"negative sample", PlayerProfile{Name: "A", SampleSize: -3}, ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLastGamesAverage(t *testing.T) {
	p := &PlayerProfile{LastGames: []float64{25, 23, 28, 19, 26, 24, 22, 27, 21, 25}}
	avg, ok := p.LastGamesAverage()
	assert.True(t, ok)
	assert.InDelta(t, 24.0, avg, 1e-9)

	_, ok = (&PlayerProfile{}).LastGamesAverage()
	assert.False(t, ok)
}
