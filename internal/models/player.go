package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/prop-edge/internal/engine"
)

var validate = validator.New()

// Fallbacks applied to zero-valued profile fields when building a projection context.
const (
	fallbackSeasonAvg   = 20.0
	fallbackReboundsAvg = 8.0
	fallbackAssistsAvg  = 5.0
	fallbackMinutes     = 35.0
	fallbackTeamPace    = 100.0
	fallbackUsageRate   = 25.0
	fallbackOppRebDef   = 1.0
	fallbackSampleSize  = 10
	fallbackConsistency = 0.7
)

// PlayerProfile is the historical data known about a player.
type PlayerProfile struct {
	Name           string    `json:"name" validate:"required"`
	Sport          string    `json:"sport"`
	SeasonAvg      float64   `json:"season_avg" validate:"gte=0"`
	ReboundsAvg    float64   `json:"rebounds_avg" validate:"gte=0"`
	AssistsAvg     float64   `json:"assists_avg" validate:"gte=0"`
	MinutesPerGame float64   `json:"minutes_per_game" validate:"gte=0,lte=60"`
	Home           bool      `json:"home"`
	RecentTrend    float64   `json:"recent_trend"`
	MatchupAdj     float64   `json:"matchup_adj"`
	TeamPace       float64   `json:"team_pace" validate:"gte=0"`
	UsageRate      float64   `json:"usage_rate" validate:"gte=0,lte=100"`
	OppRebDef      float64   `json:"opp_reb_def" validate:"gte=0"`
	SampleSize     int       `json:"sample_size" validate:"gte=0"`
	Consistency    float64   `json:"consistency" validate:"gte=0,lte=1"`
	LastGames      []float64 `json:"last_games,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultProfile builds the profile used for players without history.
func DefaultProfile(name string) *PlayerProfile {
	ctx := engine.DefaultPlayerContext()
	return &PlayerProfile{
		Name:           name,
		SeasonAvg:      ctx.SeasonAvg,
		ReboundsAvg:    ctx.ReboundsAvg,
		AssistsAvg:     ctx.AssistsAvg,
		MinutesPerGame: ctx.MinutesPerGame,
		Home:           ctx.Home,
		RecentTrend:    ctx.RecentTrend,
		SampleSize:     ctx.SampleSize,
		Consistency:    ctx.Consistency,
	}
}

// Validate checks the profile against its field constraints.
func (p *PlayerProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrPlayerNameRequired
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// LastGamesAverage returns the mean of the recorded recent games.
func (p *PlayerProfile) LastGamesAverage() (float64, bool) {
	if len(p.LastGames) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, g := range p.LastGames {
		sum += g
	}
	return sum / float64(len(p.LastGames)), true
}

// ToContext converts the profile into projection inputs. Zero-valued numeric fields
// fall back to league defaults; trend and matchup stay zero.
func (p *PlayerProfile) ToContext() engine.PlayerContext {
	return engine.PlayerContext{
		SeasonAvg:      orDefault(p.SeasonAvg, fallbackSeasonAvg),
		ReboundsAvg:    orDefault(p.ReboundsAvg, fallbackReboundsAvg),
		AssistsAvg:     orDefault(p.AssistsAvg, fallbackAssistsAvg),
		MinutesPerGame: orDefault(p.MinutesPerGame, fallbackMinutes),
		Home:           p.Home,
		RecentTrend:    p.RecentTrend,
		MatchupAdj:     p.MatchupAdj,
		TeamPace:       orDefault(p.TeamPace, fallbackTeamPace),
		UsageRate:      orDefault(p.UsageRate, fallbackUsageRate),
		OppRebDef:      orDefault(p.OppRebDef, fallbackOppRebDef),
		SampleSize:     orDefaultInt(p.SampleSize, fallbackSampleSize),
		Consistency:    orDefault(p.Consistency, fallbackConsistency),
	}
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func orDefaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
