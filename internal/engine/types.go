// Package engine implements the probability and edge calculations behind the
// player-prop calculator and bankroll tracker. Every function is pure: no logging,
// no I/O and no shared state, so callers may invoke them concurrently.
package engine

import (
	"fmt"
	"strings"
)

// StatKind identifies the projected player statistic.
type StatKind string

const (
	StatPoints              StatKind = "points"
	StatRebounds            StatKind = "rebounds"
	StatAssists             StatKind = "assists"
	StatReboundsPlusAssists StatKind = "rebounds_assists"
)

// ParseStatKind converts a user supplied name into a StatKind.
func ParseStatKind(s string) (StatKind, error) {
	kind := StatKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case StatPoints, StatRebounds, StatAssists, StatReboundsPlusAssists:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStatKind, s)
}

// DisplayName returns the label shown next to a calculation.
func (k StatKind) DisplayName() string {
	switch k {
	case StatPoints:
		return "Points"
	case StatRebounds:
		return "Rebounds"
	case StatAssists:
		return "Assists"
	case StatReboundsPlusAssists:
		return "Rebounds + Assists"
	default:
		return string(k)
	}
}

// Distribution is the family used to model a projection.
type Distribution string

const (
	DistributionPoisson Distribution = "poisson"
	DistributionNormal  Distribution = "normal"
)

// Prediction is the side of the line the model favours.
type Prediction string

const (
	PredictionOver  Prediction = "OVER"
	PredictionUnder Prediction = "UNDER"
)

// ConfidenceLevel grades how much a calculation can be trusted.
type ConfidenceLevel int

const (
	ConfidenceLow ConfidenceLevel = iota
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceVeryHigh
)

func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceVeryHigh:
		return "Very High"
	case ConfidenceHigh:
		return "High"
	case ConfidenceMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// MarshalText renders the level with its display name.
func (c ConfidenceLevel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// PlayerContext holds the per-player inputs of a projection. The validate tags
// bound contexts supplied by callers instead of a player source.
type PlayerContext struct {
	SeasonAvg      float64 `json:"season_avg" validate:"gte=0,lte=100"`
	ReboundsAvg    float64 `json:"rebounds_avg" validate:"gte=0,lte=50"`
	AssistsAvg     float64 `json:"assists_avg" validate:"gte=0,lte=50"`
	MinutesPerGame float64 `json:"minutes_per_game" validate:"gte=0,lte=60"`
	Home           bool    `json:"home"`
	RecentTrend    float64 `json:"recent_trend" validate:"gte=-100,lte=100"` // percent
	MatchupAdj     float64 `json:"matchup_adj" validate:"gte=-50,lte=50"`
	TeamPace       float64 `json:"team_pace" validate:"gte=0,lte=200"`
	UsageRate      float64 `json:"usage_rate" validate:"gte=0,lte=100"`
	OppRebDef      float64 `json:"opp_reb_def" validate:"gt=0,lte=5"`
	SampleSize     int     `json:"sample_size" validate:"gte=0"`
	Consistency    float64 `json:"consistency" validate:"gte=0,lte=1"`
}

// DefaultPlayerContext returns the inputs used for players without history.
func DefaultPlayerContext() PlayerContext {
	return PlayerContext{
		SeasonAvg:      20.0,
		ReboundsAvg:    8.0,
		AssistsAvg:     5.0,
		MinutesPerGame: 32.0,
		Home:           true,
		RecentTrend:    0,
		TeamPace:       100,
		UsageRate:      25,
		OppRebDef:      1.0,
		SampleSize:     10,
		Consistency:    0.7,
	}
}

// Projection is a statistical forecast. For Poisson projections Mean is the rate.
type Projection struct {
	Distribution Distribution `json:"distribution"`
	Mean         float64      `json:"mean"`
	StdDev       float64      `json:"std_dev,omitempty"`
}

// EdgeResult is the outcome of pricing a projection against a market line.
type EdgeResult struct {
	Probability float64         `json:"probability"`
	Prediction  Prediction      `json:"prediction"`
	EdgePercent float64         `json:"edge_percent"`
	Confidence  ConfidenceLevel `json:"confidence"`
}
