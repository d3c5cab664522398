package datasource

import (
	"context"
	"strings"

	"github.com/yourusername/prop-edge/internal/models"
)

const staticSourceName = "static"

// StaticSource serves profiles from an in-memory table. Unknown players get the
// default profile unless the source is strict.
type StaticSource struct {
	players map[string]models.PlayerProfile
	strict  bool
}

// NewStaticSource creates a source over the given profiles
func NewStaticSource(profiles []models.PlayerProfile, strict bool) *StaticSource {
	players := make(map[string]models.PlayerProfile, len(profiles))
	for _, p := range profiles {
		players[normalizeName(p.Name)] = p
	}
	return &StaticSource{players: players, strict: strict}
}

// NewSampleSource creates a static source seeded with the built-in sample players
func NewSampleSource(strict bool) *StaticSource {
	return NewStaticSource(SamplePlayers(), strict)
}

// SamplePlayers returns the built-in player table.
func SamplePlayers() []models.PlayerProfile {
	return []models.PlayerProfile{
		{
			Name:           "Nikola Jokic",
			Sport:          "nba",
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
			LastGames:      []float64{25, 23, 28, 19, 26, 24, 22, 27, 21, 25},
		},
		{
			// Passing yards: only the points model inputs apply.
			Name:        "Josh Allen",
			Sport:       "nfl",
			SeasonAvg:   264.2,
			Home:        true,
			RecentTrend: 5.2,
			SampleSize:  20,
			Consistency: 0.76,
			LastGames:   []float64{298, 247, 312, 223, 286, 255, 274, 301, 234, 289},
		},
	}
}

// FetchPlayer retrieves a player profile by name
func (s *StaticSource) FetchPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewSourceError(staticSourceName, ErrCodeInvalidData, "player name is required", models.ErrPlayerNameRequired)
	}

	if p, ok := s.players[normalizeName(name)]; ok {
		profile := p
		profile.LastGames = append([]float64(nil), p.LastGames...)
		return &profile, nil
	}

	if s.strict {
		return nil, NewSourceError(staticSourceName, ErrCodeNotFound, "unknown player "+name, ErrPlayerNotFound)
	}
	return models.DefaultProfile(strings.TrimSpace(name)), nil
}

// Name returns the name of the data source
func (s *StaticSource) Name() string {
	return staticSourceName
}

// Ping always succeeds for the in-memory table
func (s *StaticSource) Ping(ctx context.Context) error {
	return ctx.Err()
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
