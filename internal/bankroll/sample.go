package bankroll

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/models"
)

const (
	sampleSeed       = 20251029
	sampleGrowthDays = 30
	sampleTotalWins  = 23
	sampleTotalBets  = 34
)

// SampleOptions are the demo dashboard limits
func SampleOptions() Options {
	return Options{
		StartingBankroll: decimal.RequireFromString("1122.50"),
		CurrentBankroll:  decimal.RequireFromString("1250.00"),
		UnitSize:         decimal.NewFromInt(50),
		StopLoss:         decimal.NewFromInt(-250),
		DailyTarget:      decimal.NewFromInt(150),
	}
}

type sampleBet struct {
	placed      string
	description string
	sport       string
	odds        int
	edge        float64
	stake       string
	pnl         string
	status      models.BetStatus
}

var sampleBets = []sampleBet{
	{"2025-10-29 19:15", "CHI +3.5", "NFL", 185, 15.2, "2.0", "185.00", models.BetStatusWon},
	{"2025-10-29 18:42", "Jokic O22.5 Reb+Ast", "NBA", -110, 14.7, "1.5", "68.18", models.BetStatusWon},
	{"2025-10-29 17:30", "Allen O265.5 Pass Yds", "NFL", 105, 12.4, "1.25", "65.63", models.BetStatusWon},
	{"2025-10-29 20:00", "Ohtani O1.5 TB", "MLB", 115, 16.8, "2.0", "0", models.BetStatusPending},
	{"2025-10-28 21:15", "Lakers ML", "NBA", -120, 3.2, "1.0", "-50.00", models.BetStatusLost},
	{"2025-10-28 20:30", "Mahomes O2.5 Pass TD", "NFL", -110, 8.9, "1.75", "79.55", models.BetStatusWon},
	{"2025-10-28 19:00", "Luka O28.5 Points", "NBA", -105, 7.1, "1.5", "71.43", models.BetStatusWon},
	{"2025-10-27 16:15", "Chiefs -7.5", "NFL", -110, 4.3, "2.0", "-110.00", models.BetStatusLost},
}

// SampleTracker returns a tracker loaded with the demo bet history and a
// deterministic 30-day growth curve ending on now's date.
func SampleTracker(now time.Time) (*Tracker, error) {
	opts := SampleOptions()
	t, err := NewTracker(opts)
	if err != nil {
		return nil, err
	}

	bets, err := sampleBetHistory()
	if err != nil {
		return nil, err
	}

	t.bets = bets
	t.totalWins = sampleTotalWins
	t.totalBets = sampleTotalBets
	t.dailyPnL = decimal.RequireFromString("127.50")
	t.curve = sampleGrowth(now, opts.StartingBankroll.InexactFloat64(), opts.CurrentBankroll.InexactFloat64())
	return t, nil
}

func sampleBetHistory() ([]*models.Bet, error) {
	bets := make([]*models.Bet, 0, len(sampleBets))
	for i, s := range sampleBets {
		placed, err := time.Parse("2006-01-02 15:04", s.placed)
		if err != nil {
			return nil, fmt.Errorf("sample bet %d: %w", i+1, err)
		}
		b := &models.Bet{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("prop-edge-sample-bet-%d", i+1))),
			PlacedAt:    placed,
			Description: s.description,
			Sport:       s.sport,
			Odds:        s.odds,
			EdgePercent: s.edge,
			StakeUnits:  decimal.RequireFromString(s.stake),
			ProfitLoss:  decimal.RequireFromString(s.pnl),
			Status:      s.status,
		}
		if b.IsSettled() {
			settled := placed.Add(3 * time.Hour)
			b.SettledAt = &settled
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("sample bet %d: %w", i+1, err)
		}
		bets = append(bets, b)
	}
	return bets, nil
}

// sampleGrowth walks a seeded random path biased upward, pinning the last day to current.
func sampleGrowth(now time.Time, starting, current float64) EquityCurve {
	rng := rand.New(rand.NewSource(sampleSeed))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	value := starting
	curve := make(EquityCurve, 0, sampleGrowthDays)
	for i := 0; i < sampleGrowthDays; i++ {
		value += (rng.Float64() - 0.4) * 100
		point := math.Round(value*100) / 100
		if i == sampleGrowthDays-1 {
			point = current
		}
		curve = curve.Append(today.AddDate(0, 0, -(sampleGrowthDays-1-i)), point)
	}
	return curve
}
