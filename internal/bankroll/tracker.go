// Package bankroll tracks bankroll growth, bet history and risk limits.
package bankroll

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/models"
)

const (
	outcomeAll     = "all"
	outcomeWins    = "wins"
	outcomeLosses  = "losses"
	outcomePending = "pending"
	sportAll       = "all"
)

var (
	hundred = decimal.NewFromInt(100)
	// Units are reported per $1,000 of bankroll.
	unitDivisor = decimal.NewFromInt(1000)
)

// Options configures a Tracker
type Options struct {
	StartingBankroll decimal.Decimal
	CurrentBankroll  decimal.Decimal
	UnitSize         decimal.Decimal
	StopLoss         decimal.Decimal
	DailyTarget      decimal.Decimal
}

// Tracker holds bankroll state. It is safe for concurrent use.
type Tracker struct {
	mu sync.RWMutex

	starting    decimal.Decimal
	current     decimal.Decimal
	unitSize    decimal.Decimal
	stopLoss    decimal.Decimal
	dailyTarget decimal.Decimal
	dailyPnL    decimal.Decimal

	totalWins int
	totalBets int
	bets      []*models.Bet
	curve     EquityCurve
}

// Summary is the dashboard view of the bankroll
type Summary struct {
	Bankroll           decimal.Decimal `json:"bankroll"`
	StartingBankroll   decimal.Decimal `json:"starting_bankroll"`
	Units              decimal.Decimal `json:"units"`
	UnitSize           decimal.Decimal `json:"unit_size"`
	ROIPercent         decimal.Decimal `json:"roi_percent"`
	WinRatePercent     decimal.Decimal `json:"win_rate_percent"`
	TotalWins          int             `json:"total_wins"`
	TotalBets          int             `json:"total_bets"`
	PendingBets        int             `json:"pending_bets"`
	SettledPnL         decimal.Decimal `json:"settled_pnl"`
	DailyPnL           decimal.Decimal `json:"daily_pnl"`
	SharpeRatio        float64         `json:"sharpe_ratio"`
	MaxDrawdownPercent float64         `json:"max_drawdown_percent"`
}

// RiskStatus compares a day's P&L with the configured limits
type RiskStatus struct {
	DailyPnL       decimal.Decimal `json:"daily_pnl"`
	DailyLoss      decimal.Decimal `json:"daily_loss"`
	StopLoss       decimal.Decimal `json:"stop_loss"`
	StopLossHit    bool            `json:"stop_loss_hit"`
	DailyTarget    decimal.Decimal `json:"daily_target"`
	DailyTargetHit bool            `json:"daily_target_hit"`
}

// StakeRecommendation sizes a bet against the current bankroll
type StakeRecommendation struct {
	Odds          int             `json:"odds"`
	EdgePercent   float64         `json:"edge_percent"`
	KellyFraction float64         `json:"kelly_fraction"`
	Amount        decimal.Decimal `json:"amount"`
	Units         decimal.Decimal `json:"units"`
	Payout        decimal.Decimal `json:"payout"`
}

// NewTracker creates a tracker. A zero current bankroll starts at the starting bankroll.
func NewTracker(opts Options) (*Tracker, error) {
	if !opts.StartingBankroll.IsPositive() {
		return nil, fmt.Errorf("%w: starting bankroll must be positive", ErrInvalidOptions)
	}
	if !opts.UnitSize.IsPositive() {
		return nil, fmt.Errorf("%w: unit size must be positive", ErrInvalidOptions)
	}
	if opts.StopLoss.IsPositive() {
		return nil, fmt.Errorf("%w: stop loss must not be positive", ErrInvalidOptions)
	}
	current := opts.CurrentBankroll
	if current.IsZero() {
		current = opts.StartingBankroll
	}
	return &Tracker{
		starting:    opts.StartingBankroll,
		current:     current,
		unitSize:    opts.UnitSize,
		stopLoss:    opts.StopLoss,
		dailyTarget: opts.DailyTarget,
		dailyPnL:    decimal.Zero,
	}, nil
}

// CurrentBankroll returns the bankroll balance
func (t *Tracker) CurrentBankroll() decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// DailyPnL returns the running P&L for the current day
func (t *Tracker) DailyPnL() decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dailyPnL
}

// ResetDay starts a new trading day and records the closing balance on the curve.
func (t *Tracker) ResetDay(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.curve = t.curve.Append(at, t.current.InexactFloat64())
	t.dailyPnL = decimal.Zero
}

// RecordBet adds a pending bet
func (t *Tracker) RecordBet(bet *models.Bet) error {
	if err := bet.Validate(); err != nil {
		return err
	}
	if bet.Status != models.BetStatusPending {
		return fmt.Errorf("%w: bet %s is %s", ErrBetNotPending, bet.ID, bet.Status)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bets = append(t.bets, bet)
	return nil
}

// SettleBet closes a pending bet and applies its P&L to the bankroll
func (t *Tracker) SettleBet(id uuid.UUID, status models.BetStatus, profitLoss decimal.Decimal, at time.Time) (models.Bet, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.bets {
		if b.ID != id {
			continue
		}
		if err := b.Settle(status, profitLoss, at); err != nil {
			return models.Bet{}, err
		}
		t.current = t.current.Add(profitLoss)
		t.dailyPnL = t.dailyPnL.Add(profitLoss)
		t.totalBets++
		if status == models.BetStatusWon {
			t.totalWins++
		}
		return *b, nil
	}
	return models.Bet{}, fmt.Errorf("%w: %s", ErrBetNotFound, id)
}

// Bets returns a copy of the bet history in recording order
func (t *Tracker) Bets() []models.Bet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.copyBets(func(*models.Bet) bool { return true })
}

// FilterBets selects bets by sport (case-insensitive, "all" for any) and outcome
// ("all", "wins", "losses" or "pending").
func (t *Tracker) FilterBets(sport, outcome string) ([]models.Bet, error) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		sport = sportAll
	}
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	if outcome == "" {
		outcome = outcomeAll
	}

	var status models.BetStatus
	switch outcome {
	case outcomeAll:
	case outcomeWins:
		status = models.BetStatusWon
	case outcomeLosses:
		status = models.BetStatusLost
	case outcomePending:
		status = models.BetStatusPending
	default:
		return nil, fmt.Errorf("%w: outcome %q", ErrInvalidFilter, outcome)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.copyBets(func(b *models.Bet) bool {
		if sport != sportAll && strings.ToLower(b.Sport) != sport {
			return false
		}
		return status == "" || b.Status == status
	}), nil
}

// Curve returns the equity curve window for a period
func (t *Tracker) Curve(period Period) EquityCurve {
	t.mu.RLock()
	defer t.mu.RUnlock()
	window := t.curve.Window(period)
	return append(EquityCurve(nil), window...)
}

// Summary computes the dashboard metrics
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Summary{
		Bankroll:           t.current,
		StartingBankroll:   t.starting,
		Units:              t.current.Div(unitDivisor).Round(2),
		UnitSize:           t.unitSize,
		ROIPercent:         t.current.Sub(t.starting).Div(t.starting).Mul(hundred).Round(2),
		WinRatePercent:     decimal.Zero,
		TotalWins:          t.totalWins,
		TotalBets:          t.totalBets,
		SettledPnL:         decimal.Zero,
		DailyPnL:           t.dailyPnL,
		MaxDrawdownPercent: t.curve.MaxDrawdown() * 100,
	}
	if t.totalBets > 0 {
		s.WinRatePercent = decimal.NewFromInt(int64(t.totalWins)).
			Div(decimal.NewFromInt(int64(t.totalBets))).Mul(hundred).Round(2)
	}
	for _, b := range t.bets {
		if b.IsSettled() {
			s.SettledPnL = s.SettledPnL.Add(b.ProfitLoss)
		} else {
			s.PendingBets++
		}
	}
	// Fewer than two curve points leave the ratio at zero.
	if sharpe, err := t.curve.SharpeRatio(); err == nil {
		s.SharpeRatio = sharpe
	}
	return s
}

// RiskStatus evaluates a day's P&L against the stop loss and daily target
func (t *Tracker) RiskStatus(dailyPnL decimal.Decimal) RiskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return RiskStatus{
		DailyPnL:       dailyPnL,
		DailyLoss:      decimal.Max(decimal.Zero, dailyPnL.Neg()),
		StopLoss:       t.stopLoss,
		StopLossHit:    dailyPnL.LessThanOrEqual(t.stopLoss),
		DailyTarget:    t.dailyTarget,
		DailyTargetHit: dailyPnL.GreaterThanOrEqual(t.dailyTarget),
	}
}

// RecommendStake sizes a bet with quarter Kelly against the current bankroll
func (t *Tracker) RecommendStake(odds int, edgePercent float64) (StakeRecommendation, error) {
	fraction, err := engine.KellyStakeFraction(odds, edgePercent)
	if err != nil {
		return StakeRecommendation{}, err
	}

	t.mu.RLock()
	current, unit := t.current, t.unitSize
	t.mu.RUnlock()

	amount := current.Mul(decimal.NewFromFloat(fraction)).Round(2)
	payout, err := engine.Payout(odds, amount.InexactFloat64())
	if err != nil {
		return StakeRecommendation{}, err
	}
	return StakeRecommendation{
		Odds:          odds,
		EdgePercent:   edgePercent,
		KellyFraction: fraction,
		Amount:        amount,
		Units:         amount.Div(unit).Round(2),
		Payout:        decimal.NewFromFloat(payout).Round(2),
	}, nil
}

// Snapshot is the exported bankroll state
type Snapshot struct {
	Bankroll         decimal.Decimal `json:"bankroll"`
	StartingBankroll decimal.Decimal `json:"startingBankroll"`
	TotalWins        int             `json:"totalWins"`
	TotalBets        int             `json:"totalBets"`
	BetHistory       []models.Bet    `json:"betHistory"`
	GrowthData       EquityCurve     `json:"growthData"`
	ExportDate       time.Time       `json:"exportDate"`
}

// Snapshot captures the tracker state at now
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Bankroll:         t.current,
		StartingBankroll: t.starting,
		TotalWins:        t.totalWins,
		TotalBets:        t.totalBets,
		BetHistory:       t.copyBets(func(*models.Bet) bool { return true }),
		GrowthData:       append(EquityCurve(nil), t.curve...),
		ExportDate:       now.UTC(),
	}
}

// Export writes an indented JSON snapshot to w
func (t *Tracker) Export(w io.Writer, now time.Time) (Snapshot, error) {
	snap := t.Snapshot(now)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return Snapshot{}, fmt.Errorf("export bankroll: %w", err)
	}
	return snap, nil
}

// ExportFilename names an export file for the given day
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("bankroll-data-%s.json", now.UTC().Format("2006-01-02"))
}

func (t *Tracker) copyBets(keep func(*models.Bet) bool) []models.Bet {
	out := make([]models.Bet, 0, len(t.bets))
	for _, b := range t.bets {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}
