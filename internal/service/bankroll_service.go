package service

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/bankroll"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// BetRequest records a new pending bet
type BetRequest struct {
	Description string          `json:"description"`
	Sport       string          `json:"sport"`
	Odds        int             `json:"odds"`
	EdgePercent float64         `json:"edge_percent"`
	StakeUnits  decimal.Decimal `json:"stake_units"`
}

// BankrollService exposes the bankroll tracker with auditing and metrics
type BankrollService struct {
	tracker *bankroll.Tracker
	audit   *logger.AuditLogger
	calcLog *logger.CalculationLogger
	logger  *logrus.Logger
	now     func() time.Time
}

// NewBankrollService creates a new bankroll service
func NewBankrollService(tracker *bankroll.Tracker, log *logrus.Logger) *BankrollService {
	s := &BankrollService{
		tracker: tracker,
		audit:   logger.NewAuditLogger(log),
		calcLog: logger.NewCalculationLogger(log),
		logger:  log,
		now:     time.Now,
	}
	s.publish(tracker.Summary())
	return s
}

// Summary returns the dashboard view and refreshes the bankroll gauges
func (s *BankrollService) Summary() bankroll.Summary {
	summary := s.tracker.Summary()
	s.publish(summary)
	return summary
}

// Bets lists bets filtered by sport and outcome
func (s *BankrollService) Bets(sport, outcome string) ([]models.Bet, error) {
	return s.tracker.FilterBets(sport, outcome)
}

// Curve returns the equity curve for a chart period
func (s *BankrollService) Curve(period string) (bankroll.EquityCurve, error) {
	p, err := bankroll.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.tracker.Curve(p), nil
}

// Risk checks a day's P&L against the limits. A nil dailyPnL uses the tracked value.
func (s *BankrollService) Risk(dailyPnL *decimal.Decimal) bankroll.RiskStatus {
	pnl := s.tracker.DailyPnL()
	if dailyPnL != nil {
		pnl = *dailyPnL
	}
	status := s.tracker.RiskStatus(pnl)

	if status.StopLossHit {
		metrics.RecordRiskLimitEvent("stop_loss")
		s.audit.LogRiskLimitEvent("stop_loss", pnl.InexactFloat64(), status.StopLoss.InexactFloat64())
	}
	if status.DailyTargetHit {
		metrics.RecordRiskLimitEvent("daily_target")
		s.audit.LogRiskLimitEvent("daily_target", pnl.InexactFloat64(), status.DailyTarget.InexactFloat64())
	}
	return status
}

// RecommendStake sizes a stake with capped quarter Kelly
func (s *BankrollService) RecommendStake(odds int, edgePercent float64) (bankroll.StakeRecommendation, error) {
	rec, err := s.tracker.RecommendStake(odds, edgePercent)
	if err != nil {
		metrics.RecordCalculationError(errorKind(err))
		s.calcLog.LogCalculationRejected("recommend_stake", map[string]interface{}{"odds": odds, "edge_percent": edgePercent}, err)
		return bankroll.StakeRecommendation{}, err
	}
	s.calcLog.LogKellySizing(odds, edgePercent, rec.KellyFraction,
		s.tracker.CurrentBankroll().InexactFloat64(), rec.Amount.InexactFloat64())
	return rec, nil
}

// RecordBet adds a pending bet
func (s *BankrollService) RecordBet(req BetRequest) (*models.Bet, error) {
	bet := models.NewBet(req.Description, req.Sport, req.Odds, req.EdgePercent, req.StakeUnits, s.now().UTC())
	if err := s.tracker.RecordBet(bet); err != nil {
		return nil, fmt.Errorf("failed to record bet: %w", err)
	}
	metrics.RecordBetRecorded()
	s.audit.LogBetRecorded(bet.ID.String(), bet.Description, bet.Sport, bet.Odds, bet.EdgePercent,
		bet.StakeUnits.String(), bet.PlacedAt)
	return bet, nil
}

// SettleBet settles a pending bet and updates the bankroll
func (s *BankrollService) SettleBet(id uuid.UUID, status models.BetStatus, profitLoss decimal.Decimal) (models.Bet, error) {
	bet, err := s.tracker.SettleBet(id, status, profitLoss, s.now().UTC())
	if err != nil {
		return models.Bet{}, fmt.Errorf("failed to settle bet %s: %w", id, err)
	}
	current := s.tracker.CurrentBankroll()
	metrics.RecordBetSettled(string(status))
	s.audit.LogBetSettled(bet.ID.String(), string(bet.Status), bet.ProfitLoss.String(), current.String())
	s.publish(s.tracker.Summary())
	return bet, nil
}

// ResetDay closes the trading day on the tracker and republishes the gauges
func (s *BankrollService) ResetDay(at time.Time) {
	closing := s.tracker.DailyPnL()
	s.tracker.ResetDay(at)
	summary := s.tracker.Summary()
	s.audit.LogDailyReset(closing.String(), summary.Bankroll.String(), at)
	s.publish(summary)
}

// Export writes the bankroll snapshot as JSON
func (s *BankrollService) Export(w io.Writer) (bankroll.Snapshot, error) {
	snap, err := s.tracker.Export(w, s.now())
	if err != nil {
		return bankroll.Snapshot{}, err
	}
	s.audit.LogBankrollExport(snap.Bankroll.String(), len(snap.BetHistory), len(snap.GrowthData), snap.ExportDate)
	return snap, nil
}

// ExportFilename names an export written now
func (s *BankrollService) ExportFilename() string {
	return bankroll.ExportFilename(s.now())
}

func (s *BankrollService) publish(summary bankroll.Summary) {
	metrics.UpdateBankroll(summary.Bankroll.InexactFloat64())
	metrics.UpdateDailyPnL(summary.DailyPnL.InexactFloat64())
	metrics.UpdateSharpeRatio(summary.SharpeRatio)
}
