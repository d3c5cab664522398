// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogBetRecorded logs a bet entering the tracker.
func (al *AuditLogger) LogBetRecorded(betID, description, sport string, odds int, edgePercent float64, stakeUnits string, placedAt time.Time) {
	al.WithFields(logrus.Fields{
		"bet_id":       betID,
		"description":  description,
		"sport":        sport,
		"odds":         odds,
		"edge_percent": edgePercent,
		"stake_units":  stakeUnits,
		"placed_at":    placedAt.Unix(),
	}).Info("Bet recorded")
}

// LogBetSettled logs a bet result.
func (al *AuditLogger) LogBetSettled(betID, status, profitLoss, bankroll string) {
	al.WithFields(logrus.Fields{
		"bet_id":      betID,
		"status":      status,
		"profit_loss": profitLoss,
		"bankroll":    bankroll,
	}).Info("Bet settled")
}

// LogDailyReset logs the close of a trading day.
func (al *AuditLogger) LogDailyReset(closingPnL, bankroll string, at time.Time) {
	al.WithFields(logrus.Fields{
		"closing_daily_pnl": closingPnL,
		"bankroll":          bankroll,
		"reset_at":          at.Unix(),
	}).Info("Daily P&L reset")
}

// LogBankrollExport logs a bankroll snapshot export.
func (al *AuditLogger) LogBankrollExport(bankroll string, bets, points int, exportedAt time.Time) {
	al.WithFields(logrus.Fields{
		"bankroll":     bankroll,
		"bets":         bets,
		"curve_points": points,
		"exported_at":  exportedAt.Unix(),
	}).Info("Bankroll exported")
}

// LogRiskLimitEvent logs a stop loss or daily target being reached.
func (al *AuditLogger) LogRiskLimitEvent(eventType string, dailyPnL, limit float64) {
	al.WithFields(logrus.Fields{
		"event_type": eventType,
		"daily_pnl":  dailyPnL,
		"limit":      limit,
	}).Warn("Risk limit reached")
}
