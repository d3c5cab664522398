// Package logger provides calculation logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// CalculationLogger provides dedicated logging for prop calculations.
type CalculationLogger struct {
	*logrus.Entry
}

// NewCalculationLogger creates a new calculation logger.
func NewCalculationLogger(baseLogger *logrus.Logger) *CalculationLogger {
	return &CalculationLogger{
		Entry: baseLogger.WithField("component", "calculator"),
	}
}

// LogPropEvaluation logs a completed prop evaluation.
func (cl *CalculationLogger) LogPropEvaluation(player, statKind string, line float64, odds int, expected, probability, edgePercent float64, prediction, confidence string, durationMs float64) {
	cl.WithFields(logrus.Fields{
		"player":         player,
		"stat_kind":      statKind,
		"line":           line,
		"odds":           odds,
		"expected_value": expected,
		"probability":    probability,
		"edge_percent":   edgePercent,
		"prediction":     prediction,
		"confidence":     confidence,
		"duration_ms":    durationMs,
	}).Info("Prop evaluation completed")
}

// LogCalculationRejected logs a calculation that failed input validation.
func (cl *CalculationLogger) LogCalculationRejected(operation string, inputs map[string]interface{}, err error) {
	cl.WithFields(logrus.Fields{
		"operation": operation,
		"inputs":    inputs,
	}).WithError(err).Warn("Calculation rejected")
}

// LogKellySizing logs a stake recommendation.
func (cl *CalculationLogger) LogKellySizing(odds int, edgePercent, fraction, bankroll, stakeAmount float64) {
	cl.WithFields(logrus.Fields{
		"odds":           odds,
		"edge_percent":   edgePercent,
		"kelly_fraction": fraction,
		"bankroll":       bankroll,
		"stake_amount":   stakeAmount,
	}).Debug("Kelly stake sized")
}
