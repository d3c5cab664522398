package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", "production", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Info("hello")
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry["msg"])
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("verbose", "development", buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level 'verbose'")
}

func TestCalculationLoggerPropEvaluation(t *testing.T) {
	log, buf := setupTestLogger()
	calcLogger := NewCalculationLogger(log)

	calcLogger.LogPropEvaluation("Nikola Jokic", "rebounds_assists", 22.5, -110, 21.85, 0.43, -9.3, "UNDER", "Low", 0.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "calculator", logEntry["component"])
	assert.Equal(t, "Nikola Jokic", logEntry["player"])
	assert.Equal(t, -9.3, logEntry["edge_percent"])
	assert.Equal(t, "UNDER", logEntry["prediction"])
}

func TestCalculationLoggerRejected(t *testing.T) {
	log, buf := setupTestLogger()
	calcLogger := NewCalculationLogger(log)

	calcLogger.LogCalculationRejected("implied_probability", map[string]interface{}{"odds": 0}, errors.New("invalid American odds: cannot be 0"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "implied_probability", logEntry["operation"])
	assert.Equal(t, "invalid American odds: cannot be 0", logEntry["error"])
}

func TestCalculationLoggerKellySizing(t *testing.T) {
	log, buf := setupTestLogger()
	calcLogger := NewCalculationLogger(log)

	calcLogger.LogKellySizing(185, 15.2, 0.025, 1250, 31.25)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "debug", logEntry["level"])
	assert.Equal(t, 31.25, logEntry["stake_amount"])
}

func TestAuditLoggerBetRecorded(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	placed := time.Date(2025, 10, 29, 19, 15, 0, 0, time.UTC)
	auditLogger.LogBetRecorded("bet-1", "CHI +3.5", "NFL", 185, 15.2, "2", placed)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "bet-1", logEntry["bet_id"])
	assert.Equal(t, float64(placed.Unix()), logEntry["placed_at"])
}

func TestAuditLoggerRiskLimitEvent(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogRiskLimitEvent("stop_loss", -300, -250)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "stop_loss", logEntry["event_type"])
}

func TestAuditLoggerDailyReset(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	at := time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC)
	auditLogger.LogDailyReset("127.5", "1250", at)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Daily P&L reset", logEntry["msg"])
	assert.Equal(t, "127.5", logEntry["closing_daily_pnl"])
	assert.Equal(t, float64(at.Unix()), logEntry["reset_at"])
}

func TestAuditLoggerExport(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogBankrollExport("1250", 8, 30, time.Now())

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Bankroll exported", logEntry["msg"])
	assert.Equal(t, float64(30), logEntry["curve_points"])
}
