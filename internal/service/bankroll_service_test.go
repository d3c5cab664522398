package service

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/bankroll"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/scheduler"
)

var _ scheduler.DayResetter = (*BankrollService)(nil)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var serviceNow = time.Date(2025, 10, 29, 21, 0, 0, 0, time.UTC)

func newSampleBankrollService(t *testing.T) (*BankrollService, *bytes.Buffer) {
	t.Helper()
	tracker, err := bankroll.SampleTracker(serviceNow)
	require.NoError(t, err)

	log, buf := testLogger()
	svc := NewBankrollService(tracker, log)
	svc.now = func() time.Time { return serviceNow }
	return svc, buf
}

func TestBankrollServiceSummaryPublishesGauges(t *testing.T) {
	svc, _ := newSampleBankrollService(t)

	summary := svc.Summary()
	assert.True(t, summary.Bankroll.Equal(dec("1250")), summary.Bankroll.String())
	assert.Equal(t, 1250.0, testutil.ToFloat64(metrics.CurrentBankroll))
	assert.Equal(t, 127.5, testutil.ToFloat64(metrics.DailyPnL))
	assert.Equal(t, summary.SharpeRatio, testutil.ToFloat64(metrics.SharpeRatio))
}

func TestBankrollServiceResetDay(t *testing.T) {
	svc, buf := newSampleBankrollService(t)
	before := len(svc.tracker.Curve(bankroll.PeriodAll))

	svc.ResetDay(serviceNow.Add(3 * time.Hour))

	assert.True(t, svc.tracker.DailyPnL().IsZero())
	assert.Len(t, svc.tracker.Curve(bankroll.PeriodAll), before+1)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.DailyPnL))
	assert.Equal(t, 1250.0, testutil.ToFloat64(metrics.CurrentBankroll))
	assert.Contains(t, buf.String(), "Daily P&L reset")
	assert.Contains(t, buf.String(), `"closing_daily_pnl":"127.5"`)
}

func TestBankrollServiceRecordAndSettle(t *testing.T) {
	svc, buf := newSampleBankrollService(t)

	bet, err := svc.RecordBet(BetRequest{
		Description: "Jokic O27.5 Points",
		Sport:       "NBA",
		Odds:        -110,
		EdgePercent: 13.0,
		StakeUnits:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BetStatusPending, bet.Status)
	assert.Equal(t, serviceNow, bet.PlacedAt)
	assert.Contains(t, buf.String(), "Bet recorded")

	settled, err := svc.SettleBet(bet.ID, models.BetStatusWon, decimal.RequireFromString("90.91"))
	require.NoError(t, err)
	assert.Equal(t, models.BetStatusWon, settled.Status)
	assert.True(t, svc.Summary().Bankroll.Equal(dec("1340.91")), svc.Summary().Bankroll.String())
	assert.Contains(t, buf.String(), "Bet settled")

	_, err = svc.SettleBet(bet.ID, models.BetStatusLost, decimal.NewFromInt(-100))
	assert.Error(t, err)

	_, err = svc.SettleBet(uuid.New(), models.BetStatusWon, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, bankroll.ErrBetNotFound)
}

func TestBankrollServiceRecordBetInvalid(t *testing.T) {
	svc, _ := newSampleBankrollService(t)

	_, err := svc.RecordBet(BetRequest{Description: "No stake", Sport: "NBA", Odds: -110})
	assert.ErrorIs(t, err, models.ErrInvalidBet)
}

func TestBankrollServiceRisk(t *testing.T) {
	svc, buf := newSampleBankrollService(t)

	status := svc.Risk(nil)
	assert.True(t, status.DailyPnL.Equal(dec("127.5")), status.DailyPnL.String())
	assert.False(t, status.StopLossHit)
	assert.False(t, status.DailyTargetHit)

	before := testutil.ToFloat64(metrics.RiskLimitEventsTotal.WithLabelValues("stop_loss"))
	loss := decimal.NewFromInt(-300)
	status = svc.Risk(&loss)
	assert.True(t, status.StopLossHit)
	assert.True(t, status.DailyLoss.Equal(dec("300")), status.DailyLoss.String())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RiskLimitEventsTotal.WithLabelValues("stop_loss")))
	assert.Contains(t, buf.String(), "Risk limit reached")

	win := decimal.NewFromInt(150)
	assert.True(t, svc.Risk(&win).DailyTargetHit)
}

func TestBankrollServiceRecommendStake(t *testing.T) {
	svc, buf := newSampleBankrollService(t)

	rec, err := svc.RecommendStake(185, 15.2)
	require.NoError(t, err)
	assert.True(t, rec.Amount.Equal(dec("31.25")), rec.Amount.String())
	assert.True(t, rec.Units.Equal(dec("0.63")), rec.Units.String())
	assert.Contains(t, buf.String(), "Kelly stake sized")

	_, err = svc.RecommendStake(0, 5)
	assert.ErrorIs(t, err, engine.ErrInvalidOdds)
}

func TestBankrollServiceCurveAndBets(t *testing.T) {
	svc, _ := newSampleBankrollService(t)

	curve, err := svc.Curve("7d")
	require.NoError(t, err)
	assert.Len(t, curve, 7)

	_, err = svc.Curve("2w")
	assert.ErrorIs(t, err, bankroll.ErrInvalidPeriod)

	wins, err := svc.Bets("nba", "wins")
	require.NoError(t, err)
	for _, b := range wins {
		assert.Equal(t, models.BetStatusWon, b.Status)
	}
}

func TestBankrollServiceExport(t *testing.T) {
	svc, logBuf := newSampleBankrollService(t)

	var out bytes.Buffer
	snap, err := svc.Export(&out)
	require.NoError(t, err)
	assert.Equal(t, 34, snap.TotalBets)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, decoded, "betHistory")
	assert.Contains(t, decoded, "growthData")
	assert.Equal(t, "bankroll-data-2025-10-29.json", svc.ExportFilename())
	assert.Contains(t, logBuf.String(), "Bankroll exported")
}
