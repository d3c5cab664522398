package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBet(t *testing.T) {
	placed := time.Date(2025, 10, 29, 18, 42, 0, 0, time.UTC)
	b := NewBet("Jokic O22.5 Reb+Ast", "NBA", -110, 14.7, decimal.NewFromFloat(1.5), placed)

	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, BetStatusPending, b.Status)
	assert.True(t, b.ProfitLoss.IsZero())
	assert.False(t, b.IsSettled())
	require.NoError(t, b.Validate())
}

func TestBetSettle(t *testing.T) {
	placed := time.Date(2025, 10, 29, 18, 42, 0, 0, time.UTC)
	b := NewBet("Jokic O22.5 Reb+Ast", "NBA", -110, 14.7, decimal.NewFromFloat(1.5), placed)

	err := b.Settle(BetStatusWon, decimal.RequireFromString("-5"), placed)
	assert.ErrorIs(t, err, ErrInvalidBet)
	assert.Equal(t, BetStatusPending, b.Status)

	require.NoError(t, b.Settle(BetStatusWon, decimal.RequireFromString("68.18"), placed.Add(3*time.Hour)))
	assert.True(t, b.IsSettled())
	require.NotNil(t, b.SettledAt)

	err = b.Settle(BetStatusLost, decimal.RequireFromString("-75"), placed)
	assert.ErrorIs(t, err, ErrInvalidBet)
}

func TestBetValidate(t *testing.T) {
	placed := time.Now()
	tests := []struct {
		name   string
		mutate func(b *Bet)
	}{
		{"zero odds", func(b *Bet) { b.Odds = 0 }},
		{"zero stake", func(b *Bet) { b.StakeUnits = decimal.Zero }},
		{"unknown status", func(b *Bet) { b.Status = "void" }},
		{"pending with pnl", func(b *Bet) { b.ProfitLoss = decimal.NewFromInt(10) }},
		{"lost with profit", func(b *Bet) { b.Status = BetStatusLost; b.ProfitLoss = decimal.NewFromInt(10) }},
		{"missing sport", func(b *Bet) { b.Sport = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBet("Lakers ML", "NBA", -120, 3.2, decimal.NewFromInt(1), placed)
			tt.mutate(b)
			assert.ErrorIs(t, b.Validate(), ErrInvalidBet)
		})
	}
}

func TestBetROI(t *testing.T) {
	unit := decimal.NewFromInt(50)
	b := NewBet("Chiefs -7.5", "NFL", -110, 4.3, decimal.NewFromInt(2), time.Now())
	assert.Equal(t, 0.0, b.GetROI(unit))

	require.NoError(t, b.Settle(BetStatusLost, decimal.NewFromInt(-110), time.Now()))
	assert.True(t, b.StakeAmount(unit).Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, -110.0, b.GetROI(unit), 1e-9)
}
