package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetStatus represents the status of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
)

// Bet represents a tracked wager
type Bet struct {
	ID          uuid.UUID       `json:"id" validate:"required"`
	PlacedAt    time.Time       `json:"placed_at" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Sport       string          `json:"sport" validate:"required"`
	Odds        int             `json:"odds" validate:"required"`
	EdgePercent float64         `json:"edge_percent"`
	StakeUnits  decimal.Decimal `json:"stake_units"`
	ProfitLoss  decimal.Decimal `json:"profit_loss"`
	Status      BetStatus       `json:"status" validate:"required,oneof=pending won lost"`
	SettledAt   *time.Time      `json:"settled_at,omitempty"`
}

// NewBet creates a pending bet with a fresh ID.
func NewBet(description, sport string, odds int, edgePercent float64, stakeUnits decimal.Decimal, placedAt time.Time) *Bet {
	return &Bet{
		ID:          uuid.New(),
		PlacedAt:    placedAt,
		Description: description,
		Sport:       sport,
		Odds:        odds,
		EdgePercent: edgePercent,
		StakeUnits:  stakeUnits,
		ProfitLoss:  decimal.Zero,
		Status:      BetStatusPending,
	}
}

// Validate checks field constraints and that the P&L sign matches the status.
func (b *Bet) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	if !b.StakeUnits.IsPositive() {
		return fmt.Errorf("%w: stake must be positive, got %s", ErrInvalidBet, b.StakeUnits)
	}
	switch b.Status {
	case BetStatusPending:
		if !b.ProfitLoss.IsZero() {
			return fmt.Errorf("%w: pending bet cannot carry P&L", ErrInvalidBet)
		}
	case BetStatusWon:
		if b.ProfitLoss.IsNegative() {
			return fmt.Errorf("%w: winning bet has negative P&L %s", ErrInvalidBet, b.ProfitLoss)
		}
	case BetStatusLost:
		if b.ProfitLoss.IsPositive() {
			return fmt.Errorf("%w: losing bet has positive P&L %s", ErrInvalidBet, b.ProfitLoss)
		}
	}
	return nil
}

// Settle closes the bet. Settling an already settled bet is an error.
func (b *Bet) Settle(status BetStatus, profitLoss decimal.Decimal, at time.Time) error {
	if b.IsSettled() {
		return fmt.Errorf("%w: bet %s already %s", ErrInvalidBet, b.ID, b.Status)
	}
	if status == BetStatusPending {
		return fmt.Errorf("%w: cannot settle as pending", ErrInvalidBet)
	}
	prevStatus, prevPnL := b.Status, b.ProfitLoss
	b.Status = status
	b.ProfitLoss = profitLoss
	if err := b.Validate(); err != nil {
		b.Status, b.ProfitLoss = prevStatus, prevPnL
		return err
	}
	b.SettledAt = &at
	return nil
}

// IsSettled checks if the bet has been settled
func (b *Bet) IsSettled() bool {
	return b.Status == BetStatusWon || b.Status == BetStatusLost
}

// StakeAmount converts the unit stake into currency.
func (b *Bet) StakeAmount(unitSize decimal.Decimal) decimal.Decimal {
	return b.StakeUnits.Mul(unitSize)
}

// GetROI returns the return on investment percentage
func (b *Bet) GetROI(unitSize decimal.Decimal) float64 {
	stake := b.StakeAmount(unitSize)
	if stake.IsZero() || !b.IsSettled() {
		return 0
	}
	return b.ProfitLoss.Div(stake).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
