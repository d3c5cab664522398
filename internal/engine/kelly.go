package engine

import (
	"fmt"
	"math"
)

const (
	// KellyMultiplier scales the raw Kelly fraction down to quarter Kelly.
	KellyMultiplier = 0.25
	// MaxStakeFraction is the largest share of bankroll a single bet may take.
	MaxStakeFraction = 0.025
)

// KellyStakeFraction sizes a bet as a fraction of bankroll in [0, MaxStakeFraction].
//
// The win probability is derived from the edge as 0.5 + edge/200, a heuristic
// rather than a calibrated estimate.
func KellyStakeFraction(odds int, edgePercent float64) (float64, error) {
	if math.IsNaN(edgePercent) || math.IsInf(edgePercent, 0) {
		return 0, fmt.Errorf("%w: edge %v", ErrNonFiniteInput, edgePercent)
	}
	decimal, err := AmericanToDecimal(odds)
	if err != nil {
		return 0, fmt.Errorf("kelly stake: %w", err)
	}

	// f = (bp - q) / b
	b := decimal - 1
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	p := 0.5 + edgePercent/200
	q := 1 - p

	raw := (b*p - q) / b
	return math.Max(0, math.Min(raw*KellyMultiplier, MaxStakeFraction)), nil
}
