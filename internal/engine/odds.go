package engine

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 → 2.50, -150 → 1.667
func AmericanToDecimal(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrInvalidOdds
	}
	if odds > 0 {
		return float64(odds)/100 + 1, nil
	}
	return 100/math.Abs(float64(odds)) + 1, nil
}

// ImpliedProbability converts American odds to the win probability they imply
// with no bookmaker margin.
func ImpliedProbability(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrInvalidOdds
	}
	if odds > 0 {
		return 100 / (float64(odds) + 100), nil
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100), nil
}

// ComputeEdge returns model probability minus implied probability in percentage
// points, rounded half away from zero to one decimal.
func ComputeEdge(modelProbability float64, odds int) (float64, error) {
	implied, err := ImpliedProbability(odds)
	if err != nil {
		return 0, fmt.Errorf("compute edge: %w", err)
	}
	edge := modelProbability*100 - implied*100
	return math.Round(edge*10) / 10, nil
}

// Payout returns stake plus winnings for a winning bet at the given odds.
func Payout(odds int, stake float64) (float64, error) {
	decimal, err := AmericanToDecimal(odds)
	if err != nil {
		return 0, err
	}
	return (decimal-1)*stake + stake, nil
}
