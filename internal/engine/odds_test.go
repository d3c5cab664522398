package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name string
		odds int
		want float64
	}{
		{"underdog +150", 150, 0.4},
		{"favorite -150", -150, 0.6},
		{"even +100", 100, 0.5},
		{"standard -110", -110, 110.0 / 210.0},
		{"heavy underdog +300", 300, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImpliedProbability(tt.odds)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestImpliedProbabilityZeroOdds(t *testing.T) {
	_, err := ImpliedProbability(0)
	assert.ErrorIs(t, err, ErrInvalidOdds)
}

func TestImpliedProbabilityRange(t *testing.T) {
	for _, odds := range []int{-100000, -1000, -101, -100, 100, 101, 1000, 100000} {
		p, err := ImpliedProbability(odds)
		require.NoError(t, err)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestComputeEdge(t *testing.T) {
	edge, err := ComputeEdge(0.68, -110)
	require.NoError(t, err)
	assert.InDelta(t, 15.6, edge, 0.1)
	assert.Equal(t, 15.6, edge)

	edge, err = ComputeEdge(0.40, -110)
	require.NoError(t, err)
	assert.Equal(t, -12.4, edge)

	_, err = ComputeEdge(0.5, 0)
	assert.ErrorIs(t, err, ErrInvalidOdds)
}

func TestComputeEdgeRoundsHalfAwayFromZero(t *testing.T) {
	// 9/16 and 7/16 are exact, so the edges are exactly +6.25 and -6.25.
	edge, err := ComputeEdge(0.5625, 100)
	require.NoError(t, err)
	assert.Equal(t, 6.3, edge)

	edge, err = ComputeEdge(0.4375, 100)
	require.NoError(t, err)
	assert.Equal(t, -6.3, edge)
}

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		odds int
		want float64
	}{
		{100, 2.0},
		{150, 2.5},
		{-110, 1.909090909},
		{-200, 1.5},
	}
	for _, tt := range tests {
		got, err := AmericanToDecimal(tt.odds)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-6)
	}

	_, err := AmericanToDecimal(0)
	assert.ErrorIs(t, err, ErrInvalidOdds)
}

func TestPayout(t *testing.T) {
	win, err := Payout(185, 100)
	require.NoError(t, err)
	assert.InDelta(t, 285.0, win, 1e-9)

	win, err = Payout(-110, 110)
	require.NoError(t, err)
	assert.InDelta(t, 210.0, win, 1e-9)

	_, err = Payout(0, 10)
	assert.ErrorIs(t, err, ErrInvalidOdds)
}
