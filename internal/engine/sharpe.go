package engine

import (
	"fmt"
	"math"
)

// TradingDaysPerYear annualizes daily ratios.
const TradingDaysPerYear = 252

// DailyReturns computes simple period-over-period returns. A zero starting value
// yields a zero return for that period.
func DailyReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (values[i]-prev)/prev)
	}
	return returns
}

// AnnualizedSharpeRatio returns mean daily return over its population standard
// deviation, scaled by sqrt(252). A flat series returns 0.
func AnnualizedSharpeRatio(dailyValues []float64) (float64, error) {
	if len(dailyValues) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrInsufficientData, len(dailyValues))
	}
	for i, v := range dailyValues {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: value %d is %v", ErrNonFiniteInput, i, v)
		}
	}
	returns := DailyReturns(dailyValues)
	std := stddev(returns)
	if std == 0 {
		return 0, nil
	}
	return average(returns) / std * math.Sqrt(TradingDaysPerYear), nil
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	return mean / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
