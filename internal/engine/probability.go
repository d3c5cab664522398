package engine

import (
	"fmt"
	"math"
)

// MaxProbability caps every model probability.
const MaxProbability = 0.99

// tailSigmas is the half-width, in standard deviations, of the window the Poisson
// sum is taken over.
const tailSigmas = 4.0

// MaxPoissonRate bounds the rate so a tail sum stays near 2*tailSigmas*sqrt(rate) terms.
const MaxPoissonRate = 1e9

// Abramowitz and Stegun 7.1.26 coefficients.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// ProbabilityOfExceeding returns the probability that the projected statistic lands
// at or above line, capped at MaxProbability.
func ProbabilityOfExceeding(p Projection, line float64) (float64, error) {
	if math.IsNaN(line) || math.IsInf(line, 0) {
		return 0, fmt.Errorf("%w: line %v", ErrNonFiniteInput, line)
	}

	switch p.Distribution {
	case DistributionPoisson:
		return poissonTail(p.Mean, line)
	case DistributionNormal:
		return normalTail(p.Mean, p.StdDev, line)
	default:
		return 0, fmt.Errorf("unknown distribution %q", p.Distribution)
	}
}

// poissonTail returns P(X >= ceil(line)). Lines at or below the rate are
// answered by the complement of the lower window [rate-4σ, ceil(line)); lines
// above it sum the upper tail from ceil(line) to ceil(line+4σ). Both branches
// do O(sqrt(rate)) work and the result never rises as the line rises.
func poissonTail(rate, line float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: rate %v", ErrNonFiniteInput, rate)
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: %v", ErrNegativeRate, rate)
	}
	if rate > MaxPoissonRate {
		return 0, fmt.Errorf("%w: %v", ErrRateOutOfRange, rate)
	}

	spread := tailSigmas * math.Sqrt(rate)
	first := math.Max(0, math.Ceil(line))

	if first <= rate {
		below := 0.0
		for k := math.Max(0, math.Floor(rate-spread)); k < first; k++ {
			below += poissonPMF(k, rate)
		}
		return capProbability(1 - below), nil
	}

	// Past the point where the mass underflows there is nothing left to sum,
	// which also keeps absurd lines away from the loop.
	if poissonPMF(first, rate) == 0 {
		return 0, nil
	}
	last := math.Ceil(line + spread)
	sum := 0.0
	for k := first; k <= last; k++ {
		sum += poissonPMF(k, rate)
	}
	return capProbability(sum), nil
}

// PoissonPMF returns P(X = k) for X ~ Poisson(rate). Terms are evaluated in log
// space so large k neither recurses nor overflows.
func PoissonPMF(k int, rate float64) float64 {
	return poissonPMF(float64(k), rate)
}

func poissonPMF(k, rate float64) float64 {
	if k < 0 || rate < 0 {
		return 0
	}
	if rate == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	logFact, _ := math.Lgamma(k + 1)
	return math.Exp(-rate + k*math.Log(rate) - logFact)
}

func normalTail(mean, stdDev, line float64) (float64, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, fmt.Errorf("%w: mean %v", ErrNonFiniteInput, mean)
	}
	if !(stdDev > 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonPositiveStdDev, stdDev)
	}
	z := (line - mean) / stdDev
	return capProbability(1 - NormalCDF(z)), nil
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}

// Erf approximates the error function with a maximum absolute error of about 1.5e-7.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)
	return sign * y
}

func capProbability(p float64) float64 {
	return math.Max(0, math.Min(p, MaxProbability))
}
