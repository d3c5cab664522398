package engine

import "math"

type confidenceRule struct {
	minSampleSize  int
	minConsistency float64
	minDistance    float64 // exclusive
	level          ConfidenceLevel
}

// Evaluated top to bottom, first match wins.
var confidenceRules = [...]confidenceRule{
	{15, 0.80, 0.20, ConfidenceVeryHigh},
	{10, 0.70, 0.15, ConfidenceHigh},
	{5, 0.60, 0.10, ConfidenceMedium},
}

// ClassifyConfidence grades a probability by sample size, consistency and how far
// the probability sits from a coin flip.
func ClassifyConfidence(sampleSize int, consistency, probability float64) ConfidenceLevel {
	distance := math.Abs(probability - 0.5)
	for _, rule := range confidenceRules {
		if sampleSize >= rule.minSampleSize && consistency >= rule.minConsistency && distance > rule.minDistance {
			return rule.level
		}
	}
	return ConfidenceLow
}
