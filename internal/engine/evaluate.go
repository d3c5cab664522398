package engine

import (
	"fmt"
	"strings"
)

// Evaluation bundles every number produced for one prop.
type Evaluation struct {
	Kind       StatKind   `json:"stat_kind"`
	Line       float64    `json:"line"`
	Odds       int        `json:"odds"`
	Projection Projection `json:"projection"`
	EdgeResult
	KellyFraction  float64 `json:"kelly_fraction"`
	Recommendation string  `json:"recommendation"`
}

// Evaluate projects the statistic, prices it against the line and odds, grades it
// and sizes a stake.
func Evaluate(ctx PlayerContext, kind StatKind, line float64, odds int) (Evaluation, error) {
	projection, err := ComputeExpectedValue(ctx, kind)
	if err != nil {
		return Evaluation{}, err
	}

	probability, err := ProbabilityOfExceeding(projection, line)
	if err != nil {
		return Evaluation{}, fmt.Errorf("price %s line %.1f: %w", kind, line, err)
	}

	prediction := PredictionUnder
	if probability > 0.5 {
		prediction = PredictionOver
	}

	edge, err := ComputeEdge(probability, odds)
	if err != nil {
		return Evaluation{}, err
	}

	kelly, err := KellyStakeFraction(odds, edge)
	if err != nil {
		return Evaluation{}, err
	}

	result := EdgeResult{
		Probability: probability,
		Prediction:  prediction,
		EdgePercent: edge,
		Confidence:  ClassifyConfidence(ctx.SampleSize, ctx.Consistency, probability),
	}

	return Evaluation{
		Kind:           kind,
		Line:           line,
		Odds:           odds,
		Projection:     projection,
		EdgeResult:     result,
		KellyFraction:  kelly,
		Recommendation: Recommend(result),
	}, nil
}

// Recommend turns an edge result into advice for the bettor.
func Recommend(r EdgeResult) string {
	switch {
	case r.EdgePercent > 10:
		return fmt.Sprintf("Strong %s recommendation. High edge detected with %s confidence.",
			r.Prediction, strings.ToLower(r.Confidence.String()))
	case r.EdgePercent > 5:
		return fmt.Sprintf("Modest %s lean. Consider position sizing accordingly.", r.Prediction)
	case r.EdgePercent > 0:
		return fmt.Sprintf("Small %s edge. Monitor line movement for better value.", r.Prediction)
	default:
		return "No clear edge detected. Consider avoiding this prop bet."
	}
}

