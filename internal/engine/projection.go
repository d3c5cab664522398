package engine

import "fmt"

// PointsStdDev is the fixed spread of the points model.
const PointsStdDev = 8.5

const homeBoost = 1.08

// ComputeExpectedValue projects a statistic for a player. Adjustments are applied
// in a fixed order so results are reproducible bit for bit.
func ComputeExpectedValue(ctx PlayerContext, kind StatKind) (Projection, error) {
	switch kind {
	case StatPoints:
		return Projection{
			Distribution: DistributionNormal,
			Mean:         expectedPoints(ctx),
			StdDev:       PointsStdDev,
		}, nil
	case StatRebounds:
		return poisson(expectedRebounds(ctx)), nil
	case StatAssists:
		return poisson(expectedAssists(ctx)), nil
	case StatReboundsPlusAssists:
		// Treated as Poisson although the two counts are correlated.
		return poisson(expectedRebounds(ctx) + expectedAssists(ctx)), nil
	default:
		return Projection{}, fmt.Errorf("%w: %q", ErrUnsupportedStatKind, kind)
	}
}

func poisson(rate float64) Projection {
	return Projection{Distribution: DistributionPoisson, Mean: rate}
}

func expectedPoints(ctx PlayerContext) float64 {
	base := ctx.SeasonAvg
	if ctx.Home {
		base *= homeBoost
	}
	base *= 1 + ctx.RecentTrend/100
	base += ctx.MatchupAdj
	return base
}

func expectedRebounds(ctx PlayerContext) float64 {
	base := ctx.ReboundsAvg
	base *= ctx.MinutesPerGame / 35
	base *= 1 / ctx.OppRebDef
	return base
}

func expectedAssists(ctx PlayerContext) float64 {
	base := ctx.AssistsAvg
	base *= ctx.TeamPace / 100
	base *= ctx.UsageRate / 25
	return base
}
