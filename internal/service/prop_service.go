// Package service wires the probability engine to player data, logging and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
)

// ErrInvalidRequest is wrapped by request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// PropRequest asks for one prop to be priced
type PropRequest struct {
	Player   string  `json:"player" validate:"required"`
	Sport    string  `json:"sport,omitempty"`
	StatKind string  `json:"stat_kind" validate:"required"`
	Line     float64 `json:"line" validate:"gt=0"`
	Odds     int     `json:"odds" validate:"required"`
	// Context, when set, replaces the player lookup.
	Context *engine.PlayerContext `json:"context,omitempty" validate:"omitempty"`
}

// PropResult is an evaluation enriched with player details
type PropResult struct {
	Player           string   `json:"player"`
	Sport            string   `json:"sport,omitempty"`
	Source           string   `json:"source"`
	LastGamesAverage *float64 `json:"last_games_average,omitempty"`
	engine.Evaluation
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// OddsQuote describes a price in several formats
type OddsQuote struct {
	American           int     `json:"american"`
	Decimal            float64 `json:"decimal"`
	ImpliedProbability float64 `json:"implied_probability"`
}

// PropService evaluates player props
type PropService struct {
	source   datasource.PlayerSource
	validate *validator.Validate
	calcLog  *logger.CalculationLogger
	logger   *logrus.Logger
	now      func() time.Time
}

// NewPropService creates a new prop service
func NewPropService(source datasource.PlayerSource, log *logrus.Logger) *PropService {
	return &PropService{
		source:   source,
		validate: validator.New(),
		calcLog:  logger.NewCalculationLogger(log),
		logger:   log,
		now:      time.Now,
	}
}

// Evaluate prices a prop for a player
func (s *PropService) Evaluate(ctx context.Context, req PropRequest) (*PropResult, error) {
	start := s.now()

	if err := s.validate.Struct(req); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		s.reject("evaluate", map[string]interface{}{"player": req.Player, "stat_kind": req.StatKind, "line": req.Line, "odds": req.Odds}, err)
		return nil, err
	}

	kind, err := engine.ParseStatKind(req.StatKind)
	if err != nil {
		s.reject("evaluate", map[string]interface{}{"stat_kind": req.StatKind}, err)
		return nil, err
	}

	result := &PropResult{Player: strings.TrimSpace(req.Player), Sport: req.Sport}

	var pctx engine.PlayerContext
	if req.Context != nil {
		pctx = *req.Context
		result.Source = "request"
	} else {
		profile, err := s.source.FetchPlayer(ctx, req.Player)
		if err != nil {
			metrics.RecordPlayerFetch(s.source.Name(), "error")
			metrics.RecordCalculationError(errorKind(err))
			s.logger.WithError(err).WithField("player", req.Player).Warn("Player lookup failed")
			return nil, fmt.Errorf("fetch player %q: %w", req.Player, err)
		}
		metrics.RecordPlayerFetch(s.source.Name(), "ok")
		pctx = profile.ToContext()
		result.Player = profile.Name
		result.Source = s.source.Name()
		if result.Sport == "" {
			result.Sport = profile.Sport
		}
		if avg, ok := profile.LastGamesAverage(); ok {
			result.LastGamesAverage = &avg
		}
	}

	eval, err := engine.Evaluate(pctx, kind, req.Line, req.Odds)
	if err != nil {
		s.reject("evaluate", map[string]interface{}{"player": result.Player, "stat_kind": kind, "line": req.Line, "odds": req.Odds}, err)
		return nil, err
	}
	result.Evaluation = eval
	result.EvaluatedAt = s.now().UTC()

	duration := s.now().Sub(start)
	metrics.RecordPropEvaluation(string(kind), string(eval.Prediction), eval.EdgePercent, duration.Seconds())
	s.calcLog.LogPropEvaluation(result.Player, string(kind), req.Line, req.Odds, eval.Projection.Mean,
		eval.Probability, eval.EdgePercent, string(eval.Prediction), eval.Confidence.String(),
		float64(duration.Microseconds())/1000)

	return result, nil
}

// Quote converts American odds into decimal odds and implied probability
func (s *PropService) Quote(odds int) (OddsQuote, error) {
	implied, err := engine.ImpliedProbability(odds)
	if err != nil {
		s.reject("implied_probability", map[string]interface{}{"odds": odds}, err)
		return OddsQuote{}, err
	}
	dec, err := engine.AmericanToDecimal(odds)
	if err != nil {
		return OddsQuote{}, err
	}
	return OddsQuote{American: odds, Decimal: dec, ImpliedProbability: implied}, nil
}

// KellyFraction returns the capped quarter-Kelly stake fraction
func (s *PropService) KellyFraction(odds int, edgePercent float64) (float64, error) {
	fraction, err := engine.KellyStakeFraction(odds, edgePercent)
	if err != nil {
		s.reject("kelly", map[string]interface{}{"odds": odds, "edge_percent": edgePercent}, err)
		return 0, err
	}
	return fraction, nil
}

// SharpeRatio annualizes a series of daily bankroll values
func (s *PropService) SharpeRatio(values []float64) (float64, error) {
	ratio, err := engine.AnnualizedSharpeRatio(values)
	if err != nil {
		s.reject("sharpe", map[string]interface{}{"values": len(values)}, err)
		return 0, err
	}
	return ratio, nil
}

// Ping checks the player data source
func (s *PropService) Ping(ctx context.Context) error {
	return s.source.Ping(ctx)
}

func (s *PropService) reject(operation string, inputs map[string]interface{}, err error) {
	metrics.RecordCalculationError(errorKind(err))
	s.calcLog.LogCalculationRejected(operation, inputs, err)
}

// errorKind labels an error for the calculation_errors_total metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, engine.ErrUnsupportedStatKind):
		return "unsupported_stat_kind"
	case errors.Is(err, engine.ErrNonPositiveStdDev):
		return "non_positive_std_dev"
	case errors.Is(err, engine.ErrNegativeRate):
		return "negative_rate"
	case errors.Is(err, engine.ErrRateOutOfRange):
		return "rate_out_of_range"
	case errors.Is(err, engine.ErrInvalidOdds):
		return "invalid_odds"
	case errors.Is(err, engine.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, engine.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, engine.ErrNonFiniteInput):
		return "non_finite_input"
	case errors.Is(err, datasource.ErrPlayerNotFound):
		return "player_not_found"
	default:
		if code := datasource.ErrorCode(err); code != "" {
			return "source_" + code
		}
		return "internal"
	}
}
