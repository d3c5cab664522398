// Package metrics provides the centralized Prometheus metrics registry for the prop engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "prop_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PropEvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prop_evaluations_total",
		Help:      "Total number of prop evaluations by stat kind and predicted side",
	}, []string{"stat_kind", "prediction"})
	CalculationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculation_errors_total",
		Help:      "Total number of rejected calculations by error kind",
	}, []string{"kind"})
	BetsRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bets_recorded_total",
		Help:      "Total number of bets added to the tracker",
	})
	BetsSettledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bets_settled_total",
		Help:      "Total number of settled bets by result",
	}, []string{"status"})
	RiskLimitEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_limit_events_total",
		Help:      "Total number of stop loss and daily target events",
	}, []string{"event"})
	PlayerFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "player_fetches_total",
		Help:      "Total number of player profile fetches by source and result",
	}, []string{"source", "result"})
	CacheRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_refreshes_total",
		Help:      "Total number of scheduled player cache refreshes by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "current_bankroll",
		Help:      "Current bankroll in currency units",
	})
	DailyPnL = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "daily_pnl",
		Help:      "Daily profit and loss",
	})
	SharpeRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sharpe_ratio",
		Help:      "Annualized Sharpe ratio of the bankroll equity curve",
	})
	PlayerCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "player_cache_hit_ratio",
		Help:      "Hit ratio of the player profile cache",
	})
)

// Histogram metrics
var (
	PropEdgePercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prop_edge_percent",
		Help:      "Distribution of computed edges in percentage points",
		Buckets:   []float64{-30, -20, -10, -5, 0, 5, 10, 15, 20, 30, 50},
	})
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of prop evaluations including player lookup",
		Buckets:   prometheus.DefBuckets,
	})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of API requests by route, method and status",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PropEvaluationsTotal)
		registry.MustRegister(CalculationErrorsTotal)
		registry.MustRegister(BetsRecordedTotal)
		registry.MustRegister(BetsSettledTotal)
		registry.MustRegister(RiskLimitEventsTotal)
		registry.MustRegister(PlayerFetchesTotal)
		registry.MustRegister(CacheRefreshesTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(DailyPnL)
		registry.MustRegister(SharpeRatio)
		registry.MustRegister(PlayerCacheHitRatio)

		registry.MustRegister(PropEdgePercent)
		registry.MustRegister(EvaluationDuration)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPropEvaluation records a completed evaluation.
func RecordPropEvaluation(statKind, prediction string, edgePercent, durationSeconds float64) {
	PropEvaluationsTotal.WithLabelValues(statKind, prediction).Inc()
	PropEdgePercent.Observe(edgePercent)
	EvaluationDuration.Observe(durationSeconds)
}

// RecordCalculationError records a rejected calculation.
func RecordCalculationError(kind string) {
	CalculationErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordBetRecorded records a bet entering the tracker.
func RecordBetRecorded() {
	BetsRecordedTotal.Inc()
}

// RecordBetSettled records a bet settlement.
func RecordBetSettled(status string) {
	BetsSettledTotal.WithLabelValues(status).Inc()
}

// RecordRiskLimitEvent records a stop loss or daily target event.
func RecordRiskLimitEvent(event string) {
	RiskLimitEventsTotal.WithLabelValues(event).Inc()
}

// RecordPlayerFetch records a player profile lookup.
func RecordPlayerFetch(source, result string) {
	PlayerFetchesTotal.WithLabelValues(source, result).Inc()
}

// RecordCacheRefresh records a scheduled cache refresh.
func RecordCacheRefresh(result string) {
	CacheRefreshesTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records an API request.
func RecordHTTPRequest(route, method, status string, durationSeconds float64) {
	HTTPRequestDuration.WithLabelValues(route, method, status).Observe(durationSeconds)
}

// UpdateBankroll updates the current bankroll gauge.
func UpdateBankroll(amount float64) {
	CurrentBankroll.Set(amount)
}

// UpdateDailyPnL updates the daily P&L gauge.
func UpdateDailyPnL(pnl float64) {
	DailyPnL.Set(pnl)
}

// UpdateSharpeRatio updates the Sharpe ratio gauge.
func UpdateSharpeRatio(ratio float64) {
	SharpeRatio.Set(ratio)
}

// UpdateCacheHitRatio updates the player cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	PlayerCacheHitRatio.Set(ratio)
}
