package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordPropEvaluation(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(PropEvaluationsTotal.WithLabelValues("points", "OVER"))

	RecordPropEvaluation("points", "OVER", 13.0, 0.002)

	after := testutil.ToFloat64(PropEvaluationsTotal.WithLabelValues("points", "OVER"))
	assert.Equal(t, before+1, after)
}

func TestRecordCalculationError(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(CalculationErrorsTotal.WithLabelValues("invalid_odds"))

	RecordCalculationError("invalid_odds")
	RecordCalculationError("invalid_odds")

	assert.Equal(t, before+2, testutil.ToFloat64(CalculationErrorsTotal.WithLabelValues("invalid_odds")))
}

func TestUpdateGauges(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		bankroll float64
	}{
		{"positive bankroll", 1250},
		{"zero bankroll", 0},
		{"negative bankroll", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateBankroll(tt.bankroll)
			assert.Equal(t, tt.bankroll, testutil.ToFloat64(CurrentBankroll))
		})
	}

	UpdateSharpeRatio(2.4)
	assert.Equal(t, 2.4, testutil.ToFloat64(SharpeRatio))

	UpdateCacheHitRatio(0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(PlayerCacheHitRatio))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordRiskLimitEvent("stop_loss")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prop_edge_risk_limit_events_total")
	assert.Contains(t, rec.Body.String(), "prop_edge_current_bankroll")
}
