package bankroll

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/yourusername/prop-edge/internal/engine"
)

// EquityPoint represents a point in the equity curve
type EquityPoint struct {
	Time     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
	DailyPnL float64   `json:"daily_pnl"`
}

// EquityCurve represents a time-series of bankroll values
type EquityCurve []EquityPoint

// Period selects a trailing window of the curve
type Period string

const (
	Period7D  Period = "7d"
	Period30D Period = "30d"
	Period90D Period = "90d"
	Period1Y  Period = "1y"
	PeriodAll Period = "all"
)

var periodDays = map[Period]int{
	Period7D:  7,
	Period30D: 30,
	Period90D: 90,
	Period1Y:  365,
}

// ParsePeriod validates a period name. An empty name selects the whole curve.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodAll, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; ok || p == PeriodAll {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// NewEquityCurve builds a curve from daily values, deriving drawdown and daily P&L.
func NewEquityCurve(times []time.Time, values []float64) (EquityCurve, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("equity curve: %d times for %d values", len(times), len(values))
	}
	curve := make(EquityCurve, 0, len(values))
	for i := range values {
		curve = curve.Append(times[i], values[i])
	}
	return curve, nil
}

// Append returns the curve extended with a new value.
func (e EquityCurve) Append(at time.Time, value float64) EquityCurve {
	point := EquityPoint{Time: at, Value: value}
	if n := len(e); n > 0 {
		point.DailyPnL = value - e[n-1].Value
		peak := value
		for _, p := range e {
			peak = math.Max(peak, p.Value)
		}
		if peak > 0 {
			point.Drawdown = (peak - value) / peak
		}
	}
	return append(e, point)
}

// Values returns the bankroll values in order
func (e EquityCurve) Values() []float64 {
	values := make([]float64, len(e))
	for i, p := range e {
		values[i] = p.Value
	}
	return values
}

// GetReturns calculates periodic returns from equity curve
func (e EquityCurve) GetReturns() []float64 {
	return engine.DailyReturns(e.Values())
}

// SharpeRatio annualizes the curve's daily returns
func (e EquityCurve) SharpeRatio() (float64, error) {
	return engine.AnnualizedSharpeRatio(e.Values())
}

// MaxDrawdown returns the largest peak-to-trough decline as a fraction of the peak
func (e EquityCurve) MaxDrawdown() float64 {
	peak, maxDD := math.Inf(-1), 0.0
	for _, p := range e {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			maxDD = math.Max(maxDD, (peak-p.Value)/peak)
		}
	}
	return maxDD
}

// Window returns the trailing points for the period, clamped to the data available.
func (e EquityCurve) Window(period Period) EquityCurve {
	days, ok := periodDays[period]
	if !ok || days >= len(e) {
		return e
	}
	return e[len(e)-days:]
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,value,drawdown,daily_pnl\n")
	for _, point := range e {
		buf.WriteString(point.Time.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value, 2))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown, 6))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.DailyPnL, 2))
		buf.WriteString("\n")
	}
	return buf.String()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
