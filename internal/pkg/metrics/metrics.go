// Package metrics records rebate calculation outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels besides the failure reasons.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder observes one finished calculation.
type Recorder interface {
	ObserveCalculation(incentive, outcome string, elapsed time.Duration)
}

// NopRecorder discards observations.
type NopRecorder struct{}

func (NopRecorder) ObserveCalculation(string, string, time.Duration) {}

// PrometheusRecorder exports calculation counts and latency.
type PrometheusRecorder struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the rebate collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rebate",
			Name:      "calculations_total",
			Help:      "Rebate calculations segmented by incentive and outcome.",
		}, []string{"incentive", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rebate",
			Name:      "calculation_duration_seconds",
			Help:      "Latency of rebate calculations including store access.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"incentive"}),
	}
	for _, c := range []prometheus.Collector{r.calculations, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveCalculation(incentive, outcome string, elapsed time.Duration) {
	if incentive == "" {
		incentive = "unknown"
	}
	r.calculations.WithLabelValues(incentive, outcome).Inc()
	r.duration.WithLabelValues(incentive).Observe(elapsed.Seconds())
}
