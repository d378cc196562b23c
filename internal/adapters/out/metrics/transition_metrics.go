// Package metrics exposes transition engine activity as Prometheus metrics.
package metrics

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fulfillment"

var _ ports.TransitionObserver = (*TransitionMetrics)(nil)

// TransitionMetrics counts validations by verdict and conflict and times
// command sink calls.
type TransitionMetrics struct {
	validations *prometheus.CounterVec
	sinkCalls   *prometheus.HistogramVec
}

// NewTransitionMetrics creates the collectors and registers them with reg.
func NewTransitionMetrics(reg prometheus.Registerer) (*TransitionMetrics, error) {
	m := &TransitionMetrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_validations_total",
			Help:      "Item transition requests by validation verdict and conflict kind.",
		}, []string{"verdict", "conflict"}),
		sinkCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_sink_duration_seconds",
			Help:      "Duration of command sink calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.validations, m.sinkCalls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *TransitionMetrics) ObserveValidation(verdict string, conflict order.ConflictKind) {
	m.validations.WithLabelValues(verdict, conflict.String()).Inc()
}

func (m *TransitionMetrics) ObserveSinkCall(seconds float64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sinkCalls.WithLabelValues(result).Observe(seconds)
}
