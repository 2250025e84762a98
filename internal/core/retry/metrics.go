package retry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess   = "success"
	outcomeFatal     = "fatal"
	outcomeExhausted = "exhausted"
	outcomeCanceled  = "canceled"
)

// Metrics instruments the wrapper. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuinbeheer_backend_attempts_total",
				Help: "Total number of backend call attempts",
			},
			[]string{"op"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuinbeheer_backend_retries_total",
				Help: "Total number of backoff retries",
			},
			[]string{"op"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuinbeheer_backend_operations_total",
				Help: "Finished backend operations by outcome",
			},
			[]string{"op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tuinbeheer_backend_operation_seconds",
				Help:    "Wall time of a backend operation including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.attempts, m.retries, m.outcomes, m.duration)
	return m
}

func (m *Metrics) attempt(op string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(op).Inc()
}

func (m *Metrics) retry(op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}

func (m *Metrics) finish(op, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
