package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeDeclined  = "declined"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	ChargeAttempts *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	ChargeDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ChargeAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "charger_charge_attempts_total",
			Help: "Charge attempts by outcome.",
		}, []string{"outcome"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "charger_decline_notifications_total",
			Help: "Decline notifications by result.",
		}, []string{"result"}),
		ChargeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "charger_charge_duration_seconds",
			Help:    "Duration of charge requests to the payment API.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(m.ChargeAttempts, m.Notifications, m.ChargeDuration)
	return m
}

// Push sends the batch metrics to a Prometheus Pushgateway.
func (m *Metrics) Push(url, job string) error {
	return push.New(url, job).Gatherer(m.registry).Push()
}
