package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels a request that completed without error.
const OutcomeOK = "ok"

// Metrics holds the Prometheus counters for the subscription flow.
type Metrics struct {
	SubscribeTotal *prometheus.CounterVec
	ConfirmTotal   *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubscribeTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_subscribe_total",
			Help: "Subscribe requests by outcome",
		}, []string{"outcome"}),
		ConfirmTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_confirm_total",
			Help: "Confirmation requests by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveSubscribe is safe on a nil receiver.
func (m *Metrics) ObserveSubscribe(outcome string) {
	if m == nil {
		return
	}
	m.SubscribeTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveConfirm(outcome string) {
	if m == nil {
		return
	}
	m.ConfirmTotal.WithLabelValues(outcome).Inc()
}
