package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSubscribe(OutcomeOK)
	m.ObserveSubscribe(OutcomeOK)
	m.ObserveConfirm("token_not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubscribeTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfirmTotal.WithLabelValues("token_not_found")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubscribe(OutcomeOK)
		m.ObserveConfirm(OutcomeOK)
	})
}
