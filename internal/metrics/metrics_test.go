package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe("authorize", OutcomeSuccess, 120*time.Millisecond)
	m.Observe("authorize", OutcomeDeclined, 80*time.Millisecond)
	m.Observe("authorize", OutcomeSuccess, 40*time.Millisecond)
	m.Observe("capture", OutcomeError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal().WithLabelValues("authorize", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal().WithLabelValues("authorize", OutcomeDeclined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal().WithLabelValues("capture", OutcomeError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration()))

	families, err := reg.Gather()
	require.NoError(t, err)

	var hist *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "adyen_request_duration_seconds" {
			hist = f
		}
	}
	require.NotNil(t, hist)
	assert.Equal(t, dto.MetricType_HISTOGRAM, hist.GetType())

	counts := map[string]uint64{}
	for _, metric := range hist.GetMetric() {
		for _, lp := range metric.GetLabel() {
			if lp.GetName() == "action" {
				counts[lp.GetValue()] = metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, map[string]uint64{"authorize": 3, "capture": 1}, counts)
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("void", OutcomeSuccess, time.Millisecond) })
}
