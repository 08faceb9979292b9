package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordReport("conservative", false)
	r.RecordReport("conservative", false)
	r.RecordReport("cash", true)
	r.RecordDelivery("success")
	r.RecordError("market_data")
	r.RecordSignal(18.5, 0.2)
	r.RecordLatency("generate", 0.3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reportsTotal.WithLabelValues("conservative", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reportsTotal.WithLabelValues("cash", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deliveriesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("market_data")))
	assert.Equal(t, 18.5, testutil.ToFloat64(r.volatility))
	assert.Equal(t, 0.2, testutil.ToFloat64(r.indexReturn))

	n, err := testutil.GatherAndCount(reg, "momentum_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
