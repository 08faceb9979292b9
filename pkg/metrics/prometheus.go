package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "momentum"

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportsTotal    *prometheus.CounterVec
	deliveriesTotal *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	volatility      prometheus.Gauge
	indexReturn     prometheus.Gauge
	latency         *prometheus.HistogramVec
}

// New creates a recorder registered on reg. A nil reg uses the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		reportsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Reports generated by stance",
			},
			[]string{"stance", "closed"},
		),
		deliveriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_total",
				Help:      "Webhook delivery attempts by result",
			},
			[]string{"result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of errors encountered",
			},
			[]string{"type"},
		),
		volatility: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "volatility_index",
				Help:      "Volatility index level used for the last report",
			},
		),
		indexReturn: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "index_return_pct",
				Help:      "Broad index return over the signal window used for the last report",
			},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordReport counts a generated report.
func (r *Recorder) RecordReport(stance string, closed bool) {
	r.reportsTotal.WithLabelValues(stance, strconv.FormatBool(closed)).Inc()
}

// RecordDelivery counts a delivery outcome (success, failure, skipped).
func (r *Recorder) RecordDelivery(result string) {
	r.deliveriesTotal.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSignal stores the signal a report was classified from.
func (r *Recorder) RecordSignal(vix, indexReturn float64) {
	r.volatility.Set(vix)
	r.indexReturn.Set(indexReturn)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordReport(string, bool) {}
func (Nop) RecordDelivery(string) {}
func (Nop) RecordError(string) {}
func (Nop) RecordSignal(float64, float64) {}
func (Nop) RecordLatency(string, float64) {}
