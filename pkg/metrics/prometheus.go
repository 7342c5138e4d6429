package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	scanDuration prometheus.Histogram
	poolSize     prometheus.Gauge
	breakouts    prometheus.Gauge
	regimeSafe   prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendhunter_upstream_fetches_total",
				Help: "Total number of upstream data fetches",
			},
			[]string{"source", "kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendhunter_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		scanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trendhunter_scan_duration_seconds",
				Help:    "Duration of full breakout scans in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),
		poolSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendhunter_pool_size",
				Help: "Number of candidates in the last pool",
			},
		),
		breakouts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendhunter_breakouts",
				Help: "Number of breakout hits in the last scan",
			},
		),
		regimeSafe: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendhunter_regime_safe",
				Help: "1 when the market regime gate reads safe, 0 otherwise",
			},
		),
	}
}

// RecordFetch records one upstream fetch by source and kind (history,
// quotes, listing).
func (r *Recorder) RecordFetch(source, kind string) {
	r.fetchesTotal.WithLabelValues(source, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordScanDuration records the duration of a full scan in seconds.
func (r *Recorder) RecordScanDuration(seconds float64) {
	r.scanDuration.Observe(seconds)
}

// RecordPoolSize records the size of the last candidate pool.
func (r *Recorder) RecordPoolSize(n int) {
	r.poolSize.Set(float64(n))
}

// RecordBreakouts records the number of hits in the last scan.
func (r *Recorder) RecordBreakouts(n int) {
	r.breakouts.Set(float64(n))
}

// RecordRegime records the current regime gate reading.
func (r *Recorder) RecordRegime(safe bool) {
	if safe {
		r.regimeSafe.Set(1)
		return
	}
	r.regimeSafe.Set(0)
}
