package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	refreshTotal     *prometheus.CounterVec
	refreshDuration  prometheus.Histogram
	snapshotPlayers  prometheus.Gauge
	snapshotFixtures prometheus.Gauge
	gatewayErrors    *prometheus.CounterVec
	analysisLatency  *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		refreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rivaledge_refresh_total",
				Help: "Total number of reference data refreshes by outcome",
			},
			[]string{"outcome"},
		),
		refreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rivaledge_refresh_duration_seconds",
				Help:    "Duration of reference data refreshes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		snapshotPlayers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "rivaledge_snapshot_players",
				Help: "Number of players in the current snapshot",
			},
		),
		snapshotFixtures: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "rivaledge_snapshot_fixtures",
				Help: "Number of fixtures in the current snapshot",
			},
		),
		gatewayErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rivaledge_gateway_errors_total",
				Help: "Total number of upstream gateway errors by kind",
			},
			[]string{"kind"},
		),
		analysisLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rivaledge_analysis_duration_seconds",
				Help:    "Duration of analysis operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRefresh records a refresh attempt and its duration.
func (r *Recorder) RecordRefresh(success bool, seconds float64) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.refreshTotal.WithLabelValues(outcome).Inc()
	r.refreshDuration.Observe(seconds)
}

// RecordSnapshotSize records the size of the freshly loaded snapshot.
func (r *Recorder) RecordSnapshotSize(players, fixtures int) {
	r.snapshotPlayers.Set(float64(players))
	r.snapshotFixtures.Set(float64(fixtures))
}

// RecordGatewayError records an upstream failure.
func (r *Recorder) RecordGatewayError(kind string) {
	r.gatewayErrors.WithLabelValues(kind).Inc()
}

// RecordAnalysis records analysis operation latency in seconds.
func (r *Recorder) RecordAnalysis(op string, seconds float64) {
	r.analysisLatency.WithLabelValues(op).Observe(seconds)
}
