package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hamed0406/healthcheck/internal/health"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_aggregation_runs_total",
		Help: "Aggregation runs by resulting status.",
	}, []string{"status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "health_aggregation_run_duration_seconds",
		Help:    "Wall time of one aggregation run.",
		Buckets: prometheus.DefBuckets,
	})

	probeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_probe_failures_total",
		Help: "Probe failures by probe name and class.",
	}, []string{"probe", "class"})
)

// ObserveRun records one aggregation run and its per-probe failures.
func ObserveRun(rep health.Report, took time.Duration) {
	runsTotal.WithLabelValues(string(rep.Status)).Inc()
	runDuration.Observe(took.Seconds())
	for name := range rep.CriticalErrors {
		probeFailures.WithLabelValues(name, health.ClassCritical.String()).Inc()
	}
	for name := range rep.AdvisoryErrors {
		probeFailures.WithLabelValues(name, health.ClassAdvisory.String()).Inc()
	}
}
