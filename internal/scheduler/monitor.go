package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthcheck/internal/health"
	"github.com/hamed0406/healthcheck/internal/metrics"
)

// Monitor runs the aggregation on an interval and caches the latest report
// so read paths can serve it without re-probing every dependency.
type Monitor struct {
	Logger   *zap.Logger
	Agg      *health.Aggregator
	Interval time.Duration

	mu      sync.RWMutex
	latest  health.Report
	checked time.Time
	seen    bool
}

func NewMonitor(logger *zap.Logger, agg *health.Aggregator, interval time.Duration) *Monitor {
	if interval < 0 {
		interval = 0
	}
	return &Monitor{
		Logger:   logger,
		Agg:      agg,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled. Interval 0 disables the monitor.
func (m *Monitor) Run(ctx context.Context) {
	if m.Interval == 0 {
		m.Logger.Info("monitor_disabled")
		return
	}
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	// immediate pass
	m.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	start := time.Now()
	rep := m.Agg.Run(ctx)
	took := time.Since(start)
	metrics.ObserveRun(rep, took)

	m.mu.Lock()
	transitioned := !m.seen || m.latest.Healthy() != rep.Healthy()
	m.latest = rep
	m.checked = time.Now().UTC()
	m.seen = true
	m.mu.Unlock()

	// Log on state change only, so a flapping dependency is visible
	// without a steady state flooding the log.
	if transitioned {
		if rep.Healthy() {
			m.Logger.Info("status_healthy",
				zap.Duration("took", took),
				zap.Int("advisory_failures", len(rep.AdvisoryErrors)),
			)
		} else {
			m.Logger.Warn("status_unavailable",
				zap.Duration("took", took),
				zap.Error(rep.Err()),
			)
		}
	}
}

// Latest returns the most recent cached report and when it was produced.
// ok is false until the first pass completes.
func (m *Monitor) Latest() (rep health.Report, checkedAt time.Time, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.checked, m.seen
}
