package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/healthcheck/internal/health"
	"github.com/hamed0406/healthcheck/internal/metrics"
	"github.com/hamed0406/healthcheck/internal/scheduler"
)

type Server struct {
	Logger  *zap.Logger
	Agg     *health.Aggregator
	Monitor *scheduler.Monitor // optional; lets /readyz serve the cached report
}

func NewServer(l *zap.Logger, agg *health.Aggregator, mon *scheduler.Monitor) *Server {
	return &Server{Logger: l, Agg: agg, Monitor: mon}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// healthBody is the wire shape of a report. Critical failures go under
// errors, advisory ones under warnings.
type healthBody struct {
	Status    string            `json:"status"`
	Errors    map[string]string `json:"errors,omitempty"`
	Warnings  map[string]string `json:"warnings,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// handleHealth runs a fresh aggregation pass for every request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rep := s.Agg.Run(r.Context())
	metrics.ObserveRun(rep, time.Since(start))
	s.writeReport(w, rep, time.Now().UTC())
}

// handleReady prefers the monitor's cached report and falls back to an
// on-demand pass when the monitor is disabled or has not run yet.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.Monitor != nil {
		if rep, at, ok := s.Monitor.Latest(); ok {
			s.writeReport(w, rep, at)
			return
		}
	}
	s.handleHealth(w, r)
}

func (s *Server) writeReport(w http.ResponseWriter, rep health.Report, at time.Time) {
	code := http.StatusOK
	status := "OK"
	if !rep.Healthy() {
		code = http.StatusServiceUnavailable
		status = "Service Unavailable"
		s.Logger.Warn("health_unavailable", zap.Error(rep.Err()))
	}
	// The engine never logs advisory outcomes; surfacing them is on us.
	for name, reason := range rep.AdvisoryErrors {
		s.Logger.Info("advisory_failure",
			zap.String("probe", name),
			zap.String("reason", reason),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthBody{
		Status:    status,
		Errors:    rep.CriticalErrors,
		Warnings:  rep.AdvisoryErrors,
		CheckedAt: at,
	})
}
