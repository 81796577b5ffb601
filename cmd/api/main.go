package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hamed0406/healthcheck/internal/config"
	"github.com/hamed0406/healthcheck/internal/health"
	"github.com/hamed0406/healthcheck/internal/httpapi"
	"github.com/hamed0406/healthcheck/internal/logging"
	"github.com/hamed0406/healthcheck/internal/probe"
	"github.com/hamed0406/healthcheck/internal/scheduler"
)

func main() {
	_ = godotenv.Load() // best effort; real env wins

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agg, err := buildAggregator(ctx, cfg)
	if err != nil {
		logger.Fatal("aggregator_setup", zap.Error(err))
	}

	mon := scheduler.NewMonitor(logger, agg, cfg.MonitorInterval)
	go mon.Run(ctx)

	api := httpapi.NewServer(logger, agg, mon)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.Duration("health_timeout", cfg.HealthTimeout),
		zap.Duration("monitor_interval", cfg.MonitorInterval),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}

// buildAggregator turns the env configuration into registered probes:
// HTTP dependencies by URL, plus database and redis pings when configured.
func buildAggregator(ctx context.Context, cfg config.Config) (*health.Aggregator, error) {
	opts := []health.Option{health.WithTimeout(cfg.HealthTimeout)}

	wrap := func(c health.Checker) health.Checker {
		if cfg.RetryAttempts > 1 {
			return &probe.RetryChecker{Inner: c, Attempts: cfg.RetryAttempts, Backoff: cfg.RetryBackoff}
		}
		return c
	}

	for _, u := range cfg.CriticalURLs {
		opts = append(opts, health.WithChecker(u, wrap(probe.NewHTTPChecker(u, cfg.HealthTimeout))))
	}
	for _, u := range cfg.AdvisoryURLs {
		opts = append(opts, health.WithObserver(u, wrap(probe.NewHTTPChecker(u, cfg.HealthTimeout))))
	}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		opts = append(opts, health.WithChecker("database", probe.NewPostgresChecker(pool)))
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		// The cache is not load-bearing here, so redis rides along as an
		// observer: reported, never gating.
		opts = append(opts, health.WithObserver("redis", probe.NewRedisChecker(client)))
	}

	return health.New(opts...)
}
