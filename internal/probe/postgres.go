package probe

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/healthcheck/internal/health"
)

var _ health.Checker = (*PostgresChecker)(nil)

// PostgresChecker pings a pgx connection pool.
type PostgresChecker struct {
	Pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{Pool: pool}
}

func (p *PostgresChecker) Check(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}
