package probe

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/hamed0406/healthcheck/internal/health"
)

var _ health.Checker = (*RedisChecker)(nil)

// RedisChecker pings a redis client.
type RedisChecker struct {
	Client *redis.Client
}

func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{Client: client}
}

func (r *RedisChecker) Check(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
