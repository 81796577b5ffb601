package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/healthcheck/internal/health"
)

var _ health.Checker = (*RetryChecker)(nil)

// RetryChecker retries a flaky inner checker before giving up. The backoff
// sleep is cut short when the run context ends.
type RetryChecker struct {
	Inner    health.Checker
	Attempts int
	Backoff  time.Duration
}

func (r *RetryChecker) Check(ctx context.Context) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for i := 0; i < attempts; i++ {
		last = r.Inner.Check(ctx)
		if last == nil {
			return nil
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w (gave up after %d attempts)", last, i+1)
			case <-time.After(r.Backoff):
			}
		}
	}
	if attempts > 1 {
		return fmt.Errorf("%w (after %d attempts)", last, attempts)
	}
	return last
}
