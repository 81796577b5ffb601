package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hamed0406/healthcheck/internal/health"
)

var _ health.Checker = (*HTTPChecker)(nil)

// HTTPChecker probes an HTTP dependency. Any 2xx/3xx response counts as
// healthy; transport errors and 4xx/5xx are failures.
type HTTPChecker struct {
	Client *http.Client
	URL    string
}

func NewHTTPChecker(url string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		URL:    url,
	}
}

func (h *HTTPChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return err
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
