package health

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

// Status is the aggregate health of a service.
type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusUnavailable Status = "unavailable"
)

// Report is the outcome of one aggregation run, immutable once returned.
// Status is Unavailable exactly when CriticalErrors is non-empty.
type Report struct {
	Status         Status            `json:"status"`
	CriticalErrors map[string]string `json:"critical_errors"`
	AdvisoryErrors map[string]string `json:"advisory_errors"`
}

func newReport() Report {
	return Report{
		Status:         StatusHealthy,
		CriticalErrors: make(map[string]string),
		AdvisoryErrors: make(map[string]string),
	}
}

func (r *Report) record(name string, class Class, reason string) {
	if class == ClassAdvisory {
		r.AdvisoryErrors[name] = reason
		return
	}
	r.CriticalErrors[name] = reason
	r.Status = StatusUnavailable
}

// Healthy reports whether every critical probe passed.
func (r Report) Healthy() bool { return r.Status == StatusHealthy }

// Err combines the critical failure reasons into one error, ordered by
// probe name. Nil when the report is healthy.
func (r Report) Err() error {
	if len(r.CriticalErrors) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.CriticalErrors))
	for n := range r.CriticalErrors {
		names = append(names, n)
	}
	sort.Strings(names)

	var err error
	for _, n := range names {
		err = multierr.Append(err, fmt.Errorf("%s: %s", n, r.CriticalErrors[n]))
	}
	return err
}
