package health

import "context"

// Checker verifies a single dependency. A nil return means the dependency
// is usable; a non-nil error carries the human-readable reason it is not.
//
// Checkers that can block (network, disk) must honor ctx — the aggregator
// abandons probes that outlive the run deadline, it cannot preempt them.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// Class decides how a probe's failure affects the aggregate status.
type Class int

const (
	// ClassCritical failures flip the aggregate status to Unavailable.
	ClassCritical Class = iota
	// ClassAdvisory failures are recorded but never degrade the status.
	ClassAdvisory
)

func (c Class) String() string {
	if c == ClassAdvisory {
		return "advisory"
	}
	return "critical"
}
