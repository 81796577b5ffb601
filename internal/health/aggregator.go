package health

import (
	"context"
	"fmt"
	"time"
)

// Reasons recorded for probes still outstanding when the run ends early.
const (
	timeoutReason  = "timeout"
	canceledReason = "canceled"
)

// Aggregator runs every registered probe concurrently under one shared
// deadline and merges the outcomes into a Report.
type Aggregator struct {
	reg     *Registry
	timeout time.Duration
}

// Option configures an Aggregator at construction time.
type Option func(*Aggregator) error

// WithTimeout bounds every run. Unset means no deadline, which is almost
// never what a health endpoint wants.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) error {
		if d < 0 {
			return fmt.Errorf("health: negative timeout %v", d)
		}
		a.timeout = d
		return nil
	}
}

// WithChecker registers a critical probe: its failure makes the whole
// service report Unavailable.
func WithChecker(name string, c Checker) Option {
	return func(a *Aggregator) error {
		return a.reg.Register(name, ClassCritical, c)
	}
}

// WithObserver registers an advisory probe: its failure shows up in the
// report but does not degrade the aggregate status.
func WithObserver(name string, c Checker) Option {
	return func(a *Aggregator) error {
		return a.reg.Register(name, ClassAdvisory, c)
	}
}

// New builds an Aggregator. It fails on invalid configuration (negative
// timeout, duplicate or empty probe names) and never afterwards: Run
// always returns a well-formed report.
func New(opts ...Option) (*Aggregator, error) {
	a := &Aggregator{reg: NewRegistry()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a probe after construction. Finish registering before the
// first run; an in-flight run keeps working off its own snapshot either way.
func (a *Aggregator) Register(name string, class Class, c Checker) error {
	return a.reg.Register(name, class, c)
}

// Timeout returns the configured per-run deadline (0 = none).
func (a *Aggregator) Timeout() time.Duration { return a.timeout }

type probeResult struct {
	name  string
	class Class
	err   error
}

// Run executes one aggregation pass: fan out one goroutine per probe under
// a context derived from the configured timeout, fan in the results, and
// synthesize failures for anything still outstanding when the deadline
// fires. Runs are independent; calling Run repeatedly has no side effects
// on the registry.
func (a *Aggregator) Run(ctx context.Context) Report {
	entries := a.reg.snapshot()
	report := newReport()
	if len(entries) == 0 {
		return report
	}

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if a.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, a.timeout)
	}
	defer cancel()

	// Buffered so a probe finishing after the deadline can still send and
	// exit instead of leaking a goroutine blocked on the channel forever.
	results := make(chan probeResult, len(entries))
	for _, e := range entries {
		go func(e entry) {
			results <- probeResult{name: e.name, class: e.class, err: execute(runCtx, e.checker)}
		}(e)
	}

	outstanding := make(map[string]Class, len(entries))
	for _, e := range entries {
		outstanding[e.name] = e.class
	}

	collect := func(res probeResult) {
		delete(outstanding, res.name)
		if res.err != nil {
			report.record(res.name, res.class, res.err.Error())
		}
	}

	for len(outstanding) > 0 {
		select {
		case res := <-results:
			collect(res)
		case <-runCtx.Done():
			// Pick up whatever was already delivered, then mark the rest
			// as timed out and stop waiting for them.
			for drained := false; !drained && len(outstanding) > 0; {
				select {
				case res := <-results:
					collect(res)
				default:
					drained = true
				}
			}
			reason := timeoutReason
			if runCtx.Err() == context.Canceled {
				reason = canceledReason
			}
			for name, class := range outstanding {
				report.record(name, class, reason)
			}
			return report
		}
	}
	return report
}

// execute runs one probe, converting a panic into an ordinary failure so a
// misbehaving probe cannot take down the run or its siblings.
func execute(ctx context.Context, c Checker) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("probe panicked: %v", v)
		}
	}()
	return c.Check(ctx)
}
