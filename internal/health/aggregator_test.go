package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- fakes ---

func okChecker() Checker {
	return CheckerFunc(func(ctx context.Context) error { return nil })
}

func failChecker(reason string) Checker {
	return CheckerFunc(func(ctx context.Context) error { return errors.New(reason) })
}

// hangChecker blocks until the run context is cancelled, then keeps
// hanging a bit longer to simulate a probe that is slow to notice.
func hangChecker() Checker {
	return CheckerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(5 * time.Millisecond)
		return ctx.Err()
	})
}

func sleepChecker(d time.Duration) Checker {
	return CheckerFunc(func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
			return nil
		}
	})
}

// --- tests ---

func TestRun_NoProbesIsHealthy(t *testing.T) {
	agg, err := New(WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep := agg.Run(context.Background())
	if !rep.Healthy() || rep.Status != StatusHealthy {
		t.Fatalf("want healthy with zero probes, got %+v", rep)
	}
	if len(rep.CriticalErrors) != 0 || len(rep.AdvisoryErrors) != 0 {
		t.Fatalf("want empty error maps, got %+v", rep)
	}
}

func TestRun_CriticalFailureFlipsStatus(t *testing.T) {
	agg, err := New(
		WithTimeout(time.Second),
		WithChecker("database", failChecker("connection refused")),
		WithChecker("upstream", okChecker()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep := agg.Run(context.Background())
	if rep.Status != StatusUnavailable {
		t.Fatalf("want unavailable, got %+v", rep)
	}
	if rep.CriticalErrors["database"] != "connection refused" {
		t.Fatalf("want database reason recorded, got %+v", rep.CriticalErrors)
	}
	if _, ok := rep.CriticalErrors["upstream"]; ok {
		t.Fatalf("healthy probe must not appear in errors: %+v", rep.CriticalErrors)
	}
}

func TestRun_AdvisoryFailureStaysHealthy(t *testing.T) {
	agg, err := New(
		WithTimeout(time.Second),
		WithChecker("database", okChecker()),
		WithObserver("cache", failChecker("redis down")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep := agg.Run(context.Background())
	if !rep.Healthy() {
		t.Fatalf("advisory failure must not degrade status, got %+v", rep)
	}
	if rep.AdvisoryErrors["cache"] != "redis down" {
		t.Fatalf("want advisory reason recorded, got %+v", rep.AdvisoryErrors)
	}
	if len(rep.CriticalErrors) != 0 {
		t.Fatalf("want no critical errors, got %+v", rep.CriticalErrors)
	}
}

func TestRun_RepeatedCallsAreIndependent(t *testing.T) {
	agg, err := New(
		WithTimeout(time.Second),
		WithChecker("database", okChecker()),
		WithObserver("cache", okChecker()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5; i++ {
		rep := agg.Run(context.Background())
		if !rep.Healthy() || len(rep.CriticalErrors) != 0 || len(rep.AdvisoryErrors) != 0 {
			t.Fatalf("run %d: want clean healthy report, got %+v", i, rep)
		}
	}
}

func TestRun_TimeoutSynthesizesFailure(t *testing.T) {
	agg, err := New(
		WithTimeout(50*time.Millisecond),
		WithChecker("stuck", hangChecker()),
		WithChecker("fast", okChecker()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	rep := agg.Run(context.Background())
	took := time.Since(start)

	if took > 250*time.Millisecond {
		t.Fatalf("run should return close to the 50ms deadline, took %v", took)
	}
	if rep.Status != StatusUnavailable {
		t.Fatalf("want unavailable on critical timeout, got %+v", rep)
	}
	if rep.CriticalErrors["stuck"] != "timeout" {
		t.Fatalf("want stuck recorded as timeout, got %+v", rep.CriticalErrors)
	}
	if _, ok := rep.CriticalErrors["fast"]; ok {
		t.Fatalf("fast probe finished in time, must not be recorded: %+v", rep.CriticalErrors)
	}
}

func TestRun_ParentCancellation(t *testing.T) {
	agg, err := New(WithChecker("stuck", hangChecker()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	rep := agg.Run(ctx)
	if rep.Status != StatusUnavailable {
		t.Fatalf("want unavailable after cancellation, got %+v", rep)
	}
	if rep.CriticalErrors["stuck"] != "canceled" {
		t.Fatalf("want canceled reason, got %+v", rep.CriticalErrors)
	}
}

func TestRun_PanicIsContained(t *testing.T) {
	boom := CheckerFunc(func(ctx context.Context) error {
		panic("nil map write")
	})
	agg, err := New(
		WithTimeout(time.Second),
		WithChecker("flaky", boom),
		WithChecker("solid", okChecker()),
		WithObserver("extra", okChecker()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rep := agg.Run(context.Background())
	if rep.Status != StatusUnavailable {
		t.Fatalf("panicking critical probe must degrade status, got %+v", rep)
	}
	if rep.CriticalErrors["flaky"] == "" {
		t.Fatalf("want generic reason for panicking probe, got %+v", rep.CriticalErrors)
	}
	if len(rep.CriticalErrors) != 1 || len(rep.AdvisoryErrors) != 0 {
		t.Fatalf("sibling probes must be unaffected, got %+v", rep)
	}
}

func TestRun_ProbesExecuteConcurrently(t *testing.T) {
	agg, err := New(
		WithTimeout(time.Second),
		WithChecker("a", sleepChecker(100*time.Millisecond)),
		WithChecker("b", sleepChecker(100*time.Millisecond)),
		WithChecker("c", sleepChecker(100*time.Millisecond)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	rep := agg.Run(context.Background())
	took := time.Since(start)

	if !rep.Healthy() {
		t.Fatalf("want healthy, got %+v", rep)
	}
	// Sequential execution would take ~300ms.
	if took > 250*time.Millisecond {
		t.Fatalf("probes ran sequentially? took %v", took)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	if _, err := New(WithTimeout(-time.Second)); err == nil {
		t.Fatalf("want error for negative timeout")
	}
	if _, err := New(
		WithChecker("database", okChecker()),
		WithObserver("database", okChecker()),
	); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName across classes, got %v", err)
	}
	if _, err := New(WithChecker("", okChecker())); err == nil {
		t.Fatalf("want error for empty probe name")
	}
	if _, err := New(WithChecker("nilcheck", nil)); err == nil {
		t.Fatalf("want error for nil checker")
	}
}
