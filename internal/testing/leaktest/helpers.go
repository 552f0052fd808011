// Package leaktest verifies that background fan-out winds down once the
// work completes. Cache refreshes and the weather sweep both detach
// goroutines from the requesting context, so a single post-hoc sample
// of runtime.NumGoroutine is too flaky; checks poll until the count
// settles.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const settleTimeout = 2 * time.Second

// GoroutineChecker records a goroutine baseline and later verifies the
// count returned to it.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker samples the baseline. Call it before starting the
// code under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlive the
// checked code. Tolerance covers goroutines with a known owner that may
// still be draining, such as a refresh sweep whose provider call has
// not timed out yet.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(settleTimeout)
	var after int
	for {
		runtime.Gosched()
		after = runtime.NumGoroutine()
		if after-g.before <= tolerance || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutines did not wind down: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, leaked, tolerance)
	}
}

// CheckAfter runs fn and requires every goroutine it started to exit.
func CheckAfter(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
