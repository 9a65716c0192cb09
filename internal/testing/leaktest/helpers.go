// Package leaktest catches goroutines left running by timers, pools and hubs.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to wind down
const settleTimeout = 2 * time.Second

// GoroutineChecker compares goroutine counts around a test body
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the baseline after letting stragglers from
// earlier tests exit
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, before: settle(0, 50*time.Millisecond)}
}

// Check fails the test if more than tolerance goroutines are still alive
// once settleTimeout has passed
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	after := settle(g.before+tolerance, settleTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, leaked, tolerance)
	}
}

// settle polls until the goroutine count drops to target or timeout expires,
// returning the last observed count
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(10 * time.Millisecond)
	}
}
