// Package pool provides pooled time.Timer instances for hot paths that
// repeatedly arm short-lived timers, such as retry backoff waits and
// per-operation timeouts.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer armed for duration d, reusing a pooled timer
// when one is available. Return it with PutTimer.
func GetTimer(d time.Duration) *time.Timer {
	v := timerPool.Get()
	if v == nil {
		return time.NewTimer(d)
	}

	t := v.(*time.Timer) //nolint:forcetypeassert // only *time.Timer is ever pooled
	if t.Reset(d) {
		// Timer was still active; drain any pending fire so the caller
		// never observes a stale tick.
		select {
		case <-t.C:
		default:
		}
	}

	return t
}

// PutTimer stops t and returns it to the pool. The timer must not be used
// after the call.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}

	timerPool.Put(t)
}
