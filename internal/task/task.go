// Package task manages the lifecycle of background goroutines: looping
// tasks and fixed-interval tasks with panic recovery, cooperative stop via
// context cancellation, and a Wait that blocks until every task has
// actually terminated.
package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/seymourav/go-seymour/logger"
)

// Func is the body of a managed task. It is called repeatedly and should
// return true to keep running or false to stop the task.
type Func func() bool

// Manager owns a set of background goroutines. Stop signals all of them to
// terminate; Wait blocks until they have. After Wait returns the manager is
// reusable: new tasks run under a fresh context derived from the parent.
type Manager struct {
	pctx   context.Context
	logger logger.Logger

	mu     sync.RWMutex // guards ctx and cancel
	ctx    context.Context
	cancel context.CancelFunc

	waitMu sync.RWMutex // blocks task creation while Wait is resetting
	wg     sync.WaitGroup
	count  atomic.Int32

	tickers *xsync.MapOf[string, *time.Ticker]
}

// NewManager creates a Manager whose tasks stop when ctx is cancelled.
func NewManager(ctx context.Context, l logger.Logger) *Manager {
	mgr := &Manager{
		pctx:    ctx,
		logger:  l,
		tickers: xsync.NewMapOf[string, *time.Ticker](),
	}
	mgr.ctx, mgr.cancel = context.WithCancel(ctx)

	return mgr
}

func (mgr *Manager) getContext() context.Context {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()

	return mgr.ctx
}

// Start launches a named looping task. fn runs repeatedly until it returns
// false or the manager stops. A panic in fn terminates the task after
// being logged.
func (mgr *Manager) Start(name string, fn Func) error {
	ctx := mgr.getContext()
	if ctx.Err() != nil {
		return fmt.Errorf("task: manager already stopped, cannot start %s", name)
	}

	mgr.logger.Debug("task: start", "name", name)

	mgr.launch(name, func() {
		for {
			select {
			case <-mgr.getContext().Done():
				return
			default:
				if !mgr.callWithRecover(name, fn) {
					return
				}
			}
		}
	})

	return nil
}

// StartInterval launches a named task that runs fn every interval. When
// runNow is true, fn also runs once immediately. fn returning false stops
// the task; a panic in fn is logged and counts as false.
//
// The interval name must be unique among running interval tasks; it is
// released when the task terminates.
func (mgr *Manager) StartInterval(name string, fn Func, interval time.Duration, runNow bool) error {
	if interval <= 0 {
		return fmt.Errorf("task: invalid interval %v for %s", interval, name)
	}

	ctx := mgr.getContext()
	if ctx.Err() != nil {
		return fmt.Errorf("task: manager already stopped, cannot start %s", name)
	}

	ticker := time.NewTicker(interval)
	if _, loaded := mgr.tickers.LoadOrStore(name, ticker); loaded {
		ticker.Stop()

		return fmt.Errorf("task: interval task %s already exists", name)
	}

	cleanup := func() {
		ticker.Stop()
		mgr.tickers.Delete(name)
	}

	if runNow && !mgr.callWithRecover(name, fn) {
		cleanup()

		return nil
	}

	mgr.logger.Debug("task: start interval", "name", name, "interval", interval)

	mgr.launch(name, func() {
		defer cleanup()

		for {
			select {
			case <-mgr.getContext().Done():
				return
			case <-ticker.C:
				if !mgr.callWithRecover(name, fn) {
					return
				}
			}
		}
	})

	return nil
}

// launch runs body on a tracked goroutine.
func (mgr *Manager) launch(name string, body func()) {
	mgr.waitMu.RLock()
	defer mgr.waitMu.RUnlock()

	mgr.wg.Add(1)
	mgr.count.Add(1)

	go func() {
		defer func() {
			mgr.count.Add(-1)
			mgr.logger.Debug("task: terminated", "name", name, "task_count", mgr.Count())
			mgr.wg.Done()
		}()

		body()
	}()
}

// callWithRecover invokes fn, converting a panic into a logged failure.
func (mgr *Manager) callWithRecover(name string, fn Func) (keep bool) {
	defer func() {
		if r := recover(); r != nil {
			mgr.logger.Error("task: panic in task", "name", name, "panic", r)
			keep = false
		}
	}()

	return fn()
}

// Stop signals all running tasks to terminate. It does not wait; call Wait
// to block until termination.
func (mgr *Manager) Stop() {
	mgr.tickers.Range(func(_ string, ticker *time.Ticker) bool {
		ticker.Stop()

		return true
	})

	mgr.mu.Lock()
	if mgr.cancel != nil {
		mgr.cancel()
	}
	mgr.mu.Unlock()
}

// Wait blocks until every task has terminated, then resets the manager so
// new tasks can be started.
func (mgr *Manager) Wait() {
	mgr.waitMu.Lock()
	defer mgr.waitMu.Unlock()

	mgr.wg.Wait()

	mgr.mu.Lock()
	mgr.ctx, mgr.cancel = context.WithCancel(mgr.pctx)
	mgr.mu.Unlock()
}

// Count returns the number of currently running tasks.
func (mgr *Manager) Count() int {
	return int(mgr.count.Load())
}
