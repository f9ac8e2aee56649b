// Package background runs fire-and-forget tasks for the cache facade.
// Task errors are dropped by contract; they are reported to the supplied
// callbacks and nowhere else.
package background

import (
	"context"
	"fmt"
	"sync"
)

// Runner executes best-effort tasks off the caller's path. A bounded
// in-flight budget protects the process: when it is exhausted, or after
// Close, new tasks are rejected rather than queued.
type Runner struct {
	slots  chan struct{}
	onDrop func(op string)
	onFail func(op string, err error)

	// mu orders task admission against Close: a task is either registered
	// on wg before Close stops accepting, or dropped. Without it a Go
	// racing Close could wg.Add after wg.Wait already returned.
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// New creates a Runner allowing up to maxInflight concurrent tasks
// (0 => 1024). Nil callbacks are allowed.
func New(maxInflight int, onDrop func(string), onFail func(string, error)) *Runner {
	if maxInflight <= 0 {
		maxInflight = 1024
	}
	if onDrop == nil {
		onDrop = func(string) {}
	}
	if onFail == nil {
		onFail = func(string, error) {}
	}
	return &Runner{
		slots:  make(chan struct{}, maxInflight),
		onDrop: onDrop,
		onFail: onFail,
	}
}

// Go schedules fn as a fire-and-forget task. It never blocks: if the runner
// is closed or at capacity the task is dropped and onDrop fires. A non-nil
// error (or panic) from fn fires onFail; nothing else observes it.
func (r *Runner) Go(op string, fn func() error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.onDrop(op)
		return
	}
	select {
	case r.slots <- struct{}{}:
	default:
		r.mu.Unlock()
		r.onDrop(op)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.onFail(op, fmt.Errorf("panic: %v", p))
			}
			<-r.slots
			r.wg.Done()
		}()
		if err := fn(); err != nil {
			r.onFail(op, err)
		}
	}()
}

// Close stops accepting tasks and waits for in-flight ones, bounded by ctx.
// Once Close returns nil, no task is running or will run. Safe to call
// multiple times.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
