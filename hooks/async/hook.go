// Package asynchook decouples hook consumers from the cache's hot paths.
// Events are handed to a small worker pool over a bounded queue; when the
// queue is full the event is dropped, never blocking the caller.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/remcache"
)

type Hooks struct {
	inner remcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ remcache.Hooks = (*Hooks)(nil)

func New(inner remcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) InvalidKey(op, key string) { h.try(func() { h.inner.InvalidKey(op, key) }) }
func (h *Hooks) SelfHeal(k, reason string) { h.try(func() { h.inner.SelfHeal(k, reason) }) }
func (h *Hooks) TaskDropped(op string)     { h.try(func() { h.inner.TaskDropped(op) }) }
func (h *Hooks) StoreError(op, k string, err error) {
	h.try(func() { h.inner.StoreError(op, k, err) })
}
func (h *Hooks) EncodeError(op, k string, err error) {
	h.try(func() { h.inner.EncodeError(op, k, err) })
}
func (h *Hooks) ProducerFailed(key string, err error) {
	h.try(func() { h.inner.ProducerFailed(key, err) })
}
func (h *Hooks) TaskFailed(op string, err error) {
	h.try(func() { h.inner.TaskFailed(op, err) })
}
