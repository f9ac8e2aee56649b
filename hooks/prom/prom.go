// Package promhook exports remcache hook events as prometheus counters.
// Counter bumps are cheap enough to run inline; wrap with asynchook only if
// your registry does something unusual.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/remcache"
)

type Hooks struct {
	invalidKeys    *prometheus.CounterVec
	storeErrors    *prometheus.CounterVec
	encodeErrors   *prometheus.CounterVec
	selfHeals      *prometheus.CounterVec
	producerFailed prometheus.Counter
	tasksDropped   *prometheus.CounterVec
	tasksFailed    *prometheus.CounterVec
}

var _ remcache.Hooks = (*Hooks)(nil)

// New builds the hook set and registers its collectors with reg.
// Pass prometheus.DefaultRegisterer for the default registry.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		invalidKeys: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_invalid_keys_total",
			Help: "Public operations short-circuited on a malformed key.",
		}, []string{"op"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_store_errors_total",
			Help: "Foreground store command failures.",
		}, []string{"op"}),
		encodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_encode_errors_total",
			Help: "Codec encode failures on write paths.",
		}, []string{"op"}),
		selfHeals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_self_heals_total",
			Help: "Stored entries deleted after failing to decode.",
		}, []string{"reason"}),
		producerFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "remcache_producer_failures_total",
			Help: "Remember producers that returned an error or panicked.",
		}),
		tasksDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_tasks_dropped_total",
			Help: "Fire-and-forget tasks rejected by the background runner.",
		}, []string{"op"}),
		tasksFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "remcache_tasks_failed_total",
			Help: "Fire-and-forget tasks that ran and failed.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		h.invalidKeys, h.storeErrors, h.encodeErrors,
		h.selfHeals, h.producerFailed, h.tasksDropped, h.tasksFailed,
	)
	return h
}

func (h *Hooks) InvalidKey(op, _ string)           { h.invalidKeys.WithLabelValues(op).Inc() }
func (h *Hooks) StoreError(op, _ string, _ error)  { h.storeErrors.WithLabelValues(op).Inc() }
func (h *Hooks) EncodeError(op, _ string, _ error) { h.encodeErrors.WithLabelValues(op).Inc() }
func (h *Hooks) SelfHeal(_, reason string)         { h.selfHeals.WithLabelValues(reason).Inc() }
func (h *Hooks) ProducerFailed(string, error)      { h.producerFailed.Inc() }
func (h *Hooks) TaskDropped(op string)             { h.tasksDropped.WithLabelValues(op).Inc() }
func (h *Hooks) TaskFailed(op string, _ error)     { h.tasksFailed.WithLabelValues(op).Inc() }
