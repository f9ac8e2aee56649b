package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/remcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery   uint64
	InvalidKeyEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr   atomic.Uint64
	invalidKeyCtr atomic.Uint64
}

var _ remcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) InvalidKey(op, key string) {
	if h.l == nil || !sample(h.opts.InvalidKeyEvery, &h.invalidKeyCtr) {
		return
	}
	h.l.Debug("remcache.invalid_key",
		"op", op,
		"key", h.redact(key))
}

func (h *Hooks) StoreError(op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("remcache.store_error",
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) EncodeError(op, storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("remcache.encode_error",
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("remcache.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) ProducerFailed(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("remcache.producer_failed",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) TaskDropped(op string) {
	if h.l == nil {
		return
	}
	h.l.Warn("remcache.task_dropped",
		"op", op)
}

func (h *Hooks) TaskFailed(op string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("remcache.task_failed",
		"op", op,
		"err", err)
}
