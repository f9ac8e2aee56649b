package remcache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/remcache/codec"
	"github.com/unkn0wn-root/remcache/internal/background"
	"github.com/unkn0wn-root/remcache/internal/util"
	st "github.com/unkn0wn-root/remcache/store"
)

type cache[V any] struct {
	ns      string
	store   st.Store
	codec   c.Codec[V]
	log     Logger
	hooks   Hooks
	enabled bool

	closeStore bool
	bg         *background.Runner
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("remcache: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("remcache: codec is required")
	}

	cc := &cache[V]{
		ns:         opts.Namespace,
		store:      opts.Store,
		codec:      opts.Codec,
		enabled:    !opts.Disabled,
		closeStore: opts.CloseStore,
	}

	// defaults
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.bg = background.New(opts.MaxBackground, cc.hooks.TaskDropped, func(op string, err error) {
		cc.hooks.TaskFailed(op, err)
		cc.log.Warn("background task failed", Fields{"op": op, "err": err})
	})

	return cc, nil
}

func (cc *cache[V]) Enabled() bool { return cc.enabled }

// Close drains in-flight fire-and-forget work, then releases the store when
// the facade owns it.
func (cc *cache[V]) Close(ctx context.Context) error {
	err := cc.bg.Close(ctx)
	if cc.closeStore {
		if cerr := cc.store.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (cc *cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	k, ok := cc.checkKey("get", key)
	if !ok {
		return zero, false
	}
	raw, hit, err := cc.store.Get(ctx, k)
	if err != nil {
		cc.reportStore("get", k, err)
		return zero, false
	}
	if !hit {
		return zero, false
	}
	v, ok := cc.decode(ctx, "get", k, raw)
	if !ok {
		return zero, false
	}
	return v, true
}

func (cc *cache[V]) Put(ctx context.Context, key string, value V, ttl time.Duration) bool {
	k, ok := cc.checkKey("put", key)
	if !ok {
		return false
	}
	payload, err := cc.codec.Encode(value)
	if err != nil {
		cc.hooks.EncodeError("put", k, err)
		cc.log.Warn("encode failed", Fields{"key": key, "err": err})
		return false
	}
	if err := cc.store.Set(ctx, k, payload, ttl); err != nil {
		cc.reportStore("put", k, err)
		return false
	}
	return true
}

func (cc *cache[V]) Forever(ctx context.Context, key string, value V) bool {
	return cc.Put(ctx, key, value, 0)
}

func (cc *cache[V]) Add(ctx context.Context, key string, value V, ttl time.Duration) bool {
	k, ok := cc.checkKey("add", key)
	if !ok {
		return false
	}
	payload, err := cc.codec.Encode(value)
	if err != nil {
		cc.hooks.EncodeError("add", k, err)
		return false
	}
	// atomic set-if-absent; no exists-then-set race
	stored, err := cc.store.SetNX(ctx, k, payload, ttl)
	if err != nil {
		cc.reportStore("add", k, err)
		return false
	}
	return stored
}

func (cc *cache[V]) Has(ctx context.Context, key string) bool {
	k, ok := cc.checkKey("has", key)
	if !ok {
		return false
	}
	exists, err := cc.store.Exists(ctx, k)
	if err != nil {
		cc.reportStore("has", k, err)
		return false
	}
	return exists
}

func (cc *cache[V]) TTL(ctx context.Context, key string) (time.Duration, bool) {
	k, ok := cc.checkKey("ttl", key)
	if !ok {
		return 0, false
	}
	d, exists, err := cc.store.TTL(ctx, k)
	if err != nil {
		cc.reportStore("ttl", k, err)
		return 0, false
	}
	return d, exists
}

func (cc *cache[V]) Forget(ctx context.Context, key string) {
	k, ok := cc.checkKey("forget", key)
	if !ok {
		return
	}
	bgCtx := context.WithoutCancel(ctx)
	cc.bg.Go("forget", func() error {
		return cc.store.Del(bgCtx, k)
	})
}

func (cc *cache[V]) Pull(ctx context.Context, key string) (V, bool) {
	var zero V
	k, ok := cc.checkKey("pull", key)
	if !ok {
		return zero, false
	}
	// atomic read-and-delete; no get-then-del race
	raw, hit, err := cc.store.GetDel(ctx, k)
	if err != nil {
		cc.reportStore("pull", k, err)
		return zero, false
	}
	if !hit {
		return zero, false
	}
	v, err := cc.codec.Decode(raw)
	if err != nil {
		// entry is already gone; nothing to heal
		cc.log.Debug("pull decode failed", Fields{"key": key, "err": err})
		return zero, false
	}
	return v, true
}

func (cc *cache[V]) Remember(ctx context.Context, key string, ttl time.Duration, produce Producer[V]) (V, bool) {
	var zero V
	k, ok := cc.checkKey("remember", key)
	if !ok {
		return zero, false
	}
	if v, hit := cc.Get(ctx, key); hit {
		return v, true
	}
	if produce == nil {
		return zero, false
	}

	v, err := cc.produce(ctx, produce)
	if err != nil {
		cc.hooks.ProducerFailed(key, err)
		cc.log.Warn("remember producer failed", Fields{"key": key, "err": err})
		return zero, false
	}

	// deferred write-back: the value is returned before it is durable, so an
	// immediate read may still miss
	bgCtx := context.WithoutCancel(ctx)
	cc.bg.Go("remember_writeback", func() error {
		payload, err := cc.codec.Encode(v)
		if err != nil {
			return opErr("remember_writeback", k, err)
		}
		if err := cc.store.Set(bgCtx, k, payload, ttl); err != nil {
			return opErr("remember_writeback", k, err)
		}
		return nil
	})
	return v, true
}

// produce shields Remember from panicking producers.
func (cc *cache[V]) produce(ctx context.Context, fn Producer[V]) (v V, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrProducerPanic, p)
		}
	}()
	return fn(ctx)
}

func (cc *cache[V]) MultiGet(ctx context.Context, setKey string, fields []string) []V {
	k, ok := cc.checkKey("multiget", setKey)
	if !ok || len(fields) == 0 {
		return nil
	}
	raws, err := cc.store.HGet(ctx, k, fields...)
	if err != nil {
		cc.reportStore("multiget", k, err)
		return nil
	}
	out := make([]V, len(fields))
	for i, raw := range raws {
		if raw == nil {
			continue // missing field => zero V
		}
		v, err := cc.codec.Decode(raw)
		if err != nil {
			cc.log.Debug("multiget decode failed", Fields{"key": setKey, "field": fields[i], "err": err})
			continue
		}
		out[i] = v
	}
	return out
}

func (cc *cache[V]) MultiPut(ctx context.Context, setKey string, fields map[string]V, ttl time.Duration) bool {
	k, ok := cc.checkKey("multiput", setKey)
	if !ok {
		return false
	}
	if len(fields) == 0 {
		return true
	}
	enc := make(map[string][]byte, len(fields))
	for f, v := range fields {
		payload, err := cc.codec.Encode(v)
		if err != nil {
			cc.hooks.EncodeError("multiput", k, err)
			return false
		}
		enc[f] = payload
	}
	if err := cc.store.HSet(ctx, k, enc); err != nil {
		cc.reportStore("multiput", k, err)
		return false
	}
	if ttl > 0 {
		// best-effort; the set stays permanent when this fails
		bgCtx := context.WithoutCancel(ctx)
		cc.bg.Go("multiput_expire", func() error {
			_, err := cc.store.Expire(bgCtx, k, ttl)
			return err
		})
	}
	return true
}

// checkKey validates and namespaces key. ok=false short-circuits the
// operation without touching the store; the facade being disabled reports
// the same way.
func (cc *cache[V]) checkKey(op, key string) (string, bool) {
	if !cc.enabled {
		return "", false
	}
	if !util.ValidKey(key) {
		cc.hooks.InvalidKey(op, key)
		cc.log.Debug("invalid key", Fields{"op": op, "key": key, "err": ErrInvalidKey})
		return "", false
	}
	return util.Join(cc.ns, key), true
}

// decode turns raw store bytes into V. Undecodable entries are deleted in
// the background so the next read is a clean miss.
func (cc *cache[V]) decode(ctx context.Context, op, storageKey string, raw []byte) (V, bool) {
	var zero V
	v, err := cc.codec.Decode(raw)
	if err == nil {
		return v, true
	}
	cc.hooks.SelfHeal(storageKey, "decode")
	cc.log.Debug("decode failed, healing entry", Fields{"op": op, "key": storageKey, "err": err})
	bgCtx := context.WithoutCancel(ctx)
	cc.bg.Go("self_heal", func() error {
		return cc.store.Del(bgCtx, storageKey)
	})
	return zero, false
}

func (cc *cache[V]) reportStore(op, storageKey string, err error) {
	cc.hooks.StoreError(op, storageKey, err)
	cc.log.Warn("store command failed", Fields{"op": op, "key": storageKey, "err": err})
}
