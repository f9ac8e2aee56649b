package remcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/remcache/codec"
	st "github.com/unkn0wn-root/remcache/store"
)

// Producer computes a missing value for Remember. It is invoked at most once
// per call, only on a cache miss.
type Producer[V any] func(ctx context.Context) (V, error)

// Cache is the public caching facade over a remote key-value store.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
//
// Every operation validates its key first and reports failure through its
// return value (false / miss / empty) rather than an error; see package docs
// for the full failure policy. All operations are safe for concurrent use.
type Cache[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Get returns the decoded value for key. Store miss, store error, and
	// decode failure all report a miss.
	Get(ctx context.Context, key string) (v V, ok bool)

	// Put stores value under key. ttl <= 0 means no expiration.
	Put(ctx context.Context, key string, value V, ttl time.Duration) bool

	// Forever stores value with no expiration; shorthand for Put with ttl 0.
	Forever(ctx context.Context, key string, value V) bool

	// Add stores value only if key is absent, atomically (SET NX).
	// Returns false when the key already exists or the write failed.
	Add(ctx context.Context, key string, value V, ttl time.Duration) bool

	// Has reports whether key currently exists in the store.
	Has(ctx context.Context, key string) bool

	// TTL reports the remaining lifetime of key; store.NoExpiration when it
	// exists without an expiry, ok=false when it is absent.
	TTL(ctx context.Context, key string) (time.Duration, bool)

	// Forget removes key best-effort in the background. Failures are dropped
	// (observable through Hooks only).
	Forget(ctx context.Context, key string)

	// Pull returns the value for key and removes it, atomically (GETDEL).
	// A miss issues no delete.
	Pull(ctx context.Context, key string) (v V, ok bool)

	// Remember implements read-through: a hit is returned unchanged; on a
	// miss produce is invoked once and its value is returned immediately
	// while the store write-back runs in the background. A producer error or
	// panic yields a miss and writes nothing. Close drains pending
	// write-backs.
	Remember(ctx context.Context, key string, ttl time.Duration, produce Producer[V]) (v V, ok bool)

	// MultiGet reads hash fields of setKey positionally aligned with fields.
	// Missing or undecodable fields yield the zero V at their position; an
	// invalid key or store error yields an empty result.
	MultiGet(ctx context.Context, setKey string, fields []string) []V

	// MultiPut writes hash fields under setKey. A positive ttl is applied to
	// the whole set in the background, best-effort.
	MultiPut(ctx context.Context, setKey string, fields map[string]V, ttl time.Duration) bool
}

// Options tune the facade. Only Store and Codec are required.
type Options[V any] struct {
	// Required
	Store st.Store
	Codec c.Codec[V]

	// Namespace prefixes every storage key ("<ns>:<key>"). Optional.
	Namespace string

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// MaxBackground caps concurrent fire-and-forget tasks (forget, expire,
	// remember write-back, self-heal). 0 => 1024. Excess tasks are dropped.
	MaxBackground int

	// CloseStore makes Close also close the Store. Set only if the facade
	// exclusively owns it.
	CloseStore bool

	// Disabled turns every operation into a no-op miss.
	Disabled bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
