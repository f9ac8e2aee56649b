// Package store defines the remote key-value command surface used by remcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended or
// appended metadata, no re-encoding, no mutation). If a backend performs
// internal transforms (e.g., compression), they MUST be fully reversed so that
// the bytes returned by Get are identical to the bytes provided to Set.
package store

import (
	"context"
	"time"
)

// NoExpiration is reported by TTL for keys stored without an expiry.
const NoExpiration time.Duration = -1

// Store is the minimal command set the facade needs from a remote key-value
// backend with TTL support and hash-field sub-storage. Implementations must
// be safe for concurrent use: the facade shares one Store across all callers
// and relies on the transport to multiplex commands over one handle.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value only if key does not exist. Returns ok=true when the
	// write happened. Must be atomic on the backend (SET ... NX).
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// GetDel atomically reads and removes key (GETDEL).
	// Miss reporting matches Get.
	GetDel(ctx context.Context, key string) ([]byte, bool, error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Exists reports whether key currently exists.
	Exists(ctx context.Context, key string) (bool, error)

	// HGet returns hash field values positionally aligned with fields
	// (HMGET). A nil element marks a missing field.
	HGet(ctx context.Context, key string, fields ...string) ([][]byte, error)

	// HSet writes the given hash fields under key (HMSET semantics).
	HSet(ctx context.Context, key string, fields map[string][]byte) error

	// Expire applies ttl to an existing key. ok=false when the key is absent.
	Expire(ctx context.Context, key string, ttl time.Duration) (ok bool, err error)

	// TTL reports the remaining lifetime of key. ok=false when the key is
	// absent; NoExpiration when it exists without an expiry.
	TTL(ctx context.Context, key string) (time.Duration, bool, error)

	// Close releases resources.
	Close(ctx context.Context) error
}

// LifecycleEvents receives connection state transitions from a Store
// implementation. Handlers are a diagnostic side channel only: they must
// return quickly, never retry, and never touch cache state. Operation-level
// failures are NOT delivered here; each operation reports through its own
// return contract.
type LifecycleEvents interface {
	// Connecting fires before the first dial to addr.
	Connecting(addr string)
	// Ready fires once a connection is established and usable.
	Ready(addr string)
	// Reconnecting fires before a dial that follows an established session.
	Reconnecting(addr string)
	// Error fires on dial failures.
	Error(err error)
}

// NopEvents ignores all lifecycle transitions.
type NopEvents struct{}

func (NopEvents) Connecting(string)   {}
func (NopEvents) Ready(string)        {}
func (NopEvents) Reconnecting(string) {}
func (NopEvents) Error(error)         {}
