// Package redisstore implements store.Store on top of go-redis.
//
// Topology is selected from the address list: one address yields a
// single-node client, several (or an explicit Cluster flag) yield a cluster
// client. Construction never dials; go-redis connects lazily, so connection
// failures surface through lifecycle events and per-operation errors instead
// of a synchronous constructor error.
package redisstore

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/remcache/store"
)

const defaultAddr = "127.0.0.1:6379"

type Store struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ store.Store = (*Store)(nil)

type Config struct {
	// Addrs lists node addresses (host:port). One address selects a
	// single-node client; more than one selects a cluster client.
	Addrs    []string
	Password string

	// Cluster forces a cluster client even for a single address.
	Cluster bool

	// Events observes connection lifecycle transitions. Pooling means Ready
	// may fire once per pooled connection. Nil disables observation.
	Events store.LifecycleEvents

	// Client, when set, is used as-is and Addrs/Password/Cluster are
	// ignored. Set CloseClient only if this store exclusively owns it.
	Client      goredis.UniversalClient
	CloseClient bool
}

func New(cfg Config) (*Store, error) {
	if cfg.Client != nil {
		rdb := cfg.Client
		if cfg.Events != nil {
			rdb.AddHook(&lifecycleHook{events: cfg.Events})
		}
		return &Store{rdb: rdb, closeClient: cfg.CloseClient}, nil
	}

	addrs := cfg.Addrs
	if len(addrs) == 0 {
		addrs = []string{defaultAddr}
	}

	var rdb goredis.UniversalClient
	if cfg.Cluster || len(addrs) > 1 {
		rdb = goredis.NewClusterClient(&goredis.ClusterOptions{
			Addrs:    addrs,
			Password: cfg.Password,
		})
	} else {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     addrs[0],
			Password: cfg.Password,
		})
	}
	if cfg.Events != nil {
		rdb.AddHook(&lifecycleHook{events: cfg.Events})
	}
	return &Store{rdb: rdb, closeClient: true}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // non-positive TTL means "no expiry"
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Store) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0
	}
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s *Store) GetDel(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.GetDel(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) HGet(ctx context.Context, key string, fields ...string) ([][]byte, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	vals, err := s.rdb.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(fields))
	for i, v := range vals {
		switch t := v.(type) {
		case nil:
			// missing field
		case string:
			out[i] = []byte(t)
		case []byte:
			out[i] = t
		}
	}
	return out, nil
}

func (s *Store) HSet(ctx context.Context, key string, fields map[string][]byte) error {
	if len(fields) == 0 {
		return nil
	}
	kv := make(map[string]interface{}, len(fields))
	for f, v := range fields {
		kv[f] = v
	}
	return s.rdb.HSet(ctx, key, kv).Err()
}

func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.Expire(ctx, key, ttl).Result()
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	d, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	// go-redis returns the protocol sentinels unscaled: -2 (key missing)
	// and -1 (no expiry) arrive as raw negative Durations, not seconds.
	switch {
	case d == -2:
		return 0, false, nil
	case d < 0:
		return store.NoExpiration, true, nil
	default:
		return d, true, nil
	}
}

// Close releases the underlying client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// lifecycleHook translates go-redis dial activity into store.LifecycleEvents.
// A dial before any established session is "connecting"; a dial after one is
// "reconnecting" (the client re-dials on its own after drops).
type lifecycleHook struct {
	events    store.LifecycleEvents
	everReady atomic.Bool
}

var _ goredis.Hook = (*lifecycleHook)(nil)

func (h *lifecycleHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if h.everReady.Load() {
			h.events.Reconnecting(addr)
		} else {
			h.events.Connecting(addr)
		}
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.events.Error(err)
			return nil, err
		}
		h.everReady.Store(true)
		h.events.Ready(addr)
		return conn, nil
	}
}

func (h *lifecycleHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return next
}

func (h *lifecycleHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}
