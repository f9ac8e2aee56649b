package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/remcache"
	"github.com/unkn0wn-root/remcache/codec"
	"github.com/unkn0wn-root/remcache/config"
	"github.com/unkn0wn-root/remcache/store"
	redisstore "github.com/unkn0wn-root/remcache/store/redis"
)

// Full stack: env-resolved config -> redis store -> facade, against miniredis.
func newFacade(t *testing.T) (*miniredis.Miniredis, *redisstore.Store, remcache.Cache[string]) {
	t.Helper()
	mr := miniredis.RunT(t)

	env := map[string]string{
		config.EnvHost: mr.Host(),
		config.EnvPort: mr.Port(),
	}
	cfg := config.Resolve(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}, config.Config{Host: "ignored-by-env", Port: 1})

	s, err := redisstore.New(redisstore.Config{
		Addrs:    cfg.Addrs(),
		Password: cfg.Password,
		Cluster:  cfg.Clustered(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	cc, err := remcache.New[string](remcache.Options[string]{
		Store: s,
		Codec: codec.String{},
	})
	require.NoError(t, err)
	return mr, s, cc
}

func TestFacadeScenario(t *testing.T) {
	ctx := context.Background()
	mr, _, cc := newFacade(t)
	defer cc.Close(ctx)

	// put/get round trip
	assert.True(t, cc.Put(ctx, "test", "123456", 0))
	got, ok := cc.Get(ctx, "test")
	assert.True(t, ok)
	assert.Equal(t, "123456", got)

	// ttl'd entry disappears after expiry
	assert.True(t, cc.Put(ctx, "test10", "123456", time.Second))
	assert.True(t, cc.Has(ctx, "test10"))
	mr.FastForward(2 * time.Second)
	assert.False(t, cc.Has(ctx, "test10"))

	// forever reports the no-expiration sentinel
	assert.True(t, cc.Forever(ctx, "perm", "v"))
	d, ok := cc.TTL(ctx, "perm")
	assert.True(t, ok)
	assert.Equal(t, store.NoExpiration, d)
}

func TestFacadeAddAndPull(t *testing.T) {
	ctx := context.Background()
	_, _, cc := newFacade(t)
	defer cc.Close(ctx)

	assert.True(t, cc.Add(ctx, "k", "first", 0))
	assert.False(t, cc.Add(ctx, "k", "second", 0))
	got, _ := cc.Get(ctx, "k")
	assert.Equal(t, "first", got)

	pulled, ok := cc.Pull(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "first", pulled)
	assert.False(t, cc.Has(ctx, "k"))

	_, ok = cc.Pull(ctx, "k")
	assert.False(t, ok)
}

func TestFacadeRememberWriteBack(t *testing.T) {
	ctx := context.Background()
	_, s, cc := newFacade(t)

	calls := 0
	got, ok := cc.Remember(ctx, "k", time.Minute, func(context.Context) (string, error) {
		calls++
		return "produced", nil
	})
	require.True(t, ok)
	assert.Equal(t, "produced", got)
	assert.Equal(t, 1, calls)

	// Close drains the deferred write-back; the store keeps the entry
	require.NoError(t, cc.Close(ctx))
	raw, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("produced"), raw)
}

func TestFacadeHashSet(t *testing.T) {
	ctx := context.Background()
	_, _, cc := newFacade(t)
	defer cc.Close(ctx)

	ok := cc.MultiPut(ctx, "set", map[string]string{"f1": "v1", "f2": "v2"}, 0)
	require.True(t, ok)

	got := cc.MultiGet(ctx, "set", []string{"f1", "f2"})
	assert.Equal(t, []string{"v1", "v2"}, got)
}
