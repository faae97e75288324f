package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDedupStore_CheckAndSet_NewEvent(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "evt_abc", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "new event id should return true")
}

func TestEventDedupStore_CheckAndSet_Redelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)
	ctx := context.Background()

	// First delivery
	ok, err := store.CheckAndSet(ctx, "evt_xyz", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	// Redelivery
	ok, err = store.CheckAndSet(ctx, "evt_xyz", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "redelivered event id should return false")
}

func TestEventDedupStore_CheckAndSet_DistinctEvents(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)
	ctx := context.Background()

	ok1, err := store.CheckAndSet(ctx, "evt_1", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok1)

	ok2, err := store.CheckAndSet(ctx, "evt_2", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok2, "distinct event ids must not collide")
}

func TestEventDedupStore_Forget(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "evt_fail", 24*time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Forget(ctx, "evt_fail"))

	// After the mark is dropped the same id reads as fresh again.
	ok, err = store.CheckAndSet(ctx, "evt_fail", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "forgotten event id must be accepted again")
}

func TestEventDedupStore_Forget_MissingKey(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)

	assert.NoError(t, store.Forget(context.Background(), "evt_never_seen"))
}

func TestEventDedupStore_CheckAndSet_ExpiredEntry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewEventDedupStore(client)
	ctx := context.Background()

	ok, err := store.CheckAndSet(ctx, "evt_expire", 1*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	// Fast-forward past TTL
	s.FastForward(2 * time.Second)

	ok, err = store.CheckAndSet(ctx, "evt_expire", 1*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired entry falls back to the store's idempotent transition")
}

func TestHealthCheck_Ping(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	hc := NewHealthCheck(client)

	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}
