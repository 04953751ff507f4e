package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	s := &Session{Token: "abc", Identity: Identity{UserID: 1, UserName: "Ada"}, CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	// returned sessions are copies
	got.Identity.UserName = "changed"
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Identity.UserName)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client)
	now := time.Now()
	s := &Session{Token: "tok", Identity: Identity{UserID: 9, UserName: "Bob"}, CreatedAt: now, ExpiresAt: now.Add(30 * time.Minute)}
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists("session:tok"))
	ttl := mr.TTL("session:tok")
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute, "ttl = %s", ttl)

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.Identity.UserID)
	assert.Equal(t, "Bob", got.Identity.UserName)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client)
	now := time.Now()
	require.NoError(t, store.Save(ctx, &Session{Token: "short", ExpiresAt: now.Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// saving an already expired session removes it
	require.NoError(t, store.Save(ctx, &Session{Token: "gone", ExpiresAt: now.Add(-time.Second)}))
	assert.False(t, mr.Exists("session:gone"))
}
