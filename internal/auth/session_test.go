package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStore(client), mr
}

func testSession(ttl time.Duration) Session {
	created := time.Now().UTC()
	return Session{
		Token:     "tok-1",
		UserID:    "user-1",
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	session := testSession(time.Hour)
	require.NoError(t, s.Save(ctx, session))

	assert.True(t, mr.Exists("session:tok-1"))
	members, err := mr.Members("user_sessions:user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:tok-1"}, members)

	got, err := s.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	require.NoError(t, s.Delete(ctx, "tok-1"))
	_, err = s.Get(ctx, "tok-1")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "tok-1"), ErrSessionNotFound))
}

func TestRedisSessionExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Save(ctx, testSession(time.Minute)))
	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "tok-1")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionStore()

	clock := time.Now()
	s.now = func() time.Time { return clock }

	require.NoError(t, s.Save(ctx, testSession(time.Minute)))
	got, err := s.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	clock = clock.Add(2 * time.Minute)
	_, err = s.Get(ctx, "tok-1")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "tok-1"), ErrSessionNotFound))
}
