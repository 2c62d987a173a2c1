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

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, mr := newTestRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	login := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	sess := &Session{
		ID:     "abc",
		User:   &User{Username: "admin", LastLogin: login},
		Errors: &FieldErrors{Nickname: "Apelido é obrigatório"},
	}
	require.NoError(t, s.Save(ctx, sess))

	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:abc"))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.User.Username)
	assert.True(t, login.Equal(got.User.LastLogin))
	assert.Equal(t, "Apelido é obrigatório", got.Errors.Nickname)
}

func TestRedisStoreExpiresWithTTL(t *testing.T) {
	s, mr := newTestRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &Session{ID: "abc"}))

	mr.FastForward(20 * time.Minute)
	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, got))

	mr.FastForward(20 * time.Minute)
	_, err = s.Get(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTouch(t *testing.T) {
	s, mr := newTestRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &Session{ID: "abc", Errors: &FieldErrors{Data: "Data de nascimento é obrigatório"}}))

	mr.FastForward(20 * time.Minute)
	before := time.Now()
	expiresAt, err := s.Touch(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, expiresAt.Before(before.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:abc"))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got.Errors)
	assert.Equal(t, "Data de nascimento é obrigatório", got.Errors.Data)

	_, err = s.Touch(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDestroy(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &Session{ID: "abc"}))
	require.NoError(t, s.Destroy(ctx, "abc"))

	assert.False(t, mr.Exists("session:abc"))
	_, err := s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Minute)
	mr.Close()

	ctx := context.Background()
	assert.Error(t, s.Save(ctx, &Session{ID: "abc"}))
	assert.Error(t, s.Destroy(ctx, "abc"))

	_, err := s.Get(ctx, "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	s, mr := newTestRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("session:abc", "{not json"))

	_, err := s.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
