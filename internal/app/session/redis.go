package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKey returns the Redis key holding the session with the given id.
func redisKey(id string) string {
	return "session:" + id
}

// RedisStore keeps each session as a JSON string whose key TTL is the session lifetime,
// so Redis expires idle sessions on its own.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. The client stays owned by the caller.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}

	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	sess.ExpiresAt = time.Now().Add(s.ttl)

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	if err := s.client.Set(ctx, redisKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Touch resets the key TTL. The stored expires_at is left stale; callers use the
// returned time.
func (s *RedisStore) Touch(ctx context.Context, id string) (time.Time, error) {
	ok, err := s.client.Expire(ctx, redisKey(id), s.ttl).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("redis expire session: %w", err)
	}
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return time.Now().Add(s.ttl), nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Close is a no-op; the Redis client is closed by its owner.
func (s *RedisStore) Close() error {
	return nil
}
