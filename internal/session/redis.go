package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis; keys expire with the session.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (r *RedisStore) key(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, s.Token)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session marshal error: %w", err)
	}
	return r.client.Set(ctx, r.key(s.Token), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session unmarshal error: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
