package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is an AttemptStore backed by Redis, for deployments running more
// than one API instance. INCR and EXPIRE are pipelined so the counter bump and
// the window refresh land in a single round trip.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed attempt store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, s.key(key))
		p.Expire(ctx, s.key(key), window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int, time.Time, error) {
	var get *redis.StringCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		get = p.Get(ctx, s.key(key))
		ttl = p.TTL(ctx, s.key(key))
		return nil
	})
	if err != nil && err != redis.Nil {
		return 0, time.Time{}, err
	}

	count, err := get.Int()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		return 0, time.Time{}, nil
	}
	return count, time.Now().Add(remaining), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *RedisStore) key(key string) string {
	return "throttle:" + key
}
