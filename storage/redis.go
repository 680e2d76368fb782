package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

const fingerprintKey = "watch:last_fingerprint"

// RedisStore persists the fingerprint in redis, for deployments where the
// watcher has no durable filesystem.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // may be empty
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Ping() error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Load() (Fingerprint, bool, error) {
	val, err := s.client.Get(ctx, fingerprintKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return Fingerprint(val), true, nil
}

func (s *RedisStore) Save(fp Fingerprint) error {
	return s.client.Set(ctx, fingerprintKey, string(fp), 0).Err()
}
