package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces every key. Defaults to "srgsearch:solution:".
	Prefix string
}

// RedisStore keeps results in Redis, relying on key expiry for the TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and pings it once.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "srgsearch:solution:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get retrieves a value.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := retry(ctx, func() error {
		v, err := s.client.Get(ctx, s.prefix+key).Bytes()
		if err != nil {
			return classifyRedis(err)
		}
		data = v
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. A zero ttl keeps the key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return retry(ctx, func() error {
		return classifyRedis(s.client.Set(ctx, s.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return retry(ctx, func() error {
		return classifyRedis(s.client.Del(ctx, s.prefix+key).Err())
	})
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// classifyRedis marks network failures as retryable.
func classifyRedis(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Unavailable(err)
	}
	return err
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
