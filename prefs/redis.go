package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"cocktails/catalog"
)

// RedisConfig contains configuration for Redis
type RedisConfig struct {
	// Addr is the Redis address (e.g., "localhost:6379")
	Addr string

	// Password is the Redis password
	Password string

	// DB is the Redis database number
	DB int
}

// RedisOption represents an option for configuring the Redis store
type RedisOption func(*RedisStore)

// WithTTL expires stored preferences after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisStore) {
		r.ttl = ttl
	}
}

// WithKeyPrefix sets a custom prefix for Redis keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		r.keyPrefix = prefix
	}
}

// RedisStore implements Store on a Redis string key per user.
type RedisStore struct {
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
}

// NewRedisStore creates a Redis-backed preference store
func NewRedisStore(client redis.Cmdable, options ...RedisOption) *RedisStore {
	store := &RedisStore{
		client:    client,
		keyPrefix: "cocktails:",
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// NewRedisStoreFromConfig connects to Redis and verifies the connection before returning the store.
func NewRedisStoreFromConfig(ctx context.Context, config RedisConfig, options ...RedisOption) (*RedisStore, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close() // nolint: errcheck
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStore(client, options...), client, nil
}

func (r *RedisStore) key(user string) string {
	return r.keyPrefix + PreferenceKey + ":" + user
}

func (r *RedisStore) Get(ctx context.Context, user string) (catalog.Unit, bool, error) {
	v, err := r.client.Get(ctx, r.key(user)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get unit preference: %w", err)
	}

	u, err := catalog.ParseUnit(v)
	if err != nil {
		return "", false, fmt.Errorf("stored unit preference: %w", err)
	}
	return u, true, nil
}

func (r *RedisStore) Set(ctx context.Context, user string, unit catalog.Unit) error {
	if err := r.client.Set(ctx, r.key(user), string(unit), r.ttl).Err(); err != nil {
		return fmt.Errorf("set unit preference: %w", err)
	}
	return nil
}
