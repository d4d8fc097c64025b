package airports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key under which RedisStore keeps the mapping.
const DefaultRedisKey = "mcp-flights:airports"

// redisClient is the subset of the go-redis API used by RedisStore.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the mapping as one JSON document under a single Redis key,
// letting several server replicas share a refreshed directory.
type RedisStore struct {
	client redisClient
	key    string
	closer func() error
}

// NewRedisStore returns a store using an existing client.
func NewRedisStore(client redisClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// DialRedisStore parses redisURL, verifies the connection and returns a store
// that owns the client. Call Close when done.
func DialRedisStore(ctx context.Context, redisURL, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	store := NewRedisStore(rdb, key)
	store.closer = rdb.Close
	return store, nil
}

// Describe implements Store.
func (s *RedisStore) Describe() string {
	return "redis key " + s.key
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (map[string]string, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("reading airport cache from redis: %w", err)
	}
	return decodeRecords(data)
}

// Save implements Store. The key never expires; it is only replaced by the
// next successful refresh.
func (s *RedisStore) Save(ctx context.Context, records map[string]string) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding airport cache: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing airport cache to redis: %w", err)
	}
	return nil
}

// Close releases the client created by DialRedisStore.
func (s *RedisStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
