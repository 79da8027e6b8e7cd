package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/metrics"
)

// ErrNotFound is returned by RedisAdapter.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// RedisAdapter is a thin wrapper over a Redis client.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter creates a new Redis adapter.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisAdapter(redisURL string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return &RedisAdapter{client: redis.NewClient(opts)}, nil
}

// Get retrieves a value by key.
func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value with the specified TTL. A zero TTL never expires.
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key and reports whether it existed.
func (r *RedisAdapter) Delete(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return n > 0, nil
}

// Exists reports whether key is present.
func (r *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return n > 0, nil
}

// DeletePrefix removes every key starting with prefix.
func (r *RedisAdapter) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys with prefix %s: %w", prefix, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys with prefix %s: %w", prefix, err)
	}
	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete keys with prefix %s: %w", prefix, err)
		}
	}
	return nil
}

// Ping checks if Redis is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// HealthCheck is Ping under the repository health checker name.
func (r *RedisAdapter) HealthCheck(ctx context.Context) error {
	return r.Ping(ctx)
}

// Close closes the Redis connection.
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}

// RedisQuoteCache shares computed quotes between service instances.
type RedisQuoteCache struct {
	adapter *RedisAdapter
	prefix  string
	ttl     time.Duration
}

// NewRedisQuoteCache stores quotes under prefix+"quote:" for ttl.
func NewRedisQuoteCache(adapter *RedisAdapter, prefix string, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{adapter: adapter, prefix: prefix + "quote:", ttl: ttl}
}

// Get returns the cached quote for key.
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (model.QuoteResult, bool) {
	raw, err := c.adapter.Get(ctx, c.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("quote cache read failed")
			metrics.RecordCacheOperation("get", "error")
			return model.QuoteResult{}, false
		}
		metrics.RecordCacheOperation("get", "miss")
		return model.QuoteResult{}, false
	}

	var result model.QuoteResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached quote")
		_, _ = c.adapter.Delete(ctx, c.prefix+key)
		metrics.RecordCacheOperation("get", "error")
		return model.QuoteResult{}, false
	}
	metrics.RecordCacheOperation("get", "hit")
	return result, true
}

// Set stores value for key.
func (c *RedisQuoteCache) Set(ctx context.Context, key string, value model.QuoteResult) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Msg("quote cache encode failed")
		return
	}
	if err := c.adapter.Set(ctx, c.prefix+key, raw, c.ttl); err != nil {
		log.Warn().Err(err).Msg("quote cache write failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes key.
func (c *RedisQuoteCache) Invalidate(ctx context.Context, key string) {
	if _, err := c.adapter.Delete(ctx, c.prefix+key); err != nil {
		log.Warn().Err(err).Msg("quote cache invalidate failed")
		return
	}
	metrics.RecordCacheOperation("invalidate", "success")
}

// Clear removes every cached quote.
func (c *RedisQuoteCache) Clear(ctx context.Context) {
	if err := c.adapter.DeletePrefix(ctx, c.prefix); err != nil {
		log.Warn().Err(err).Msg("quote cache clear failed")
		return
	}
	metrics.RecordCacheOperation("clear", "success")
}

// Stop is a no-op; the adapter is closed by its owner.
func (c *RedisQuoteCache) Stop() {}

// RedisTokenStore keeps token markers in Redis so revocations are shared
// across instances.
type RedisTokenStore struct {
	adapter *RedisAdapter
	prefix  string
}

// NewRedisTokenStore stores markers under prefix+"token:".
func NewRedisTokenStore(adapter *RedisAdapter, prefix string) *RedisTokenStore {
	return &RedisTokenStore{adapter: adapter, prefix: prefix + "token:"}
}

// Put stores key until ttl elapses.
func (s *RedisTokenStore) Put(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.adapter.Set(ctx, s.prefix+key, []byte("1"), ttl)
}

// Exists reports whether key is stored.
func (s *RedisTokenStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.adapter.Exists(ctx, s.prefix+key)
}

// Take removes key and reports whether it was present.
func (s *RedisTokenStore) Take(ctx context.Context, key string) (bool, error) {
	return s.adapter.Delete(ctx, s.prefix+key)
}

// RedisResponseStore shares idempotent responses between service instances.
type RedisResponseStore struct {
	adapter *RedisAdapter
	prefix  string
}

// NewRedisResponseStore stores responses under prefix+"idempotency:".
func NewRedisResponseStore(adapter *RedisAdapter, prefix string) *RedisResponseStore {
	return &RedisResponseStore{adapter: adapter, prefix: prefix + "idempotency:"}
}

// Load returns the response stored for key.
func (s *RedisResponseStore) Load(ctx context.Context, key string) (*StoredResponse, bool) {
	raw, err := s.adapter.Get(ctx, s.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("idempotency store read failed")
		}
		return nil, false
	}
	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warn().Err(err).Msg("discarding undecodable idempotent response")
		return nil, false
	}
	return &resp, true
}

// Save stores resp for ttl.
func (s *RedisResponseStore) Save(ctx context.Context, key string, resp *StoredResponse, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Msg("idempotent response encode failed")
		return
	}
	if err := s.adapter.Set(ctx, s.prefix+key, raw, ttl); err != nil {
		log.Warn().Err(err).Msg("idempotency store write failed")
	}
}
