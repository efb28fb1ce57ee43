// Package cache stores text embeddings in Redis so repeated searches over an
// unchanged corpus do not call the embeddings API again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/eventrank/pkg/metrics"
)

const (
	defaultPrefix = "eventrank:embedding:"
	defaultTTL    = 24 * time.Hour
	pingTimeout   = 5 * time.Second
)

// Cache result labels reported to metrics.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Cache is a Redis-backed embedding cache. A nil *Cache is valid and always
// misses.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long an embedding is kept. ttl <= 0 keeps the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// New wraps an existing client.
func New(rdb *redis.Client, opts ...Option) *Cache {
	c := &Cache{rdb: rdb, ttl: defaultTTL, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect parses a redis:// URL, creates a client and verifies connectivity.
func Connect(ctx context.Context, url string, opts ...Option) (*Cache, error) {
	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(ro)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(rdb, opts...), nil
}

// Key returns the cache key of text embedded by model.
func (c *Cache) Key(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get returns the cached embedding of text. Redis errors count as misses.
func (c *Cache) Get(ctx context.Context, model, text string) ([]float64, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.Key(model, text)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordEmbeddingCache(resultMiss)
		} else {
			metrics.RecordEmbeddingCache(resultError)
		}
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil || len(vec) == 0 {
		metrics.RecordEmbeddingCache(resultError)
		return nil, false
	}
	metrics.RecordEmbeddingCache(resultHit)
	return vec, true
}

// Set stores the embedding of text.
func (c *Cache) Set(ctx context.Context, model, text string, vec []float64) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}
	if err := c.rdb.Set(ctx, c.Key(model, text), raw, c.ttl).Err(); err != nil {
		metrics.RecordEmbeddingCache(resultError)
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
