// Package cache provides CacheStore implementations and decorators.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

// Each cached key is a Redis hash. updated_at (unix microseconds) travels with
// the value so callers keep computing expiry from the durable write time.
const (
	fieldValue     = "value"
	fieldUpdatedAt = "updated_at"
)

// storeIfNewer writes the hash unless Redis already holds a newer updated_at.
// A reader that loaded a stale row before a concurrent Put can therefore never
// replace the fresher copy that Put wrote through.
var storeIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'updated_at')
if cur and tonumber(cur) and tonumber(cur) > tonumber(ARGV[2]) then
  return 0
end
redis.call('HSET', KEYS[1], 'value', ARGV[1], 'updated_at', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// CachingStore decorates a CacheStore with a Redis read-through layer.
type CachingStore struct {
	inner     usecase.CacheStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CacheStore = (*CachingStore)(nil)

// NewCachingStore decorates inner with Redis.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "market_cache".
// A nil rdb makes the decorator a pass-through.
func NewCachingStore(rdb *redis.Client, ttl time.Duration, inner usecase.CacheStore, namespace string) *CachingStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "market_cache"
	}
	return &CachingStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Get checks Redis first, then falls back to the inner store.
func (c *CachingStore) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	if c.rdb == nil {
		return c.inner.Get(ctx, key)
	}

	rkey := c.cacheKey(key)

	// 1) Redis
	fields, err := c.rdb.HGetAll(ctx, rkey).Result()
	switch {
	case err == nil && len(fields) > 0:
		if e, ok := decodeEntry(key, fields); ok {
			return e, true, nil
		}
		_ = c.rdb.Del(ctx, rkey).Err()
	case redis.HasErrorPrefix(err, "WRONGTYPE"):
		// key left in another format
		_ = c.rdb.Del(ctx, rkey).Err()
	}

	// 2) inner store
	e, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return e, ok, err
	}

	// 3) populate Redis (best effort)
	c.store(ctx, rkey, e)
	return e, true, nil
}

// Put writes to the inner store and then writes the stored row through to Redis.
// If the row cannot be read back the Redis copy is dropped instead.
func (c *CachingStore) Put(ctx context.Context, key string, value []byte) error {
	if err := c.inner.Put(ctx, key, value); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	rkey := c.cacheKey(key)
	e, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok || !c.store(ctx, rkey, e) {
		_ = c.rdb.Del(ctx, rkey).Err()
	}
	return nil
}

// store reports whether Redis now holds e or a newer entry.
func (c *CachingStore) store(ctx context.Context, rkey string, e entity.CacheEntry) bool {
	if !json.Valid(e.Value) {
		return false
	}
	args := []any{string(e.Value), e.UpdatedAt.UnixMicro(), c.ttl.Milliseconds()}
	if err := storeIfNewer.Run(ctx, c.rdb, []string{rkey}, args...).Err(); err != nil {
		slog.Debug("redis cache populate failed", "key", rkey, "error", err)
		return false
	}
	return true
}

func decodeEntry(key string, fields map[string]string) (entity.CacheEntry, bool) {
	value := fields[fieldValue]
	micros, err := strconv.ParseInt(fields[fieldUpdatedAt], 10, 64)
	if value == "" || err != nil || !json.Valid([]byte(value)) {
		return entity.CacheEntry{}, false
	}
	return entity.CacheEntry{Key: key, Value: []byte(value), UpdatedAt: time.UnixMicro(micros).UTC()}, true
}

func (c *CachingStore) cacheKey(key string) string {
	return c.namespace + ":" + safe(key)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
