package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/platform/metrics"
)

const (
	// DefaultCacheTTL は集計結果の永続キャッシュの有効期間です。
	DefaultCacheTTL = 300 * time.Minute
	// StockNewsCacheTTL は銘柄別ニュースの有効期間です。
	StockNewsCacheTTL = 60 * time.Minute
	// PriceCacheTTL は単一銘柄の現在値キャッシュの有効期間です。
	PriceCacheTTL = 5 * time.Minute
)

// CacheStore はキーと直列化済みの値を保持するストアを抽象化します。
// 有効期限の判定は呼び出し側がTTLを指定して行います。
type CacheStore interface {
	Get(ctx context.Context, key string) (entity.CacheEntry, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ttlCache はCacheStoreにTTL判定とJSON直列化を加えます。
type ttlCache struct {
	store CacheStore
	name  string // metrics label
	now   func() time.Time
}

func newTTLCache(store CacheStore, name string, now func() time.Time) ttlCache {
	if now == nil {
		now = time.Now
	}
	return ttlCache{store: store, name: name, now: now}
}

// readCached は有効期限内の値を返します。未登録・期限切れ・破損・読み取りエラーはすべてミス扱いです。
func readCached[T any](ctx context.Context, c ttlCache, key string, ttl time.Duration) (T, bool) {
	var zero T
	if c.store == nil {
		return zero, false
	}

	e, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		slog.Warn("cache read failed", "store", c.name, "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues(c.name, "error").Inc()
		return zero, false
	case !ok:
		metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()
		return zero, false
	case e.IsExpired(ttl, c.now()):
		metrics.CacheLookups.WithLabelValues(c.name, "expired").Inc()
		return zero, false
	}

	var v T
	if err := json.Unmarshal(e.Value, &v); err != nil {
		slog.Warn("cache entry corrupt, treating as miss", "store", c.name, "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues(c.name, "corrupt").Inc()
		return zero, false
	}
	metrics.CacheLookups.WithLabelValues(c.name, "hit").Inc()
	return v, true
}

// writeCached は値を直列化して上書き保存します。
func writeCached[T any](ctx context.Context, c ttlCache, key string, v T) error {
	if c.store == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	if err := c.store.Put(ctx, key, b); err != nil {
		metrics.CacheWriteErrors.WithLabelValues(c.name).Inc()
		return fmt.Errorf("write cache value %q: %w", key, err)
	}
	return nil
}

// cachedOrFetch は有効なキャッシュがあればそれを返し、なければfetchの結果を保存して返します。
// 保存の失敗はログに残すのみで、取得結果はそのまま返します。
func cachedOrFetch[T any](ctx context.Context, c ttlCache, key string, ttl time.Duration, fetch func(context.Context) T) T {
	if v, ok := readCached[T](ctx, c, key, ttl); ok {
		return v
	}
	v := fetch(ctx)
	if err := writeCached(ctx, c, key, v); err != nil {
		slog.Warn("cache write failed", "store", c.name, "key", key, "error", err)
	}
	return v
}
