package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// mockStore はテスト用のCacheStoreモック実装です。
type mockStore struct {
	getFn func(ctx context.Context, key string) (entity.CacheEntry, bool, error)
	putFn func(ctx context.Context, key string, value []byte) error
	gets  int
}

func (m *mockStore) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return entity.CacheEntry{}, false, nil
}

func (m *mockStore) Put(ctx context.Context, key string, value []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, value)
	}
	return nil
}

var writtenAt = time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

func hashEntry(value string, at time.Time) map[string]string {
	return map[string]string{fieldValue: value, fieldUpdatedAt: strconv.FormatInt(at.UnixMicro(), 10)}
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// racingStore は最初のGetの直後に割り込み処理を1回だけ実行するストアです。
type racingStore struct {
	*MemoryStore
	interleave func()
}

func (r *racingStore) Get(ctx context.Context, key string) (entity.CacheEntry, bool, error) {
	e, ok, err := r.MemoryStore.Get(ctx, key)
	if f := r.interleave; f != nil {
		r.interleave = nil
		f()
	}
	return e, ok, err
}

// TestNewCachingStore_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingStore_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "market_cache"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "market_cache"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewCachingStore(nil, tt.ttl, &mockStore{}, tt.namespace)
			assert.Equal(t, tt.expectedTTL, s.ttl)
			assert.Equal(t, tt.expectedNamespace, s.namespace)
		})
	}
}

// TestCachingStore_Get_NilRedis はRedisがnilの場合に内部ストアを直接呼び出すことを検証します。
func TestCachingStore_Get_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockStore{getFn: func(_ context.Context, key string) (entity.CacheEntry, bool, error) {
		return entity.CacheEntry{Key: key, Value: []byte(`1`), UpdatedAt: writtenAt}, true, nil
	}}
	s := NewCachingStore(nil, time.Minute, inner, "")

	e, ok, err := s.Get(context.Background(), "top_gainers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`1`), e.Value)
	assert.Equal(t, 1, inner.gets)
}

// TestCachingStore_Get_CacheHit はRedisヒット時に内部ストアを呼ばず、元の更新時刻を返すことを検証します。
func TestCachingStore_Get_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectHGetAll("market_cache:top_gainers").SetVal(hashEntry(`["AAPL"]`, writtenAt))

	inner := &mockStore{}
	s := NewCachingStore(rdb, 5*time.Minute, inner, "")

	e, ok, err := s.Get(context.Background(), "top_gainers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "top_gainers", e.Key)
	assert.JSONEq(t, `["AAPL"]`, string(e.Value))
	assert.True(t, writtenAt.Equal(e.UpdatedAt))
	assert.Zero(t, inner.gets, "inner store should not be called on cache hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingStore_Get_InnerMissOrError は内部ストアのミスやエラーがそのまま返り、Redisへ書き込まないことを検証します。
func TestCachingStore_Get_InnerMissOrError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("database error")
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "miss"},
		{name: "error", err: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			defer func() { _ = rdb.Close() }()
			mock.ExpectHGetAll("market_cache:k").SetVal(map[string]string{})

			inner := &mockStore{getFn: func(context.Context, string) (entity.CacheEntry, bool, error) {
				return entity.CacheEntry{}, false, tt.err
			}}
			s := NewCachingStore(rdb, time.Minute, inner, "")

			_, ok, err := s.Get(context.Background(), "k")
			assert.False(t, ok)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestCachingStore_Get_CacheMiss はRedisミス時に内部ストアから取得し、TTL付きでRedisへ保存することを検証します。
func TestCachingStore_Get_CacheMiss(t *testing.T) {
	t.Parallel()
	mr, rdb := newMiniredis(t)

	inner := &mockStore{getFn: func(_ context.Context, key string) (entity.CacheEntry, bool, error) {
		return entity.CacheEntry{Key: key, Value: []byte(`["AAPL"]`), UpdatedAt: writtenAt}, true, nil
	}}
	s := NewCachingStore(rdb, 2*time.Minute, inner, "test")

	_, ok, err := s.Get(context.Background(), "top_gainers")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, `["AAPL"]`, mr.HGet("test:top_gainers", fieldValue))
	assert.Equal(t, strconv.FormatInt(writtenAt.UnixMicro(), 10), mr.HGet("test:top_gainers", fieldUpdatedAt))
	assert.Equal(t, 2*time.Minute, mr.TTL("test:top_gainers"))

	e, ok, err := s.Get(context.Background(), "top_gainers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, writtenAt.Equal(e.UpdatedAt))
	assert.Equal(t, 1, inner.gets)
}

// TestCachingStore_Get_CorruptedCache は破損したRedisの値を削除して内部ストアにフォールバックすることを検証します。
func TestCachingStore_Get_CorruptedCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed func(mr *miniredis.Miniredis)
	}{
		{"invalid json", func(mr *miniredis.Miniredis) {
			mr.HSet("test:k", fieldValue, "invalid json", fieldUpdatedAt, "1")
		}},
		{"missing updated_at", func(mr *miniredis.Miniredis) {
			mr.HSet("test:k", fieldValue, "1")
		}},
		{"wrong type", func(mr *miniredis.Miniredis) {
			_ = mr.Set("test:k", "legacy")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mr, rdb := newMiniredis(t)
			tt.seed(mr)

			inner := &mockStore{getFn: func(_ context.Context, key string) (entity.CacheEntry, bool, error) {
				return entity.CacheEntry{Key: key, Value: []byte(`1`), UpdatedAt: writtenAt}, true, nil
			}}
			s := NewCachingStore(rdb, time.Minute, inner, "test")

			e, ok, err := s.Get(context.Background(), "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte(`1`), e.Value)
			assert.Equal(t, 1, inner.gets)
			assert.Equal(t, "1", mr.HGet("test:k", fieldValue))
		})
	}
}

// TestCachingStore_Put_WritesThrough は書き込んだ行がそのままRedisへ反映されることを検証します。
func TestCachingStore_Put_WritesThrough(t *testing.T) {
	t.Parallel()
	mr, rdb := newMiniredis(t)

	now := writtenAt
	inner := NewMemoryStore(func() time.Time { return now })
	s := NewCachingStore(rdb, 2*time.Minute, inner, "test")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "stock_history_AAPL", []byte(`{"v":1}`)))
	assert.Equal(t, `{"v":1}`, mr.HGet("test:stock_history_AAPL", fieldValue))
	assert.Equal(t, 2*time.Minute, mr.TTL("test:stock_history_AAPL"))

	now = writtenAt.Add(time.Minute)
	require.NoError(t, s.Put(ctx, "stock_history_AAPL", []byte(`{"v":2}`)))

	e, ok, err := s.Get(ctx, "stock_history_AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(e.Value))
	assert.True(t, now.Equal(e.UpdatedAt))
}

// TestCachingStore_Get_ConcurrentPut は古い行を読んだGetが、その間に行われたPutの結果をRedis上で上書きしないことを検証します。
func TestCachingStore_Get_ConcurrentPut(t *testing.T) {
	t.Parallel()
	mr, rdb := newMiniredis(t)
	ctx := context.Background()

	now := writtenAt
	inner := &racingStore{MemoryStore: NewMemoryStore(func() time.Time { return now })}
	require.NoError(t, inner.Put(ctx, "top_gainers", []byte(`["OLD"]`)))

	s := NewCachingStore(rdb, time.Hour, inner, "test")
	inner.interleave = func() {
		now = writtenAt.Add(5 * time.Hour)
		require.NoError(t, s.Put(ctx, "top_gainers", []byte(`["NEW"]`)))
	}

	stale, ok, err := s.Get(ctx, "top_gainers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["OLD"]`, string(stale.Value))

	assert.Equal(t, `["NEW"]`, mr.HGet("test:top_gainers", fieldValue))
	e, ok, err := s.Get(ctx, "top_gainers")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["NEW"]`, string(e.Value))
	assert.True(t, now.Equal(e.UpdatedAt))
}

// TestCachingStore_Put_InnerError は内部ストアのエラーが伝播され、Redisに触れないことを検証します。
func TestCachingStore_Put_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("upsert error")
	inner := &mockStore{putFn: func(context.Context, string, []byte) error { return expectedErr }}
	s := NewCachingStore(rdb, time.Minute, inner, "")

	err := s.Put(context.Background(), "k", []byte(`1`))
	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingStore_Put_ReadBackFails は書き込み後の読み戻しに失敗した場合にRedisのコピーを削除することを検証します。
func TestCachingStore_Put_ReadBackFails(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectDel("market_cache:stock_news_AAPL").SetVal(1)

	inner := &mockStore{getFn: func(context.Context, string) (entity.CacheEntry, bool, error) {
		return entity.CacheEntry{}, false, errors.New("read replica lag")
	}}
	s := NewCachingStore(rdb, time.Minute, inner, "")

	require.NoError(t, s.Put(context.Background(), "stock_news_AAPL", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"BRK A", "BRK_A"},
		{"key:value", "key_value"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, safe(tt.input))
		})
	}
}
