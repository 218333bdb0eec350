package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore_PutGet は書き込んだ値と時刻が読み出せ、上書きが後勝ちになることを検証します。
func TestMemoryStore_PutGet(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(func() time.Time { return now })
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "price_AAPL")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "price_AAPL", []byte(`1`)))
	now = now.Add(time.Minute)
	require.NoError(t, s.Put(ctx, "price_AAPL", []byte(`2`)))

	e, ok, err := s.Get(ctx, "price_AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "price_AAPL", e.Key)
	assert.Equal(t, []byte(`2`), e.Value)
	assert.Equal(t, now, e.UpdatedAt)
}

// TestMemoryStore_CopiesValue は呼び出し側のバッファ変更が保存値に影響しないことを検証します。
func TestMemoryStore_CopiesValue(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(nil)
	buf := []byte("abc")
	require.NoError(t, s.Put(context.Background(), "k", buf))
	buf[0] = 'x'

	e, _, _ := s.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(e.Value))
}

// TestMemoryStore_Concurrent は並行アクセスで競合しないことを検証します（-race で意味を持ちます）。
func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := []string{"a", "b"}[i%2]
			_ = s.Put(ctx, key, []byte{byte(i)})
			_, _, _ = s.Get(ctx, key)
		}()
	}
	wg.Wait()

	for _, k := range []string{"a", "b"} {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
