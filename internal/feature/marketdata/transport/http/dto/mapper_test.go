package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// TestFromQuote_NullFundamentals は欠損したファンダメンタルズがnullとして出力されることを検証します。
func TestFromQuote_NullFundamentals(t *testing.T) {
	t.Parallel()

	q := entity.Quote{
		Ticker:    "AAPL",
		Price:     entity.Money(189.5),
		MarketCap: entity.OptionalMoney(2.9e12),
		AsOf:      time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC),
		Source:    "yahoo",
	}

	b, err := json.Marshal(FromQuote(q))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.InDelta(t, 189.5, m["price"], 1e-9)
	assert.InDelta(t, 2.9e12, m["marketCap"], 1)
	assert.Nil(t, m["peRatio"])
	assert.Contains(t, m, "peRatio")
	assert.Equal(t, "2025-06-11T15:30:00Z", m["asOf"])
	assert.NotContains(t, m, "sector")
}

// TestFromHistory_DateFormat は日付が暦日で出力されることを検証します。
func TestFromHistory_DateFormat(t *testing.T) {
	t.Parallel()

	h := entity.StockHistory{
		Quote: entity.Quote{Ticker: "MSFT", Price: entity.Money(420)},
		Series: []entity.HistoricalPoint{
			{Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("418.25"), Volume: 10},
		},
	}

	r := FromHistory(h, entity.Span1Y)
	assert.Equal(t, "1y", r.Span)
	require.Len(t, r.Series, 1)
	assert.Equal(t, "2025-06-09", r.Series[0].Date)
	assert.InDelta(t, 418.25, r.Series[0].Close, 1e-9)
}

// TestFromSlices_NeverNull は空の入力でもJSONの空配列になることを検証します。
func TestFromSlices_NeverNull(t *testing.T) {
	t.Parallel()

	for name, v := range map[string]any{
		"quotes":  FromQuotes(nil),
		"movers":  FromMovers(nil),
		"indices": FromIndices(nil),
		"news":    FromNews(nil),
		"funds":   FromFunds(nil),
	} {
		b, err := json.Marshal(v)
		require.NoError(t, err, name)
		assert.Equal(t, "[]", string(b), name)
	}
}
