package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/marketdata/domain/entity"
)

var fixedNow = time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC) // Wednesday

func newTestGenerator() *Generator {
	return NewGenerator(DefaultSeed, WithClock(func() time.Time { return fixedNow }))
}

// TestGenerator_QuoteKnownTicker は既知銘柄のクォートがプロファイルに沿うことを検証します。
func TestGenerator_QuoteKnownTicker(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	q := g.Quote("aapl")

	assert.Equal(t, "AAPL", q.Ticker)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "NASDAQ", q.Exchange)
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, "mock", q.Source)
	assert.True(t, q.HasPrice())

	price := q.Price.InexactFloat64()
	assert.InDelta(t, 182.50, price, 182.50*0.011, "price jitter stays within ±1%")
	assert.Equal(t, "2.85", q.ChangePercent.String())
	assert.True(t, q.MarketCap.Valid)
	assert.Equal(t, "Technology", q.Sector)
}

// TestGenerator_QuoteDeterministic は同じシード・銘柄・基準日で同じ結果になることを検証します。
func TestGenerator_QuoteDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestGenerator().Quote("MSFT")
	b := newTestGenerator().Quote("MSFT")
	assert.True(t, a.Price.Equal(b.Price))
	assert.Equal(t, a.Volume, b.Volume)

	other := NewGenerator(7, WithClock(func() time.Time { return fixedNow })).Quote("MSFT")
	assert.False(t, a.Price.Equal(other.Price) && a.Volume == other.Volume, "different seeds should diverge")
}

// TestGenerator_UnknownTicker は未知の銘柄でも正の価格を持つ決定的なプロファイルが使われることを検証します。
func TestGenerator_UnknownTicker(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	p1 := g.Profile("ZZZZ")
	p2 := g.Profile("ZZZZ")
	assert.Equal(t, p1, p2)
	assert.Equal(t, "ZZZZ", p1.Name)
	assert.GreaterOrEqual(t, p1.Price, 100.0)
	assert.Less(t, p1.Price, 300.0)
	assert.GreaterOrEqual(t, p1.ChangePercent, -3.0)
	assert.Less(t, p1.ChangePercent, 3.0)

	q := g.Quote("ZZZZ")
	assert.True(t, q.HasPrice())
	assert.Equal(t, "Software", q.Industry)
}

// TestGenerator_Series は生成系列が平日のみ・日付の昇順かつ一意・終値が下限以上であることを検証します。
func TestGenerator_Series(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	const current = 182.50
	series := g.Series("AAPL", current, entity.Span5Y.Days())
	require.NotEmpty(t, series)

	today := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	for i, p := range series {
		wd := p.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
		assert.True(t, p.Date.Before(today))
		if i > 0 {
			assert.True(t, p.Date.After(series[i-1].Date), "dates must be strictly increasing")
		}
		assert.GreaterOrEqual(t, p.Close.InexactFloat64(), current*0.5-0.01)
		assert.True(t, p.High.GreaterThanOrEqual(p.Low))
		assert.GreaterOrEqual(t, p.Volume, int64(5e6))
	}
	assert.InDelta(t, 1825*5/7, len(series), 2)

	again := g.Series("AAPL", current, entity.Span5Y.Days())
	require.Len(t, again, len(series))
	for i := range series {
		assert.True(t, series[i].Close.Equal(again[i].Close))
		assert.Equal(t, series[i].Date, again[i].Date)
	}
}

// TestGenerator_History は履歴のクォートがプロファイルの基準価格そのものであることを検証します。
func TestGenerator_History(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	h := g.History("NVDA", entity.Span1M)

	assert.Equal(t, "682.35", h.Quote.Price.String())
	assert.Equal(t, "NVIDIA Corp.", h.Quote.Name)
	assert.NotEmpty(t, h.Series)
	assert.LessOrEqual(t, len(h.Series), 30)
}

func TestGenerator_SeriesDegenerate(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	assert.Empty(t, g.Series("AAPL", 100, 0))
	assert.Empty(t, g.Series("AAPL", 0, 30))
}

// TestGenerator_Index は既知の指数が固定の基準値を使うことを検証します。
func TestGenerator_Index(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	idx := g.Index("^GSPC", "S&P 500")
	assert.Equal(t, "5021.84", idx.Value.String())
	assert.Equal(t, "S&P 500", idx.Name)
	pct := idx.ChangePercent.InexactFloat64()
	assert.GreaterOrEqual(t, pct, -0.5)
	assert.LessOrEqual(t, pct, 1.5)

	unknown := g.Index("^XYZ", "XYZ")
	assert.True(t, unknown.Value.IsPositive())
}

// TestGenerator_News はモックニュースの件数・連番・銘柄名の差し込みを検証します。
func TestGenerator_News(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	market := g.MarketNews()
	require.Len(t, market, 6)
	for i, n := range market {
		assert.Equal(t, i+1, n.ID)
	}
	assert.Equal(t, "Federal Reserve Signals Potential Rate Adjustments", market[1].Title)
	assert.Equal(t, "AMZN", market[5].Ticker)

	stock := g.StockNews("aapl")
	require.Len(t, stock, 5)
	assert.Equal(t, "Apple Reports Strong Quarterly Results", stock[0].Title)
	assert.Equal(t, "Analysts Upgrade AAPL Stock Rating to Buy", stock[2].Title)
	assert.Equal(t, "AAPL", stock[4].Ticker)

	unknown := g.StockNews("ZZZZ")
	assert.Equal(t, "ZZZZ Reports Strong Quarterly Results", unknown[0].Title)
}

// TestGenerator_Fund はモックファンドの値域と運用会社名の組み立てを検証します。
func TestGenerator_Fund(t *testing.T) {
	t.Parallel()
	g := newTestGenerator()

	f := g.Fund("119551", "Axis Bluechip Fund")
	assert.Equal(t, "Axis Mutual Fund", f.FundHouse)
	assert.Equal(t, "Open Ended", f.SchemeType)
	assert.Equal(t, "11-06-2025", f.NAVDate)
	nav := f.NAV.InexactFloat64()
	assert.GreaterOrEqual(t, nav, 50.0)
	assert.LessOrEqual(t, nav, 200.0)
	require.True(t, f.OneYearReturn.Valid)
	assert.GreaterOrEqual(t, f.OneYearReturn.Decimal.InexactFloat64(), 5.0)

	assert.Equal(t, f, g.Fund("119551", "Axis Bluechip Fund"))
}
