package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// fakeClock はテストで時刻を進めるための時計です。
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// memStore はテスト用のCacheStore実装です。書き込み時刻は注入した時計から取ります。
type memStore struct {
	mu      sync.Mutex
	entries map[string]entity.CacheEntry
	now     func() time.Time
	getErr  error
	putErr  error
	puts    int
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{entries: make(map[string]entity.CacheEntry), now: now}
}

func (s *memStore) Get(_ context.Context, key string) (entity.CacheEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return entity.CacheEntry{}, false, s.getErr
	}
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *memStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.entries[key] = entity.CacheEntry{Key: key, Value: append([]byte(nil), value...), UpdatedAt: s.now()}
	return nil
}

func (s *memStore) entry(key string) (entity.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// fakeMock は固定値を返すMockSourceです。
type fakeMock struct{}

func (fakeMock) Quote(ticker string) entity.Quote {
	return entity.Quote{Ticker: ticker, Name: ticker + " (mock)", Price: entity.Money(100), ChangePercent: entity.Money(1)}
}

func (fakeMock) History(ticker string, span entity.Span) entity.StockHistory {
	return entity.StockHistory{
		Quote:  entity.Quote{Ticker: ticker, Price: entity.Money(100)},
		Series: []entity.HistoricalPoint{{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Close: entity.Money(99)}},
	}
}

func (fakeMock) MarketNews() []entity.NewsItem {
	return []entity.NewsItem{{ID: 9, Title: "mock market"}}
}

func (fakeMock) StockNews(ticker string) []entity.NewsItem {
	return []entity.NewsItem{{ID: 9, Title: "mock " + ticker, Ticker: ticker}}
}

func (fakeMock) Fund(code, name string) entity.FundRecord {
	return entity.FundRecord{SchemeCode: code, SchemeName: name, NAV: entity.Money(10)}
}

func (fakeMock) Index(symbol, name string) entity.MarketIndex {
	return entity.MarketIndex{Symbol: symbol, Name: name, Value: entity.Money(1000)}
}

// quoteFunc は関数をQuoteSourceとして使うためのアダプタです。
type quoteFunc func(ctx context.Context, ticker string) (entity.Quote, error)

func (f quoteFunc) GetQuote(ctx context.Context, ticker string) (entity.Quote, error) {
	return f(ctx, ticker)
}

func priced(ticker string, price float64) entity.Quote {
	return entity.Quote{Ticker: ticker, Price: entity.Money(price)}
}

// stubResolver はテスト用のMarketResolver/QuoteResolver/NewsResolver/FundResolverです。
// changes に登録された銘柄はその騰落率のクォートを返し、それ以外は価格100・騰落率0を返します。
type stubResolver struct {
	mu       sync.Mutex
	changes  map[string]float64
	price    float64
	liveErr  error
	calls    map[string]int
	total    int
	newsSeq  int
	fundSeen []string
}

func newStubResolver(changes map[string]float64) *stubResolver {
	return &stubResolver{changes: changes, price: 100, calls: make(map[string]int)}
}

func (r *stubResolver) record(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[key]++
	r.total++
}

func (r *stubResolver) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[key]
}

func (r *stubResolver) totalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *stubResolver) Resolve(_ context.Context, ticker string) entity.Quote {
	r.record("quote:" + ticker)
	q := entity.Quote{Ticker: ticker, Name: ticker, Price: decimal.NewFromFloat(r.price), Source: SourceMock}
	if c, ok := r.changes[ticker]; ok {
		q.ChangePercent = entity.Money(c)
		q.Change = entity.Money(c)
	}
	return q
}

func (r *stubResolver) ResolveLive(ctx context.Context, ticker string) (entity.Quote, error) {
	if r.liveErr != nil {
		return entity.Quote{}, r.liveErr
	}
	q := r.Resolve(ctx, ticker)
	q.Source = SourceYahoo
	return q, nil
}

func (r *stubResolver) ResolveHistory(_ context.Context, ticker string, span entity.Span) entity.StockHistory {
	r.record("history:" + ticker + ":" + string(span))
	return fakeMock{}.History(ticker, span)
}

func (r *stubResolver) ResolveIndex(_ context.Context, symbol, name string) entity.MarketIndex {
	r.record("index:" + symbol)
	return fakeMock{}.Index(symbol, name)
}

func (r *stubResolver) ResolveMarketNews(context.Context) []entity.NewsItem {
	r.record("market_news")
	r.mu.Lock()
	r.newsSeq++
	seq := r.newsSeq
	r.mu.Unlock()
	return []entity.NewsItem{{ID: 1, Title: fmt.Sprintf("headline %d", seq)}}
}

func (r *stubResolver) ResolveStockNews(_ context.Context, ticker string) []entity.NewsItem {
	r.record("stock_news:" + ticker)
	return fakeMock{}.StockNews(ticker)
}

func (r *stubResolver) ResolveFund(_ context.Context, code, name string) entity.FundRecord {
	r.record("fund:" + code)
	r.mu.Lock()
	r.fundSeen = append(r.fundSeen, name)
	r.mu.Unlock()
	return entity.FundRecord{
		SchemeCode: code,
		SchemeName: name,
		FundHouse:  "House of " + name,
		NAV:        entity.Money(10),
		Source:     SourceMock,
	}
}
