// Package usecase はマーケットデータ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// 永続キャッシュのキー
const (
	CacheKeyGainers  = "top_gainers"
	CacheKeyLosers   = "top_losers"
	CacheKeyIndices  = "market_indices"
	CacheKeyTrending = "trending_stocks"

	historyKeyPrefix = "stock_history_"
)

const (
	moverBasketSize   = 10 // 値上がり・値下がりの計算対象（バスケット先頭から）
	moversLimit       = 5
	trendingSize      = 8
	searchLimit       = 10
	maxDirectQueryLen = 6 // これより長い検索語は銘柄コードとして直接解決しない
)

// BasketStock はバスケットの銘柄コードと検索用の会社名です。
type BasketStock struct {
	Ticker string
	Name   string
}

// DefaultBasket は集計対象となる米国株の固定リストです。順序に意味があります。
var DefaultBasket = []BasketStock{
	{Ticker: "AAPL", Name: "Apple Inc."},
	{Ticker: "MSFT", Name: "Microsoft Corp."},
	{Ticker: "GOOGL", Name: "Alphabet Inc."},
	{Ticker: "AMZN", Name: "Amazon.com Inc."},
	{Ticker: "TSLA", Name: "Tesla Inc."},
	{Ticker: "META", Name: "Meta Platforms"},
	{Ticker: "NVDA", Name: "NVIDIA Corp."},
	{Ticker: "JPM", Name: "JPMorgan Chase"},
	{Ticker: "V", Name: "Visa Inc."},
	{Ticker: "WMT", Name: "Walmart Inc."},
	{Ticker: "NFLX", Name: "Netflix Inc."},
	{Ticker: "DIS", Name: "Walt Disney Co."},
	{Ticker: "PYPL", Name: "PayPal Holdings"},
	{Ticker: "INTC", Name: "Intel Corp."},
	{Ticker: "AMD", Name: "AMD Inc."},
	{Ticker: "CRM", Name: "Salesforce Inc."},
	{Ticker: "UBER", Name: "Uber Technologies"},
	{Ticker: "SHOP", Name: "Shopify Inc."},
	{Ticker: "SQ", Name: "Block Inc."},
	{Ticker: "COIN", Name: "Coinbase Global"},
}

// matches は検索語（大文字化済み）が銘柄コードまたは会社名に含まれるかを返します。
func (s BasketStock) matches(q string) bool {
	return strings.Contains(s.Ticker, q) || strings.Contains(strings.ToUpper(s.Name), q)
}

// IndexSymbol は主要指数のシンボルと表示名の組です。
type IndexSymbol struct {
	Symbol string
	Name   string
}

// DefaultIndices は表示対象の主要指数です。
var DefaultIndices = []IndexSymbol{
	{Symbol: "^GSPC", Name: "S&P 500"},
	{Symbol: "^IXIC", Name: "NASDAQ"},
	{Symbol: "^DJI", Name: "DOW"},
	{Symbol: "^FTSE", Name: "FTSE 100"},
	{Symbol: "^GDAXI", Name: "DAX"},
	{Symbol: "^N225", Name: "NIKKEI"},
}

// MarketResolver はMarketUsecaseが必要とする解決処理です。
type MarketResolver interface {
	Resolve(ctx context.Context, ticker string) entity.Quote
	ResolveHistory(ctx context.Context, ticker string, span entity.Span) entity.StockHistory
	ResolveIndex(ctx context.Context, symbol, name string) entity.MarketIndex
}

// MarketOptions はMarketUsecaseの調整項目です。ゼロ値の項目は既定値になります。
type MarketOptions struct {
	Basket  []BasketStock
	Indices []IndexSymbol
	TTL     time.Duration
	Now     func() time.Time
}

// MarketUsecase は銘柄詳細・ランキング・指数・検索を提供します。
type MarketUsecase struct {
	resolver MarketResolver
	cache    ttlCache
	ttl      time.Duration
	basket   []BasketStock
	tickers  []string
	indices  []IndexSymbol
}

// NewMarketUsecase は新しいMarketUsecaseを生成します。
func NewMarketUsecase(resolver MarketResolver, store CacheStore, opts MarketOptions) *MarketUsecase {
	if len(opts.Basket) == 0 {
		opts.Basket = DefaultBasket
	}
	if len(opts.Indices) == 0 {
		opts.Indices = DefaultIndices
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	tickers := make([]string, 0, len(opts.Basket))
	for _, s := range opts.Basket {
		tickers = append(tickers, s.Ticker)
	}
	return &MarketUsecase{
		resolver: resolver,
		cache:    newTTLCache(store, "durable", opts.Now),
		ttl:      opts.TTL,
		basket:   opts.Basket,
		tickers:  tickers,
		indices:  opts.Indices,
	}
}

// GetStockDetail は銘柄の詳細クォートを返します。キャッシュは使いません。
func (u *MarketUsecase) GetStockDetail(ctx context.Context, ticker string) entity.Quote {
	return u.resolver.Resolve(detach(ctx), ticker)
}

// GetStockHistory は銘柄の日足系列を返します。バスケット内の銘柄のみキャッシュします。
// 期間が空の場合は既定の期間です。
func (u *MarketUsecase) GetStockHistory(ctx context.Context, ticker string, span entity.Span) entity.StockHistory {
	ctx = detach(ctx)
	ticker = NormalizeTicker(ticker)
	if span == "" {
		span = entity.DefaultSpan
	}
	fetch := func(ctx context.Context) entity.StockHistory {
		return u.resolver.ResolveHistory(ctx, ticker, span)
	}
	if !slices.Contains(u.tickers, ticker) {
		return fetch(ctx)
	}
	return cachedOrFetch(ctx, u.cache, HistoryCacheKey(ticker, span), u.ttl, fetch)
}

// HistoryCacheKey は日足系列のキャッシュキーを返します。既定の期間はサフィックスを付けません。
func HistoryCacheKey(ticker string, span entity.Span) string {
	if span == "" || span == entity.DefaultSpan {
		return historyKeyPrefix + ticker
	}
	return historyKeyPrefix + ticker + "_" + string(span)
}

// GetTopGainers は値上がり率上位の銘柄を返します。
func (u *MarketUsecase) GetTopGainers(ctx context.Context) []entity.MarketMover {
	return cachedOrFetch(detach(ctx), u.cache, CacheKeyGainers, u.ttl, u.computeGainers)
}

// GetTopLosers は値下がり率上位の銘柄を返します。
func (u *MarketUsecase) GetTopLosers(ctx context.Context) []entity.MarketMover {
	return cachedOrFetch(detach(ctx), u.cache, CacheKeyLosers, u.ttl, u.computeLosers)
}

// GetTrending はバスケット先頭の銘柄をバスケット順で返します。
func (u *MarketUsecase) GetTrending(ctx context.Context) []entity.MarketMover {
	return cachedOrFetch(detach(ctx), u.cache, CacheKeyTrending, u.ttl, u.computeTrending)
}

// GetMarketIndices は主要指数の現在値を返します。
func (u *MarketUsecase) GetMarketIndices(ctx context.Context) []entity.MarketIndex {
	return cachedOrFetch(detach(ctx), u.cache, CacheKeyIndices, u.ttl, u.computeIndices)
}

// SearchStocks は検索語に一致する銘柄のクォートを最大10件返します。
// 6文字以下の検索語はまず銘柄コードとして直接解決し、続いてバスケット内で銘柄コードまたは
// 会社名に部分一致する銘柄を加えます。
func (u *MarketUsecase) SearchStocks(ctx context.Context, query string) []entity.Quote {
	ctx = detach(ctx)
	q := NormalizeTicker(query)
	results := make([]entity.Quote, 0, searchLimit)
	if q == "" {
		return results
	}

	seen := make(map[string]bool)
	if utf8.RuneCountInString(q) <= maxDirectQueryLen {
		results = append(results, u.resolver.Resolve(ctx, q))
		seen[q] = true
	}
	for _, s := range u.basket {
		if len(results) >= searchLimit {
			break
		}
		if seen[s.Ticker] || !s.matches(q) {
			continue
		}
		results = append(results, u.resolver.Resolve(ctx, s.Ticker))
		seen[s.Ticker] = true
	}
	return results
}

// RefreshJobs は定期更新で強制的に書き込むキーと計算処理の組を返します。
func (u *MarketUsecase) RefreshJobs() []RefreshJob {
	return []RefreshJob{
		{Key: CacheKeyGainers, Run: refreshInto(u.cache, CacheKeyGainers, u.computeGainers)},
		{Key: CacheKeyLosers, Run: refreshInto(u.cache, CacheKeyLosers, u.computeLosers)},
		{Key: CacheKeyIndices, Run: refreshInto(u.cache, CacheKeyIndices, u.computeIndices)},
		{Key: CacheKeyTrending, Run: refreshInto(u.cache, CacheKeyTrending, u.computeTrending)},
	}
}

func refreshInto[T any](c ttlCache, key string, compute func(context.Context) T) func(context.Context) error {
	return func(ctx context.Context) error {
		return writeCached(ctx, c, key, compute(ctx))
	}
}

func (u *MarketUsecase) computeGainers(ctx context.Context) []entity.MarketMover {
	return rankMovers(u.moverQuotes(ctx), true)
}

func (u *MarketUsecase) computeLosers(ctx context.Context) []entity.MarketMover {
	return rankMovers(u.moverQuotes(ctx), false)
}

func (u *MarketUsecase) moverQuotes(ctx context.Context) []entity.Quote {
	tickers := u.tickers[:min(moverBasketSize, len(u.tickers))]
	quotes := make([]entity.Quote, 0, len(tickers))
	for _, t := range tickers {
		quotes = append(quotes, u.resolver.Resolve(ctx, t))
	}
	return quotes
}

// rankMovers は騰落率の符号で絞り込み、安定ソートして上位を返します。騰落率0の銘柄はどちらにも含めません。
func rankMovers(quotes []entity.Quote, gainers bool) []entity.MarketMover {
	picked := make([]entity.Quote, 0, len(quotes))
	for _, q := range quotes {
		sign := q.ChangePercent.Sign()
		if (gainers && sign > 0) || (!gainers && sign < 0) {
			picked = append(picked, q)
		}
	}
	slices.SortStableFunc(picked, func(a, b entity.Quote) int {
		if gainers {
			return b.ChangePercent.Cmp(a.ChangePercent)
		}
		return a.ChangePercent.Cmp(b.ChangePercent)
	})

	movers := make([]entity.MarketMover, 0, moversLimit)
	for _, q := range picked[:min(moversLimit, len(picked))] {
		movers = append(movers, entity.MoverOf(q))
	}
	return movers
}

func (u *MarketUsecase) computeTrending(ctx context.Context) []entity.MarketMover {
	tickers := u.tickers[:min(trendingSize, len(u.tickers))]
	movers := make([]entity.MarketMover, 0, len(tickers))
	for _, t := range tickers {
		movers = append(movers, entity.MoverOf(u.resolver.Resolve(ctx, t)))
	}
	return movers
}

func (u *MarketUsecase) computeIndices(ctx context.Context) []entity.MarketIndex {
	indices := make([]entity.MarketIndex, 0, len(u.indices))
	for _, idx := range u.indices {
		indices = append(indices, u.resolver.ResolveIndex(ctx, idx.Symbol, idx.Name))
	}
	return indices
}
