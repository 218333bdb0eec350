package usecase

import (
	"context"
	"fmt"
	"strings"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// Sources はResolverが利用するデータソースの集合です。
// Mock以外はnilを許容し、nilのソースはチェーンから除外されます。
type Sources struct {
	Primary     QuoteSource
	Secondary   QuoteSource
	History     HistorySource
	Indices     QuoteSource
	News        NewsFeed
	CompanyNews CompanyNewsSource
	Funds       FundSource
	Mock        MockSource
}

type historyKey struct {
	Ticker string
	Span   entity.Span
}

type indexKey struct {
	Symbol string
	Name   string
}

type fundKey struct {
	Code string
	Name string
}

// Resolver はデータ種別ごとのフォールバックチェーンを保持します。
type Resolver struct {
	quotes     *Chain[string, entity.Quote]
	history    *Chain[historyKey, entity.StockHistory]
	indices    *Chain[indexKey, entity.MarketIndex]
	marketNews *Chain[struct{}, []entity.NewsItem]
	stockNews  *Chain[string, []entity.NewsItem]
	funds      *Chain[fundKey, entity.FundRecord]
}

// NewResolver は各データ種別のチェーンを組み立てます。
func NewResolver(src Sources) *Resolver {
	mock := src.Mock
	r := &Resolver{}

	r.quotes = NewChain("quote", entity.Quote.HasPrice,
		Fallback[string, entity.Quote]{Name: SourceMock, Produce: func(_ context.Context, t string) entity.Quote {
			return mock.Quote(t)
		}},
		quoteStrategy(SourceYahoo, src.Primary),
		quoteStrategy(SourceFinnhub, src.Secondary),
	)

	var historyFetch func(context.Context, historyKey) (entity.StockHistory, error)
	if src.History != nil {
		historyFetch = func(ctx context.Context, k historyKey) (entity.StockHistory, error) {
			return src.History.GetHistory(ctx, k.Ticker, k.Span)
		}
	}
	r.history = NewChain("history", validHistory,
		Fallback[historyKey, entity.StockHistory]{Name: SourceMock, Produce: func(_ context.Context, k historyKey) entity.StockHistory {
			return mock.History(k.Ticker, k.Span)
		}},
		Strategy[historyKey, entity.StockHistory]{Name: SourceYahoo, Fetch: historyFetch},
	)

	var indexFetch func(context.Context, indexKey) (entity.MarketIndex, error)
	if src.Indices != nil {
		indexFetch = func(ctx context.Context, k indexKey) (entity.MarketIndex, error) {
			q, err := src.Indices.GetQuote(ctx, k.Symbol)
			if err != nil {
				return entity.MarketIndex{}, err
			}
			return entity.MarketIndex{
				Symbol:        k.Symbol,
				Name:          k.Name,
				Value:         q.Price,
				Change:        q.Change,
				ChangePercent: q.ChangePercent,
				AsOf:          q.AsOf,
			}, nil
		}
	}
	r.indices = NewChain("index", func(i entity.MarketIndex) bool { return i.Value.IsPositive() },
		Fallback[indexKey, entity.MarketIndex]{Name: SourceMock, Produce: func(_ context.Context, k indexKey) entity.MarketIndex {
			return mock.Index(k.Symbol, k.Name)
		}},
		Strategy[indexKey, entity.MarketIndex]{Name: SourceYahoo, Fetch: indexFetch},
	)

	var marketNewsFetch func(context.Context, struct{}) ([]entity.NewsItem, error)
	var rssStockNews func(context.Context, string) ([]entity.NewsItem, error)
	if src.News != nil {
		marketNewsFetch = func(ctx context.Context, _ struct{}) ([]entity.NewsItem, error) {
			return src.News.GetMarketNews(ctx)
		}
		rssStockNews = src.News.GetStockNews
	}
	var companyNews func(context.Context, string) ([]entity.NewsItem, error)
	if src.CompanyNews != nil {
		companyNews = src.CompanyNews.GetCompanyNews
	}
	r.marketNews = NewChain("market_news", nonEmptyNews,
		Fallback[struct{}, []entity.NewsItem]{Name: SourceMock, Produce: func(context.Context, struct{}) []entity.NewsItem {
			return mock.MarketNews()
		}},
		Strategy[struct{}, []entity.NewsItem]{Name: SourceRSS, Fetch: marketNewsFetch},
	)
	r.stockNews = NewChain("stock_news", nonEmptyNews,
		Fallback[string, []entity.NewsItem]{Name: SourceMock, Produce: func(_ context.Context, t string) []entity.NewsItem {
			return mock.StockNews(t)
		}},
		Strategy[string, []entity.NewsItem]{Name: SourceRSS, Fetch: rssStockNews},
		Strategy[string, []entity.NewsItem]{Name: SourceFinnhub, Fetch: companyNews},
	)

	var fundFetch func(context.Context, fundKey) (entity.FundRecord, error)
	if src.Funds != nil {
		fundFetch = func(ctx context.Context, k fundKey) (entity.FundRecord, error) {
			return src.Funds.GetFund(ctx, k.Code)
		}
	}
	r.funds = NewChain("fund", validFund,
		Fallback[fundKey, entity.FundRecord]{Name: SourceMock, Produce: func(_ context.Context, k fundKey) entity.FundRecord {
			return mock.Fund(k.Code, k.Name)
		}},
		Strategy[fundKey, entity.FundRecord]{Name: SourceMFAPI, Fetch: fundFetch},
	)

	return r
}

func quoteStrategy(name string, s QuoteSource) Strategy[string, entity.Quote] {
	if s == nil {
		return Strategy[string, entity.Quote]{Name: name}
	}
	return Strategy[string, entity.Quote]{Name: name, Fetch: s.GetQuote}
}

func validHistory(h entity.StockHistory) bool {
	return h.Quote.HasPrice() && len(h.Series) > 0
}

func validFund(f entity.FundRecord) bool {
	return f.SchemeName != "" && f.NAV.IsPositive()
}

func nonEmptyNews(items []entity.NewsItem) bool {
	return len(items) > 0
}

// NormalizeTicker は銘柄コードを前後空白除去・大文字化します。
func NormalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// detach はクライアント切断でチェーンが中断されないよう、キャンセルを切り離したコンテキストを返します。
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// Resolve はyahoo → finnhub → mockの順でクォートを解決します。必ず正の価格を返します。
func (r *Resolver) Resolve(ctx context.Context, ticker string) entity.Quote {
	ticker = NormalizeTicker(ticker)
	out := r.quotes.Resolve(detach(ctx), ticker)
	q := out.Value
	q.Ticker = ticker
	q.Source = out.Source
	return q
}

// ResolveLive はライブのソースのみでクォートを解決します。
// すべて失敗した場合はErrPriceUnavailableを返します。
func (r *Resolver) ResolveLive(ctx context.Context, ticker string) (entity.Quote, error) {
	ticker = NormalizeTicker(ticker)
	out, err := r.quotes.ResolveLive(detach(ctx), ticker)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("%s: %w", ticker, ErrPriceUnavailable)
	}
	q := out.Value
	q.Ticker = ticker
	q.Source = out.Source
	return q, nil
}

// ResolveHistory は指定期間の日足系列を解決します。
func (r *Resolver) ResolveHistory(ctx context.Context, ticker string, span entity.Span) entity.StockHistory {
	ticker = NormalizeTicker(ticker)
	if span == "" {
		span = entity.DefaultSpan
	}
	out := r.history.Resolve(detach(ctx), historyKey{Ticker: ticker, Span: span})
	h := out.Value
	h.Quote.Ticker = ticker
	h.Quote.Source = out.Source
	return h
}

// ResolveIndex は指数の現在値を解決します。
func (r *Resolver) ResolveIndex(ctx context.Context, symbol, name string) entity.MarketIndex {
	out := r.indices.Resolve(detach(ctx), indexKey{Symbol: symbol, Name: name})
	idx := out.Value
	idx.Symbol = symbol
	idx.Name = name
	idx.Source = out.Source
	return idx
}

// ResolveMarketNews はマーケット全体のヘッドラインを解決します。
func (r *Resolver) ResolveMarketNews(ctx context.Context) []entity.NewsItem {
	out := r.marketNews.Resolve(detach(ctx), struct{}{})
	return stampNews(out.Value, out.Source)
}

// ResolveStockNews は銘柄別のヘッドラインを解決します。
func (r *Resolver) ResolveStockNews(ctx context.Context, ticker string) []entity.NewsItem {
	out := r.stockNews.Resolve(detach(ctx), NormalizeTicker(ticker))
	return stampNews(out.Value, out.Source)
}

// ResolveFund はスキームコードから投資信託情報を解決します。
// nameはモック生成時の表示名として使われます。
func (r *Resolver) ResolveFund(ctx context.Context, schemeCode, name string) entity.FundRecord {
	schemeCode = strings.TrimSpace(schemeCode)
	out := r.funds.Resolve(detach(ctx), fundKey{Code: schemeCode, Name: name})
	f := out.Value
	f.SchemeCode = schemeCode
	f.Source = out.Source
	return f
}

func stampNews(items []entity.NewsItem, origin string) []entity.NewsItem {
	stamped := make([]entity.NewsItem, len(items))
	for i, it := range items {
		it.ID = i + 1
		it.Origin = origin
		stamped[i] = it
	}
	return stamped
}
