package usecase

import (
	"context"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// Strategy names reported in Quote.Source, NewsItem.Origin and metrics.
const (
	SourceYahoo   = "yahoo"
	SourceFinnhub = "finnhub"
	SourceRSS     = "rss"
	SourceMFAPI   = "mfapi"
	SourceMock    = "mock"
)

// 外部データソースのインターフェースは利用者（usecase）側で定義します。

// QuoteSource は銘柄コードから現在のクォートを取得します。
type QuoteSource interface {
	GetQuote(ctx context.Context, ticker string) (entity.Quote, error)
}

// HistorySource は指定期間の日足系列とクォートを取得します。
type HistorySource interface {
	GetHistory(ctx context.Context, ticker string, span entity.Span) (entity.StockHistory, error)
}

// NewsFeed はマーケット全体および銘柄別のヘッドラインを取得します。
type NewsFeed interface {
	GetMarketNews(ctx context.Context) ([]entity.NewsItem, error)
	GetStockNews(ctx context.Context, ticker string) ([]entity.NewsItem, error)
}

// CompanyNewsSource は銘柄別ニュースの二次ソースです。
type CompanyNewsSource interface {
	GetCompanyNews(ctx context.Context, ticker string) ([]entity.NewsItem, error)
}

// FundSource はスキームコードから投資信託の基準価額を取得します。
type FundSource interface {
	GetFund(ctx context.Context, schemeCode string) (entity.FundRecord, error)
}

// MockSource は常に値を返す最終フォールバックです。
type MockSource interface {
	Quote(ticker string) entity.Quote
	History(ticker string, span entity.Span) entity.StockHistory
	MarketNews() []entity.NewsItem
	StockNews(ticker string) []entity.NewsItem
	Fund(schemeCode, name string) entity.FundRecord
	Index(symbol, name string) entity.MarketIndex
}
