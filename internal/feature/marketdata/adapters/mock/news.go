package mock

import (
	"strings"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

// MarketNews は固定のマーケットヘッドライン6件を返します。
func (g *Generator) MarketNews() []entity.NewsItem {
	return numbered([]entity.NewsItem{
		{Title: "Tech Giants Lead Market Rally as AI Optimism Grows", Category: "Technology", RelativeTime: "2 hours ago", Source: "NASDAQ"},
		{Title: "Federal Reserve Signals Potential Rate Adjustments", Category: "Banking", RelativeTime: "3 hours ago", Source: "Reuters"},
		{Title: "Apple Reports Strong iPhone Sales in Asian Markets", Category: "Earnings", RelativeTime: "4 hours ago", Source: "Bloomberg", Ticker: "AAPL"},
		{Title: "Microsoft Azure Revenue Surges 29% Year-over-Year", Category: "Earnings", RelativeTime: "5 hours ago", Source: "CNBC", Ticker: "MSFT"},
		{Title: "Tesla Announces New Gigafactory Expansion Plans", Category: "Expansion", RelativeTime: "6 hours ago", Source: "Reuters", Ticker: "TSLA"},
		{Title: "Amazon Partners with Major Retailers for Same-Day Delivery", Category: "Partnership", RelativeTime: "7 hours ago", Source: "WSJ", Ticker: "AMZN"},
	})
}

// StockNews は銘柄名を差し込んだ定型ヘッドライン5件を返します。
func (g *Generator) StockNews(ticker string) []entity.NewsItem {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	company, ok := shortNames[ticker]
	if !ok {
		company = ticker
	}
	return numbered([]entity.NewsItem{
		{Title: company + " Reports Strong Quarterly Results", Category: "Earnings", RelativeTime: "2 hours ago", Source: "Reuters", Ticker: ticker},
		{Title: company + " Announces New Product Line Expansion", Category: "Business", RelativeTime: "4 hours ago", Source: "Bloomberg", Ticker: ticker},
		{Title: "Analysts Upgrade " + ticker + " Stock Rating to Buy", Category: "Analysis", RelativeTime: "5 hours ago", Source: "CNBC", Ticker: ticker},
		{Title: company + " CEO Discusses Future Growth Strategy", Category: "Interview", RelativeTime: "8 hours ago", Source: "WSJ", Ticker: ticker},
		{Title: ticker + " Stock Sees Increased Trading Volume", Category: "Market", RelativeTime: "12 hours ago", Source: "MarketWatch", Ticker: ticker},
	})
}

func numbered(items []entity.NewsItem) []entity.NewsItem {
	for i := range items {
		items[i].ID = i + 1
		items[i].Origin = usecase.SourceMock
	}
	return items
}
