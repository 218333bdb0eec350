// Package rss はYahoo FinanceのRSSヘッドラインフィードからニュースを取得します。
package rss

import "os"

const (
	defaultBaseURL       = "https://feeds.finance.yahoo.com/rss/2.0/headline"
	defaultMarketSymbols = "^GSPC,AAPL,MSFT,GOOGL,AMZN"
)

// Config はRSSクライアントの設定です。
type Config struct {
	BaseURL       string
	MarketSymbols string // マーケット全体のフィードに使うシンボル（カンマ区切り）
	UserAgent     string
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:       os.Getenv("NEWS_RSS_BASE_URL"),
		MarketSymbols: defaultMarketSymbols,
		UserAgent:     "Mozilla/5.0",
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg
}
