// Package yahoo はYahoo Financeのチャート API から株価とヒストリカルデータを取得します。
package yahoo

import "os"

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Config はYahoo Financeクライアントの設定です。
type Config struct {
	BaseURL   string // 例: "https://query1.finance.yahoo.com"
	UserAgent string // ブラウザ以外のUser-Agentは拒否されることがある
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("YAHOO_BASE_URL"),
		UserAgent: "Mozilla/5.0",
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg
}
