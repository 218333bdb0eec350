// Package finnhub はFinnhub APIからクォート・企業プロファイル・企業ニュースを取得します。
package finnhub

import (
	"os"
	"strconv"
)

const (
	defaultBaseURL       = "https://finnhub.io/api/v1"
	defaultRatePerMinute = 60 // 無料プランの上限
)

// Config はFinnhubクライアントの設定です。
type Config struct {
	APIKey        string // トークン（未設定ならクライアントは生成しない）
	BaseURL       string
	RatePerMinute int // 1分あたりの呼び出し上限。0以下は無制限
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		APIKey:        os.Getenv("FINNHUB_API_KEY"),
		BaseURL:       os.Getenv("FINNHUB_BASE_URL"),
		RatePerMinute: defaultRatePerMinute,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v, err := strconv.Atoi(os.Getenv("FINNHUB_RATE_PER_MIN")); err == nil {
		cfg.RatePerMinute = v
	}
	return cfg
}

// Enabled はAPIキーが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
