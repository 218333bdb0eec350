// Package mfapi はmfapi.inからインドの投資信託の基準価額履歴を取得します。
package mfapi

import "os"

const defaultBaseURL = "https://api.mfapi.in/mf"

// Config はmfapiクライアントの設定です。
type Config struct {
	BaseURL string
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{BaseURL: os.Getenv("MFAPI_BASE_URL")}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg
}
