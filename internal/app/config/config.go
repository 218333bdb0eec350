// Package config はアプリケーション全体の設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config はプロセス全体の設定です。データソースやDB・Redisの接続設定は各パッケージのLoadConfigが持ちます。
type Config struct {
	Port            string
	AppEnv          string
	LogLevel        string
	UpstreamTimeout time.Duration
	CacheTTL        time.Duration
	RefreshDelay    time.Duration
	RefreshPeriod   time.Duration
	MockSeed        uint64
	JWTSecret       string
	CORSOrigins     []string
}

// IsProd は本番環境かどうかを返します。
func (c Config) IsProd() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("upstream_timeout", "5s")
	v.SetDefault("cache_ttl", "300m")
	v.SetDefault("refresh_initial_delay", "5h")
	v.SetDefault("refresh_period", "5h")
	v.SetDefault("mock_seed", 42)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("cors_allow_origins", "http://localhost:3000,http://localhost:5173")
}

// Load は環境変数（および任意の config.yaml）から設定を読み込みます。
// 環境変数名はキーを大文字にしたものです（例: CACHE_TTL）。
func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Port:            v.GetString("port"),
		AppEnv:          strings.ToLower(v.GetString("app_env")),
		LogLevel:        v.GetString("log_level"),
		UpstreamTimeout: v.GetDuration("upstream_timeout"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		RefreshDelay:    v.GetDuration("refresh_initial_delay"),
		RefreshPeriod:   v.GetDuration("refresh_period"),
		MockSeed:        v.GetUint64("mock_seed"),
		JWTSecret:       v.GetString("jwt_secret"),
		CORSOrigins:     splitList(v.GetString("cors_allow_origins")),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.UpstreamTimeout <= 0:
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	case c.CacheTTL <= 0:
		return fmt.Errorf("CACHE_TTL must be positive")
	case c.RefreshDelay <= 0 || c.RefreshPeriod <= 0:
		return fmt.Errorf("REFRESH_INITIAL_DELAY and REFRESH_PERIOD must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
