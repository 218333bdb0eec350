// Command refresh はマーケット集計キャッシュを一度だけ再構築します。
// -print-token を指定すると、管理APIを呼び出すためのadminトークンを発行して終了します。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	"market_backend/internal/feature/marketdata/adapters"
	infradb "market_backend/internal/platform/db"
	jwtmw "market_backend/internal/platform/jwt"
	"market_backend/internal/platform/logger"
	infraredis "market_backend/internal/platform/redis"
)

func main() {
	printToken := flag.Bool("print-token", false, "print an admin JWT and exit")
	subject := flag.String("subject", "ops", "subject of the issued token")
	tokenTTL := flag.Duration("token-ttl", time.Hour, "lifetime of the issued token")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall refresh timeout")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	lg, sync := logger.New(cfg.IsProd(), cfg.LogLevel)
	defer func() { _ = sync() }()
	slog.SetDefault(lg)

	if *printToken {
		token, err := jwtmw.NewGenerator(cfg.JWTSecret, *tokenTTL).GenerateToken(*subject, jwtmw.RoleAdmin)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &adapters.MarketCacheModel{})
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable. Refreshing database only.", "error", err)
		rdb = nil
	}

	md := di.NewMarketData(cfg, di.NewSources(cfg), di.NewDurableStore(db, rdb))
	res := md.Refresher.RefreshAll(ctx)

	if rdb != nil {
		_ = rdb.Close()
	}
	if len(res.Failed) > 0 {
		for key, msg := range res.Failed {
			slog.Error("refresh failed", "key", key, "error", msg)
		}
		_ = sync()
		os.Exit(1)
	}
	slog.Info("refresh ok", "keys", res.Refreshed)
}
