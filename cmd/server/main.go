package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"market_backend/internal/app/config"
	"market_backend/internal/app/di"
	"market_backend/internal/app/router"
	"market_backend/internal/feature/marketdata/adapters"
	"market_backend/internal/feature/marketdata/transport/handler"
	infradb "market_backend/internal/platform/db"
	"market_backend/internal/platform/logger"
	infraredis "market_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
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

	if err := run(cfg, lg); err != nil {
		slog.Error("server stopped with error", "error", err)
		_ = sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, lg *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &adapters.MarketCacheModel{})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis（任意）
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable. Running without read-through cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	md := di.NewMarketData(cfg, di.NewSources(cfg), di.NewDurableStore(db, rdb))

	// JWT_SECRETチェック（未設定なら管理ルートは500を返す）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; admin routes are disabled")
	}

	r := router.NewRouter(router.Handlers{
		Price:  handler.NewPriceHandler(md.Price),
		Market: handler.NewMarketHandler(md.Market),
		News:   handler.NewNewsHandler(md.News),
		Funds:  handler.NewFundHandler(md.Funds),
		Admin:  handler.NewAdminHandler(md.Refresher),
		DB:     sqlDB,
	}, router.Options{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      lg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go md.Refresher.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
