// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"market_backend/internal/app/config"
	"market_backend/internal/feature/marketdata/adapters"
	"market_backend/internal/feature/marketdata/adapters/finnhub"
	"market_backend/internal/feature/marketdata/adapters/mfapi"
	"market_backend/internal/feature/marketdata/adapters/mock"
	"market_backend/internal/feature/marketdata/adapters/rss"
	"market_backend/internal/feature/marketdata/adapters/yahoo"
	"market_backend/internal/feature/marketdata/usecase"
	"market_backend/internal/platform/cache"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/ratelimiter"
)

// MarketData bundles the wired market data usecases.
type MarketData struct {
	Resolver  *usecase.Resolver
	Market    *usecase.MarketUsecase
	Price     *usecase.PriceUsecase
	News      *usecase.NewsUsecase
	Funds     *usecase.FundUsecase
	Refresher *usecase.Refresher
}

// NewSources creates the upstream adapters behind a shared HTTP client.
// Finnhub is only wired when FINNHUB_API_KEY is set.
func NewSources(cfg config.Config) usecase.Sources {
	httpClient := infrahttp.NewHTTPClient(cfg.UpstreamTimeout)

	yh := yahoo.NewClient(yahoo.LoadConfig(), httpClient)
	src := usecase.Sources{
		Primary: yh,
		History: yh,
		Indices: yh,
		News:    rss.NewClient(rss.LoadConfig(), httpClient),
		Funds:   mfapi.NewClient(mfapi.LoadConfig(), httpClient),
		Mock:    mock.NewGenerator(cfg.MockSeed),
	}

	if fcfg := finnhub.LoadConfig(); fcfg.Enabled() {
		limiter := ratelimiter.NewRateLimiter(fcfg.RatePerMinute, time.Minute)
		fh := finnhub.NewClient(fcfg, httpClient, limiter)
		src.Secondary = fh
		src.CompanyNews = fh
	} else {
		slog.Info("FINNHUB_API_KEY not set, secondary source disabled")
	}
	return src
}

// NewDurableStore creates the SQL-backed cache store, fronted by Redis when rdb is non-nil.
func NewDurableStore(db *gorm.DB, rdb *redis.Client) usecase.CacheStore {
	var store usecase.CacheStore = adapters.NewCacheRepository(db, nil)
	if rdb != nil {
		store = cache.NewCachingStore(rdb, 0, store, "market_cache")
	}
	return store
}

// NewMarketData wires the resolver, usecases and refresher.
func NewMarketData(cfg config.Config, src usecase.Sources, durable usecase.CacheStore) *MarketData {
	resolver := usecase.NewResolver(src)

	market := usecase.NewMarketUsecase(resolver, durable, usecase.MarketOptions{TTL: cfg.CacheTTL})
	refresher := usecase.NewRefresher(usecase.RefresherConfig{
		InitialDelay: cfg.RefreshDelay,
		Period:       cfg.RefreshPeriod,
	}, market.RefreshJobs()...)

	return &MarketData{
		Resolver:  resolver,
		Market:    market,
		Price:     usecase.NewPriceUsecase(resolver, cache.NewMemoryStore(nil), usecase.PriceCacheTTL, nil),
		News:      usecase.NewNewsUsecase(resolver, durable, cfg.CacheTTL, nil),
		Funds:     usecase.NewFundUsecase(resolver, durable, cfg.CacheTTL, nil),
		Refresher: refresher,
	}
}
