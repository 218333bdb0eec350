package usecase

import (
	"context"
	"log/slog"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
)

const (
	CacheKeyMarketNews = "market_news"
	stockNewsKeyPrefix = "stock_news_"
)

// NewsResolver はNewsUsecaseが必要とする解決処理です。
type NewsResolver interface {
	ResolveMarketNews(ctx context.Context) []entity.NewsItem
	ResolveStockNews(ctx context.Context, ticker string) []entity.NewsItem
}

// NewsUsecase はマーケットニュースと銘柄別ニュースを提供します。
type NewsUsecase struct {
	resolver     NewsResolver
	cache        ttlCache
	ttl          time.Duration
	stockNewsTTL time.Duration
}

// NewNewsUsecase は新しいNewsUsecaseを生成します。ttlが0以下なら既定値を使います。
func NewNewsUsecase(resolver NewsResolver, store CacheStore, ttl time.Duration, now func() time.Time) *NewsUsecase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &NewsUsecase{
		resolver:     resolver,
		cache:        newTTLCache(store, "durable", now),
		ttl:          ttl,
		stockNewsTTL: StockNewsCacheTTL,
	}
}

// GetNews はマーケットニュースを返します。forceRefreshがtrueの場合はキャッシュを読まずに取得し直します。
func (u *NewsUsecase) GetNews(ctx context.Context, forceRefresh bool) []entity.NewsItem {
	ctx = detach(ctx)
	if !forceRefresh {
		return cachedOrFetch(ctx, u.cache, CacheKeyMarketNews, u.ttl, u.resolver.ResolveMarketNews)
	}
	items := u.resolver.ResolveMarketNews(ctx)
	if err := writeCached(ctx, u.cache, CacheKeyMarketNews, items); err != nil {
		slog.Warn("cache write failed", "key", CacheKeyMarketNews, "error", err)
	}
	return items
}

// GetStockNews は銘柄別ニュースを返します。キャッシュの有効期間は60分です。
func (u *NewsUsecase) GetStockNews(ctx context.Context, ticker string) []entity.NewsItem {
	ticker = NormalizeTicker(ticker)
	return cachedOrFetch(detach(ctx), u.cache, stockNewsKeyPrefix+ticker, u.stockNewsTTL, func(ctx context.Context) []entity.NewsItem {
		return u.resolver.ResolveStockNews(ctx, ticker)
	})
}
