package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
)

const priceKeyPrefix = "price_"

// QuoteResolver はPriceUsecaseが必要とする解決処理です。
type QuoteResolver interface {
	Resolve(ctx context.Context, ticker string) entity.Quote
	ResolveLive(ctx context.Context, ticker string) (entity.Quote, error)
}

// PriceUsecase はポートフォリオ評価などで使う単一銘柄の現在値を提供します。
type PriceUsecase struct {
	resolver QuoteResolver
	cache    ttlCache
	ttl      time.Duration
}

// NewPriceUsecase は新しいPriceUsecaseを生成します。storeはプロセス内の短期ストアを想定しています。
func NewPriceUsecase(resolver QuoteResolver, store CacheStore, ttl time.Duration, now func() time.Time) *PriceUsecase {
	if ttl <= 0 {
		ttl = PriceCacheTTL
	}
	return &PriceUsecase{
		resolver: resolver,
		cache:    newTTLCache(store, "ephemeral", now),
		ttl:      ttl,
	}
}

// GetCurrentPrice は短期キャッシュ経由で現在値を返します。
// 解決した価格が正でない場合のみErrPriceUnavailableを返します。
func (u *PriceUsecase) GetCurrentPrice(ctx context.Context, ticker string) (entity.PriceSnapshot, error) {
	ctx = detach(ctx)
	ticker = NormalizeTicker(ticker)
	key := priceKeyPrefix + ticker

	if snap, ok := readCached[entity.PriceSnapshot](ctx, u.cache, key, u.ttl); ok && snap.Price.IsPositive() {
		return snap, nil
	}

	q := u.resolver.Resolve(ctx, ticker)
	if !q.HasPrice() {
		return entity.PriceSnapshot{}, fmt.Errorf("%s: %w", ticker, ErrPriceUnavailable)
	}
	snap := entity.SnapshotOf(q)
	if err := writeCached(ctx, u.cache, key, snap); err != nil {
		slog.Warn("price cache write failed", "ticker", ticker, "error", err)
	}
	return snap, nil
}

// GetLivePrice はキャッシュもモックも使わずに現在値を返します。
func (u *PriceUsecase) GetLivePrice(ctx context.Context, ticker string) (entity.PriceSnapshot, error) {
	q, err := u.resolver.ResolveLive(ctx, ticker)
	if err != nil {
		return entity.PriceSnapshot{}, err
	}
	return entity.SnapshotOf(q), nil
}
