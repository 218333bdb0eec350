package usecase

import (
	"context"
	"strings"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
)

const (
	CacheKeyTopFunds = "top_mutual_funds"
	unknownFundName  = "Unknown Fund"
)

// PopularFund はトップ一覧に載せる投資信託のスキームコードと名称です。
type PopularFund struct {
	SchemeCode string
	Name       string
}

// PopularFunds はトップ一覧の並び順を定義します。
var PopularFunds = []PopularFund{
	{SchemeCode: "119551", Name: "Axis Bluechip Fund"},
	{SchemeCode: "120503", Name: "Mirae Asset Large Cap Fund"},
	{SchemeCode: "118989", Name: "SBI Bluechip Fund"},
	{SchemeCode: "100356", Name: "HDFC Top 100 Fund"},
	{SchemeCode: "102715", Name: "ICICI Pru Bluechip Fund"},
	{SchemeCode: "118834", Name: "Kotak Bluechip Fund"},
	{SchemeCode: "100468", Name: "UTI Flexi Cap Fund"},
	{SchemeCode: "120505", Name: "Parag Parikh Flexi Cap Fund"},
	{SchemeCode: "106235", Name: "Nippon India Large Cap Fund"},
	{SchemeCode: "118269", Name: "Canara Robeco Bluechip Fund"},
}

// FundResolver はFundUsecaseが必要とする解決処理です。
type FundResolver interface {
	ResolveFund(ctx context.Context, schemeCode, name string) entity.FundRecord
}

// FundUsecase は投資信託の一覧・詳細・検索を提供します。
type FundUsecase struct {
	resolver FundResolver
	cache    ttlCache
	ttl      time.Duration
	funds    []PopularFund
}

// NewFundUsecase は新しいFundUsecaseを生成します。
func NewFundUsecase(resolver FundResolver, store CacheStore, ttl time.Duration, now func() time.Time) *FundUsecase {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &FundUsecase{
		resolver: resolver,
		cache:    newTTLCache(store, "durable", now),
		ttl:      ttl,
		funds:    PopularFunds,
	}
}

// GetTopMutualFunds は人気ファンドの一覧を返します。
func (u *FundUsecase) GetTopMutualFunds(ctx context.Context) []entity.FundRecord {
	return cachedOrFetch(detach(ctx), u.cache, CacheKeyTopFunds, u.ttl, func(ctx context.Context) []entity.FundRecord {
		funds := make([]entity.FundRecord, 0, len(u.funds))
		for _, f := range u.funds {
			funds = append(funds, u.resolver.ResolveFund(ctx, f.SchemeCode, f.Name))
		}
		return funds
	})
}

// GetFundDetail はスキームコードの詳細を都度取得します。未知のコードでもモックで応答します。
func (u *FundUsecase) GetFundDetail(ctx context.Context, schemeCode string) entity.FundRecord {
	schemeCode = strings.TrimSpace(schemeCode)
	name := unknownFundName
	for _, f := range u.funds {
		if f.SchemeCode == schemeCode {
			name = f.Name
			break
		}
	}
	return u.resolver.ResolveFund(detach(ctx), schemeCode, name)
}

// SearchFunds はトップ一覧をスキーム名または運用会社名の部分一致（大文字小文字を区別しない）で絞り込みます。
func (u *FundUsecase) SearchFunds(ctx context.Context, query string) []entity.FundRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]entity.FundRecord, 0)
	for _, f := range u.GetTopMutualFunds(ctx) {
		if strings.Contains(strings.ToLower(f.SchemeName), q) || strings.Contains(strings.ToLower(f.FundHouse), q) {
			matched = append(matched, f)
		}
	}
	return matched
}
