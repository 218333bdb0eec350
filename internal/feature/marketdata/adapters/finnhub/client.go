package finnhub

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"market_backend/internal/feature/marketdata/adapters/finnhub/dto"
	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/newsfmt"
	"market_backend/internal/shared/ratelimiter"
)

const (
	providerName      = "finnhub"
	newsLookbackDays  = 7
	maxNewsItems      = 8
	maxSummaryRunes   = 200
	dateLayout        = "2006-01-02"
	defaultCurrency   = "USD"
	marketCapMultiple = 1e6 // profile2 の時価総額は百万単位
)

// Client はFinnhub APIのクライアントです。リクエスト予算を超えた呼び出しは待たずに失敗します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	now     func() time.Time
}

var (
	_ usecase.QuoteSource       = (*Client)(nil)
	_ usecase.CompanyNewsSource = (*Client)(nil)
)

// NewClient はClientを生成します。limiterがnilの場合は設定の上限から作ります。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute)
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, now: time.Now}
}

// GetQuote は /quote から価格を取得し、取得できれば /stock/profile2 で銘柄名などを補います。
func (c *Client) GetQuote(ctx context.Context, ticker string) (entity.Quote, error) {
	var qr dto.QuoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {ticker}}, &qr); err != nil {
		return entity.Quote{}, err
	}
	price := deref(qr.Current)
	if price <= 0 {
		return entity.Quote{}, fmt.Errorf("finnhub: no price for %s: %w", ticker, usecase.ErrNoData)
	}

	prev := deref(qr.PreviousClose)
	change := deref(qr.Change)
	pct := deref(qr.PercentChange)
	if qr.Change == nil && prev > 0 {
		change = price - prev
		pct = change / prev * 100
	}

	q := entity.Quote{
		Ticker:        ticker,
		Name:          ticker,
		Currency:      defaultCurrency,
		Price:         entity.Money(price),
		Change:        entity.Money(change),
		ChangePercent: entity.Money(pct),
		Open:          entity.Money(deref(qr.Open)),
		High:          entity.Money(deref(qr.High)),
		Low:           entity.Money(deref(qr.Low)),
		PreviousClose: entity.Money(prev),
		AsOf:          c.now(),
	}
	if qr.Timestamp > 0 {
		q.AsOf = time.Unix(qr.Timestamp, 0).UTC()
	}

	// プロファイルは補助情報なので失敗してもクォートは返す
	var p dto.ProfileResponse
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {ticker}}, &p); err != nil {
		slog.Debug("finnhub profile lookup failed", "ticker", ticker, "error", err)
		return q, nil
	}
	q.Name = cmp.Or(p.Name, ticker)
	q.Exchange = p.Exchange
	q.Currency = cmp.Or(p.Currency, defaultCurrency)
	q.Industry = p.FinnhubIndustry
	if mc := deref(p.MarketCapitalization); mc > 0 {
		q.MarketCap = entity.OptionalMoney(mc * marketCapMultiple)
	}
	return q, nil
}

// GetCompanyNews は直近7日間の企業ニュースを最大8件返します。
func (c *Client) GetCompanyNews(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	now := c.now()
	to := now.UTC()
	from := to.AddDate(0, 0, -newsLookbackDays)

	var raw []dto.NewsItem
	q := url.Values{
		"symbol": {ticker},
		"from":   {from.Format(dateLayout)},
		"to":     {to.Format(dateLayout)},
	}
	if err := c.get(ctx, "/company-news", q, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("finnhub: no company news for %s: %w", ticker, usecase.ErrNoData)
	}

	items := make([]entity.NewsItem, 0, min(len(raw), maxNewsItems))
	for i, n := range raw[:min(len(raw), maxNewsItems)] {
		var published time.Time
		if n.Datetime > 0 {
			published = time.Unix(n.Datetime, 0)
		}
		items = append(items, entity.NewsItem{
			ID:           i + 1,
			Title:        cmp.Or(n.Headline, "News Update"),
			Category:     newsfmt.Categorize(n.Headline),
			Source:       cmp.Or(n.Source, "Finnhub"),
			RelativeTime: newsfmt.RelativeTime(published, now),
			Link:         n.URL,
			Description:  newsfmt.Truncate(n.Summary, maxSummaryRunes),
			Ticker:       ticker,
		})
	}
	return items, nil
}

// get は予算を1つ消費してAPIを呼び出し、JSONをoutにデコードします。
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if !c.limiter.Allow() {
		return fmt.Errorf("finnhub %s: %w", path, usecase.ErrRateLimited)
	}
	q.Set("token", c.cfg.APIKey)
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + q.Encode()

	body, err := infrahttp.GetBody(ctx, c.client, providerName, u, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("finnhub: decode %s: %w", path, err)
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
