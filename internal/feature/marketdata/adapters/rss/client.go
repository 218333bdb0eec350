package rss

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
	infrahttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/newsfmt"
)

const (
	providerName = "rss"
	sourceLabel  = "Yahoo Finance"
	maxItems     = 6
)

// Client はRSSフィードを取得してニュース項目に変換します。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

var _ usecase.NewsFeed = (*Client)(nil)

// NewClient はClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// GetMarketNews は主要指数・大型株のフィードを取得します。
func (c *Client) GetMarketNews(ctx context.Context) ([]entity.NewsItem, error) {
	return c.fetch(ctx, c.cfg.MarketSymbols, "")
}

// GetStockNews は銘柄別のフィードを取得します。
func (c *Client) GetStockNews(ctx context.Context, ticker string) ([]entity.NewsItem, error) {
	return c.fetch(ctx, ticker, ticker)
}

func (c *Client) fetch(ctx context.Context, symbols, ticker string) ([]entity.NewsItem, error) {
	q := url.Values{}
	q.Set("s", symbols)
	q.Set("region", "US")
	q.Set("lang", "en-US")

	h := http.Header{}
	h.Set("User-Agent", c.cfg.UserAgent)

	body, err := infrahttp.GetBody(ctx, c.client, providerName, c.cfg.BaseURL+"?"+q.Encode(), h)
	if err != nil {
		return nil, err
	}

	// gofeed.Parser は並行利用を想定していないため呼び出しごとに生成する
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rss: parse feed %s: %w", symbols, err)
	}

	now := c.now()
	items := make([]entity.NewsItem, 0, maxItems)
	for _, it := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		title := newsfmt.CleanHTML(it.Title)
		if title == "" {
			continue
		}
		var published time.Time
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}
		items = append(items, entity.NewsItem{
			ID:           len(items) + 1,
			Title:        title,
			Category:     newsfmt.Categorize(title),
			Source:       sourceLabel,
			RelativeTime: newsfmt.RelativeTime(published, now),
			Link:         it.Link,
			Description:  newsfmt.CleanHTML(it.Description),
			Ticker:       ticker,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("rss: no items for %s: %w", symbols, usecase.ErrNoData)
	}
	return items, nil
}
