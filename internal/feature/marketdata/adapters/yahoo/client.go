package yahoo

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/marketdata/adapters/yahoo/dto"
	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
	infrahttp "market_backend/internal/platform/http"
)

const (
	providerName = "yahoo"
	quoteRange   = "5d" // 前日終値と平均出来高を得るため数日分取得する
)

// Client はYahoo FinanceのチャートAPIからクォートと日足系列を取得します。
type Client struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ClientがQuoteSourceとHistorySourceを実装していることをコンパイル時に検証します。
var (
	_ usecase.QuoteSource   = (*Client)(nil)
	_ usecase.HistorySource = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, now: time.Now}
}

// GetQuote は直近数日のチャートからクォートを組み立てます。
func (c *Client) GetQuote(ctx context.Context, ticker string) (entity.Quote, error) {
	res, err := c.chart(ctx, ticker, quoteRange)
	if err != nil {
		return entity.Quote{}, err
	}
	q := c.toQuote(ticker, res.Meta, toSeries(res))
	if !q.HasPrice() {
		return entity.Quote{}, fmt.Errorf("yahoo: no price for %s: %w", ticker, usecase.ErrNoData)
	}
	return q, nil
}

// GetHistory は期間に対応するrangeで日足系列を取得します。
func (c *Client) GetHistory(ctx context.Context, ticker string, span entity.Span) (entity.StockHistory, error) {
	res, err := c.chart(ctx, ticker, string(span))
	if err != nil {
		return entity.StockHistory{}, err
	}
	series := toSeries(res)
	if len(series) == 0 {
		return entity.StockHistory{}, fmt.Errorf("yahoo: empty series for %s: %w", ticker, usecase.ErrNoData)
	}
	return entity.StockHistory{Quote: c.toQuote(ticker, res.Meta, series), Series: series}, nil
}

func (c *Client) chart(ctx context.Context, ticker, rng string) (*dto.ChartResult, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", "1d")
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(ticker), q.Encode())

	h := http.Header{}
	h.Set("User-Agent", c.cfg.UserAgent)
	h.Set("Accept", "application/json")

	body, err := infrahttp.GetBody(ctx, c.client, providerName, u, h)
	if err != nil {
		return nil, err
	}

	var resp dto.ChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yahoo: decode chart %s: %w", ticker, err)
	}
	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart for %s: %w", ticker, usecase.ErrNoData)
	}
	return &resp.Chart.Result[0], nil
}

// toSeries は終値のある日だけを取り出し、取引所の現地日付で昇順・一意に並べます。
// 同じ日付が複数ある場合は後のものを採用します。
func toSeries(res *dto.ChartResult) []entity.HistoricalPoint {
	if len(res.Indicators.Quote) == 0 {
		return []entity.HistoricalPoint{}
	}
	ind := res.Indicators.Quote[0]
	loc := time.FixedZone("exchange", res.Meta.GMTOffset)

	series := make([]entity.HistoricalPoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		cl := at(ind.Close, i)
		if cl <= 0 {
			continue
		}
		y, m, d := time.Unix(ts, 0).In(loc).Date()
		p := entity.HistoricalPoint{
			Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Open:   entity.Money(orDefault(at(ind.Open, i), cl)),
			High:   entity.Money(orDefault(at(ind.High, i), cl)),
			Low:    entity.Money(orDefault(at(ind.Low, i), cl)),
			Close:  entity.Money(cl),
			Volume: at(ind.Volume, i),
		}
		if n := len(series); n > 0 && series[n-1].Date.Equal(p.Date) {
			series[n-1] = p
			continue
		}
		series = append(series, p)
	}
	slices.SortStableFunc(series, func(a, b entity.HistoricalPoint) int {
		return a.Date.Compare(b.Date)
	})
	return slices.CompactFunc(series, func(a, b entity.HistoricalPoint) bool {
		return a.Date.Equal(b.Date)
	})
}

func (c *Client) toQuote(ticker string, m dto.ChartMeta, series []entity.HistoricalPoint) entity.Quote {
	price := deref(m.RegularMarketPrice)
	if price <= 0 && len(series) > 0 {
		price = series[len(series)-1].Close.InexactFloat64()
	}

	// previousClose は range=1d のときだけ返るため、無ければ直前の日足を使う
	prev := deref(m.PreviousClose)
	if prev <= 0 && len(series) >= 2 {
		prev = series[len(series)-2].Close.InexactFloat64()
	}
	if prev <= 0 {
		prev = deref(m.ChartPreviousClose)
	}

	q := entity.Quote{
		Ticker:           ticker,
		Name:             cmp.Or(m.LongName, m.ShortName, ticker),
		Exchange:         cmp.Or(m.FullExchangeName, m.ExchangeName),
		Currency:         cmp.Or(m.Currency, "USD"),
		Price:            entity.Money(price),
		PreviousClose:    entity.Money(prev),
		Open:             entity.Money(price),
		High:             entity.Money(orDefault(deref(m.RegularMarketDayHigh), price)),
		Low:              entity.Money(orDefault(deref(m.RegularMarketDayLow), price)),
		FiftyTwoWeekHigh: optional(m.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  optional(m.FiftyTwoWeekLow),
		AsOf:             c.now(),
	}
	if m.RegularMarketTime > 0 {
		q.AsOf = time.Unix(m.RegularMarketTime, 0).UTC()
	}
	if prev > 0 {
		change := price - prev
		q.Change = entity.Money(change)
		q.ChangePercent = entity.Money(change / prev * 100)
	}
	if m.RegularMarketVolume != nil {
		q.Volume = *m.RegularMarketVolume
	}

	if n := len(series); n > 0 {
		last := series[n-1]
		q.Open = last.Open
		if q.Volume == 0 {
			q.Volume = last.Volume
		}
		var total int64
		for _, p := range series {
			total += p.Volume
		}
		q.AvgVolume = total / int64(n)
	}
	return q
}

func at[T int64 | float64](vals []*T, i int) T {
	if i < len(vals) && vals[i] != nil {
		return *vals[i]
	}
	return 0
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func optional(v *float64) decimal.NullDecimal {
	if v == nil || *v <= 0 {
		return decimal.NullDecimal{}
	}
	return entity.OptionalMoney(*v)
}
