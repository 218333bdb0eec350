package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

const dateLayout = "2006-01-02"

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func optional(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FromSnapshot はPriceSnapshotをレスポンスに変換します。
func FromSnapshot(s entity.PriceSnapshot) PriceResponse {
	return PriceResponse{
		Ticker:        s.Ticker,
		Price:         money(s.Price),
		Change:        money(s.Change),
		ChangePercent: money(s.ChangePercent),
		Currency:      s.Currency,
		Source:        s.Source,
		AsOf:          timestamp(s.AsOf),
	}
}

// FromQuote はQuoteをレスポンスに変換します。
func FromQuote(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Ticker:           q.Ticker,
		Name:             q.Name,
		Exchange:         q.Exchange,
		Currency:         q.Currency,
		Price:            money(q.Price),
		Change:           money(q.Change),
		ChangePercent:    money(q.ChangePercent),
		Open:             money(q.Open),
		High:             money(q.High),
		Low:              money(q.Low),
		PreviousClose:    money(q.PreviousClose),
		Volume:           q.Volume,
		AvgVolume:        q.AvgVolume,
		MarketCap:        optional(q.MarketCap),
		PERatio:          optional(q.PERatio),
		EPS:              optional(q.EPS),
		FiftyTwoWeekHigh: optional(q.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  optional(q.FiftyTwoWeekLow),
		Sector:           q.Sector,
		Industry:         q.Industry,
		Source:           q.Source,
		AsOf:             timestamp(q.AsOf),
	}
}

// FromQuotes はQuoteのスライスを変換します。nilでも空配列を返します。
func FromQuotes(qs []entity.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

// FromHistory はStockHistoryをレスポンスに変換します。
func FromHistory(h entity.StockHistory, span entity.Span) HistoryResponse {
	series := make([]HistoricalPointResponse, 0, len(h.Series))
	for _, p := range h.Series {
		series = append(series, HistoricalPointResponse{
			Date:   p.Date.UTC().Format(dateLayout),
			Open:   money(p.Open),
			High:   money(p.High),
			Low:    money(p.Low),
			Close:  money(p.Close),
			Volume: p.Volume,
		})
	}
	return HistoryResponse{Quote: FromQuote(h.Quote), Span: string(span), Series: series}
}

// FromMovers はMarketMoverのスライスを変換します。
func FromMovers(ms []entity.MarketMover) []MoverResponse {
	out := make([]MoverResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MoverResponse{
			Ticker:        m.Ticker,
			Name:          m.Name,
			Price:         money(m.Price),
			Change:        money(m.Change),
			ChangePercent: money(m.ChangePercent),
			Volume:        m.Volume,
			MarketCap:     optional(m.MarketCap),
			Source:        m.Source,
		})
	}
	return out
}

// FromIndices はMarketIndexのスライスを変換します。
func FromIndices(is []entity.MarketIndex) []IndexResponse {
	out := make([]IndexResponse, 0, len(is))
	for _, i := range is {
		out = append(out, IndexResponse{
			Symbol:        i.Symbol,
			Name:          i.Name,
			Value:         money(i.Value),
			Change:        money(i.Change),
			ChangePercent: money(i.ChangePercent),
			Source:        i.Source,
		})
	}
	return out
}

// FromNews はNewsItemのスライスを変換します。
func FromNews(items []entity.NewsItem) []NewsResponse {
	out := make([]NewsResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NewsResponse{
			ID:          n.ID,
			Title:       n.Title,
			Category:    n.Category,
			Source:      n.Source,
			Time:        n.RelativeTime,
			Link:        n.Link,
			Description: n.Description,
			Ticker:      n.Ticker,
		})
	}
	return out
}

// FromFund はFundRecordをレスポンスに変換します。
func FromFund(f entity.FundRecord) FundResponse {
	return FundResponse{
		SchemeCode:      f.SchemeCode,
		SchemeName:      f.SchemeName,
		FundHouse:       f.FundHouse,
		SchemeType:      f.SchemeType,
		SchemeCategory:  f.SchemeCategory,
		NAV:             money(f.NAV),
		NAVDate:         f.NAVDate,
		OneYearReturn:   optional(f.OneYearReturn),
		ThreeYearReturn: optional(f.ThreeYearReturn),
		FiveYearReturn:  optional(f.FiveYearReturn),
		Source:          f.Source,
	}
}

// FromFunds はFundRecordのスライスを変換します。
func FromFunds(fs []entity.FundRecord) []FundResponse {
	out := make([]FundResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromFund(f))
	}
	return out
}

// FromRefresh はRefreshResultをレスポンスに変換します。
func FromRefresh(r usecase.RefreshResult) RefreshResponse {
	out := RefreshResponse{Refreshed: r.Refreshed, Failed: r.Failed}
	if out.Refreshed == nil {
		out.Refreshed = []string{}
	}
	if out.Failed == nil {
		out.Failed = map[string]string{}
	}
	return out
}
