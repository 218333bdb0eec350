package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketMover is a basket member ranked by daily change.
type MarketMover struct {
	Ticker        string
	Name          string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Volume        int64
	MarketCap     decimal.NullDecimal
	Source        string
}

// MoverOf projects a quote onto a MarketMover.
func MoverOf(q Quote) MarketMover {
	return MarketMover{
		Ticker:        q.Ticker,
		Name:          q.Name,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
		MarketCap:     q.MarketCap,
		Source:        q.Source,
	}
}

// MarketIndex is a headline benchmark such as the S&P 500.
type MarketIndex struct {
	Symbol        string
	Name          string
	Value         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Source        string
	AsOf          time.Time
}

// NewsItem is a single headline.
type NewsItem struct {
	ID           int
	Title        string
	Category     string
	Source       string
	RelativeTime string
	Link         string
	Description  string
	Ticker       string // empty for market-wide news
	Origin       string // name of the strategy that produced the list
}

// FundRecord describes an Indian mutual fund scheme.
type FundRecord struct {
	SchemeCode      string
	SchemeName      string
	FundHouse       string
	SchemeType      string
	SchemeCategory  string
	NAV             decimal.Decimal
	NAVDate         string // dd-mm-yyyy, as reported by the NAV source
	OneYearReturn   decimal.NullDecimal
	ThreeYearReturn decimal.NullDecimal
	FiveYearReturn  decimal.NullDecimal
	Source          string
}
