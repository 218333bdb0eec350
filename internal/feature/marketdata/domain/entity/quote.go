// Package entity defines the domain models for the market data feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time snapshot of a tradable security.
// Monetary values are rounded to two decimal places.
type Quote struct {
	Ticker        string
	Name          string
	Exchange      string
	Currency      string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	PreviousClose decimal.Decimal
	Volume        int64
	AvgVolume     int64

	// Fundamentals are optional; not every source reports them.
	MarketCap        decimal.NullDecimal
	PERatio          decimal.NullDecimal
	EPS              decimal.NullDecimal
	FiftyTwoWeekHigh decimal.NullDecimal
	FiftyTwoWeekLow  decimal.NullDecimal
	Sector           string
	Industry         string

	AsOf   time.Time
	Source string // name of the strategy that produced this quote
}

// HasPrice reports whether the quote carries a usable (strictly positive) price.
func (q Quote) HasPrice() bool {
	return q.Price.IsPositive()
}

// HistoricalPoint is one trading day of OHLCV data.
type HistoricalPoint struct {
	Date   time.Time // UTC midnight of the trading day
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// StockHistory bundles a quote with its daily series in ascending date order.
type StockHistory struct {
	Quote  Quote
	Series []HistoricalPoint
}

// PriceSnapshot is the minimal payload served by the live price endpoint.
type PriceSnapshot struct {
	Ticker        string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Currency      string
	Source        string
	AsOf          time.Time
}

// SnapshotOf extracts a PriceSnapshot from a quote.
func SnapshotOf(q Quote) PriceSnapshot {
	return PriceSnapshot{
		Ticker:        q.Ticker,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Currency:      q.Currency,
		Source:        q.Source,
		AsOf:          q.AsOf,
	}
}

// Money rounds a float to two decimal places.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// OptionalMoney wraps Money in a valid NullDecimal.
func OptionalMoney(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(Money(v))
}
