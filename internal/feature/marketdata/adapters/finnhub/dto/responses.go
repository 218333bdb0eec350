// Package dto はFinnhub APIのレスポンス形式を定義します。
package dto

// QuoteResponse は /quote のレスポンスです。未知の銘柄では全項目が0になります。
type QuoteResponse struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PreviousClose *float64 `json:"pc"`
	Timestamp     int64    `json:"t"`
}

// ProfileResponse は /stock/profile2 のレスポンスです。時価総額は百万単位です。
type ProfileResponse struct {
	Name                 string   `json:"name"`
	Ticker               string   `json:"ticker"`
	Exchange             string   `json:"exchange"`
	Currency             string   `json:"currency"`
	FinnhubIndustry      string   `json:"finnhubIndustry"`
	MarketCapitalization *float64 `json:"marketCapitalization"`
}

// NewsItem は /company-news の要素です。
type NewsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}
