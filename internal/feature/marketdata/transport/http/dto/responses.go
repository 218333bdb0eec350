// Package dto はmarketdataフィーチャーのHTTPレスポンス形式を定義します。
package dto

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// PriceResponse は現在値のレスポンスDTOです。
type PriceResponse struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Currency      string  `json:"currency"`
	Source        string  `json:"source"`
	AsOf          string  `json:"asOf"` // RFC3339
}

// QuoteResponse は銘柄詳細のレスポンスDTOです。ファンダメンタルズは取得できない場合nullです。
type QuoteResponse struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	Exchange         string   `json:"exchange"`
	Currency         string   `json:"currency"`
	Price            float64  `json:"price"`
	Change           float64  `json:"change"`
	ChangePercent    float64  `json:"changePercent"`
	Open             float64  `json:"open"`
	High             float64  `json:"high"`
	Low              float64  `json:"low"`
	PreviousClose    float64  `json:"previousClose"`
	Volume           int64    `json:"volume"`
	AvgVolume        int64    `json:"avgVolume"`
	MarketCap        *float64 `json:"marketCap"`
	PERatio          *float64 `json:"peRatio"`
	EPS              *float64 `json:"eps"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
	Sector           string   `json:"sector,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	Source           string   `json:"source"`
	AsOf             string   `json:"asOf"`
}

// HistoricalPointResponse は日足1本分のDTOです。
type HistoricalPointResponse struct {
	Date   string  `json:"date"` // 2006-01-02
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoryResponse は銘柄詳細と日足系列のレスポンスDTOです。
type HistoryResponse struct {
	Quote  QuoteResponse             `json:"quote"`
	Span   string                    `json:"span"`
	Series []HistoricalPointResponse `json:"series"`
}

// MoverResponse はランキング・トレンドの1銘柄分のDTOです。
type MoverResponse struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	Volume        int64    `json:"volume"`
	MarketCap     *float64 `json:"marketCap"`
	Source        string   `json:"source"`
}

// IndexResponse は主要指数のDTOです。
type IndexResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Source        string  `json:"source"`
}

// NewsResponse はニュース1件のDTOです。
type NewsResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	Time        string `json:"time"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
	Ticker      string `json:"ticker,omitempty"`
}

// FundResponse は投資信託のDTOです。
type FundResponse struct {
	SchemeCode      string   `json:"schemeCode"`
	SchemeName      string   `json:"schemeName"`
	FundHouse       string   `json:"fundHouse"`
	SchemeType      string   `json:"schemeType"`
	SchemeCategory  string   `json:"schemeCategory"`
	NAV             float64  `json:"nav"`
	NAVDate         string   `json:"navDate"`
	OneYearReturn   *float64 `json:"oneYearReturn"`
	ThreeYearReturn *float64 `json:"threeYearReturn"`
	FiveYearReturn  *float64 `json:"fiveYearReturn"`
	Source          string   `json:"source"`
}

// RefreshResponse はキャッシュ再構築の結果DTOです。
type RefreshResponse struct {
	Refreshed []string          `json:"refreshed"`
	Failed    map[string]string `json:"failed"`
}
