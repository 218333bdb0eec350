// Package dto はmfapi.inのレスポンス形式を定義します。
package dto

// SchemeResponse は /mf/{schemeCode} のレスポンスです。dataは新しい順に並びます。
type SchemeResponse struct {
	Meta   SchemeMeta `json:"meta"`
	Data   []NAVPoint `json:"data"`
	Status string     `json:"status"`
}

// SchemeMeta はスキームの属性です。
type SchemeMeta struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeName     string `json:"scheme_name"`
}

// NAVPoint は1日分の基準価額です。値は文字列で返ります。
type NAVPoint struct {
	Date string `json:"date"` // dd-mm-yyyy
	NAV  string `json:"nav"`
}
