package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/marketdata/adapters/mfapi/dto"
	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
	infrahttp "market_backend/internal/platform/http"
)

const providerName = "mfapi"

// 騰落率の計算に使う営業日数
const (
	oneYearPoints   = 252
	threeYearPoints = 756
	fiveYearPoints  = 1260
)

var hundred = decimal.NewFromInt(100)

// Client はmfapi.inのクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.FundSource = (*Client)(nil)

// NewClient はClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetFund は最新の基準価額と1・3・5年の騰落率を返します。
// 履歴が足りない期間の騰落率は不明（NullDecimalの無効値）です。
func (c *Client) GetFund(ctx context.Context, schemeCode string) (entity.FundRecord, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + url.PathEscape(schemeCode)
	body, err := infrahttp.GetBody(ctx, c.client, providerName, u, nil)
	if err != nil {
		return entity.FundRecord{}, err
	}

	var resp dto.SchemeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return entity.FundRecord{}, fmt.Errorf("mfapi: decode scheme %s: %w", schemeCode, err)
	}
	if resp.Meta.SchemeName == "" || len(resp.Data) == 0 {
		return entity.FundRecord{}, fmt.Errorf("mfapi: empty scheme %s: %w", schemeCode, usecase.ErrNoData)
	}

	latest, err := parseNAV(resp.Data[0].NAV)
	if err != nil {
		return entity.FundRecord{}, fmt.Errorf("mfapi: parse latest nav %q: %w", resp.Data[0].NAV, err)
	}

	return entity.FundRecord{
		SchemeCode:      schemeCode,
		SchemeName:      resp.Meta.SchemeName,
		FundHouse:       resp.Meta.FundHouse,
		SchemeType:      resp.Meta.SchemeType,
		SchemeCategory:  resp.Meta.SchemeCategory,
		NAV:             latest.Round(2),
		NAVDate:         resp.Data[0].Date,
		OneYearReturn:   trailingReturn(latest, resp.Data, oneYearPoints),
		ThreeYearReturn: trailingReturn(latest, resp.Data, threeYearPoints),
		FiveYearReturn:  trailingReturn(latest, resp.Data, fiveYearPoints),
	}, nil
}

func parseNAV(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// trailingReturn はpoints件前の基準価額からの騰落率（%）を返します。dataは新しい順です。
// 履歴が足りない場合や過去の値が読めない・正でない場合は無効値です。
func trailingReturn(latest decimal.Decimal, data []dto.NAVPoint, points int) decimal.NullDecimal {
	if len(data) < points+1 {
		return decimal.NullDecimal{}
	}
	past, err := parseNAV(data[points].NAV)
	if err != nil || !past.IsPositive() {
		return decimal.NullDecimal{}
	}
	r := latest.Sub(past).DivRound(past, 4).Mul(hundred).Round(2)
	return decimal.NewNullDecimal(r)
}
