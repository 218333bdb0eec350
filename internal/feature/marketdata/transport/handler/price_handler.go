// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/transport/http/dto"
	"market_backend/internal/feature/marketdata/usecase"
)

// PriceUsecase は現在値取得のユースケースです。
// インターフェースは利用者（handler）側で定義します。
type PriceUsecase interface {
	GetCurrentPrice(ctx context.Context, ticker string) (entity.PriceSnapshot, error)
	GetLivePrice(ctx context.Context, ticker string) (entity.PriceSnapshot, error)
}

// PriceHandler は現在値のHTTPリクエストを処理します。
type PriceHandler struct {
	uc PriceUsecase
}

// NewPriceHandler は新しいPriceHandlerを生成します。
func NewPriceHandler(uc PriceUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrice は銘柄の現在値を返します。
//
// エンドポイント例:
// GET /api/prices/:ticker?live=true
//
// live=true の場合はキャッシュとモックを使わず、取得できなければ503を返します。
func (h *PriceHandler) GetPrice(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	live, _ := strconv.ParseBool(c.DefaultQuery("live", "false"))

	get := h.uc.GetCurrentPrice
	if live {
		get = h.uc.GetLivePrice
	}
	snap, err := get(c.Request.Context(), ticker)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(snap))
}

// tickerParam は :ticker を正規化して返します。空の場合は400を書き込みます。
func tickerParam(c *gin.Context) (string, bool) {
	t := usecase.NormalizeTicker(c.Param("ticker"))
	if t == "" || len(t) > maxTickerLen || strings.ContainsAny(t, " /") {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid ticker"})
		return "", false
	}
	return t, true
}

const maxTickerLen = 16

// writeError はユースケースのエラーをステータスコードに変換します。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPriceUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
