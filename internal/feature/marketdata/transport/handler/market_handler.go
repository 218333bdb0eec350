package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/transport/http/dto"
)

// MarketUsecase は銘柄詳細・ランキング・検索のユースケースです。
type MarketUsecase interface {
	GetStockDetail(ctx context.Context, ticker string) entity.Quote
	GetStockHistory(ctx context.Context, ticker string, span entity.Span) entity.StockHistory
	GetTopGainers(ctx context.Context) []entity.MarketMover
	GetTopLosers(ctx context.Context) []entity.MarketMover
	GetTrending(ctx context.Context) []entity.MarketMover
	GetMarketIndices(ctx context.Context) []entity.MarketIndex
	SearchStocks(ctx context.Context, query string) []entity.Quote
}

// MarketHandler はマーケット情報のHTTPリクエストを処理します。
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler は新しいMarketHandlerを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetStock は銘柄詳細を返します。
//
// GET /api/market/stock/:ticker
func (h *MarketHandler) GetStock(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromQuote(h.uc.GetStockDetail(c.Request.Context(), ticker)))
}

// GetHistory は銘柄詳細と日足系列を返します。spanは 1mo/3mo/6mo/1y/5y（省略時 5y）です。
//
// GET /api/market/stock/:ticker/history?span=1y
func (h *MarketHandler) GetHistory(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	span, ok := entity.ParseSpan(c.Query("span"))
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid span"})
		return
	}
	c.JSON(http.StatusOK, dto.FromHistory(h.uc.GetStockHistory(c.Request.Context(), ticker, span), span))
}

// GetGainers は値上がり率上位を返します。
func (h *MarketHandler) GetGainers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromMovers(h.uc.GetTopGainers(c.Request.Context())))
}

// GetLosers は値下がり率上位を返します。
func (h *MarketHandler) GetLosers(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromMovers(h.uc.GetTopLosers(c.Request.Context())))
}

// GetTrending はトレンド銘柄を返します。
func (h *MarketHandler) GetTrending(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromMovers(h.uc.GetTrending(c.Request.Context())))
}

// GetIndices は主要指数を返します。
func (h *MarketHandler) GetIndices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromIndices(h.uc.GetMarketIndices(c.Request.Context())))
}

// Search は銘柄検索の結果を返します。
//
// GET /api/market/search?q=APP
func (h *MarketHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromQuotes(h.uc.SearchStocks(c.Request.Context(), c.Query("q"))))
}
