package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/transport/http/dto"
)

// NewsUsecase はニュース取得のユースケースです。
type NewsUsecase interface {
	GetNews(ctx context.Context, forceRefresh bool) []entity.NewsItem
	GetStockNews(ctx context.Context, ticker string) []entity.NewsItem
}

// NewsHandler はニュースのHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は新しいNewsHandlerを生成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// GetNews はマーケットニュースを返します。refresh=true でキャッシュを読み飛ばします。
//
// GET /api/market/news?refresh=true
func (h *NewsHandler) GetNews(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	c.JSON(http.StatusOK, dto.FromNews(h.uc.GetNews(c.Request.Context(), force)))
}

// GetStockNews は銘柄別ニュースを返します。
//
// GET /api/market/news/:ticker
func (h *NewsHandler) GetStockNews(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromNews(h.uc.GetStockNews(c.Request.Context(), ticker)))
}
