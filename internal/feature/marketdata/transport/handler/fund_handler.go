package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/transport/http/dto"
)

// FundUsecase は投資信託のユースケースです。
type FundUsecase interface {
	GetTopMutualFunds(ctx context.Context) []entity.FundRecord
	GetFundDetail(ctx context.Context, schemeCode string) entity.FundRecord
	SearchFunds(ctx context.Context, query string) []entity.FundRecord
}

// FundHandler は投資信託のHTTPリクエストを処理します。
type FundHandler struct {
	uc FundUsecase
}

// NewFundHandler は新しいFundHandlerを生成します。
func NewFundHandler(uc FundUsecase) *FundHandler {
	return &FundHandler{uc: uc}
}

// GetTopFunds は人気ファンドの一覧を返します。
func (h *FundHandler) GetTopFunds(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromFunds(h.uc.GetTopMutualFunds(c.Request.Context())))
}

// GetFund はスキームコードの詳細を返します。
//
// GET /api/market/mutualfunds/:schemeCode
func (h *FundHandler) GetFund(c *gin.Context) {
	code := strings.TrimSpace(c.Param("schemeCode"))
	if code == "" || !isDigits(code) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid scheme code"})
		return
	}
	c.JSON(http.StatusOK, dto.FromFund(h.uc.GetFundDetail(c.Request.Context(), code)))
}

// SearchFunds はスキーム名・運用会社名で一覧を絞り込みます。
//
// GET /api/market/mutualfunds/search?q=axis
func (h *FundHandler) SearchFunds(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromFunds(h.uc.SearchFunds(c.Request.Context(), c.Query("q"))))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
