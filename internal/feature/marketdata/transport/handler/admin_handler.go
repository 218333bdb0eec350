package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/marketdata/transport/http/dto"
	"market_backend/internal/feature/marketdata/usecase"
	jwtmw "market_backend/internal/platform/jwt"
)

// CacheRefresher は集計キャッシュを強制更新します。
type CacheRefresher interface {
	RefreshAll(ctx context.Context) usecase.RefreshResult
}

// AdminHandler は運用向けのHTTPリクエストを処理します。
type AdminHandler struct {
	refresher CacheRefresher
}

// NewAdminHandler は新しいAdminHandlerを生成します。
func NewAdminHandler(refresher CacheRefresher) *AdminHandler {
	return &AdminHandler{refresher: refresher}
}

// RefreshCache は集計キャッシュを同期的に再構築します。一部のキーが失敗した場合は207を返します。
//
// POST /api/admin/cache/refresh
func (h *AdminHandler) RefreshCache(c *gin.Context) {
	slog.Info("manual cache refresh requested", "subject", c.GetString(jwtmw.ContextSubject))
	res := h.refresher.RefreshAll(context.WithoutCancel(c.Request.Context()))

	status := http.StatusOK
	if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, dto.FromRefresh(res))
}
