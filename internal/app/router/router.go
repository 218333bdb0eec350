package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"market_backend/internal/feature/marketdata/transport/handler"
	platformhandler "market_backend/internal/platform/http/handler"
	"market_backend/internal/platform/http/middleware"
	jwtmw "market_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラーの集合です。
type Handlers struct {
	Price  *handler.PriceHandler
	Market *handler.MarketHandler
	News   *handler.NewsHandler
	Funds  *handler.FundHandler
	Admin  *handler.AdminHandler
	DB     platformhandler.Pinger
}

// Options はルーター全体の設定です。
type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Logger      *slog.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Logger))

	// Reactフロントエンドからのアクセスを許可
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 導通確認・メトリクス（認証不要）
	health := platformhandler.Health(h.DB)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	api.GET("/prices/:ticker", h.Price.GetPrice)

	market := api.Group("/market")
	{
		market.GET("/stock/:ticker", h.Market.GetStock)
		market.GET("/stock/:ticker/history", h.Market.GetHistory)
		market.GET("/gainers", h.Market.GetGainers)
		market.GET("/losers", h.Market.GetLosers)
		market.GET("/indices", h.Market.GetIndices)
		market.GET("/trending", h.Market.GetTrending)
		market.GET("/search", h.Market.Search)

		market.GET("/news", h.News.GetNews)
		market.GET("/news/:ticker", h.News.GetStockNews)

		market.GET("/mutualfunds", h.Funds.GetTopFunds)
		market.GET("/mutualfunds/search", h.Funds.SearchFunds)
		market.GET("/mutualfunds/:schemeCode", h.Funds.GetFund)
	}

	// 運用操作は admin ロールのJWTが必要
	admin := api.Group("/admin")
	admin.Use(jwtmw.AuthRequired(opts.JWTSecret, jwtmw.RoleAdmin))
	{
		admin.POST("/cache/refresh", h.Admin.RefreshCache)
	}

	return r
}
