// Package router はHTTPルーティングを定義します。
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	holdingshandler "pricing_backend/internal/feature/holdings/transport/handler"
	priceshandler "pricing_backend/internal/feature/prices/transport/handler"
	searchhandler "pricing_backend/internal/feature/symbolsearch/transport/handler"
	tickerhandler "pricing_backend/internal/feature/tickers/transport/handler"
	"pricing_backend/internal/platform/http/handler"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health   *handler.HealthHandler
	Tickers  *tickerhandler.TickerHandler
	Prices   *priceshandler.PricesHandler
	Holdings *holdingshandler.HoldingsHandler
	Search   *searchhandler.SearchHandler
}

// NewRouter builds the gin engine. corsOrigins が空の場合は全オリジンを許可します。
func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(corsOrigins))

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// 追跡銘柄
	r.GET("/tickers", h.Tickers.List)
	r.POST("/tickers", h.Tickers.Track)

	// 価格履歴と外部スケジューラ用トリガー
	r.GET("/prices", h.Prices.Get)
	r.GET("/cron", h.Prices.Cron)

	holdings := r.Group("/holdings")
	{
		holdings.GET("", h.Holdings.List)
		holdings.POST("", h.Holdings.Add)
		holdings.POST("/refresh", h.Holdings.Refresh)
		holdings.POST("/reset", h.Holdings.Reset)
		holdings.PATCH("/:id", h.Holdings.Update)
		holdings.DELETE("/:id", h.Holdings.Delete)
	}

	r.GET("/symbols/search", h.Search.Search)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
