package di

import (
	"pricing_backend/internal/app/router"
	holdingshandler "pricing_backend/internal/feature/holdings/transport/handler"
	priceshandler "pricing_backend/internal/feature/prices/transport/handler"
	searchhandler "pricing_backend/internal/feature/symbolsearch/transport/handler"
	tickerhandler "pricing_backend/internal/feature/tickers/transport/handler"
	"pricing_backend/internal/platform/http/handler"
)

// NewHandlers creates the HTTP handlers over the wired use cases.
func NewHandlers(app *App) router.Handlers {
	return router.Handlers{
		Health:   handler.NewHealthHandler(app.Runner.InFlight),
		Tickers:  tickerhandler.NewTickerHandler(app.Tickers),
		Prices:   priceshandler.NewPricesHandler(app.History, app.Sync, app.Config.Server.AllowCron),
		Holdings: holdingshandler.NewHoldingsHandler(app.Holdings, app.Refresh),
		Search:   searchhandler.NewSearchHandler(app.Search),
	}
}
