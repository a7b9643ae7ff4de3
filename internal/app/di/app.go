package di

import (
	"context"
	"fmt"
	"log"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pricing_backend/internal/config"
	holdingadapters "pricing_backend/internal/feature/holdings/adapters"
	holdingsusecase "pricing_backend/internal/feature/holdings/usecase"
	priceusecase "pricing_backend/internal/feature/prices/usecase"
	searchusecase "pricing_backend/internal/feature/symbolsearch/usecase"
	tickerusecase "pricing_backend/internal/feature/tickers/usecase"
	"pricing_backend/internal/platform/db"
	"pricing_backend/internal/platform/externalapi/yahoo"
	infrahttp "pricing_backend/internal/platform/http"
	"pricing_backend/internal/platform/redis"
	"pricing_backend/internal/shared/cycle"
)

// App はプロセス内で共有されるユースケース群です。
type App struct {
	Config *config.Config

	DB    *gorm.DB
	Redis *goredis.Client

	// Runner is shared by both refresh variants: at most one cycle is in flight process-wide.
	Runner *cycle.Runner

	Tickers  *tickerusecase.TickerUsecase
	Sync     *priceusecase.SyncUsecase
	History  *priceusecase.HistoryUsecase
	Holdings *holdingsusecase.HoldingsUsecase
	Refresh  *holdingsusecase.RefreshUsecase
	Search   *searchusecase.SearchUsecase
}

// Options controls the infrastructure Build connects to.
type Options struct {
	// SkipDatabase keeps tickers and snapshots in memory.
	SkipDatabase bool
}

// Build connects the configured infrastructure and wires every use case.
// Redis is optional: a failed connection is logged and the cache is skipped.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}

	if !opts.SkipDatabase {
		database, err := db.Open(cfg.Database, Models()...)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.DB = database
	}

	if cfg.Redis.Enabled() {
		rdb, err := redis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Println("[WARN] Redis unavailable; price cache disabled:", err)
		} else {
			app.Redis = rdb
		}
	}

	mode, err := cycle.ParseMode(cfg.Refresh.Mode)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Runner = cycle.NewRunner(cycle.Policy{Mode: mode, MaxParallel: cfg.Refresh.MaxParallel})

	httpClient := infrahttp.NewHTTPClient(cfg.Provider.Timeout)
	provider, err := NewQuoteProvider(cfg, httpClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	fetcher := NewQuoteFetcher(cfg, provider)

	// tickers + price history
	app.Tickers = tickerusecase.NewTickerUsecase(NewTickerRepository(app.DB), cfg.Tickers.Defaults)
	snapshots := NewSnapshotRepository(app.Redis, app.DB, cfg.Redis.TTL)
	app.Sync = priceusecase.NewSyncUsecase(app.Tickers, fetcher, snapshots, app.Runner)
	app.History = priceusecase.NewHistoryUsecase(app.Tickers, snapshots)

	// holdings
	holdings := holdingadapters.NewHoldingMemory(holdingsusecase.DefaultHoldings())
	fallback := holdingsusecase.NewFallbackResolver(cfg.Fallback.CashRates)
	reconciler := holdingsusecase.NewReconciler(holdings, fallback, cfg.Refresh.PersistDisplayPrice)
	app.Refresh = holdingsusecase.NewRefreshUsecase(holdings, NewNormalizer(cfg), fetcher, reconciler, app.Runner)
	app.Holdings = holdingsusecase.NewHoldingsUsecase(holdings, app.Refresh,
		holdingsusecase.NewValuator(fallback, strings.ToUpper(cfg.Refresh.Currency)))

	app.Search = searchusecase.NewSearchUsecase(yahoo.NewSearchClient("", httpClient))

	return app, nil
}

// InFlight reports whether a refresh cycle is running.
func (a *App) InFlight() bool {
	return a.Runner.InFlight()
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Println("[WARN] redis close:", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Println("[WARN] db close:", err)
			}
		}
	}
}
