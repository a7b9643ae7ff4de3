// Command refresh runs one persisted price refresh cycle and exits.
// It is meant for external schedulers (cron, CI) when the server runs with schedule.disabled.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pricing_backend/internal/app/di"
	"pricing_backend/internal/config"
	priceusecase "pricing_backend/internal/feature/prices/usecase"
)

const cycleTimeout = 5 * time.Minute

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	os.Exit(run(cfg, di.Options{}))
}

// run は1サイクル分の取得を行い、終了コードを返します。
// defer を確実に実行させるため os.Exit は main だけが呼びます。
func run(cfg *config.Config, opts di.Options) int {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	app, err := di.Build(ctx, cfg, opts)
	if err != nil {
		log.Println("[ERROR]", err)
		return 1
	}
	defer app.Close()

	report, err := app.Sync.RunRefreshCycle(ctx)
	if errors.Is(err, priceusecase.ErrNoTickers) {
		log.Println("[INFO] no tracked tickers; nothing to refresh")
		return 0
	}
	if err != nil {
		log.Println("[ERROR]", err)
		return 1
	}

	log.Printf("[INFO] captured %d of %d symbols (%d failed)",
		len(report.Captured), len(report.Symbols), report.Summary.Failed)
	if len(report.Captured) == 0 {
		return 1
	}
	return 0
}
