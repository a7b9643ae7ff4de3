package di

import (
	"context"
	"errors"
	"log"

	"pricing_backend/internal/app/scheduler"
	priceusecase "pricing_backend/internal/feature/prices/usecase"
	"pricing_backend/internal/shared/cycle"
)

// Cycles returns the scheduled refresh: persisted ticker snapshots, then the in-memory holdings.
// Both variants share one runner, so they run back to back inside a single firing.
// The startup pass only fetches what has no price yet.
func Cycles(app *App) []scheduler.Cycle {
	return []scheduler.Cycle{
		{
			Name:     "refresh",
			InFlight: app.Runner.InFlight,
			Run: func(ctx context.Context) {
				logSync(app.Sync.RunRefreshCycle(ctx))
				s, started := app.Refresh.RunRefreshCycle(ctx)
				logSummary("holdings", s, started)
			},
			Startup: func(ctx context.Context) {
				logSync(app.Sync.RefreshMissing(ctx))
				s, started := app.Refresh.RefreshMissing(ctx)
				logSummary("holdings", s, started)
			},
		},
	}
}

func logSync(report priceusecase.SyncReport, err error) {
	switch {
	case errors.Is(err, priceusecase.ErrNoTickers):
		log.Println("[INFO] prices: no tracked tickers")
	case err != nil:
		log.Println("[ERROR] prices:", err)
	default:
		logSummary("prices", report.Summary, report.Started)
	}
}

func logSummary(name string, s cycle.Summary, started bool) {
	if !started {
		log.Printf("[INFO] %s: refresh already in flight, skipped", name)
		return
	}
	log.Printf("[INFO] %s: %d ok, %d failed, %d skipped in %s",
		name, s.Succeeded, s.Failed, s.Skipped, s.FinishedAt.Sub(s.StartedAt))
}
