package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pricing_backend/internal/feature/prices/domain/entity"
	qentity "pricing_backend/internal/feature/quotes/domain/entity"
	"pricing_backend/internal/shared/cycle"
)

// TickerSource returns the tracked symbols, seeding defaults on first use.
type TickerSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// QuoteFetcher returns a quote for symbol, or nil when none could be obtained.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbol string) *qentity.Quote
}

// SyncReport is the result of one persisted refresh cycle.
type SyncReport struct {
	// Started is false when another cycle was already in flight.
	Started  bool
	Symbols  []string
	Captured []entity.Snapshot
	Summary  cycle.Summary
}

// SyncUsecase は追跡銘柄の価格を取得し、スナップショットとして追記します。
type SyncUsecase struct {
	tickers TickerSource
	fetcher QuoteFetcher
	repo    SnapshotRepository
	runner  *cycle.Runner
	now     func() time.Time
}

// NewSyncUsecase creates a SyncUsecase. runner may be shared with the holdings refresh.
func NewSyncUsecase(tickers TickerSource, fetcher QuoteFetcher, repo SnapshotRepository, runner *cycle.Runner) *SyncUsecase {
	return &SyncUsecase{
		tickers: tickers,
		fetcher: fetcher,
		repo:    repo,
		runner:  runner,
		now:     time.Now,
	}
}

// RunRefreshCycle fetches every tracked symbol and appends one snapshot per received quote.
// While another cycle is in flight it returns immediately without touching the store.
// It returns ErrNoTickers when nothing is tracked. Missing quotes and storage faults are
// counted as failures in the summary, not returned.
func (u *SyncUsecase) RunRefreshCycle(ctx context.Context) (SyncReport, error) {
	if u.runner.InFlight() {
		slog.Info("price sync skipped: cycle already in flight")
		return SyncReport{}, nil
	}
	symbols, err := u.tickers.Symbols(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	if len(symbols) == 0 {
		return SyncReport{}, ErrNoTickers
	}
	return u.run(ctx, symbols), nil
}

// RefreshMissing runs a cycle over tracked symbols that have no snapshot yet.
func (u *SyncUsecase) RefreshMissing(ctx context.Context) (SyncReport, error) {
	if u.runner.InFlight() {
		slog.Info("price sync skipped: cycle already in flight")
		return SyncReport{}, nil
	}
	symbols, err := u.tickers.Symbols(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	latest, err := u.repo.LatestPerSymbol(ctx, symbols)
	if err != nil {
		return SyncReport{}, err
	}
	have := make(map[string]struct{}, len(latest))
	for _, s := range latest {
		have[s.Symbol] = struct{}{}
	}
	missing := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}
	return u.run(ctx, missing), nil
}

// InFlight reports whether a cycle is running.
func (u *SyncUsecase) InFlight() bool {
	return u.runner.InFlight()
}

func (u *SyncUsecase) run(ctx context.Context, symbols []string) SyncReport {
	var (
		mu       sync.Mutex
		captured []entity.Snapshot
	)

	summary, started := u.runner.Run(ctx, func() []cycle.Job {
		jobs := make([]cycle.Job, 0, len(symbols))
		for _, sym := range symbols {
			jobs = append(jobs, func(ctx context.Context) cycle.Outcome {
				snap, ok := u.capture(ctx, sym)
				if !ok {
					return cycle.Failed
				}
				mu.Lock()
				captured = append(captured, snap)
				mu.Unlock()
				return cycle.Succeeded
			})
		}
		return jobs
	})
	if !started {
		slog.Info("price sync skipped: cycle already in flight")
		return SyncReport{}
	}

	slog.Info("price sync finished",
		"symbols", len(symbols),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return SyncReport{
		Started:  true,
		Symbols:  symbols,
		Captured: captured,
		Summary:  summary,
	}
}

func (u *SyncUsecase) capture(ctx context.Context, symbol string) (entity.Snapshot, bool) {
	q := u.fetcher.Fetch(ctx, symbol)
	if q == nil {
		return entity.Snapshot{}, false
	}

	s := entity.Snapshot{
		Symbol:        symbol,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		CreatedAt:     u.now().UTC(),
	}
	if q.Currency != "" {
		cur := q.Currency
		s.Currency = &cur
	}

	stored, err := u.repo.Append(ctx, s)
	if err != nil {
		// 次のサイクルで再取得されるためリトライはしない
		slog.Error("failed to store price snapshot", "symbol", symbol, "error", err)
		return entity.Snapshot{}, false
	}
	return stored, true
}
