package usecase

import (
	"context"
	"log/slog"
	"sync"

	"pricing_backend/internal/feature/holdings/domain/entity"
	quoteentity "pricing_backend/internal/feature/quotes/domain/entity"
	"pricing_backend/internal/shared/cycle"
)

// FetchingStatus is reported while a cycle is in flight.
const FetchingStatus = "Fetching live prices…"

// SymbolNormalizer はティッカーと資産クラスをプロバイダー用シンボルに変換します。
type SymbolNormalizer interface {
	Normalize(ticker string, class entity.AssetClass) (string, bool)
}

// QuoteFetcher は1銘柄の価格を取得します。取得できない場合は nil を返します。
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbol string) *quoteentity.Quote
}

// RefreshUsecase は保有銘柄の価格更新サイクルを実行します。
//
// サイクル開始時に対象をすべて LoadingPrice=true にしてから取得を始め、
// すでに取得中の銘柄はスキップします。現金クラスは対象外で、値は変更しません。
type RefreshUsecase struct {
	repo       HoldingRepository
	normalizer SymbolNormalizer
	fetcher    QuoteFetcher
	reconciler *Reconciler
	runner     *cycle.Runner

	wg   sync.WaitGroup
	mu   sync.Mutex
	last *cycle.Summary
}

// NewRefreshUsecase creates a RefreshUsecase.
func NewRefreshUsecase(repo HoldingRepository, normalizer SymbolNormalizer, fetcher QuoteFetcher,
	reconciler *Reconciler, runner *cycle.Runner) *RefreshUsecase {
	return &RefreshUsecase{
		repo:       repo,
		normalizer: normalizer,
		fetcher:    fetcher,
		reconciler: reconciler,
		runner:     runner,
	}
}

// RefreshAll refreshes every priceable holding in hs as one cycle.
// started is false when another cycle was already in flight; nothing is touched then.
func (u *RefreshUsecase) RefreshAll(ctx context.Context, hs []entity.Holding) (summary cycle.Summary, started bool) {
	summary, started = u.runner.Run(ctx, func() []cycle.Job {
		return u.prepare(hs)
	})
	if !started {
		slog.Info("holdings refresh skipped: a cycle is already in flight")
		return summary, false
	}

	u.mu.Lock()
	u.last = &summary
	u.mu.Unlock()

	slog.Info("holdings refresh finished",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"status", summary.Status(),
	)
	return summary, true
}

// RunRefreshCycle refreshes the whole collection.
func (u *RefreshUsecase) RunRefreshCycle(ctx context.Context) (cycle.Summary, bool) {
	return u.RefreshAll(ctx, u.repo.List())
}

// RefreshMissing refreshes only holdings that have never received a market price.
func (u *RefreshUsecase) RefreshMissing(ctx context.Context) (cycle.Summary, bool) {
	all := u.repo.List()
	missing := make([]entity.Holding, 0, len(all))
	for _, h := range all {
		if h.MarketPrice == nil {
			missing = append(missing, h)
		}
	}
	return u.RefreshAll(ctx, missing)
}

// RefreshOne refreshes a single holding outside of any cycle and reports
// whether a market price was applied.
func (u *RefreshUsecase) RefreshOne(ctx context.Context, id string) bool {
	sym, ok := u.claimByID(id)
	if !ok {
		return false
	}
	return u.refreshClaimed(ctx, id, sym) == cycle.Succeeded
}

// Submit marks holding id as loading and refreshes it in the background.
// It returns false when the holding is missing, not priceable, or already loading.
// Background refreshes are awaited by Wait.
func (u *RefreshUsecase) Submit(id string) bool {
	sym, ok := u.claimByID(id)
	if !ok {
		return false
	}
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		// リクエストのキャンセルとは切り離す（タイムアウトは fetcher 側で掛かる）
		u.refreshClaimed(context.Background(), id, sym)
	}()
	return true
}

// Wait blocks until all background refreshes started by Submit have finished.
func (u *RefreshUsecase) Wait() {
	u.wg.Wait()
}

// InFlight reports whether a cycle is running.
func (u *RefreshUsecase) InFlight() bool {
	return u.runner.InFlight()
}

// LastSummary returns the summary of the most recent completed cycle.
func (u *RefreshUsecase) LastSummary() (cycle.Summary, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.last == nil {
		return cycle.Summary{}, false
	}
	return *u.last, true
}

// Status returns the user-facing status line ("" before the first cycle).
func (u *RefreshUsecase) Status() string {
	if u.InFlight() {
		return FetchingStatus
	}
	s, ok := u.LastSummary()
	if !ok {
		return ""
	}
	return s.Status()
}

func (u *RefreshUsecase) prepare(hs []entity.Holding) []cycle.Job {
	jobs := make([]cycle.Job, 0, len(hs))
	for _, h := range hs {
		sym, ok := u.normalizer.Normalize(h.Ticker, h.AssetClass)
		if !ok {
			continue
		}
		if !u.claim(h.ID) {
			jobs = append(jobs, skipJob)
			continue
		}
		id := h.ID
		jobs = append(jobs, func(ctx context.Context) cycle.Outcome {
			return u.refreshClaimed(ctx, id, sym)
		})
	}
	return jobs
}

func skipJob(context.Context) cycle.Outcome { return cycle.Skipped }

func (u *RefreshUsecase) claimByID(id string) (string, bool) {
	h, ok := u.repo.Get(id)
	if !ok {
		return "", false
	}
	sym, ok := u.normalizer.Normalize(h.Ticker, h.AssetClass)
	if !ok {
		return "", false
	}
	if !u.claim(id) {
		return "", false
	}
	return sym, true
}

// claim sets LoadingPrice on id unless a fetch for it is already running.
func (u *RefreshUsecase) claim(id string) bool {
	claimed := false
	u.repo.Update(id, func(h *entity.Holding) {
		if h.LoadingPrice {
			return
		}
		h.LoadingPrice = true
		h.PriceError = ""
		claimed = true
	})
	return claimed
}

func (u *RefreshUsecase) refreshClaimed(ctx context.Context, id, symbol string) cycle.Outcome {
	q := u.fetcher.Fetch(ctx, symbol)
	switch u.reconciler.apply(id, q) {
	case reconcileApplied:
		return cycle.Succeeded
	case reconcileFailed:
		return cycle.Failed
	default:
		return cycle.Skipped
	}
}
