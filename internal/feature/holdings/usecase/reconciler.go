package usecase

import (
	"pricing_backend/internal/feature/holdings/domain/entity"
	quoteentity "pricing_backend/internal/feature/quotes/domain/entity"
)

// PriceUnavailableMessage is stored on a holding whose price could not be fetched.
const PriceUnavailableMessage = "Price unavailable (check API key, symbol, or rate limits)."

type reconcileResult int

const (
	reconcileApplied reconcileResult = iota
	reconcileFailed
	reconcileStale
)

// Reconciler は取得結果を保有銘柄に書き戻します。
// 適用時点でIDを引き直すため、取得中に削除された銘柄には何もしません。
type Reconciler struct {
	repo                HoldingRepository
	fallback            *FallbackResolver
	persistDisplayPrice bool
}

// NewReconciler creates a Reconciler. When persistDisplayPrice is set, a
// successful quote also becomes the holding's static price.
func NewReconciler(repo HoldingRepository, fallback *FallbackResolver, persistDisplayPrice bool) *Reconciler {
	return &Reconciler{repo: repo, fallback: fallback, persistDisplayPrice: persistDisplayPrice}
}

// Reconcile applies q (nil means no price) to holding id and reports whether
// a market price was applied.
func (r *Reconciler) Reconcile(id string, q *quoteentity.Quote) bool {
	return r.apply(id, q) == reconcileApplied
}

func (r *Reconciler) apply(id string, q *quoteentity.Quote) reconcileResult {
	result := reconcileStale
	r.repo.Update(id, func(h *entity.Holding) {
		h.LoadingPrice = false
		if q != nil {
			price := q.Price
			h.MarketPrice = &price
			h.PriceSymbol = q.Symbol
			h.PriceError = ""
			if r.persistDisplayPrice {
				h.StaticPrice = price
			}
			result = reconcileApplied
			return
		}
		fb := r.fallback.Resolve(*h)
		h.MarketPrice = &fb
		h.PriceError = PriceUnavailableMessage
		result = reconcileFailed
	})
	return result
}
