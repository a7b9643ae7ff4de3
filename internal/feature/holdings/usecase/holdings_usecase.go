package usecase

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

// BackgroundRefresher starts a price refresh for one holding without blocking.
type BackgroundRefresher interface {
	Submit(id string) bool
}

// AddHoldingInput is the user input for a new holding.
type AddHoldingInput struct {
	Ticker     string
	AssetClass entity.AssetClass
	Shares     float64
	Price      float64
}

// HoldingsUsecase は保有銘柄の追加・編集・削除と評価額の算出を提供します。
type HoldingsUsecase struct {
	repo      HoldingRepository
	refresher BackgroundRefresher
	valuator  *Valuator
}

// NewHoldingsUsecase creates a HoldingsUsecase.
func NewHoldingsUsecase(repo HoldingRepository, refresher BackgroundRefresher, valuator *Valuator) *HoldingsUsecase {
	return &HoldingsUsecase{repo: repo, refresher: refresher, valuator: valuator}
}

// List returns the holdings in display order.
func (u *HoldingsUsecase) List() []entity.Holding {
	return u.repo.List()
}

// Valuation prices the current collection.
func (u *HoldingsUsecase) Valuation() Valuation {
	return u.valuator.Value(u.repo.List())
}

// Add validates and prepends a holding, then starts its first price fetch in the background.
func (u *HoldingsUsecase) Add(in AddHoldingInput) (entity.Holding, error) {
	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" {
		return entity.Holding{}, ErrTickerRequired
	}
	class := entity.AssetClass(strings.TrimSpace(string(in.AssetClass)))
	if class == "" {
		return entity.Holding{}, ErrAssetClassEmpty
	}
	if !validAmount(in.Shares) {
		return entity.Holding{}, ErrInvalidShares
	}
	if !validAmount(in.Price) {
		return entity.Holding{}, ErrInvalidPrice
	}

	h := entity.Holding{
		ID:          uuid.NewString(),
		Ticker:      ticker,
		AssetClass:  class,
		Shares:      in.Shares,
		StaticPrice: in.Price,
	}
	u.repo.Add(h)
	u.refresher.Submit(h.ID)

	if cur, ok := u.repo.Get(h.ID); ok {
		return cur, nil
	}
	return h, nil
}

// UpdateShares sets the share count of holding id.
func (u *HoldingsUsecase) UpdateShares(id string, shares float64) (entity.Holding, error) {
	if !validAmount(shares) {
		return entity.Holding{}, ErrInvalidShares
	}
	var out entity.Holding
	if !u.repo.Update(id, func(h *entity.Holding) {
		h.Shares = shares
		out = *h
	}) {
		return entity.Holding{}, ErrHoldingNotFound
	}
	return out, nil
}

// Remove deletes holding id. An in-flight fetch for it is dropped when it completes.
func (u *HoldingsUsecase) Remove(id string) error {
	if !u.repo.Remove(id) {
		return ErrHoldingNotFound
	}
	return nil
}

// Reset replaces the collection with DefaultHoldings and refreshes each in the background.
func (u *HoldingsUsecase) Reset() []entity.Holding {
	seed := DefaultHoldings()
	u.repo.Replace(seed)
	for _, h := range seed {
		u.refresher.Submit(h.ID)
	}
	return u.repo.List()
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
