package usecase

import (
	"context"
	"strings"

	"pricing_backend/internal/feature/prices/domain/entity"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

// HistoryUsecase answers latest-price and history queries.
type HistoryUsecase struct {
	tickers TickerSource
	repo    SnapshotRepository
}

// NewHistoryUsecase creates a HistoryUsecase.
func NewHistoryUsecase(tickers TickerSource, repo SnapshotRepository) *HistoryUsecase {
	return &HistoryUsecase{tickers: tickers, repo: repo}
}

// Latest returns the newest snapshot of every tracked symbol that has one.
func (u *HistoryUsecase) Latest(ctx context.Context) ([]entity.Snapshot, error) {
	symbols, err := u.tickers.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []entity.Snapshot{}, nil
	}
	return u.repo.LatestPerSymbol(ctx, symbols)
}

// History returns up to limit snapshots of symbol, newest first.
// limit <= 0 selects DefaultHistoryLimit; larger values are capped at MaxHistoryLimit.
func (u *HistoryUsecase) History(ctx context.Context, symbol string, limit int) ([]entity.Snapshot, error) {
	return u.repo.History(ctx, strings.ToUpper(strings.TrimSpace(symbol)), ClampLimit(limit))
}

// ClampLimit applies the history limit bounds.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
