// Package usecase implements the tracked ticker set.
package usecase

import (
	"context"
	"errors"
	"strings"

	"pricing_backend/internal/feature/tickers/domain/entity"
)

var ErrSymbolRequired = errors.New("symbol is required")

// TickerRepository abstracts the persistence layer for tracked tickers.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerRepository interface {
	// EnsureSeeded inserts defaults only when no ticker is tracked yet.
	EnsureSeeded(ctx context.Context, defaults []string) error
	// Create tracks symbol and returns the stored row (the existing one when already tracked).
	Create(ctx context.Context, symbol string) (entity.Ticker, error)
	// List returns tracked tickers, oldest first.
	List(ctx context.Context) ([]entity.Ticker, error)
}

// TickerUsecase provides the tracked ticker set, seeded from defaults on first use.
type TickerUsecase struct {
	repo     TickerRepository
	defaults []string
}

// NewTickerUsecase creates a TickerUsecase. defaults are normalized and de-duplicated.
func NewTickerUsecase(r TickerRepository, defaults []string) *TickerUsecase {
	return &TickerUsecase{repo: r, defaults: NormalizeSymbols(defaults)}
}

// EnsureSeeded inserts the default tickers when the set is empty.
func (u *TickerUsecase) EnsureSeeded(ctx context.Context) error {
	if len(u.defaults) == 0 {
		return nil
	}
	return u.repo.EnsureSeeded(ctx, u.defaults)
}

// List returns all tracked tickers after seeding.
func (u *TickerUsecase) List(ctx context.Context) ([]entity.Ticker, error) {
	if err := u.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return u.repo.List(ctx)
}

// Symbols returns the tracked symbols in tracking order.
func (u *TickerUsecase) Symbols(ctx context.Context) ([]string, error) {
	ts, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Symbol)
	}
	return out, nil
}

// Track adds symbol (upper-cased) to the tracked set.
func (u *TickerUsecase) Track(ctx context.Context, symbol string) (entity.Ticker, error) {
	s := NormalizeSymbol(symbol)
	if s == "" {
		return entity.Ticker{}, ErrSymbolRequired
	}
	return u.repo.Create(ctx, s)
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes symbols, dropping empties and duplicates while keeping order.
func NormalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		n := NormalizeSymbol(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
