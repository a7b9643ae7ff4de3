// Package yahoo provides Yahoo Finance backed quote and symbol search clients.
package yahoo

import (
	"context"
	"fmt"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"

	"pricing_backend/internal/feature/quotes/domain"
	"pricing_backend/internal/feature/quotes/domain/entity"
	"pricing_backend/internal/feature/quotes/usecase"
)

const providerName = "yahoo"

// QuoteFunc fetches a single quote. quote.Get satisfies it.
type QuoteFunc func(symbol string) (*finance.Quote, error)

// Quotes はfinance-goを使ってYahoo Financeから価格を取得するQuoteProvider実装です。
type Quotes struct {
	get QuoteFunc
}

var _ usecase.QuoteProvider = (*Quotes)(nil)

// NewQuotes returns a provider backed by quote.Get.
func NewQuotes() *Quotes {
	return &Quotes{get: quote.Get}
}

// NewQuotesWithFunc returns a provider backed by an arbitrary fetch function.
func NewQuotesWithFunc(get QuoteFunc) *Quotes {
	return &Quotes{get: get}
}

// Quote は1銘柄の価格を取得します。finance-go は context を受け取らないため、
// ctx が先に終了した場合は結果を待たずに ctx.Err() を返します。
func (y *Quotes) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	type result struct {
		q   *finance.Quote
		err error
	}
	ch := make(chan result, 1)
	go func() {
		q, err := y.get(symbol)
		ch <- result{q: q, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return entity.Quote{}, ctx.Err()
	case r = <-ch:
	}

	if r.err != nil {
		return entity.Quote{}, fmt.Errorf("%s: %w", providerName, r.err)
	}
	// 見つからない銘柄は (nil, nil) で返ってくる
	if r.q == nil || r.q.RegularMarketPrice == 0 {
		return entity.Quote{}, fmt.Errorf("%s: %s: %w", providerName, symbol, domain.ErrNoPrice)
	}

	change := r.q.RegularMarketChange
	changePercent := r.q.RegularMarketChangePercent
	return entity.Quote{
		Symbol:        r.q.Symbol,
		Price:         r.q.RegularMarketPrice,
		Currency:      r.q.CurrencyID,
		Change:        &change,
		ChangePercent: &changePercent,
	}, nil
}
