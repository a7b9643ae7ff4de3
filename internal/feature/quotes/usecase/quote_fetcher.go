// Package usecase implements quote fetching on top of a pluggable provider.
package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"pricing_backend/internal/feature/quotes/domain/entity"
	"pricing_backend/internal/shared/ratelimiter"
)

// QuoteFetcher は QuoteProvider への1回の呼び出しをラップし、
// あらゆる失敗を「価格なし」(nil) に変換します。呼び出し元にエラーは返しません。
type QuoteFetcher struct {
	provider    QuoteProvider
	rateLimiter ratelimiter.RateLimiterInterface
	timeout     time.Duration
}

// NewQuoteFetcher は新しい QuoteFetcher を作成します。
// rateLimiter が nil の場合は制限なし、timeout が 0 以下の場合は呼び出し元の ctx のみに従います。
func NewQuoteFetcher(provider QuoteProvider, rateLimiter ratelimiter.RateLimiterInterface, timeout time.Duration) *QuoteFetcher {
	return &QuoteFetcher{provider: provider, rateLimiter: rateLimiter, timeout: timeout}
}

// Fetch は symbol の価格を1回だけ取得します。
// 取得できなかった場合（ネットワークエラー、HTTPエラー、価格なし、形式不正、非正値）は nil を返します。
// プロバイダーが銘柄コードを返さなかった場合は、リクエストした symbol を使用します。
func (f *QuoteFetcher) Fetch(ctx context.Context, symbol string) *entity.Quote {
	if f.rateLimiter != nil {
		if err := f.rateLimiter.WaitIfNeeded(ctx); err != nil {
			slog.Warn("quote fetch aborted while rate limited", "symbol", symbol, "error", err)
			return nil
		}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	q, err := f.provider.Quote(ctx, symbol)
	if err != nil {
		slog.Warn("quote fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) || q.Price <= 0 {
		slog.Warn("quote rejected: price is not a positive number", "symbol", symbol, "price", q.Price)
		return nil
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return &q
}
