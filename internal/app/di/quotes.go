// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"pricing_backend/internal/config"
	"pricing_backend/internal/feature/holdings/domain/symbol"
	quoteusecase "pricing_backend/internal/feature/quotes/usecase"
	"pricing_backend/internal/platform/externalapi/alphavantage"
	"pricing_backend/internal/platform/externalapi/twelvedata"
	"pricing_backend/internal/platform/externalapi/yahoo"
	"pricing_backend/internal/shared/ratelimiter"
)

// NewQuoteProvider は設定された価格プロバイダーのクライアントを作成します。
func NewQuoteProvider(cfg *config.Config, client *http.Client) (quoteusecase.QuoteProvider, error) {
	switch strings.ToLower(cfg.Provider.Name) {
	case "alphavantage":
		return alphavantage.NewClient(alphavantage.Config{
			APIKey:  cfg.Provider.APIKey,
			BaseURL: cfg.Provider.BaseURL,
			Timeout: cfg.Provider.Timeout,
		}, client), nil
	case "twelvedata":
		return twelvedata.NewTwelveDataQuotes(twelvedata.Config{
			APIKey:  cfg.Provider.APIKey,
			BaseURL: cfg.Provider.BaseURL,
			Timeout: cfg.Provider.Timeout,
		}, client), nil
	case "yahoo":
		return yahoo.NewQuotes(), nil
	default:
		return nil, fmt.Errorf("unsupported quote provider %q", cfg.Provider.Name)
	}
}

// NewQuoteFetcher wraps provider with the per-minute rate limit and fetch timeout.
// One limiter is shared by every caller of the returned fetcher.
func NewQuoteFetcher(cfg *config.Config, provider quoteusecase.QuoteProvider) *quoteusecase.QuoteFetcher {
	var limiter ratelimiter.RateLimiterInterface
	if cfg.Provider.RateLimitPerMinute > 0 {
		limiter = ratelimiter.NewRateLimiter(cfg.Provider.RateLimitPerMinute, time.Minute)
	}
	return quoteusecase.NewQuoteFetcher(provider, limiter, cfg.Refresh.FetchTimeout)
}

// NewNormalizer builds the symbol table for the configured provider, with config overrides applied.
func NewNormalizer(cfg *config.Config) *symbol.Normalizer {
	table := symbol.TableFor(strings.ToLower(cfg.Provider.Name)).
		WithOverrides(cfg.Symbols.Commodities, cfg.Symbols.Crypto)
	return symbol.NewNormalizer(table)
}
