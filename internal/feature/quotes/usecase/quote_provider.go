package usecase

import (
	"context"

	"pricing_backend/internal/feature/quotes/domain/entity"
)

//go:generate mockgen -source=quote_provider.go -destination=mock/mock_quote_provider.go -package=mock

// QuoteProvider は外部の価格APIから1銘柄の価格を取得するインターフェースです。
// 実装はレスポンスを厳密にパースし、domain.ErrNoPrice / domain.ErrMalformedResponse /
// *domain.StatusError のいずれかを返します。生のペイロードを呼び出し元に漏らしてはいけません。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (entity.Quote, error)
}
