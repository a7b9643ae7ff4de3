package usecase

import (
	"strings"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

// DefaultCashRates は通貨ごとの固定レート（USD建て）です。
var DefaultCashRates = map[string]float64{
	"USD": 1.0,
	"CNY": 0.14,
}

// FallbackResolver は価格が取得できなかった場合の代替価格を決めます。
type FallbackResolver struct {
	cashRates map[string]float64
}

// NewFallbackResolver creates a resolver. A nil or empty table selects DefaultCashRates.
func NewFallbackResolver(cashRates map[string]float64) *FallbackResolver {
	src := cashRates
	if len(src) == 0 {
		src = DefaultCashRates
	}
	rates := make(map[string]float64, len(src))
	for k, v := range src {
		rates[strings.ToUpper(k)] = v
	}
	return &FallbackResolver{cashRates: rates}
}

// Resolve returns the cash rate for cash classes with a configured rate,
// otherwise the holding's static price when positive, otherwise 0.
func (r *FallbackResolver) Resolve(h entity.Holding) float64 {
	if h.AssetClass.IsCash() {
		if rate, ok := r.cashRates[h.AssetClass.Currency()]; ok {
			return rate
		}
	}
	if h.StaticPrice > 0 {
		return h.StaticPrice
	}
	return 0
}
