package usecase

import (
	"github.com/google/uuid"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

// DefaultHoldings returns the starter portfolio with fresh IDs.
func DefaultHoldings() []entity.Holding {
	seed := []struct {
		ticker string
		class  entity.AssetClass
		shares float64
		price  float64
	}{
		{"AAPL", entity.AssetClassEquity, 50, 190},
		{"MSFT", entity.AssetClassEquity, 30, 320},
		{"VWRA.L", entity.AssetClassEquity, 60, 90},
		{"USD", entity.AssetClassCashUSD, 2500, 1},
		{"CNY", entity.AssetClassCashCNY, 5000, 0.14},
		{"XAU", entity.AssetClassGold, 2, 1950},
		{"XAG", entity.AssetClassSilver, 100, 23},
		{"BTC", entity.AssetClassBitcoin, 0.5, 27000},
		{"ETH", entity.AssetClassEthereum, 1.2, 1700},
	}
	out := make([]entity.Holding, 0, len(seed))
	for _, s := range seed {
		out = append(out, entity.Holding{
			ID:          uuid.NewString(),
			Ticker:      s.ticker,
			AssetClass:  s.class,
			Shares:      s.shares,
			StaticPrice: s.price,
		})
	}
	return out
}
