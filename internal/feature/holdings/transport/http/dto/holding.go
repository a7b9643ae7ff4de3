// Package dto defines data transfer objects for the holdings HTTP API.
package dto

// AddHoldingRequest は保有銘柄追加リクエストです。
type AddHoldingRequest struct {
	Ticker     string  `json:"ticker" binding:"required"`
	AssetClass string  `json:"assetClass" binding:"required"`
	Shares     float64 `json:"shares"`
	Price      float64 `json:"price"`
}

// UpdateHoldingRequest は数量の変更リクエストです。
type UpdateHoldingRequest struct {
	Shares *float64 `json:"shares" binding:"required"`
}

// HoldingResponse is one valued holding.
type HoldingResponse struct {
	ID           string   `json:"id"`
	Ticker       string   `json:"ticker"`
	AssetClass   string   `json:"assetClass"`
	Shares       float64  `json:"shares"`
	StaticPrice  float64  `json:"staticPrice"`
	MarketPrice  *float64 `json:"marketPrice"`
	PriceSymbol  string   `json:"priceSymbol,omitempty"`
	LoadingPrice bool     `json:"loadingPrice"`
	PriceError   string   `json:"priceError,omitempty"`
	Price        float64  `json:"price"`
	Value        float64  `json:"value"`
	Weight       float64  `json:"weight"` // 評価額合計に対する割合(%)
}

// PortfolioResponse is the valued holdings list with totals.
type PortfolioResponse struct {
	Holdings       []HoldingResponse `json:"holdings"`
	Total          float64           `json:"total"`
	FormattedTotal string            `json:"formattedTotal"`
	Currency       string            `json:"currency"`
	Count          int               `json:"count"`
	Status         string            `json:"status,omitempty"`
}

// RefreshResponse is the outcome of a manual refresh cycle.
type RefreshResponse struct {
	Status    string `json:"status"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}
