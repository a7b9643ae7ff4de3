// Package dto defines data transfer objects for the tickers HTTP API.
package dto

import "time"

// TrackRequest は銘柄追加リクエストです。
type TrackRequest struct {
	Symbol string `json:"symbol"`
}

// TickerItem represents a tracked ticker in the API response.
type TickerItem struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"createdAt"`
}

// TickerList wraps the tracked tickers.
type TickerList struct {
	Tickers []TickerItem `json:"tickers"`
}
