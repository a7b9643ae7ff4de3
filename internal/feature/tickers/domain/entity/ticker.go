// Package entity defines the domain models for the tickers feature.
package entity

import "time"

// Ticker は価格を定期取得する銘柄コードです。
type Ticker struct {
	ID        uint
	Symbol    string
	CreatedAt time.Time
}
