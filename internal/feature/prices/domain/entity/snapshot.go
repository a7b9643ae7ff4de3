// Package entity defines the domain models for the prices feature.
package entity

import "time"

// Snapshot は1回の取得で得た価格の記録です。追記のみで更新はされません。
type Snapshot struct {
	ID            uint      `json:"id"`
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Currency      *string   `json:"currency"`
	Change        *float64  `json:"change"`
	ChangePercent *float64  `json:"changePercent"`
	CreatedAt     time.Time `json:"createdAt"`
}
