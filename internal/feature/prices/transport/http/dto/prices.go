// Package dto defines data transfer objects for the prices HTTP API.
package dto

import (
	"time"

	"pricing_backend/internal/feature/prices/domain/entity"
)

// LatestResponse は追跡銘柄ごとの最新価格です。
type LatestResponse struct {
	Latest []entity.Snapshot `json:"latest"`
}

// HistoryResponse は1銘柄の価格履歴（新しい順）です。
type HistoryResponse struct {
	Symbol  string            `json:"symbol"`
	History []entity.Snapshot `json:"history"`
}

// CronResponse is the result of a triggered sync cycle.
type CronResponse struct {
	Captured []entity.Snapshot `json:"captured"`
	Symbols  []string          `json:"symbols"`
	Failed   int               `json:"failed"`
	At       time.Time         `json:"at"`
}
