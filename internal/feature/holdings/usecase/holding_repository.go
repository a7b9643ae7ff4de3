// Package usecase implements price refresh, reconciliation and valuation for holdings.
package usecase

import "pricing_backend/internal/feature/holdings/domain/entity"

// HoldingRepository は保有銘柄コレクションの唯一の所有者です。
// すべての変更はリポジトリ内部のロックの下で行われ、呼び出し元はコピーのみを受け取ります。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type HoldingRepository interface {
	List() []entity.Holding
	Get(id string) (entity.Holding, bool)
	// Add は先頭に追加します。
	Add(h entity.Holding)
	Remove(id string) bool
	// Update は id の現在の値に fn を適用します。存在しない場合は fn を呼ばず false を返します。
	Update(id string, fn func(h *entity.Holding)) bool
	Replace(hs []entity.Holding)
}
