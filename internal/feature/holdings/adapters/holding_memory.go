// Package adapters はholdingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"sync"

	"pricing_backend/internal/feature/holdings/domain/entity"
	"pricing_backend/internal/feature/holdings/usecase"
)

// HoldingMemory はプロセス内で保有銘柄を保持する HoldingRepository 実装です。
// Update に渡す関数はロックを保持したまま呼ばれるため、リポジトリを再呼び出ししてはいけません。
type HoldingMemory struct {
	mu    sync.RWMutex
	items []entity.Holding
}

var _ usecase.HoldingRepository = (*HoldingMemory)(nil)

// NewHoldingMemory は seed をコピーして新しいコレクションを作成します。
func NewHoldingMemory(seed []entity.Holding) *HoldingMemory {
	return &HoldingMemory{items: append([]entity.Holding(nil), seed...)}
}

func (m *HoldingMemory) List() []entity.Holding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]entity.Holding(nil), m.items...)
}

func (m *HoldingMemory) Get(id string) (entity.Holding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true
	}
	return entity.Holding{}, false
}

func (m *HoldingMemory) Add(h entity.Holding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]entity.Holding{h}, m.items...)
}

func (m *HoldingMemory) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	return true
}

func (m *HoldingMemory) Update(id string, fn func(h *entity.Holding)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&m.items[i])
	return true
}

func (m *HoldingMemory) Replace(hs []entity.Holding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]entity.Holding(nil), hs...)
}

func (m *HoldingMemory) indexOf(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}
