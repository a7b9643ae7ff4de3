package adapters

import (
	"context"
	"sort"
	"sync"
	"time"

	"pricing_backend/internal/feature/prices/domain/entity"
	"pricing_backend/internal/feature/prices/usecase"
)

// SnapshotMemory is an in-process SnapshotRepository.
type SnapshotMemory struct {
	mu     sync.RWMutex
	rows   []entity.Snapshot
	nextID uint
}

var _ usecase.SnapshotRepository = (*SnapshotMemory)(nil)

// NewSnapshotMemory creates an empty SnapshotMemory.
func NewSnapshotMemory() *SnapshotMemory {
	return &SnapshotMemory{}
}

func (m *SnapshotMemory) Append(_ context.Context, s entity.Snapshot) (entity.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	m.rows = append(m.rows, s)
	return s, nil
}

func (m *SnapshotMemory) LatestPerSymbol(_ context.Context, symbols []string) ([]entity.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := make(map[string]entity.Snapshot, len(symbols))
	for _, s := range m.rows {
		cur, ok := best[s.Symbol]
		if !ok || newer(s, cur) {
			best[s.Symbol] = s
		}
	}
	out := make([]entity.Snapshot, 0, len(symbols))
	for _, sym := range symbols {
		if s, ok := best[sym]; ok {
			out = append(out, s)
			delete(best, sym)
		}
	}
	return out, nil
}

func (m *SnapshotMemory) History(_ context.Context, symbol string, limit int) ([]entity.Snapshot, error) {
	m.mu.RLock()
	out := make([]entity.Snapshot, 0)
	for _, s := range m.rows {
		if s.Symbol == symbol {
			out = append(out, s)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newer(a, b entity.Snapshot) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
