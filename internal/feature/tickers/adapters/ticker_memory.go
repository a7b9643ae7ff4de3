package adapters

import (
	"context"
	"sync"
	"time"

	"pricing_backend/internal/feature/tickers/domain/entity"
	"pricing_backend/internal/feature/tickers/usecase"
)

// TickerMemory is an in-process TickerRepository used when no database is configured.
type TickerMemory struct {
	mu     sync.Mutex
	rows   []entity.Ticker
	nextID uint
	now    func() time.Time
}

var _ usecase.TickerRepository = (*TickerMemory)(nil)

// NewTickerMemory creates an empty TickerMemory.
func NewTickerMemory() *TickerMemory {
	return &TickerMemory{now: time.Now}
}

func (m *TickerMemory) EnsureSeeded(_ context.Context, defaults []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) > 0 {
		return nil
	}
	for _, s := range defaults {
		m.insertLocked(s)
	}
	return nil
}

func (m *TickerMemory) Create(_ context.Context, symbol string) (entity.Ticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(symbol), nil
}

func (m *TickerMemory) List(_ context.Context) ([]entity.Ticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Ticker, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *TickerMemory) insertLocked(symbol string) entity.Ticker {
	for _, t := range m.rows {
		if t.Symbol == symbol {
			return t
		}
	}
	m.nextID++
	t := entity.Ticker{ID: m.nextID, Symbol: symbol, CreatedAt: m.now()}
	m.rows = append(m.rows, t)
	return t
}
