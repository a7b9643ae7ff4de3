package adapters

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

func seedHoldings() []entity.Holding {
	return []entity.Holding{
		{ID: "a", Ticker: "AAPL", AssetClass: entity.AssetClassEquity, Shares: 10},
		{ID: "b", Ticker: "USD", AssetClass: entity.AssetClassCashUSD, Shares: 100},
	}
}

func TestHoldingMemory_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())
	list := m.List()
	list[0].Shares = 999

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10.0, got.Shares)
}

func TestHoldingMemory_AddPrepends(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())
	m.Add(entity.Holding{ID: "c", Ticker: "MSFT"})

	list := m.List()
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestHoldingMemory_Remove(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())
	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"))

	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Len(t, m.List(), 1)
}

func TestHoldingMemory_Remove_DoesNotCorruptEarlierList(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory([]entity.Holding{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	before := m.List()
	require.True(t, m.Remove("a"))

	assert.Equal(t, []string{"a", "b", "c"}, []string{before[0].ID, before[1].ID, before[2].ID})
	after := m.List()
	assert.Equal(t, []string{"b", "c"}, []string{after[0].ID, after[1].ID})
}

func TestHoldingMemory_Update(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())

	ok := m.Update("b", func(h *entity.Holding) { h.Shares = 42 })
	assert.True(t, ok)
	got, _ := m.Get("b")
	assert.Equal(t, 42.0, got.Shares)

	called := false
	ok = m.Update("missing", func(h *entity.Holding) { called = true })
	assert.False(t, ok)
	assert.False(t, called, "fn must not run for a missing id")
}

func TestHoldingMemory_Replace(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())
	m.Replace([]entity.Holding{{ID: "z"}})

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, "z", list[0].ID)
}

func TestHoldingMemory_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	m := NewHoldingMemory(seedHoldings())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update("a", func(h *entity.Holding) { h.Shares++ })
			_ = m.List()
		}()
	}
	wg.Wait()

	got, _ := m.Get("a")
	assert.Equal(t, 110.0, got.Shares)
}
