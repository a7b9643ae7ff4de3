package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing_backend/internal/feature/prices/adapters"
	"pricing_backend/internal/feature/prices/domain/entity"
)

// TestCachingSnapshotRepository_Miniredis はインメモリRedisに対して読み込みキャッシュと無効化を通しで検証します。
func TestCachingSnapshotRepository_Miniredis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	repo := NewCachingSnapshotRepository(rdb, time.Minute, adapters.NewSnapshotMemory(), "prices")

	_, err := repo.Append(ctx, entity.Snapshot{Symbol: "AAPL", Price: 190, CreatedAt: snapAt})
	require.NoError(t, err)

	hist, err := repo.History(ctx, "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.True(t, mr.Exists("prices:history:AAPL:10"))

	latest, err := repo.LatestPerSymbol(ctx, []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.True(t, mr.Exists("prices:latest:AAPL"))
	assert.Equal(t, time.Minute, mr.TTL("prices:latest:AAPL"))

	_, err = repo.Append(ctx, entity.Snapshot{Symbol: "AAPL", Price: 195, CreatedAt: snapAt.Add(time.Minute)})
	require.NoError(t, err)
	assert.False(t, mr.Exists("prices:history:AAPL:10"))
	assert.False(t, mr.Exists("prices:latest:AAPL"))

	latest, err = repo.LatestPerSymbol(ctx, []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 195.0, latest[0].Price)
}
