package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pricing_backend/internal/feature/prices/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&SnapshotModel{}), "failed to migrate table")
	return db
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func appendSnap(t *testing.T, repo *snapshotGorm, symbol string, price float64, at time.Time) entity.Snapshot {
	t.Helper()
	s, err := repo.Append(context.Background(), entity.Snapshot{Symbol: symbol, Price: price, CreatedAt: at})
	require.NoError(t, err)
	return s
}

func TestSnapshotRepository_Append(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	cur := "USD"
	chg := 1.5

	got, err := repo.Append(context.Background(), entity.Snapshot{
		Symbol: "AAPL", Price: 190.12, Currency: &cur, Change: &chg, CreatedAt: base,
	})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	require.NotNil(t, got.Currency)
	assert.Equal(t, "USD", *got.Currency)
	assert.Nil(t, got.ChangePercent)

	hist, err := repo.History(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, 190.12, hist[0].Price)
	assert.True(t, base.Equal(hist[0].CreatedAt))
}

func TestSnapshotRepository_Append_DefaultsCreatedAt(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	got, err := repo.Append(context.Background(), entity.Snapshot{Symbol: "MSFT", Price: 320})
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSnapshotRepository_History(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		count     int
		limit     int
		wantCount int
	}{
		{"no snapshots", 0, 10, 0},
		{"one snapshot", 1, 10, 1},
		{"five snapshots", 5, 10, 5},
		{"five snapshots, limited", 5, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewSnapshotRepository(setupTestDB(t))
			for i := 0; i < tt.count; i++ {
				appendSnap(t, repo, "AAPL", float64(100+i), base.Add(time.Duration(i)*time.Minute))
			}
			appendSnap(t, repo, "MSFT", 1, base.Add(time.Hour))

			got, err := repo.History(context.Background(), "AAPL", tt.limit)
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			for i := range got {
				assert.Equal(t, "AAPL", got[i].Symbol)
				assert.Equal(t, float64(100+tt.count-1-i), got[i].Price, "newest first")
			}
		})
	}
}

func TestSnapshotRepository_History_TieBreaksOnID(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	first := appendSnap(t, repo, "AAPL", 1, base)
	second := appendSnap(t, repo, "AAPL", 2, base)

	got, err := repo.History(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestSnapshotRepository_LatestPerSymbol(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	for i := 0; i < 5; i++ {
		appendSnap(t, repo, "AAPL", float64(100+i), base.Add(time.Duration(i)*time.Minute))
	}
	// 遅れて届いた古い時刻の行は最新にならない
	appendSnap(t, repo, "AAPL", 50, base.Add(-time.Hour))
	appendSnap(t, repo, "MSFT", 321, base.Add(time.Hour))
	appendSnap(t, repo, "MSFT", 320, base)
	appendSnap(t, repo, "GOOGL", 140, base)

	got, err := repo.LatestPerSymbol(context.Background(), []string{"MSFT", "TSLA", "AAPL"})
	require.NoError(t, err)
	require.Len(t, got, 2, "symbols without data are omitted")

	assert.Equal(t, "MSFT", got[0].Symbol)
	assert.Equal(t, 321.0, got[0].Price)
	assert.Equal(t, "AAPL", got[1].Symbol)
	assert.Equal(t, 104.0, got[1].Price)
}

func TestSnapshotRepository_LatestPerSymbol_SameTimestamp(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	appendSnap(t, repo, "AAPL", 1, base)
	last := appendSnap(t, repo, "AAPL", 2, base)

	got, err := repo.LatestPerSymbol(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, last.ID, got[0].ID)
}

func TestSnapshotRepository_LatestPerSymbol_Empty(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))

	got, err := repo.LatestPerSymbol(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.LatestPerSymbol(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotRepository_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	repo := NewSnapshotRepository(setupTestDB(t))
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := repo.Append(context.Background(), entity.Snapshot{
				Symbol: "AAPL", Price: float64(i + 1), CreatedAt: base.Add(time.Duration(i) * time.Second),
			})
			errs <- err
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-errs, fmt.Sprintf("append %d", i))
	}

	got, err := repo.History(context.Background(), "AAPL", 100)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
