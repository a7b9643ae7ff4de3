package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	priceadapters "pricing_backend/internal/feature/prices/adapters"
	priceusecase "pricing_backend/internal/feature/prices/usecase"
	tickeradapters "pricing_backend/internal/feature/tickers/adapters"
	tickerusecase "pricing_backend/internal/feature/tickers/usecase"
	"pricing_backend/internal/platform/cache"
)

// Models are the tables migrated at startup.
func Models() []any {
	return []any{&tickeradapters.TickerModel{}, &priceadapters.SnapshotModel{}}
}

// NewTickerRepository returns the gorm-backed repository, or an in-memory one when db is nil.
func NewTickerRepository(db *gorm.DB) tickerusecase.TickerRepository {
	if db == nil {
		return tickeradapters.NewTickerMemory()
	}
	return tickeradapters.NewTickerRepository(db)
}

// NewSnapshotRepository creates a SnapshotRepository implementation.
// If Redis is available, reads go through the Redis cache first.
// Without a database the snapshots are kept in memory.
func NewSnapshotRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) priceusecase.SnapshotRepository {
	var inner priceusecase.SnapshotRepository
	if db == nil {
		inner = priceadapters.NewSnapshotMemory()
	} else {
		inner = priceadapters.NewSnapshotRepository(db)
	}
	if rdb == nil {
		return inner
	}
	return cache.NewCachingSnapshotRepository(rdb, ttl, inner, "prices")
}
