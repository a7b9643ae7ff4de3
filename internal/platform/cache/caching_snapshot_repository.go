// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pricing_backend/internal/feature/prices/domain/entity"
	"pricing_backend/internal/feature/prices/usecase"
)

// CachingSnapshotRepository decorates a SnapshotRepository with Redis caching.
// Reads go through the cache; Append invalidates the entries that may contain the symbol.
type CachingSnapshotRepository struct {
	inner     usecase.SnapshotRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SnapshotRepository = (*CachingSnapshotRepository)(nil)

// NewCachingSnapshotRepository decorates a SnapshotRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "prices".
// A nil rdb bypasses the cache entirely.
func NewCachingSnapshotRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SnapshotRepository, namespace string) *CachingSnapshotRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingSnapshotRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Append stores the snapshot and invalidates the symbol's history and every latest-price entry.
func (c *CachingSnapshotRepository) Append(ctx context.Context, s entity.Snapshot) (entity.Snapshot, error) {
	stored, err := c.inner.Append(ctx, s)
	if err != nil {
		return entity.Snapshot{}, err
	}
	if c.rdb == nil {
		return stored, nil
	}
	// Best effort: a stale entry expires with the TTL
	_ = c.deleteByPattern(ctx, c.historyPrefix(stored.Symbol)+"*")
	_ = c.deleteByPattern(ctx, c.latestPrefix()+"*")
	return stored, nil
}

// LatestPerSymbol returns the newest snapshot per symbol, checking the cache first.
func (c *CachingSnapshotRepository) LatestPerSymbol(ctx context.Context, symbols []string) ([]entity.Snapshot, error) {
	if c.rdb == nil {
		return c.inner.LatestPerSymbol(ctx, symbols)
	}
	key := c.latestPrefix() + safe(strings.Join(symbols, ","))
	return c.readThrough(ctx, key, func() ([]entity.Snapshot, error) {
		return c.inner.LatestPerSymbol(ctx, symbols)
	})
}

// History returns the symbol's history, checking the cache first.
func (c *CachingSnapshotRepository) History(ctx context.Context, symbol string, limit int) ([]entity.Snapshot, error) {
	if c.rdb == nil {
		return c.inner.History(ctx, symbol, limit)
	}
	key := fmt.Sprintf("%s%d", c.historyPrefix(symbol), limit)
	return c.readThrough(ctx, key, func() ([]entity.Snapshot, error) {
		return c.inner.History(ctx, symbol, limit)
	})
}

func (c *CachingSnapshotRepository) readThrough(ctx context.Context, key string, load func() ([]entity.Snapshot, error)) ([]entity.Snapshot, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Snapshot
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingSnapshotRepository) historyPrefix(symbol string) string {
	return fmt.Sprintf("%s:history:%s:", c.namespace, safe(symbol))
}

func (c *CachingSnapshotRepository) latestPrefix() string {
	return c.namespace + ":latest:"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingSnapshotRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
