// Package usecase implements persisted price synchronization and history queries.
package usecase

import (
	"context"

	"pricing_backend/internal/feature/prices/domain/entity"
)

// SnapshotRepository abstracts the persistence layer for price snapshots.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SnapshotRepository interface {
	// Append inserts s and returns the stored row.
	Append(ctx context.Context, s entity.Snapshot) (entity.Snapshot, error)
	// LatestPerSymbol returns the newest snapshot of each requested symbol that has one,
	// in the order of symbols.
	LatestPerSymbol(ctx context.Context, symbols []string) ([]entity.Snapshot, error)
	// History returns up to limit snapshots of symbol, newest first.
	History(ctx context.Context, symbol string, limit int) ([]entity.Snapshot, error)
}
