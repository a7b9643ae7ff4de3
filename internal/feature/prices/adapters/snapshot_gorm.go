// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pricing_backend/internal/feature/prices/domain/entity"
	"pricing_backend/internal/feature/prices/usecase"
)

// SnapshotModel は price_snapshots テーブルのGORMモデルです。
// (symbol, created_at) の複合インデックスで最新値の検索と履歴取得を行います。
type SnapshotModel struct {
	ID            uint      `gorm:"primaryKey"`
	Symbol        string    `gorm:"size:32;not null;index:idx_snapshots_symbol_created,priority:1"`
	Price         float64   `gorm:"not null"`
	Currency      *string   `gorm:"size:8"`
	Change        *float64
	ChangePercent *float64
	CreatedAt     time.Time `gorm:"not null;index:idx_snapshots_symbol_created,priority:2"`
}

// TableName はGORMが使用するテーブル名を返します。
func (SnapshotModel) TableName() string { return "price_snapshots" }

func toModel(s entity.Snapshot) SnapshotModel {
	return SnapshotModel{
		Symbol:        s.Symbol,
		Price:         s.Price,
		Currency:      s.Currency,
		Change:        s.Change,
		ChangePercent: s.ChangePercent,
		CreatedAt:     s.CreatedAt,
	}
}

func (m SnapshotModel) toEntity() entity.Snapshot {
	return entity.Snapshot{
		ID:            m.ID,
		Symbol:        m.Symbol,
		Price:         m.Price,
		Currency:      m.Currency,
		Change:        m.Change,
		ChangePercent: m.ChangePercent,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

// snapshotGorm はSnapshotRepositoryインターフェースのGORM実装です。
type snapshotGorm struct {
	db *gorm.DB
}

var _ usecase.SnapshotRepository = (*snapshotGorm)(nil)

// NewSnapshotRepository は指定されたDB接続でリポジトリを生成します。
func NewSnapshotRepository(db *gorm.DB) *snapshotGorm {
	return &snapshotGorm{db: db}
}

// Append はスナップショットを1件追加します。CreatedAt が未設定の場合は現在時刻を使用します。
func (r *snapshotGorm) Append(ctx context.Context, s entity.Snapshot) (entity.Snapshot, error) {
	m := toModel(s)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Snapshot{}, err
	}
	return m.toEntity(), nil
}

// LatestPerSymbol は銘柄ごとの最新スナップショットを symbols の順で返します。
// 同時刻の行が複数ある場合は id が大きい方を採用します。
func (r *snapshotGorm) LatestPerSymbol(ctx context.Context, symbols []string) ([]entity.Snapshot, error) {
	if len(symbols) == 0 {
		return []entity.Snapshot{}, nil
	}
	db := r.db.WithContext(ctx)

	latest := db.Model(&SnapshotModel{}).
		Select("symbol, MAX(created_at) AS max_created_at").
		Where("symbol IN ?", symbols).
		Group("symbol")

	var rows []SnapshotModel
	if err := db.Table("price_snapshots AS p").
		Select("p.*").
		Joins("JOIN (?) AS l ON l.symbol = p.symbol AND l.max_created_at = p.created_at", latest).
		Order("p.id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	bySymbol := make(map[string]SnapshotModel, len(rows))
	for _, m := range rows {
		if _, ok := bySymbol[m.Symbol]; !ok {
			bySymbol[m.Symbol] = m
		}
	}
	out := make([]entity.Snapshot, 0, len(bySymbol))
	for _, s := range symbols {
		if m, ok := bySymbol[s]; ok {
			out = append(out, m.toEntity())
			delete(bySymbol, s)
		}
	}
	return out, nil
}

// History は銘柄の履歴を新しい順に最大 limit 件返します。
func (r *snapshotGorm) History(ctx context.Context, symbol string, limit int) ([]entity.Snapshot, error) {
	var rows []SnapshotModel
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Snapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
