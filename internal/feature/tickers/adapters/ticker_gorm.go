// Package adapters はtickersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pricing_backend/internal/feature/tickers/domain/entity"
	"pricing_backend/internal/feature/tickers/usecase"
)

// TickerModel は tracked_tickers テーブルのGORMモデルです。
type TickerModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName はGORMが使用するテーブル名を返します。
func (TickerModel) TableName() string { return "tracked_tickers" }

func (m TickerModel) toEntity() entity.Ticker {
	return entity.Ticker{ID: m.ID, Symbol: m.Symbol, CreatedAt: m.CreatedAt}
}

// tickerGorm はTickerRepositoryインターフェースのGORM実装です。
type tickerGorm struct {
	db *gorm.DB
}

var _ usecase.TickerRepository = (*tickerGorm)(nil)

// NewTickerRepository は指定されたDB接続でリポジトリを生成します。
func NewTickerRepository(db *gorm.DB) *tickerGorm {
	return &tickerGorm{db: db}
}

// EnsureSeeded はテーブルが空の場合のみ defaults を登録します。
// 件数確認と挿入は同一トランザクション内で行い、重複は ON CONFLICT DO NOTHING で無視します。
func (r *tickerGorm) EnsureSeeded(ctx context.Context, defaults []string) error {
	if len(defaults) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&TickerModel{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		rows := make([]TickerModel, 0, len(defaults))
		for _, s := range defaults {
			rows = append(rows, TickerModel{Symbol: s})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).Create(&rows).Error
	})
}

// Create は symbol を登録し、登録済みの場合は既存の行を返します。
func (r *tickerGorm) Create(ctx context.Context, symbol string) (entity.Ticker, error) {
	db := r.db.WithContext(ctx)
	row := TickerModel{Symbol: symbol}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return entity.Ticker{}, err
	}

	var stored TickerModel
	if err := db.Where("symbol = ?", symbol).First(&stored).Error; err != nil {
		return entity.Ticker{}, err
	}
	return stored.toEntity(), nil
}

// List は登録順にすべての銘柄を返します。
func (r *tickerGorm) List(ctx context.Context) ([]entity.Ticker, error) {
	var rows []TickerModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Ticker, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
