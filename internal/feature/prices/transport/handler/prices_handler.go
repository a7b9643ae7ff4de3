// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pricing_backend/internal/feature/prices/domain/entity"
	"pricing_backend/internal/feature/prices/transport/http/dto"
	"pricing_backend/internal/feature/prices/usecase"
)

// HistoryUsecase は価格参照のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	Latest(ctx context.Context) ([]entity.Snapshot, error)
	History(ctx context.Context, symbol string, limit int) ([]entity.Snapshot, error)
}

// SyncUsecase runs a persisted refresh cycle.
type SyncUsecase interface {
	RunRefreshCycle(ctx context.Context) (usecase.SyncReport, error)
}

// PricesHandler は価格の参照と同期トリガーを処理します。
type PricesHandler struct {
	history   HistoryUsecase
	sync      SyncUsecase
	allowCron bool
}

// NewPricesHandler は新しい PricesHandler を作成します。
// allowCron が false の場合、/cron は403を返します。
func NewPricesHandler(history HistoryUsecase, sync SyncUsecase, allowCron bool) *PricesHandler {
	return &PricesHandler{history: history, sync: sync, allowCron: allowCron}
}

// Get は最新価格一覧、または ?symbol= 指定時はその銘柄の履歴を返します。
//
// エンドポイント例:
// GET /prices
// GET /prices?symbol=AAPL&limit=50
func (h *PricesHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if symbol := c.Query("symbol"); symbol != "" {
		// 不正な値は0として扱い、既定の件数を使用
		limit, _ := strconv.Atoi(c.Query("limit"))
		rows, err := h.history.History(ctx, symbol, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if rows == nil {
			rows = []entity.Snapshot{}
		}
		c.JSON(http.StatusOK, dto.HistoryResponse{Symbol: symbol, History: rows})
		return
	}

	rows, err := h.history.Latest(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == nil {
		rows = []entity.Snapshot{}
	}
	c.JSON(http.StatusOK, dto.LatestResponse{Latest: rows})
}

// Cron は追跡銘柄の価格を取得してスナップショットを保存します。
//
// GET /cron
func (h *PricesHandler) Cron(c *gin.Context) {
	if !h.allowCron {
		c.JSON(http.StatusForbidden, gin.H{"error": "cron trigger is disabled"})
		return
	}

	// クライアントの切断で取得中のサイクルを中断しない
	rep, err := h.sync.RunRefreshCycle(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		if errors.Is(err, usecase.ErrNoTickers) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !rep.Started {
		c.JSON(http.StatusAccepted, gin.H{"skipped": true, "reason": "refresh already in flight"})
		return
	}

	captured := rep.Captured
	if captured == nil {
		captured = []entity.Snapshot{}
	}
	c.JSON(http.StatusOK, dto.CronResponse{
		Captured: captured,
		Symbols:  rep.Symbols,
		Failed:   rep.Summary.Failed,
		At:       rep.Summary.FinishedAt.UTC(),
	})
}
