// Package handler はholdingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing_backend/internal/feature/holdings/domain/entity"
	"pricing_backend/internal/feature/holdings/transport/http/dto"
	"pricing_backend/internal/feature/holdings/usecase"
	"pricing_backend/internal/shared/cycle"
)

// HoldingsUsecase は保有銘柄操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HoldingsUsecase interface {
	Valuation() usecase.Valuation
	Add(in usecase.AddHoldingInput) (entity.Holding, error)
	UpdateShares(id string, shares float64) (entity.Holding, error)
	Remove(id string) error
	Reset() []entity.Holding
}

// Refresher runs price refresh cycles over the holdings.
type Refresher interface {
	RunRefreshCycle(ctx context.Context) (cycle.Summary, bool)
	Status() string
}

// HoldingsHandler は保有銘柄のHTTPリクエストを処理します。
type HoldingsHandler struct {
	uc        HoldingsUsecase
	refresher Refresher
}

// NewHoldingsHandler は新しい HoldingsHandler を作成します。
func NewHoldingsHandler(uc HoldingsUsecase, refresher Refresher) *HoldingsHandler {
	return &HoldingsHandler{uc: uc, refresher: refresher}
}

// List は評価額付きの保有銘柄一覧を返します。
//
// GET /holdings
func (h *HoldingsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio())
}

// Add は保有銘柄を先頭に追加し、価格取得をバックグラウンドで開始します。
//
// POST /holdings
func (h *HoldingsHandler) Add(c *gin.Context) {
	var req dto.AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.uc.Add(usecase.AddHoldingInput{
		Ticker:     req.Ticker,
		AssetClass: entity.AssetClass(req.AssetClass),
		Shares:     req.Shares,
		Price:      req.Price,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHoldingResponse(created, nil))
}

// Update は数量を変更します。
//
// PATCH /holdings/:id
func (h *HoldingsHandler) Update(c *gin.Context) {
	var req dto.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.uc.UpdateShares(c.Param("id"), *req.Shares)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHoldingResponse(updated, nil))
}

// Delete は保有銘柄を削除します。
//
// DELETE /holdings/:id
func (h *HoldingsHandler) Delete(c *gin.Context) {
	if err := h.uc.Remove(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Refresh は全保有銘柄の価格を取得し直します。実行中のサイクルがある場合は202を返します。
//
// POST /holdings/refresh
func (h *HoldingsHandler) Refresh(c *gin.Context) {
	// クライアントの切断で取得中のサイクルを中断しない
	summary, started := h.refresher.RunRefreshCycle(context.WithoutCancel(c.Request.Context()))
	if !started {
		c.JSON(http.StatusAccepted, gin.H{"status": "skipped", "reason": "refresh already in flight"})
		return
	}
	c.JSON(http.StatusOK, dto.RefreshResponse{
		Status:    summary.Status(),
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Skipped:   summary.Skipped,
	})
}

// Reset は初期ポートフォリオに戻します。
//
// POST /holdings/reset
func (h *HoldingsHandler) Reset(c *gin.Context) {
	h.uc.Reset()
	c.JSON(http.StatusOK, h.portfolio())
}

func (h *HoldingsHandler) portfolio() dto.PortfolioResponse {
	v := h.uc.Valuation()
	out := dto.PortfolioResponse{
		Holdings:       make([]dto.HoldingResponse, 0, len(v.Lines)),
		Total:          v.Total.Round(2).InexactFloat64(),
		FormattedTotal: v.FormattedTotal(),
		Currency:       v.Currency,
		Count:          len(v.Lines),
		Status:         h.refresher.Status(),
	}
	for i := range v.Lines {
		out.Holdings = append(out.Holdings, toHoldingResponse(v.Lines[i].Holding, &v.Lines[i]))
	}
	return out
}

func toHoldingResponse(hd entity.Holding, line *usecase.ValuationLine) dto.HoldingResponse {
	r := dto.HoldingResponse{
		ID:           hd.ID,
		Ticker:       hd.Ticker,
		AssetClass:   string(hd.AssetClass),
		Shares:       hd.Shares,
		StaticPrice:  hd.StaticPrice,
		MarketPrice:  hd.MarketPrice,
		PriceSymbol:  hd.PriceSymbol,
		LoadingPrice: hd.LoadingPrice,
		PriceError:   hd.PriceError,
	}
	if line != nil {
		r.Price = line.Price.InexactFloat64()
		r.Value = line.Value.Round(2).InexactFloat64()
		r.Weight = line.Weight.Round(2).InexactFloat64()
	}
	return r
}

func (h *HoldingsHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrHoldingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrTickerRequired),
		errors.Is(err, usecase.ErrAssetClassEmpty),
		errors.Is(err, usecase.ErrInvalidShares),
		errors.Is(err, usecase.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
