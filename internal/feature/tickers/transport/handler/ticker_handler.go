// Package handler はtickersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing_backend/internal/feature/tickers/domain/entity"
	"pricing_backend/internal/feature/tickers/transport/http/dto"
	"pricing_backend/internal/feature/tickers/usecase"
)

// TickerUsecase は追跡銘柄に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TickerUsecase interface {
	List(ctx context.Context) ([]entity.Ticker, error)
	Track(ctx context.Context, symbol string) (entity.Ticker, error)
}

// TickerHandler は追跡銘柄に関するHTTPリクエストを処理します。
type TickerHandler struct {
	uc TickerUsecase
}

// NewTickerHandler は新しい TickerHandler を作成します。
func NewTickerHandler(uc TickerUsecase) *TickerHandler {
	return &TickerHandler{uc: uc}
}

// List は追跡中の銘柄一覧を返します。未登録の場合は既定の銘柄を登録してから返します。
func (h *TickerHandler) List(c *gin.Context) {
	ts, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.TickerItem, 0, len(ts))
	for _, t := range ts {
		out = append(out, toItem(t))
	}
	c.JSON(http.StatusOK, dto.TickerList{Tickers: out})
}

// Track は銘柄を追跡対象に追加します。
func (h *TickerHandler) Track(c *gin.Context) {
	var req dto.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.uc.Track(c.Request.Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toItem(t))
}

func toItem(t entity.Ticker) dto.TickerItem {
	return dto.TickerItem{ID: t.ID, Symbol: t.Symbol, CreatedAt: t.CreatedAt.UTC()}
}
