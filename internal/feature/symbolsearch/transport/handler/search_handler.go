package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing_backend/internal/feature/symbolsearch/domain/entity"
	"pricing_backend/internal/feature/symbolsearch/transport/http/dto"
	"pricing_backend/internal/feature/symbolsearch/usecase"
)

// SearchUsecase は銘柄検索のユースケースインターフェースです。
type SearchUsecase interface {
	Search(ctx context.Context, query string) ([]entity.SymbolMatch, error)
}

// SearchHandler は銘柄検索のHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler は新しい SearchHandler を作成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search は ?q= に一致する銘柄候補を返します。
// クエリが空の場合は400、上流の検索APIが失敗した場合は502を返します。
func (h *SearchHandler) Search(c *gin.Context) {
	matches, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "symbol search failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	out := make([]dto.SearchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.SearchResult{
			Symbol:    m.Symbol,
			ShortName: m.ShortName,
			LongName:  m.LongName,
			Exchange:  m.Exchange,
			QuoteType: m.QuoteType,
			Currency:  m.Currency,
		})
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Results: out})
}
