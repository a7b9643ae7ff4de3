package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pricing_backend/internal/feature/symbolsearch/domain/entity"
	"pricing_backend/internal/feature/symbolsearch/usecase"
)

// mockSearchUsecase はSearchUsecaseインターフェースのモック実装です。
type mockSearchUsecase struct {
	SearchFunc func(ctx context.Context, query string) ([]entity.SymbolMatch, error)
}

func (m *mockSearchUsecase) Search(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, query string) ([]entity.SymbolMatch, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns matches",
			url:  "/symbols/search?q=apple",
			mockFunc: func(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
				return []entity.SymbolMatch{
					{Symbol: "AAPL", ShortName: "Apple Inc.", LongName: "Apple Inc.", Exchange: "NMS", QuoteType: "EQUITY"},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"results":[{"symbol":"AAPL","shortname":"Apple Inc.","longname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"}]}`,
		},
		{
			name: "success: no matches",
			url:  "/symbols/search?q=zzzz",
			mockFunc: func(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"results":[]}`,
		},
		{
			name: "failure: empty query",
			url:  "/symbols/search",
			mockFunc: func(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
				return nil, usecase.ErrEmptyQuery
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"query is required"}`,
		},
		{
			name: "failure: upstream error",
			url:  "/symbols/search?q=apple",
			mockFunc: func(ctx context.Context, query string) ([]entity.SymbolMatch, error) {
				return nil, fmt.Errorf("%w: boom", usecase.ErrUpstream)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"symbol search failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewSearchHandler(&mockSearchUsecase{SearchFunc: tt.mockFunc})
			router := gin.New()
			router.GET("/symbols/search", h.Search)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
