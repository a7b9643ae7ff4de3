package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pricing_backend/internal/feature/tickers/domain/entity"
	"pricing_backend/internal/feature/tickers/transport/handler"
	"pricing_backend/internal/feature/tickers/usecase"
)

// mockTickerUsecase はTickerUsecaseインターフェースのモック実装です。
type mockTickerUsecase struct {
	ListFunc  func(ctx context.Context) ([]entity.Ticker, error)
	TrackFunc func(ctx context.Context, symbol string) (entity.Ticker, error)
}

func (m *mockTickerUsecase) List(ctx context.Context) ([]entity.Ticker, error) {
	return m.ListFunc(ctx)
}

func (m *mockTickerUsecase) Track(ctx context.Context, symbol string) (entity.Ticker, error) {
	return m.TrackFunc(ctx, symbol)
}

func TestTickerHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		mockList       func(ctx context.Context) ([]entity.Ticker, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			mockList: func(ctx context.Context) ([]entity.Ticker, error) {
				return []entity.Ticker{{ID: 1, Symbol: "AAPL", CreatedAt: created}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"tickers":[{"id":1,"symbol":"AAPL","createdAt":"2024-05-01T09:00:00Z"}]}`,
		},
		{
			name: "success: empty",
			mockList: func(ctx context.Context) ([]entity.Ticker, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"tickers":[]}`,
		},
		{
			name: "error: repository failure",
			mockList: func(ctx context.Context) ([]entity.Ticker, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"db down"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewTickerHandler(&mockTickerUsecase{ListFunc: tt.mockList})
			r := gin.New()
			r.GET("/tickers", h.List)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickers", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestTickerHandler_Track(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockTrack      func(ctx context.Context, symbol string) (entity.Ticker, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"symbol":"nvda"}`,
			mockTrack: func(ctx context.Context, symbol string) (entity.Ticker, error) {
				assert.Equal(t, "nvda", symbol)
				return entity.Ticker{ID: 4, Symbol: "NVDA"}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "error: empty symbol",
			body: `{"symbol":""}`,
			mockTrack: func(ctx context.Context, symbol string) (entity.Ticker, error) {
				return entity.Ticker{}, usecase.ErrSymbolRequired
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error: invalid json",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error: storage failure",
			body: `{"symbol":"AAPL"}`,
			mockTrack: func(ctx context.Context, symbol string) (entity.Ticker, error) {
				return entity.Ticker{}, errors.New("disk full")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewTickerHandler(&mockTickerUsecase{TrackFunc: tt.mockTrack})
			r := gin.New()
			r.POST("/tickers", h.Track)

			req := httptest.NewRequest(http.MethodPost, "/tickers", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
