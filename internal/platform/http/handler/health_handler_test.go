package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

type healthBody struct {
	Status          string `json:"status"`
	RefreshInFlight bool   `json:"refresh_in_flight"`
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		checks   []InFlightFunc
		expected bool
	}{
		{"no checks", nil, false},
		{"idle", []InFlightFunc{func() bool { return false }}, false},
		{"one busy", []InFlightFunc{func() bool { return false }, func() bool { return true }}, true},
		{"nil check ignored", []InFlightFunc{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(NewHealthHandler(tt.checks...)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			require.Equal(t, http.StatusOK, w.Code)
			var body healthBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "ok", body.Status)
			assert.Equal(t, tt.expected, body.RefreshInFlight)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func TestHealth_HEAD(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	setupRouter(NewHealthHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestHealth_OPTIONS(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	setupRouter(NewHealthHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
