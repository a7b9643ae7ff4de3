// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InFlightFunc reports whether a refresh cycle is running.
type InFlightFunc func() bool

// HealthHandler は /healthz を処理し、価格更新サイクルの実行状況も返します。
type HealthHandler struct {
	checks []InFlightFunc
}

// NewHealthHandler creates a HealthHandler. refresh_in_flight is true when any check reports true.
func NewHealthHandler(checks ...InFlightFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はHTTPメソッドに応じて応答し、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "refresh_in_flight": h.inFlight()})
	}
}

func (h *HealthHandler) inFlight() bool {
	for _, p := range h.checks {
		if p != nil && p() {
			return true
		}
	}
	return false
}
