package http

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/middleware"
)

// MapRoutes registers the realtime routes.
func (h *Handler) MapRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	// The WebSocket endpoint skips the auth middleware because the
	// browser WebSocket API cannot set an Authorization header. The
	// handshake authenticates instead.
	r.GET("/ws", h.HandleWebSocket)

	stats := r.Group("/realtime")
	stats.Use(mw.Auth())
	{
		stats.GET("/stats", h.GetStats)
	}
}
