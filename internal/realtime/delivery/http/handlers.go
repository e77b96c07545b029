package http

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/response"
)

// HandleWebSocket upgrades the HTTP connection to a WebSocket connection.
// Authentication happens in-band: the first frame must be an authenticate
// event carrying a valid JWT, so no auth middleware runs on this route.
// @Summary Connect to WebSocket
// @Description Upgrade HTTP to WebSocket for real-time task and presence events. The first frame must be {"event":"authenticate","data":{"token":"<jwt>"}}.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [GET]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "upgrade failed: %v", err)
		return
	}

	if err := h.uc.Attach(c.Request.Context(), realtime.AttachInput{Conn: conn}); err != nil {
		h.logger.Errorf(c.Request.Context(), "attach failed: %v", err)
		conn.Close()
		return
	}
}

// GetStats returns the hub connection counters.
// @Summary Get realtime stats
// @Description Current active connection and unique user counts.
// @Tags Realtime
// @Produce json
// @Success 200 {object} realtime.HubStats
// @Security BearerAuth
// @Router /realtime/stats [GET]
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.GetStats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats)
}
