package http

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/middleware"
)

// MapRoutes registers the task routes.
func (h Handler) MapRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	tasks := r.Group("/tasks")
	tasks.Use(mw.Auth())
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.Get)
		tasks.GET("/:id", h.Detail)
		tasks.PUT("/:id", h.Update)
		tasks.PATCH("/:id/status", h.UpdateStatus)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/report", h.SubmitReport)
		tasks.GET("/:id/report", h.DownloadReport)
	}
}
