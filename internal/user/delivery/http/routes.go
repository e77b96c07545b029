package http

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/middleware"
)

// MapRoutes registers the auth and user routes.
func (h Handler) MapRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := r.Group("/users")
	users.Use(mw.Auth())
	{
		users.GET("", h.Get)
		users.GET("/status", h.Statuses)
		users.GET("/me", h.Me)
		users.GET("/:id", h.Detail)
		users.PUT("/:id", h.Update)
	}
}
