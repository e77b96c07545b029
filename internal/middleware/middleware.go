package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/response"
)

// Auth returns a middleware that validates Bearer tokens and puts the
// authenticated scope in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.l.Warnf(c.Request.Context(), "Missing Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(c.Request.Context(), "Invalid Authorization header format | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := m.jwt.VerifyToken(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := model.Scope{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   model.Role(claims.Role),
		}

		ctx := model.SetScopeToContext(c.Request.Context(), sc)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
