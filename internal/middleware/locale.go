package middleware

import (
	"github.com/gin-gonic/gin"

	"tasktrack-api/pkg/locale"
)

// Locale returns a middleware that extracts the locale from the "lang"
// header and stores it in the request context. Invalid or missing values
// fall back to the default locale.
func (m Middleware) Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := locale.ParseLang(c.GetHeader("lang"))

		ctx := locale.SetLangToContext(c.Request.Context(), lang)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
