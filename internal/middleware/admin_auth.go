package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "yieldvault/internal/errors"
)

// AdminKeyMiddleware guards catalog management routes with the X-API-Key
// header. With no key configured the routes are disabled.
func AdminKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithError(c, &apperrors.AppError{
				Code:       "CATALOG_NOT_CONFIGURED",
				Message:    "Catalog management is not configured",
				StatusCode: http.StatusServiceUnavailable,
			})
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, &apperrors.AppError{
				Code:       "INVALID_API_KEY",
				Message:    "Invalid or missing API key",
				StatusCode: http.StatusUnauthorized,
			})
			return
		}
		c.Next()
	}
}
