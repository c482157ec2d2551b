package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
)

// Recovery converts panics into 500 responses instead of dropped
// connections, logging the panic value and stack context.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					logging.Any("panic", rec),
					logging.String("path", c.Request.URL.Path),
					logging.String("request_id", GetRequestID(c)),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    http.StatusText(http.StatusInternalServerError),
					"message": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
