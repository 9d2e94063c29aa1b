package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/pkg/logger"
)

// LoggerMiddleware writes one access log line per request, keyed by the
// matched route. The query string is not logged.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		logger.LogRequest(c.Request.Context(), logger.RequestLog{
			Method:   c.Request.Method,
			Route:    route,
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
			Bytes:    c.Writer.Size(),
		})
	}
}
