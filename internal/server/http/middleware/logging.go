package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request using slog. Errors that handlers
// attach to the context via c.Error are included, and server failures log at
// Error level.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		args := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
		}
		if last := c.Errors.Last(); last != nil {
			args = append(args, slog.String("error", last.Error()))
		}

		if status >= http.StatusInternalServerError {
			logger.Error("http request", args...)
			return
		}
		logger.Info("http request", args...)
	}
}
