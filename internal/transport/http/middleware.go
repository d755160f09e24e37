package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an id, reusing the caller's
// header when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// LoggingMiddleware prints request/response metrics. Server errors are logged
// with the full error chain.
func LoggingMiddleware(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if err := c.Errors.Last(); err != nil {
			fields = append(fields, "error", err.Err.Error())
			if c.Writer.Status() >= 500 {
				log.Errorw("request failed", fields...)
				return
			}
			log.Warnw("request rejected", fields...)
			return
		}
		log.Infow("request completed", fields...)
	}
}
