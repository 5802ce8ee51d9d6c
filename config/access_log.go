package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Errors gin collected while
// handling it, such as a failed response render, are logged at error level.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		switch {
		case len(c.Errors) > 0:
			log.Errorw("request", append(fields, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
