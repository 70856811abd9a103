package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const loggerKey = "Logger"

// InjectLogger puts a request-scoped logger into the context and logs the
// request once it completes.
func InjectLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		l := base.With(zap.String("method", c.Request.Method), zap.String("path", c.FullPath()))
		c.Set(loggerKey, l)

		c.Next()

		l.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// Logger returns the request logger, or a no-op logger outside InjectLogger.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
