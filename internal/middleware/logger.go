package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorLogger logs every request, the errors handlers attach with c.Error,
// and recovers from panics with a 500 envelope.
func ErrorLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic recovered",
					append(requestFields(c, start), zap.Any("panic", recovered), zap.ByteString("stack", debug.Stack()))...)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "INTERNAL_SERVER_ERROR", "message": "Internal Server Error"},
				})
				return
			}

			fields := requestFields(c, start)
			for _, err := range c.Errors {
				log.Error("request error", append(fields, zap.String("type", fmt.Sprintf("%v", err.Type)), zap.Error(err.Err))...)
			}
			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				log.Error("request failed", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("request rejected", fields...)
			default:
				log.Info("request", fields...)
			}
		}()

		c.Next()
	}
}

func requestFields(c *gin.Context, start time.Time) []zap.Field {
	return []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
		zap.Int64("user_id", c.GetInt64(ContextUserID)),
		zap.String("request_id", c.GetString(ContextRequestID)),
		zap.Duration("latency", time.Since(start)),
	}
}
