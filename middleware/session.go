package middleware

import (
	"time"

	"jobboard/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "requestId"
)

// RequestIDMiddleware tạo request id nếu client chưa gửi và gán vào context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ctxRequestID, requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)

		c.Next()
	}
}

// RequestID lấy request id của request hiện tại
func RequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// RequestLogger ghi một dòng log cho mỗi request, kèm lỗi nếu có
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if len(c.Errors) > 0 {
			log.Error("[%s] %s %s %d %s: %s", RequestID(c), c.Request.Method, c.FullPath(), status, latency, c.Errors.String())
			return
		}
		if status >= 500 {
			log.Error("[%s] %s %s %d %s", RequestID(c), c.Request.Method, c.FullPath(), status, latency)
			return
		}
		log.Debug("[%s] %s %s %d %s", RequestID(c), c.Request.Method, c.FullPath(), status, latency)
	}
}
