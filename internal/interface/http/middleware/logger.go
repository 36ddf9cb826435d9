package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
// 设计说明:
// 1. 每个请求生成唯一的请求ID,写入响应头便于排查问题
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 不记录请求体:可能很大,且可能包含敏感信息
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		statusColor := getStatusColor(c.Writer.Status())
		resetColor := "\033[0m"

		fmt.Printf(
			statusColor+"[CRM] %s | %3d | %13v | %15s | %-7s %s"+resetColor+" %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 慢请求警告
		if latency > 3*time.Second {
			fmt.Printf("[WARN] Slow request: %s %s took %v (request_id=%s)\n",
				c.Request.Method, c.Request.URL.Path, latency, requestID)
		}
	}
}

// getStatusColor 根据HTTP状态码返回终端颜色
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m" // 绿色
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m" // 青色
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // 黄色
	default:
		return "\033[31m" // 红色
	}
}
