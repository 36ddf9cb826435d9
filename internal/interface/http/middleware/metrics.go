package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/pkg/metrics"
)

// Metrics Prometheus指标采集中间件
// path标签使用路由模板(/api/v1/customers/:id)而非实际路径,
// 避免ID参数导致标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			// 未匹配到路由(404),统一归类避免任意路径打爆标签
			path = "unmatched"
		}

		metrics.HTTPRequestsInProgress.Inc()
		startTime := time.Now()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(startTime).Seconds())
	}
}
