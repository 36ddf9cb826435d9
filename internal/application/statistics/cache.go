package statistics

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/crm/pkg/metrics"
)

// ReportCache 报表缓存接口,由redis.ReportCache实现
// 统计报表是重查询(多表JOIN+GROUP BY),短TTL缓存足以挡住绝大部分压力
type ReportCache interface {
	// Get 读取缓存,命中时反序列化到dest并返回true
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set 写入缓存
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// loadCached 读缓存,命中返回true;缓存故障只记日志不阻断查询
func loadCached(ctx context.Context, cache ReportCache, key string, dest any) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[statistics] 读取报表缓存失败 key=%s: %v", key, err)
		metrics.StatsCacheHitsTotal.WithLabelValues("error").Inc()
		return false
	}
	if hit {
		metrics.StatsCacheHitsTotal.WithLabelValues("hit").Inc()
		return true
	}
	metrics.StatsCacheHitsTotal.WithLabelValues("miss").Inc()
	return false
}

// storeCached 写缓存,失败只记日志
func storeCached(ctx context.Context, cache ReportCache, key string, value any, ttl time.Duration) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, value, ttl); err != nil {
		log.Printf("[statistics] 写入报表缓存失败 key=%s: %v", key, err)
	}
}
