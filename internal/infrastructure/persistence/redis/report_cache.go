package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// ReportCache 销售报表缓存
// 设计说明:
// 1. 报表结果JSON序列化后整体存储,TTL到期自动失效
// 2. 不做主动失效:报表允许短暂滞后,写路径不感知缓存
// 3. Key设计:stats:{report}[:参数]
type ReportCache struct {
	client *redis.Client
}

// NewReportCache 创建报表缓存
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get 读取缓存,命中时反序列化到dest并返回true
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Newf(apperrors.ErrCodeRedisError, "读取报表缓存失败: %v", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// 反序列化失败按未命中处理,同时删除脏数据
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// Set 写入缓存
func (c *ReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, "序列化报表失败")
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return apperrors.Newf(apperrors.ErrCodeRedisError, "写入报表缓存失败: %v", err)
	}
	return nil
}
