package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// getDB 从context获取事务DB,没有事务时回退到默认连接
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// applySort 按白名单字段排序
// SortBy不在白名单时使用defaultColumn,SortDir非"desc"时一律升序
func applySort(query *gorm.DB, sortBy, sortDir string, allowed map[string]string, defaultColumn string) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		column = defaultColumn
	}
	direction := "ASC"
	if strings.EqualFold(sortDir, "desc") {
		direction = "DESC"
	}
	return query.Order(column + " " + direction)
}

// applyPage 分页,页码从0开始
func applyPage(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return query.Limit(pageSize).Offset(page * pageSize)
}
