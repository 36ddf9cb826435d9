package dto

import "strings"

// DefaultPageSize 默认每页数量
const DefaultPageSize = 10

// MaxPageSize 每页数量上限
const MaxPageSize = 100

// PageQuery 分页查询参数(所有列表接口通用)
// page从0开始;sort格式为"字段,方向",方向缺省为asc
// 例:?page=1&size=20&sort=name,desc
type PageQuery struct {
	Page int    `form:"page" binding:"omitempty,min=0" example:"0"`
	Size int    `form:"size" binding:"omitempty,min=1,max=100" example:"10"`
	Sort string `form:"sort" binding:"omitempty,max=50" example:"id,asc"`
}

// Normalize 返回修正后的页码与每页数量
func (q PageQuery) Normalize() (page, size int) {
	page = q.Page
	if page < 0 {
		page = 0
	}
	size = q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// SortParams 解析sort参数为排序字段与方向
// "name,desc" → ("name", "desc");"name" → ("name", "asc")
// 方向非desc时一律按asc处理;字段白名单由仓储层校验
func (q PageQuery) SortParams() (sortBy, sortDir string) {
	if q.Sort == "" {
		return "", "asc"
	}

	parts := strings.SplitN(q.Sort, ",", 2)
	sortBy = strings.TrimSpace(parts[0])
	sortDir = "asc"
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		sortDir = "desc"
	}
	return sortBy, sortDir
}
