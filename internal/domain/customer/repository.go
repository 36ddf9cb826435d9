package customer

import (
	"context"
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从0开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段(id, first_name, last_name, email)
	SortDir  string // asc | desc
}

// SearchParams 搜索条件
// 优先级:Term优先于字段过滤;全空退化为普通列表
type SearchParams struct {
	Term  string // 通用搜索词(名/姓/邮箱,子串,不区分大小写)
	Email string // 邮箱过滤
	Name  string // 全名过滤(匹配"名 姓"拼接)
	City  string // 关联地址城市过滤(JOIN查询)
}

// Repository 客户仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建客户
	Create(ctx context.Context, c *Customer) error

	// FindByID 根据ID查找客户
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// Update 更新客户
	Update(ctx context.Context, c *Customer) error

	// Delete 删除客户
	Delete(ctx context.Context, id uint) error

	// List 分页查询客户列表
	List(ctx context.Context, params ListParams) ([]*Customer, int64, error)

	// Search 按条件搜索客户
	Search(ctx context.Context, criteria SearchParams, params ListParams) ([]*Customer, int64, error)

	// ExistsByEmail 检查邮箱是否已被使用(不区分大小写)
	// excludeID>0时排除该客户自身(用于更新时的唯一性检查)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}
