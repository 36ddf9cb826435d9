package address

import (
	"context"
)

// ListParams 列表查询参数
// SortBy只接受白名单字段(由仓储实现校验),SortDir非"desc"时一律按升序
type ListParams struct {
	Page     int    // 页码(从0开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段(id, street, city, state, postal_code)
	SortDir  string // asc | desc
}

// SearchParams 搜索条件
// 优先级:Term优先于字段过滤;Term为空时各字段过滤AND组合;全空退化为普通列表
type SearchParams struct {
	Term       string // 通用搜索词(街道/城市/省州/邮编,子串,不区分大小写)
	City       string
	State      string
	PostalCode string
}

// Repository 地址仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建地址
	Create(ctx context.Context, addr *Address) error

	// FindByID 根据ID查找地址
	FindByID(ctx context.Context, id uint) (*Address, error)

	// Update 更新地址
	Update(ctx context.Context, addr *Address) error

	// Delete 删除地址
	Delete(ctx context.Context, id uint) error

	// List 分页查询地址列表
	List(ctx context.Context, params ListParams) ([]*Address, int64, error)

	// Search 按条件搜索地址(条件全空等价于List)
	Search(ctx context.Context, criteria SearchParams, params ListParams) ([]*Address, int64, error)
}
