package product

import (
	"context"
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从0开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段(id, sku, name, price, stock_quantity)
	SortDir  string // asc | desc
}

// SearchParams 搜索条件
// 优先级:Term优先于字段过滤;全空退化为普通列表
type SearchParams struct {
	Term     string // 通用搜索词(SKU/名称/描述,子串,不区分大小写)
	SKU      string // SKU过滤
	Name     string // 名称过滤
	Category string // 大类名称过滤(JOIN子类、大类表)
}

// Repository 产品仓储接口(依赖倒置原则)
// 同时实现catalog.ProductChecker(子类删除保护)
type Repository interface {
	// Create 创建产品
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找产品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// Update 按乐观锁版本更新产品
	// 执行UPDATE ... WHERE id = ? AND version = ?,版本失配返回ErrVersionConflict
	Update(ctx context.Context, p *Product) error

	// Delete 删除产品
	Delete(ctx context.Context, id uint) error

	// List 分页查询产品列表,subCategoryID>0时按子类过滤
	List(ctx context.Context, subCategoryID uint, params ListParams) ([]*Product, int64, error)

	// Search 按条件搜索产品
	Search(ctx context.Context, criteria SearchParams, params ListParams) ([]*Product, int64, error)

	// ExistsBySKU 检查SKU是否已存在(excludeID>0时排除自身)
	ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error)

	// ExistsBySubCategoryID 检查子类下是否存在产品(catalog删除保护)
	ExistsBySubCategoryID(ctx context.Context, subCategoryID uint) (bool, error)

	// FindLowStock 查询库存不高于阈值的产品
	FindLowStock(ctx context.Context, threshold int) ([]*Product, error)

	// LockByID 悲观锁查询产品(订单创建时锁定库存行)
	// 使用SELECT FOR UPDATE,必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Product, error)

	// UpdateStock 原子更新库存(delta为负表示扣减)
	// 内部保证库存不为负,不足时返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}
