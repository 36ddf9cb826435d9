package catalog

import (
	"context"
)

// ListParams 子类分页查询参数
type ListParams struct {
	Page     int    // 页码(从0开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段(id, name, category_id)
	SortDir  string // asc | desc
}

// CategoryRepository 产品大类仓储接口
type CategoryRepository interface {
	// Create 创建大类
	Create(ctx context.Context, c *Category) error

	// FindByID 根据ID查找大类
	FindByID(ctx context.Context, id uint) (*Category, error)

	// Update 更新大类
	Update(ctx context.Context, c *Category) error

	// Delete 删除大类
	Delete(ctx context.Context, id uint) error

	// FindAll 查询全部大类(大类数量有限,不分页)
	FindAll(ctx context.Context) ([]*Category, error)
}

// SubCategoryRepository 产品子类仓储接口
type SubCategoryRepository interface {
	// Create 创建子类
	Create(ctx context.Context, sc *SubCategory) error

	// FindByID 根据ID查找子类
	FindByID(ctx context.Context, id uint) (*SubCategory, error)

	// Update 更新子类
	Update(ctx context.Context, sc *SubCategory) error

	// Delete 删除子类
	Delete(ctx context.Context, id uint) error

	// List 分页查询子类列表,categoryID>0时按大类过滤
	List(ctx context.Context, categoryID uint, params ListParams) ([]*SubCategory, int64, error)

	// FindByCategoryID 查询大类下的全部子类
	FindByCategoryID(ctx context.Context, categoryID uint) ([]*SubCategory, error)

	// ExistsByCategoryID 检查大类下是否存在子类(删除保护)
	ExistsByCategoryID(ctx context.Context, categoryID uint) (bool, error)
}
