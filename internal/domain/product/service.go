package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/crm/internal/domain/catalog"
)

// SubCategoryLookup 子类查询接口(接口隔离,便于Mock)
type SubCategoryLookup interface {
	GetSubCategoryByID(ctx context.Context, id uint) (*catalog.SubCategory, error)
}

// OrderLineChecker 订单行引用检查接口
// 产品删除保护需要知道"产品是否被订单行引用",由订单仓储实现注入
type OrderLineChecker interface {
	ExistsByProductID(ctx context.Context, productID uint) (bool, error)
}

// Service 产品领域服务接口
type Service interface {
	// CreateProduct 创建产品
	// 业务规则:
	// - SKU必填且不能重复
	// - 价格大于0且最多2位小数,库存>=0
	// - 所属子类必须存在
	CreateProduct(ctx context.Context, subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) (*Product, error)

	// GetProductByID 根据ID获取产品
	GetProductByID(ctx context.Context, id uint) (*Product, error)

	// UpdateProduct 全量更新产品
	// version为调用方读取到的版本号,失配返回版本冲突错误(可重试)
	UpdateProduct(ctx context.Context, id uint, version int64, subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) (*Product, error)

	// DeleteProduct 删除产品
	// 业务规则:产品被订单行引用时禁止删除(引用保护)
	DeleteProduct(ctx context.Context, id uint) error

	// ListProducts 分页查询产品列表,subCategoryID>0时按子类过滤
	ListProducts(ctx context.Context, subCategoryID uint, params ListParams) ([]*Product, int64, error)

	// SearchProducts 按条件搜索产品
	SearchProducts(ctx context.Context, criteria SearchParams, params ListParams) ([]*Product, int64, error)

	// ListLowStock 查询库存不高于阈值的产品(补货提醒)
	ListLowStock(ctx context.Context, threshold int) ([]*Product, error)
}

// service 领域服务实现
type service struct {
	repo          Repository
	subCategories SubCategoryLookup
	orderLines    OrderLineChecker
}

// NewService 创建产品领域服务
func NewService(repo Repository, subCategories SubCategoryLookup, orderLines OrderLineChecker) Service {
	return &service{
		repo:          repo,
		subCategories: subCategories,
		orderLines:    orderLines,
	}
}

// CreateProduct 创建产品
func (s *service) CreateProduct(ctx context.Context, subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) (*Product, error) {
	if err := s.validate(ctx, subCategoryID, sku, price, stockQuantity); err != nil {
		return nil, err
	}

	// SKU唯一性预检查(数据库唯一索引兜底)
	exists, err := s.repo.ExistsBySKU(ctx, sku, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUDuplicate
	}

	p := NewProduct(subCategoryID, sku, name, description, price, stockQuantity, active)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProductByID 根据ID获取产品
func (s *service) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct 全量更新产品
func (s *service) UpdateProduct(ctx context.Context, id uint, version int64, subCategoryID uint, sku, name, description string, price decimal.Decimal, stockQuantity int, active bool) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, subCategoryID, sku, price, stockQuantity); err != nil {
		return nil, err
	}

	// SKU变更时重新检查唯一性(排除自身)
	if !strings.EqualFold(p.SKU, sku) {
		exists, err := s.repo.ExistsBySKU(ctx, sku, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSKUDuplicate
		}
	}

	p.Update(subCategoryID, sku, name, description, price, stockQuantity, active)
	// 以调用方读取到的版本做CAS,不用数据库中的当前版本,
	// 否则并发修改会被静默覆盖(丢失更新)
	p.Version = version
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct 删除产品
func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.orderLines.ExistsByProductID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrProductInUse
	}

	return s.repo.Delete(ctx, id)
}

// ListProducts 分页查询产品列表
func (s *service) ListProducts(ctx context.Context, subCategoryID uint, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, subCategoryID, params)
}

// SearchProducts 按条件搜索产品
func (s *service) SearchProducts(ctx context.Context, criteria SearchParams, params ListParams) ([]*Product, int64, error) {
	return s.repo.Search(ctx, criteria, params)
}

// ListLowStock 查询库存不高于阈值的产品
func (s *service) ListLowStock(ctx context.Context, threshold int) ([]*Product, error) {
	return s.repo.FindLowStock(ctx, threshold)
}

// validate 创建/更新共用的业务校验
func (s *service) validate(ctx context.Context, subCategoryID uint, sku string, price decimal.Decimal, stockQuantity int) error {
	if strings.TrimSpace(sku) == "" {
		return ErrInvalidSKU
	}
	if err := ValidatePrice(price); err != nil {
		return err
	}
	if stockQuantity < 0 {
		return ErrInvalidStock
	}

	// 所属子类必须存在
	if _, err := s.subCategories.GetSubCategoryByID(ctx, subCategoryID); err != nil {
		return err
	}

	return nil
}
