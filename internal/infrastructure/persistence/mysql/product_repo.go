package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/crm/internal/domain/product"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// productSortColumns 产品排序白名单
var productSortColumns = map[string]string{
	"id":             "products.id",
	"sku":            "products.sku",
	"name":           "products.name",
	"price":          "products.price",
	"stock_quantity": "products.stock_quantity",
}

// productRepository 产品仓储实现(MySQL)
// 设计说明:
// 1. Update按乐观锁版本CAS,失配返回ErrVersionConflict
// 2. LockByID/UpdateStock供订单创建在事务内使用
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建产品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建产品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		SubCategoryID: p.SubCategoryID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		Version:       0,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// SKU唯一索引兜底
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建产品失败")
	}

	p.ID = model.ID
	p.Version = model.Version
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找产品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询产品失败")
	}
	return toProductEntity(&model), nil
}

// Update 按乐观锁版本更新产品
// UPDATE products SET ..., version = version + 1 WHERE id = ? AND version = ?
// 影响行数为0时区分"产品不存在"与"版本冲突"
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]interface{}{
			"sub_category_id": p.SubCategoryID,
			"sku":             p.SKU,
			"name":            p.Name,
			"description":     p.Description,
			"price":           p.Price,
			"stock_quantity":  p.StockQuantity,
			"active":          p.Active,
			"version":         gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(result.Error, "更新产品失败")
	}

	if result.RowsAffected == 0 {
		var model ProductModel
		if err := db.First(&model, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return product.ErrProductNotFound
			}
			return apperrors.Wrap(err, "查询产品失败")
		}
		// 产品存在,说明版本失配
		return product.ErrVersionConflict
	}

	p.Version++
	return nil
}

// Delete 删除产品
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ProductModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除产品失败")
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// List 分页查询产品列表,subCategoryID>0时按子类过滤
func (r *productRepository) List(ctx context.Context, subCategoryID uint, params product.ListParams) ([]*product.Product, int64, error) {
	query := getDB(ctx, r.db).Model(&ProductModel{})
	if subCategoryID > 0 {
		query = query.Where("products.sub_category_id = ?", subCategoryID)
	}
	return r.query(query, params)
}

// Search 按条件搜索产品
// 通用搜索词匹配SKU/名称/描述;大类名过滤需要两级JOIN
func (r *productRepository) Search(ctx context.Context, criteria product.SearchParams, params product.ListParams) ([]*product.Product, int64, error) {
	query := getDB(ctx, r.db).Model(&ProductModel{})

	if criteria.Term != "" {
		term := "%" + criteria.Term + "%"
		query = query.Where(
			"products.sku LIKE ? OR products.name LIKE ? OR products.description LIKE ?",
			term, term, term,
		)
	} else {
		if criteria.SKU != "" {
			query = query.Where("products.sku LIKE ?", "%"+criteria.SKU+"%")
		}
		if criteria.Name != "" {
			query = query.Where("products.name LIKE ?", "%"+criteria.Name+"%")
		}
		if criteria.Category != "" {
			query = query.
				Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
				Joins("JOIN categories ON categories.id = sub_categories.category_id").
				Where("categories.name LIKE ?", "%"+criteria.Category+"%")
		}
	}

	return r.query(query, params)
}

// ExistsBySKU 检查SKU是否已存在(不区分大小写)
func (r *productRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint) (bool, error) {
	query := getDB(ctx, r.db).Model(&ProductModel{}).Where("LOWER(sku) = LOWER(?)", sku)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询SKU占用失败")
	}
	return count > 0, nil
}

// ExistsBySubCategoryID 检查子类下是否存在产品(catalog删除保护)
func (r *productRepository) ExistsBySubCategoryID(ctx context.Context, subCategoryID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ProductModel{}).
		Where("sub_category_id = ?", subCategoryID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询子类下产品失败")
	}
	return count > 0, nil
}

// FindLowStock 查询库存不高于阈值的产品(仅在售产品)
func (r *productRepository) FindLowStock(ctx context.Context, threshold int) ([]*product.Product, error) {
	var models []ProductModel
	err := getDB(ctx, r.db).
		Where("stock_quantity <= ? AND active = ?", threshold, true).
		Order("stock_quantity ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询低库存产品失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// LockByID 悲观锁查询产品
// SELECT * FROM products WHERE id = ? FOR UPDATE,必须在事务内调用
func (r *productRepository) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "锁定产品失败")
	}
	return toProductEntity(&model), nil
}

// UpdateStock 原子更新库存
// UPDATE products SET stock_quantity = stock_quantity + delta
// WHERE id = ? AND stock_quantity + delta >= 0
func (r *productRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", id).
		Where("stock_quantity + ? >= 0", delta). // 防止库存为负
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是产品不存在,也可能是库存不足,再查一次确定原因
		var model ProductModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return product.ErrProductNotFound
			}
			return apperrors.Wrap(err, "查询产品失败")
		}
		return product.ErrInsufficientStock
	}

	return nil
}

// query 统计总数+排序+分页+实体转换的公共路径
func (r *productRepository) query(query *gorm.DB, params product.ListParams) ([]*product.Product, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询产品总数失败")
	}

	query = applySort(query, params.SortBy, params.SortDir, productSortColumns, "products.id")
	query = applyPage(query, params.Page, params.PageSize)

	var models []ProductModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询产品列表失败")
	}

	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:            model.ID,
		SubCategoryID: model.SubCategoryID,
		SKU:           model.SKU,
		Name:          model.Name,
		Description:   model.Description,
		Price:         model.Price,
		StockQuantity: model.StockQuantity,
		Active:        model.Active,
		Version:       model.Version,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
