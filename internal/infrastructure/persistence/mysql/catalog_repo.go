package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/crm/internal/domain/catalog"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// subCategorySortColumns 子类排序白名单
var subCategorySortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"category_id": "category_id",
}

// categoryRepository 产品大类仓储实现(MySQL)
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建大类仓储
func NewCategoryRepository(db *gorm.DB) catalog.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create 创建大类
func (r *categoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{Name: c.Name}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建大类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找大类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*catalog.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询大类失败")
	}
	return toCategoryEntity(&model), nil
}

// Update 更新大类
func (r *categoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新大类失败")
	}
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除大类
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除大类失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

// FindAll 查询全部大类(数量有限,不分页)
func (r *categoryRepository) FindAll(ctx context.Context) ([]*catalog.Category, error) {
	var models []CategoryModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询大类列表失败")
	}

	categories := make([]*catalog.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *catalog.Category {
	return &catalog.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// subCategoryRepository 产品子类仓储实现(MySQL)
type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository 创建子类仓储
func NewSubCategoryRepository(db *gorm.DB) catalog.SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

// Create 创建子类
func (r *subCategoryRepository) Create(ctx context.Context, sc *catalog.SubCategory) error {
	model := &SubCategoryModel{Name: sc.Name, CategoryID: sc.CategoryID}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建子类失败")
	}
	sc.ID = model.ID
	sc.CreatedAt = model.CreatedAt
	sc.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找子类
func (r *subCategoryRepository) FindByID(ctx context.Context, id uint) (*catalog.SubCategory, error) {
	var model SubCategoryModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrSubCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询子类失败")
	}
	return toSubCategoryEntity(&model), nil
}

// Update 更新子类
func (r *subCategoryRepository) Update(ctx context.Context, sc *catalog.SubCategory) error {
	model := &SubCategoryModel{
		ID:         sc.ID,
		Name:       sc.Name,
		CategoryID: sc.CategoryID,
		CreatedAt:  sc.CreatedAt,
	}
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新子类失败")
	}
	sc.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除子类
func (r *subCategoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&SubCategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除子类失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrSubCategoryNotFound
	}
	return nil
}

// List 分页查询子类列表,categoryID>0时按大类过滤
func (r *subCategoryRepository) List(ctx context.Context, categoryID uint, params catalog.ListParams) ([]*catalog.SubCategory, int64, error) {
	query := getDB(ctx, r.db).Model(&SubCategoryModel{})
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询子类总数失败")
	}

	query = applySort(query, params.SortBy, params.SortDir, subCategorySortColumns, "id")
	query = applyPage(query, params.Page, params.PageSize)

	var models []SubCategoryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询子类列表失败")
	}

	subs := make([]*catalog.SubCategory, len(models))
	for i := range models {
		subs[i] = toSubCategoryEntity(&models[i])
	}
	return subs, total, nil
}

// FindByCategoryID 查询大类下的全部子类
func (r *subCategoryRepository) FindByCategoryID(ctx context.Context, categoryID uint) ([]*catalog.SubCategory, error) {
	var models []SubCategoryModel
	err := getDB(ctx, r.db).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询大类下子类失败")
	}

	subs := make([]*catalog.SubCategory, len(models))
	for i := range models {
		subs[i] = toSubCategoryEntity(&models[i])
	}
	return subs, nil
}

// ExistsByCategoryID 检查大类下是否存在子类(删除保护)
func (r *subCategoryRepository) ExistsByCategoryID(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&SubCategoryModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询大类下子类失败")
	}
	return count > 0, nil
}

// toSubCategoryEntity GORM模型 → 领域实体
func toSubCategoryEntity(model *SubCategoryModel) *catalog.SubCategory {
	return &catalog.SubCategory{
		ID:         model.ID,
		Name:       model.Name,
		CategoryID: model.CategoryID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
