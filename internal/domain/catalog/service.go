package catalog

import (
	"context"
	"strings"
)

// ProductChecker 产品引用检查接口
// 设计说明:子类删除保护需要知道"子类下是否还有产品",
// 但catalog不依赖product包,由product仓储实现本接口注入
type ProductChecker interface {
	ExistsBySubCategoryID(ctx context.Context, subCategoryID uint) (bool, error)
}

// CategoryService 产品大类领域服务接口
type CategoryService interface {
	// CreateCategory 创建大类
	CreateCategory(ctx context.Context, name string) (*Category, error)

	// GetCategoryByID 根据ID获取大类
	GetCategoryByID(ctx context.Context, id uint) (*Category, error)

	// UpdateCategory 更新大类名称
	UpdateCategory(ctx context.Context, id uint, name string) (*Category, error)

	// DeleteCategory 删除大类
	// 业务规则:大类下存在子类时禁止删除(引用保护)
	DeleteCategory(ctx context.Context, id uint) error

	// ListCategories 查询全部大类
	ListCategories(ctx context.Context) ([]*Category, error)
}

// categoryService 大类领域服务实现
type categoryService struct {
	repo    CategoryRepository
	subRepo SubCategoryRepository
}

// NewCategoryService 创建大类领域服务
func NewCategoryService(repo CategoryRepository, subRepo SubCategoryRepository) CategoryService {
	return &categoryService{repo: repo, subRepo: subRepo}
}

// CreateCategory 创建大类
func (s *categoryService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	c := NewCategory(name)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategoryByID 根据ID获取大类
func (s *categoryService) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCategory 更新大类名称
func (s *categoryService) UpdateCategory(ctx context.Context, id uint, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Rename(name)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除大类
// 服务层先做引用检查,与数据库外键约束互为补充:
// 先检查能返回友好的业务错误,而不是裸的约束冲突
func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	hasChildren, err := s.subRepo.ExistsByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrCategoryHasChildren
	}

	return s.repo.Delete(ctx, id)
}

// ListCategories 查询全部大类
func (s *categoryService) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.FindAll(ctx)
}

// SubCategoryService 产品子类领域服务接口
type SubCategoryService interface {
	// CreateSubCategory 创建子类
	// 业务规则:所属大类必须存在
	CreateSubCategory(ctx context.Context, name string, categoryID uint) (*SubCategory, error)

	// GetSubCategoryByID 根据ID获取子类
	GetSubCategoryByID(ctx context.Context, id uint) (*SubCategory, error)

	// UpdateSubCategory 更新子类
	UpdateSubCategory(ctx context.Context, id uint, name string, categoryID uint) (*SubCategory, error)

	// DeleteSubCategory 删除子类
	// 业务规则:子类下存在产品时禁止删除(引用保护)
	DeleteSubCategory(ctx context.Context, id uint) error

	// ListSubCategories 分页查询子类列表,categoryID>0时按大类过滤
	ListSubCategories(ctx context.Context, categoryID uint, params ListParams) ([]*SubCategory, int64, error)

	// ListByCategoryID 查询大类下的全部子类
	ListByCategoryID(ctx context.Context, categoryID uint) ([]*SubCategory, error)
}

// subCategoryService 子类领域服务实现
type subCategoryService struct {
	repo     SubCategoryRepository
	catRepo  CategoryRepository
	products ProductChecker
}

// NewSubCategoryService 创建子类领域服务
func NewSubCategoryService(repo SubCategoryRepository, catRepo CategoryRepository, products ProductChecker) SubCategoryService {
	return &subCategoryService{repo: repo, catRepo: catRepo, products: products}
}

// CreateSubCategory 创建子类
func (s *subCategoryService) CreateSubCategory(ctx context.Context, name string, categoryID uint) (*SubCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	// 所属大类必须存在
	if _, err := s.catRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	sc := NewSubCategory(name, categoryID)
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// GetSubCategoryByID 根据ID获取子类
func (s *subCategoryService) GetSubCategoryByID(ctx context.Context, id uint) (*SubCategory, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateSubCategory 更新子类
func (s *subCategoryService) UpdateSubCategory(ctx context.Context, id uint, name string, categoryID uint) (*SubCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.catRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	sc.Update(name, categoryID)
	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// DeleteSubCategory 删除子类
func (s *subCategoryService) DeleteSubCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	inUse, err := s.products.ExistsBySubCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrSubCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}

// ListSubCategories 分页查询子类列表
func (s *subCategoryService) ListSubCategories(ctx context.Context, categoryID uint, params ListParams) ([]*SubCategory, int64, error) {
	return s.repo.List(ctx, categoryID, params)
}

// ListByCategoryID 查询大类下的全部子类
func (s *subCategoryService) ListByCategoryID(ctx context.Context, categoryID uint) ([]*SubCategory, error) {
	return s.repo.FindByCategoryID(ctx, categoryID)
}
