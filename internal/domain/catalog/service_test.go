package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCategoryRepo 内存版大类仓储
type fakeCategoryRepo struct {
	nextID     uint
	categories map[uint]*Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{nextID: 1, categories: make(map[uint]*Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *Category) error {
	c.ID = f.nextID
	f.nextID++
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uint) (*Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]*Category, error) {
	out := make([]*Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

// fakeSubCategoryRepo 内存版子类仓储
type fakeSubCategoryRepo struct {
	nextID        uint
	subCategories map[uint]*SubCategory
}

func newFakeSubCategoryRepo() *fakeSubCategoryRepo {
	return &fakeSubCategoryRepo{nextID: 1, subCategories: make(map[uint]*SubCategory)}
}

func (f *fakeSubCategoryRepo) Create(_ context.Context, sc *SubCategory) error {
	sc.ID = f.nextID
	f.nextID++
	f.subCategories[sc.ID] = sc
	return nil
}

func (f *fakeSubCategoryRepo) FindByID(_ context.Context, id uint) (*SubCategory, error) {
	sc, ok := f.subCategories[id]
	if !ok {
		return nil, ErrSubCategoryNotFound
	}
	return sc, nil
}

func (f *fakeSubCategoryRepo) Update(_ context.Context, sc *SubCategory) error {
	if _, ok := f.subCategories[sc.ID]; !ok {
		return ErrSubCategoryNotFound
	}
	f.subCategories[sc.ID] = sc
	return nil
}

func (f *fakeSubCategoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.subCategories[id]; !ok {
		return ErrSubCategoryNotFound
	}
	delete(f.subCategories, id)
	return nil
}

func (f *fakeSubCategoryRepo) List(_ context.Context, categoryID uint, _ ListParams) ([]*SubCategory, int64, error) {
	out := make([]*SubCategory, 0, len(f.subCategories))
	for _, sc := range f.subCategories {
		if categoryID > 0 && sc.CategoryID != categoryID {
			continue
		}
		out = append(out, sc)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubCategoryRepo) FindByCategoryID(_ context.Context, categoryID uint) ([]*SubCategory, error) {
	out := make([]*SubCategory, 0)
	for _, sc := range f.subCategories {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeSubCategoryRepo) ExistsByCategoryID(_ context.Context, categoryID uint) (bool, error) {
	for _, sc := range f.subCategories {
		if sc.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

// fakeProducts 可配置子类下是否存在产品
type fakeProducts struct {
	inUse bool
}

func (f *fakeProducts) ExistsBySubCategoryID(context.Context, uint) (bool, error) {
	return f.inUse, nil
}

func setupServices(t *testing.T) (CategoryService, SubCategoryService, *fakeProducts) {
	t.Helper()
	catRepo := newFakeCategoryRepo()
	subRepo := newFakeSubCategoryRepo()
	products := &fakeProducts{}
	return NewCategoryService(catRepo, subRepo),
		NewSubCategoryService(subRepo, catRepo, products),
		products
}

func TestCreateCategoryEmptyName(t *testing.T) {
	catSvc, _, _ := setupServices(t)

	_, err := catSvc.CreateCategory(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestUpdateCategory(t *testing.T) {
	catSvc, _, _ := setupServices(t)

	c, err := catSvc.CreateCategory(context.Background(), "电子产品")
	require.NoError(t, err)

	updated, err := catSvc.UpdateCategory(context.Background(), c.ID, "数码产品")
	require.NoError(t, err)
	assert.Equal(t, "数码产品", updated.Name)
}

func TestDeleteCategoryWithChildren(t *testing.T) {
	catSvc, subSvc, _ := setupServices(t)

	c, err := catSvc.CreateCategory(context.Background(), "电子产品")
	require.NoError(t, err)
	sc, err := subSvc.CreateSubCategory(context.Background(), "手机", c.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, catSvc.DeleteCategory(context.Background(), c.ID), ErrCategoryHasChildren)

	// 移除子类后可以删除
	require.NoError(t, subSvc.DeleteSubCategory(context.Background(), sc.ID))
	require.NoError(t, catSvc.DeleteCategory(context.Background(), c.ID))

	_, err = catSvc.GetCategoryByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateSubCategoryMissingCategory(t *testing.T) {
	_, subSvc, _ := setupServices(t)

	_, err := subSvc.CreateSubCategory(context.Background(), "手机", 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateSubCategoryMoveToOtherCategory(t *testing.T) {
	catSvc, subSvc, _ := setupServices(t)

	c1, err := catSvc.CreateCategory(context.Background(), "电子产品")
	require.NoError(t, err)
	c2, err := catSvc.CreateCategory(context.Background(), "家用电器")
	require.NoError(t, err)

	sc, err := subSvc.CreateSubCategory(context.Background(), "手机", c1.ID)
	require.NoError(t, err)

	updated, err := subSvc.UpdateSubCategory(context.Background(), sc.ID, "智能手机", c2.ID)
	require.NoError(t, err)
	assert.Equal(t, "智能手机", updated.Name)
	assert.Equal(t, c2.ID, updated.CategoryID)

	// 目标大类不存在时拒绝
	_, err = subSvc.UpdateSubCategory(context.Background(), sc.ID, "智能手机", 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteSubCategoryInUse(t *testing.T) {
	catSvc, subSvc, products := setupServices(t)

	c, err := catSvc.CreateCategory(context.Background(), "电子产品")
	require.NoError(t, err)
	sc, err := subSvc.CreateSubCategory(context.Background(), "手机", c.ID)
	require.NoError(t, err)

	products.inUse = true
	assert.ErrorIs(t, subSvc.DeleteSubCategory(context.Background(), sc.ID), ErrSubCategoryInUse)

	products.inUse = false
	require.NoError(t, subSvc.DeleteSubCategory(context.Background(), sc.ID))
}
