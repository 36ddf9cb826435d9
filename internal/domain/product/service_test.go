package product

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/crm/internal/domain/catalog"
)

// fakeRepo 内存版产品仓储
type fakeRepo struct {
	nextID   uint
	products map[uint]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, products: make(map[uint]*Product)}
}

func (f *fakeRepo) Create(_ context.Context, p *Product) error {
	p.ID = f.nextID
	f.nextID++
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// Update 模拟仓储的CAS语义:版本失配返回冲突
func (f *fakeRepo) Update(_ context.Context, p *Product) error {
	current, ok := f.products[p.ID]
	if !ok {
		return ErrProductNotFound
	}
	if current.Version != p.Version {
		return ErrVersionConflict
	}
	p.Version++
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, subCategoryID uint, _ ListParams) ([]*Product, int64, error) {
	out := make([]*Product, 0, len(f.products))
	for _, p := range f.products {
		if subCategoryID > 0 && p.SubCategoryID != subCategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Search(ctx context.Context, _ SearchParams, params ListParams) ([]*Product, int64, error) {
	return f.List(ctx, 0, params)
}

func (f *fakeRepo) ExistsBySKU(_ context.Context, sku string, excludeID uint) (bool, error) {
	for _, p := range f.products {
		if p.ID != excludeID && strings.EqualFold(p.SKU, sku) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ExistsBySubCategoryID(_ context.Context, subCategoryID uint) (bool, error) {
	for _, p := range f.products {
		if p.SubCategoryID == subCategoryID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FindLowStock(_ context.Context, threshold int) ([]*Product, error) {
	out := make([]*Product, 0)
	for _, p := range f.products {
		if p.Active && p.StockQuantity <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) LockByID(ctx context.Context, id uint) (*Product, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return ErrProductNotFound
	}
	if p.StockQuantity+delta < 0 {
		return ErrInsufficientStock
	}
	p.StockQuantity += delta
	return nil
}

// fakeSubCategories 只认ID为1的子类
type fakeSubCategories struct{}

func (fakeSubCategories) GetSubCategoryByID(_ context.Context, id uint) (*catalog.SubCategory, error) {
	if id != 1 {
		return nil, catalog.ErrSubCategoryNotFound
	}
	return &catalog.SubCategory{ID: 1, Name: "手机", CategoryID: 1}, nil
}

// fakeOrderLines 可配置产品是否被订单行引用
type fakeOrderLines struct {
	inUse bool
}

func (f *fakeOrderLines) ExistsByProductID(context.Context, uint) (bool, error) {
	return f.inUse, nil
}

func setupService(t *testing.T) (Service, *fakeRepo, *fakeOrderLines) {
	t.Helper()
	repo := newFakeRepo()
	orderLines := &fakeOrderLines{}
	return NewService(repo, fakeSubCategories{}, orderLines), repo, orderLines
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateProduct(t *testing.T) {
	svc, _, _ := setupService(t)

	p, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "旗舰机型", price("1999.00"), 100, true)
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "PHONE-001", p.SKU)
	assert.True(t, p.Price.Equal(price("1999.00")))
	assert.Equal(t, int64(0), p.Version)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	require.NoError(t, err)

	// SKU不区分大小写
	_, err = svc.CreateProduct(context.Background(), 1, "phone-001", "另一台手机", "", price("999.00"), 10, true)
	assert.ErrorIs(t, err, ErrSKUDuplicate)
}

func TestCreateProductInvalidPrice(t *testing.T) {
	svc, _, _ := setupService(t)

	for _, s := range []string{"0", "-1.50", "19.999"} {
		_, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price(s), 100, true)
		assert.ErrorIs(t, err, ErrInvalidPrice, "price=%s", s)
	}
}

func TestCreateProductNegativeStock(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), -1, true)
	assert.ErrorIs(t, err, ErrInvalidStock)
}

func TestCreateProductSubCategoryNotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateProduct(context.Background(), 999, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	assert.ErrorIs(t, err, catalog.ErrSubCategoryNotFound)
}

func TestUpdateProduct(t *testing.T) {
	svc, _, _ := setupService(t)

	p, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), p.ID, 0, 1, "PHONE-001", "智能手机Pro", "升级款", price("2499.00"), 80, true)
	require.NoError(t, err)

	assert.Equal(t, "智能手机Pro", updated.Name)
	assert.True(t, updated.Price.Equal(price("2499.00")))
	assert.Equal(t, int64(1), updated.Version)
}

func TestUpdateProductVersionConflict(t *testing.T) {
	svc, _, _ := setupService(t)

	p, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	require.NoError(t, err)

	// 第一次更新把版本推到1
	_, err = svc.UpdateProduct(context.Background(), p.ID, 0, 1, "PHONE-001", "智能手机", "", price("1999.00"), 90, true)
	require.NoError(t, err)

	// 仍用旧版本0提交,模拟并发修改后的过期写入
	_, err = svc.UpdateProduct(context.Background(), p.ID, 0, 1, "PHONE-001", "智能手机", "", price("1888.00"), 90, true)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUpdateProductSKUTakenByOther(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	require.NoError(t, err)
	p2, err := svc.CreateProduct(context.Background(), 1, "PHONE-002", "备用机", "", price("999.00"), 50, true)
	require.NoError(t, err)

	// 改成他人的SKU被拒绝
	_, err = svc.UpdateProduct(context.Background(), p2.ID, 0, 1, "PHONE-001", "备用机", "", price("999.00"), 50, true)
	assert.ErrorIs(t, err, ErrSKUDuplicate)

	// 保留自己的SKU不触发唯一性冲突
	_, err = svc.UpdateProduct(context.Background(), p2.ID, 0, 1, "PHONE-002", "备用机", "", price("899.00"), 50, true)
	assert.NoError(t, err)
}

func TestDeleteProductInUse(t *testing.T) {
	svc, repo, orderLines := setupService(t)

	p, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 100, true)
	require.NoError(t, err)

	orderLines.inUse = true
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), p.ID), ErrProductInUse)
	_, ok := repo.products[p.ID]
	assert.True(t, ok)

	orderLines.inUse = false
	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), p.ID), ErrProductNotFound)
}

func TestListLowStock(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateProduct(context.Background(), 1, "PHONE-001", "智能手机", "", price("1999.00"), 3, true)
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), 1, "PHONE-002", "备用机", "", price("999.00"), 50, true)
	require.NoError(t, err)
	// 下架产品不进补货提醒
	_, err = svc.CreateProduct(context.Background(), 1, "PHONE-003", "停产机", "", price("599.00"), 1, false)
	require.NoError(t, err)

	low, err := svc.ListLowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "PHONE-001", low[0].SKU)
}
