package customer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/crm/internal/domain/address"
)

// fakeRepo 内存版客户仓储
type fakeRepo struct {
	nextID    uint
	customers map[uint]*Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, customers: make(map[uint]*Customer)}
}

func (f *fakeRepo) Create(_ context.Context, c *Customer) error {
	c.ID = f.nextID
	f.nextID++
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uint) (*Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, c *Customer) error {
	if _, ok := f.customers[c.ID]; !ok {
		return ErrCustomerNotFound
	}
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.customers[id]; !ok {
		return ErrCustomerNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ ListParams) ([]*Customer, int64, error) {
	out := make([]*Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Search(ctx context.Context, _ SearchParams, params ListParams) ([]*Customer, int64, error) {
	return f.List(ctx, params)
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, c := range f.customers {
		if c.ID != excludeID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// fakeAddresses 只认ID为1的地址
type fakeAddresses struct{}

func (fakeAddresses) GetAddressByID(_ context.Context, id uint) (*address.Address, error) {
	if id != 1 {
		return nil, address.ErrAddressNotFound
	}
	return &address.Address{ID: 1, Street: "人民路100号", City: "上海", PostalCode: "200000"}, nil
}

// fakeOrders 可配置客户是否存在订单
type fakeOrders struct {
	hasOrders bool
}

func (f *fakeOrders) ExistsByCustomerID(context.Context, uint) (bool, error) {
	return f.hasOrders, nil
}

func setupService(t *testing.T) (Service, *fakeRepo, *fakeOrders) {
	t.Helper()
	repo := newFakeRepo()
	orders := &fakeOrders{}
	return NewService(repo, fakeAddresses{}, orders), repo, orders
}

func TestCreateCustomer(t *testing.T) {
	svc, _, _ := setupService(t)

	addrID := uint(1)
	c, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", &addrID)
	require.NoError(t, err)

	assert.NotZero(t, c.ID)
	assert.Equal(t, "zhangsan@example.com", c.Email)
	require.NotNil(t, c.AddressID)
	assert.Equal(t, uint(1), *c.AddressID)
}

func TestCreateCustomerInvalidEmail(t *testing.T) {
	svc, _, _ := setupService(t)

	for _, email := range []string{"", "not-an-email", "a@b", "has space@example.com"} {
		_, err := svc.CreateCustomer(context.Background(), "三", "张", email, nil)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email=%q", email)
	}
}

func TestCreateCustomerMissingName(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateCustomer(context.Background(), " ", "张", "zhangsan@example.com", nil)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", nil)
	require.NoError(t, err)

	// 邮箱不区分大小写
	_, err = svc.CreateCustomer(context.Background(), "四", "李", "ZhangSan@Example.com", nil)
	assert.ErrorIs(t, err, ErrEmailDuplicate)
}

func TestCreateCustomerAddressNotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	missing := uint(99)
	_, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", &missing)
	assert.ErrorIs(t, err, address.ErrAddressNotFound)
}

func TestUpdateCustomerKeepOwnEmail(t *testing.T) {
	svc, _, _ := setupService(t)

	c, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", nil)
	require.NoError(t, err)

	// 邮箱不变时唯一性检查要排除自身
	updated, err := svc.UpdateCustomer(context.Background(), c.ID, "三", "张", "zhangsan@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan@example.com", updated.Email)

	// 但不能改成他人的邮箱
	other, err := svc.CreateCustomer(context.Background(), "四", "李", "lisi@example.com", nil)
	require.NoError(t, err)
	_, err = svc.UpdateCustomer(context.Background(), other.ID, "四", "李", "zhangsan@example.com", nil)
	assert.ErrorIs(t, err, ErrEmailDuplicate)
}

func TestDeleteCustomerWithOrders(t *testing.T) {
	svc, repo, orders := setupService(t)

	c, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", nil)
	require.NoError(t, err)

	orders.hasOrders = true
	assert.ErrorIs(t, svc.DeleteCustomer(context.Background(), c.ID), ErrCustomerInUse)

	// 客户未被删除
	_, ok := repo.customers[c.ID]
	assert.True(t, ok)
}

func TestDeleteCustomer(t *testing.T) {
	svc, _, _ := setupService(t)

	c, err := svc.CreateCustomer(context.Background(), "三", "张", "zhangsan@example.com", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(context.Background(), c.ID))

	_, err = svc.GetCustomerByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
