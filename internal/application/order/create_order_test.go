package order

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/crm/internal/domain/customer"
	"github.com/xiebiao/crm/internal/domain/order"
	"github.com/xiebiao/crm/internal/domain/product"
	"github.com/xiebiao/crm/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// fakeTx 直接执行回调,不做真实事务
type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCustomers 内存客户查询
type fakeCustomers struct {
	customers map[uint]*customer.Customer
}

func (f *fakeCustomers) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

// fakeProductRepo 内存产品仓储
type fakeProductRepo struct {
	products  map[uint]*product.Product
	lockCalls []uint
}

func (f *fakeProductRepo) Create(context.Context, *product.Product) error { return nil }

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Update(context.Context, *product.Product) error { return nil }
func (f *fakeProductRepo) Delete(context.Context, uint) error             { return nil }

func (f *fakeProductRepo) List(context.Context, uint, product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) Search(context.Context, product.SearchParams, product.ListParams) ([]*product.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) ExistsBySKU(context.Context, string, uint) (bool, error) {
	return false, nil
}

func (f *fakeProductRepo) ExistsBySubCategoryID(context.Context, uint) (bool, error) {
	return false, nil
}

func (f *fakeProductRepo) FindLowStock(context.Context, int) ([]*product.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	f.lockCalls = append(f.lockCalls, id)
	return f.FindByID(ctx, id)
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if p.StockQuantity+delta < 0 {
		return product.ErrInsufficientStock
	}
	p.StockQuantity += delta
	return nil
}

// fakeOrderRepo 内存订单仓储
type fakeOrderRepo struct {
	nextID  uint
	orders  map[uint]*order.Order
	deleted []uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: make(map[uint]*order.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = f.nextID
	f.nextID++
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrderRepo) List(context.Context, order.ListParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) Search(context.Context, order.SearchParams, order.ListParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) ExistsByCustomerID(context.Context, uint) (bool, error) { return false, nil }
func (f *fakeOrderRepo) ExistsByProductID(context.Context, uint) (bool, error)  { return false, nil }

func (f *fakeOrderRepo) SalesByCategory(context.Context, time.Time, time.Time) ([]order.CategorySales, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SalesBySubCategoryMonth(context.Context, time.Time, time.Time, string) ([]order.SubCategoryMonthSales, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SalesByCategoryYear(context.Context, int) ([]order.CategorySales, error) {
	return nil, nil
}

func newTestProduct(id uint, price string, stock int, active bool) *product.Product {
	p := product.NewProduct(1, "SKU-"+string(rune('A'+id)), "产品", "", decimal.RequireFromString(price), stock, active)
	p.ID = id
	return p
}

func setupCreateUseCase(products ...*product.Product) (*CreateOrderUseCase, *fakeOrderRepo, *fakeProductRepo) {
	productRepo := &fakeProductRepo{products: make(map[uint]*product.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	orderRepo := newFakeOrderRepo()
	customers := &fakeCustomers{customers: map[uint]*customer.Customer{
		1: {ID: 1, FirstName: "三", LastName: "张", Email: "zhangsan@example.com"},
	}}
	uc := NewCreateOrderUseCase(orderRepo, productRepo, customers, fakeTx{})
	return uc, orderRepo, productRepo
}

func TestCreateOrderSuccess(t *testing.T) {
	uc, orderRepo, productRepo := setupCreateUseCase(
		newTestProduct(10, "19.99", 5, true),
		newTestProduct(11, "5.50", 8, true),
	)

	got, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		OrderDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines: []CreateOrderLine{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 状态与金额:2*19.99 + 3*5.50 = 56.48
	assert.Equal(t, order.StatusNew, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("56.48")))
	assert.Len(t, got.Lines, 2)

	// 价格快照来自仓储中的当前价格
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))

	// 库存已扣减
	assert.Equal(t, 3, productRepo.products[10].StockQuantity)
	assert.Equal(t, 5, productRepo.products[11].StockQuantity)

	// 订单已持久化且锁定了两个产品行
	assert.Len(t, orderRepo.orders, 1)
	assert.Equal(t, []uint{10, 11}, productRepo.lockCalls)
}

func TestCreateOrderCustomerNotFound(t *testing.T) {
	uc, orderRepo, _ := setupCreateUseCase(newTestProduct(10, "9.99", 5, true))

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 999,
		Lines:      []CreateOrderLine{{ProductID: 10, Quantity: 1}},
	})

	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderEmptyLines(t *testing.T) {
	uc, _, _ := setupCreateUseCase()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{CustomerID: 1})

	assert.ErrorIs(t, err, order.ErrEmptyOrder)
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	uc, _, _ := setupCreateUseCase(newTestProduct(10, "9.99", 5, true))

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Lines:      []CreateOrderLine{{ProductID: 10, Quantity: 0}},
	})

	assert.ErrorIs(t, err, order.ErrInvalidQty)
}

func TestCreateOrderProductNotFound(t *testing.T) {
	uc, orderRepo, _ := setupCreateUseCase()

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Lines:      []CreateOrderLine{{ProductID: 404, Quantity: 1}},
	})

	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	uc, orderRepo, _ := setupCreateUseCase(newTestProduct(10, "9.99", 5, false))

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Lines:      []CreateOrderLine{{ProductID: 10, Quantity: 1}},
	})

	assert.ErrorIs(t, err, product.ErrProductInactive)
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	uc, orderRepo, productRepo := setupCreateUseCase(newTestProduct(10, "9.99", 2, true))

	_, err := uc.Execute(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Lines:      []CreateOrderLine{{ProductID: 10, Quantity: 3}},
	})

	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Empty(t, orderRepo.orders)
	// 库存未被扣减
	assert.Equal(t, 2, productRepo.products[10].StockQuantity)
}

func TestDeleteOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	o := order.NewOrder(1, time.Now())
	require.NoError(t, orderRepo.Create(context.Background(), o))

	uc := NewDeleteOrderUseCase(orderRepo, fakeTx{})

	require.NoError(t, uc.Execute(context.Background(), o.ID))
	assert.Equal(t, []uint{o.ID}, orderRepo.deleted)

	err := uc.Execute(context.Background(), o.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
