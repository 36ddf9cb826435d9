package order

import (
	"context"
	"time"

	"github.com/xiebiao/crm/internal/domain/customer"
	"github.com/xiebiao/crm/internal/domain/order"
	"github.com/xiebiao/crm/internal/domain/product"
	"github.com/xiebiao/crm/pkg/metrics"
)

// Transactor 事务执行器接口,由mysql.TxManager实现
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CustomerLookup 客户查询接口(接口隔离,便于Mock)
type CustomerLookup interface {
	FindByID(ctx context.Context, id uint) (*customer.Customer, error)
}

// CreateOrderUseCase 创建订单用例
// 涉及:事务处理、并发控制、业务规则校验,是整个系统最核心的写路径
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	productRepo product.Repository
	customers   CustomerLookup
	txManager   Transactor
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productRepo product.Repository,
	customers CustomerLookup,
	txManager Transactor,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		customers:   customers,
		txManager:   txManager,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CustomerID uint              // 下单客户ID
	OrderDate  time.Time         // 下单日期,零值时取当前时间
	Lines      []CreateOrderLine // 订单明细
}

// CreateOrderLine 订单明细项
type CreateOrderLine struct {
	ProductID uint // 产品ID
	Quantity  int  // 订购数量
}

// Execute 执行下单用例
//
// 防超卖的完整流程:
//  1. SELECT FOR UPDATE 锁定产品行
//  2. 校验产品在售且库存充足
//  3. 以锁定时的价格生成订单行(价格快照,防改价)
//  4. 持久化订单头与订单行
//  5. 条件扣减库存(stock + delta >= 0)
//  6. COMMIT释放锁
//
// 任一步失败整个事务回滚:订单不落库,库存不扣减
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	// 客户必须存在,放在事务外检查即可(客户删除有订单引用保护)
	if _, err := uc.customers.FindByID(ctx, req.CustomerID); err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	if len(req.Lines) == 0 {
		metrics.OrdersFailedTotal.Inc()
		return nil, order.ErrEmptyOrder
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		newOrder := order.NewOrder(req.CustomerID, orderDate)

		// 锁定产品并校验,同时以锁定时价格生成订单行
		for _, line := range req.Lines {
			if line.Quantity <= 0 {
				return order.ErrInvalidQty
			}

			// LockByID执行:SELECT * FROM products WHERE id = ? FOR UPDATE
			// 锁定后的检查才可靠,否则并发扣减会导致超卖
			p, err := uc.productRepo.LockByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if !p.Active {
				return product.ErrProductInactive
			}
			if !p.HasStock(line.Quantity) {
				return product.ErrInsufficientStock
			}

			// 使用数据库中的当前价格而非前端传递的价格
			newOrder.AddLine(p.ID, line.Quantity, p.Price)
		}

		newOrder.ComputeTotals()

		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 条件扣减库存,UpdateStock内部保证不会扣成负数
		for _, line := range req.Lines {
			if err := uc.productRepo.UpdateStock(txCtx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}

		result = newOrder
		return nil
	})

	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	amount, _ := result.TotalAmount.Round(2).Float64()
	metrics.OrderAmount.Observe(amount)

	return result, nil
}
