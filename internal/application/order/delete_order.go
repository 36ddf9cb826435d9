package order

import (
	"context"

	"github.com/xiebiao/crm/internal/domain/order"
)

// DeleteOrderUseCase 删除订单用例
// 订单头与订单行在同一事务内一并删除,已扣减的库存不回补
// (历史订单删除属于数据清理,不是取消流程)
type DeleteOrderUseCase struct {
	orderRepo order.Repository
	txManager Transactor
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(orderRepo order.Repository, txManager Transactor) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orderRepo: orderRepo,
		txManager: txManager,
	}
}

// Execute 执行删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.orderRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		return uc.orderRepo.Delete(txCtx, id)
	})
}
