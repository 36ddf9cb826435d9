package order

import "github.com/xiebiao/crm/pkg/errors"

// 订单领域错误
var (
	ErrOrderNotFound = errors.New(errors.ErrCodeOrderNotFound, "订单不存在")
	ErrEmptyOrder    = errors.New(errors.ErrCodeInvalidParams, "订单行不能为空")
	ErrInvalidQty    = errors.New(errors.ErrCodeInvalidParams, "订购数量必须大于0")
	ErrInvalidStatus = errors.New(errors.ErrCodeInvalidParams, "非法的订单状态")
)
