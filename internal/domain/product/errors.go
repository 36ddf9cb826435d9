package product

import (
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// 产品领域错误定义
var (
	// ErrProductNotFound 产品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "产品不存在")

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0且最多2位小数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidSKU SKU为空
	ErrInvalidSKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU为必填项")

	// ErrProductInUse 产品已被订单引用,禁止删除
	ErrProductInUse = apperrors.New(apperrors.ErrCodeProductInUse, "产品已被订单引用,无法删除")

	// ErrVersionConflict 乐观锁版本冲突(可重试:重新读取后再提交)
	ErrVersionConflict = apperrors.New(apperrors.ErrCodeVersionConflict, "数据已被他人修改,请刷新后重试")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrProductInactive 产品已下架
	ErrProductInactive = apperrors.New(apperrors.ErrCodeProductInactive, "产品已下架,无法购买")
)
