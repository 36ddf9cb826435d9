package customer

import (
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// 客户领域错误定义
var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被其他客户使用")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrInvalidName 姓名不完整
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "客户姓名为必填项")

	// ErrCustomerInUse 客户存在订单,禁止删除
	ErrCustomerInUse = apperrors.New(apperrors.ErrCodeCustomerInUse, "客户存在订单,无法删除")
)
