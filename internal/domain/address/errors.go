package address

import (
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// 地址领域错误定义
var (
	// ErrAddressNotFound 地址不存在
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "地址不存在")

	// ErrInvalidAddress 地址字段不完整
	ErrInvalidAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "街道、城市、邮编为必填项")
)
