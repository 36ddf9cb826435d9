package catalog

import (
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// 产品分类领域错误定义
var (
	// ErrCategoryNotFound 产品大类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "产品大类不存在")

	// ErrSubCategoryNotFound 产品子类不存在
	ErrSubCategoryNotFound = apperrors.New(apperrors.ErrCodeSubCategoryNotFound, "产品子类不存在")

	// ErrCategoryHasChildren 大类下还有子类,禁止删除
	ErrCategoryHasChildren = apperrors.New(apperrors.ErrCodeCategoryHasChildren, "大类下存在子类,无法删除")

	// ErrSubCategoryInUse 子类下还有产品,禁止删除
	ErrSubCategoryInUse = apperrors.New(apperrors.ErrCodeSubCategoryInUse, "子类下存在产品,无法删除")

	// ErrInvalidName 分类名称为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称为必填项")
)
