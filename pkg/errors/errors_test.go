package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAppErrorError 测试错误字符串格式
func TestAppErrorError(t *testing.T) {
	e := New(ErrCodeSKUDuplicate, "SKU已存在")
	assert.Equal(t, "[40004] SKU已存在", e.Error())

	wrapped := Wrap(errors.New("connection refused"), "数据库错误")
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.Contains(t, wrapped.Error(), "数据库错误")
}

// TestUnwrap 测试errors.Is/As穿透
func TestUnwrap(t *testing.T) {
	inner := errors.New("duplicate entry")
	e := Wrap(inner, "创建产品失败")

	assert.True(t, errors.Is(e, inner))

	// 外层再包一层也能提取出AppError
	outer := fmt.Errorf("usecase: %w", e)
	var appErr *AppError
	require.True(t, errors.As(outer, &appErr))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

// TestGetAppError 测试非AppError被包装为内部错误
func TestGetAppError(t *testing.T) {
	plain := errors.New("boom")
	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.True(t, errors.Is(appErr, plain))

	// 已是AppError则原样返回
	orig := New(ErrCodeCustomerNotFound, "客户不存在")
	assert.Same(t, orig, GetAppError(orig))
}
