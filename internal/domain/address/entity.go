package address

import (
	"time"
)

// Address 地址实体
// 设计说明:
// 1. 地址是独立聚合根,可被零个或多个客户引用
// 2. State(省/州)为可选字段,其余字段必填
type Address struct {
	ID         uint
	Street     string // 街道
	City       string // 城市
	State      string // 省/州(可选)
	PostalCode string // 邮政编码
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAddress 创建新地址(工厂方法)
func NewAddress(street, city, state, postalCode string) *Address {
	now := time.Now()
	return &Address{
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Update 更新地址字段(领域行为)
func (a *Address) Update(street, city, state, postalCode string) {
	a.Street = street
	a.City = city
	a.State = state
	a.PostalCode = postalCode
	a.UpdatedAt = time.Now()
}
