package customer

import (
	"time"
)

// Customer 客户实体(聚合根)
// 设计说明:
// 1. Email是业务唯一标识(服务层软校验,不区分大小写)
// 2. AddressID为可选关联,不持有Address对象本身,
//    跨聚合只保存ID引用,关联数据由调用方显式查询
type Customer struct {
	ID        uint
	FirstName string // 名
	LastName  string // 姓
	Email     string // 邮箱(软唯一)
	AddressID *uint  // 关联地址ID(可选)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer 创建新客户(工厂方法)
func NewCustomer(firstName, lastName, email string, addressID *uint) *Customer {
	now := time.Now()
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		AddressID: addressID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update 更新客户字段(领域行为)
func (c *Customer) Update(firstName, lastName, email string, addressID *uint) {
	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.AddressID = addressID
	c.UpdatedAt = time.Now()
}

// FullName 客户全名("名 姓"拼接,用于搜索与展示)
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
