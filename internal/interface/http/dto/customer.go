package dto

import "github.com/xiebiao/crm/internal/domain/customer"

// CustomerRequest HTTP客户创建/更新请求
// AddressID可空:客户可以没有关联地址
type CustomerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100" example:"三"`
	LastName  string `json:"last_name" binding:"required,max=100" example:"张"`
	Email     string `json:"email" binding:"required,max=150" example:"zhangsan@example.com"`
	AddressID *uint  `json:"address_id" binding:"omitempty,min=1" example:"1"`
}

// CustomerResponse HTTP客户响应
type CustomerResponse struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"first_name" example:"三"`
	LastName  string `json:"last_name" example:"张"`
	FullName  string `json:"full_name" example:"三 张"`
	Email     string `json:"email" example:"zhangsan@example.com"`
	AddressID *uint  `json:"address_id" example:"1"`
	CreatedAt string `json:"created_at" example:"2025-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2025-01-15 10:30:00"`
}

// SearchCustomerQuery HTTP客户搜索参数
type SearchCustomerQuery struct {
	Q     string `form:"q" binding:"omitempty,max=100"`
	Email string `form:"email" binding:"omitempty,max=150"`
	Name  string `form:"name" binding:"omitempty,max=200"`
	City  string `form:"city" binding:"omitempty,max=100"`
}

// ToCustomerResponse 领域实体 → HTTP响应
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		AddressID: c.AddressID,
		CreatedAt: c.CreatedAt.Format(timeLayout),
		UpdatedAt: c.UpdatedAt.Format(timeLayout),
	}
}

// ToCustomerResponses 批量转换
func ToCustomerResponses(customers []*customer.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = ToCustomerResponse(c)
	}
	return out
}
