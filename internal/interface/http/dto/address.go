package dto

import "github.com/xiebiao/crm/internal/domain/address"

// timeLayout 响应中的时间格式
const timeLayout = "2006-01-02 15:04:05"

// dateLayout 请求中的日期格式
const dateLayout = "2006-01-02"

// AddressRequest HTTP地址创建/更新请求
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200" example:"南京东路100号"`
	City       string `json:"city" binding:"required,max=100" example:"上海"`
	State      string `json:"state" binding:"omitempty,max=100" example:"上海市"`
	PostalCode string `json:"postal_code" binding:"required,max=20" example:"200001"`
}

// AddressResponse HTTP地址响应
type AddressResponse struct {
	ID         uint   `json:"id" example:"1"`
	Street     string `json:"street" example:"南京东路100号"`
	City       string `json:"city" example:"上海"`
	State      string `json:"state" example:"上海市"`
	PostalCode string `json:"postal_code" example:"200001"`
	CreatedAt  string `json:"created_at" example:"2025-01-15 10:30:00"`
	UpdatedAt  string `json:"updated_at" example:"2025-01-15 10:30:00"`
}

// SearchAddressQuery HTTP地址搜索参数
// q优先于字段过滤;字段过滤AND组合
type SearchAddressQuery struct {
	Q          string `form:"q" binding:"omitempty,max=100"`
	City       string `form:"city" binding:"omitempty,max=100"`
	State      string `form:"state" binding:"omitempty,max=100"`
	PostalCode string `form:"postal_code" binding:"omitempty,max=20"`
}

// ToAddressResponse 领域实体 → HTTP响应
func ToAddressResponse(a *address.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		CreatedAt:  a.CreatedAt.Format(timeLayout),
		UpdatedAt:  a.UpdatedAt.Format(timeLayout),
	}
}

// ToAddressResponses 批量转换
func ToAddressResponses(addrs []*address.Address) []*AddressResponse {
	out := make([]*AddressResponse, len(addrs))
	for i, a := range addrs {
		out[i] = ToAddressResponse(a)
	}
	return out
}
