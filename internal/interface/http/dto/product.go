package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/crm/internal/domain/product"
)

// CreateProductRequest HTTP产品创建请求
// Price接受JSON数字或字符串("19.99"),decimal负责解析
// Active可空,缺省为上架
type CreateProductRequest struct {
	SubCategoryID uint            `json:"sub_category_id" binding:"required,min=1" example:"1"`
	SKU           string          `json:"sku" binding:"required,max=50" example:"PHONE-001"`
	Name          string          `json:"name" binding:"required,max=200" example:"智能手机"`
	Description   string          `json:"description" binding:"omitempty,max=5000" example:"旗舰机型"`
	Price         decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"1999.00"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0" example:"100"`
	Active        *bool           `json:"active" binding:"omitempty" example:"true"`
}

// IsActive Active缺省时默认上架
func (r CreateProductRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

// UpdateProductRequest HTTP产品更新请求
// Version为读取时的版本号,用于乐观锁CAS,失配返回版本冲突
type UpdateProductRequest struct {
	SubCategoryID uint            `json:"sub_category_id" binding:"required,min=1" example:"1"`
	SKU           string          `json:"sku" binding:"required,max=50" example:"PHONE-001"`
	Name          string          `json:"name" binding:"required,max=200" example:"智能手机"`
	Description   string          `json:"description" binding:"omitempty,max=5000" example:"旗舰机型"`
	Price         decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"1999.00"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0" example:"100"`
	Active        *bool           `json:"active" binding:"omitempty" example:"true"`
	Version       *int64          `json:"version" binding:"required,min=0" example:"0"`
}

// IsActive Active缺省时默认上架
func (r UpdateProductRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

// ProductResponse HTTP产品响应
type ProductResponse struct {
	ID            uint            `json:"id" example:"1"`
	SubCategoryID uint            `json:"sub_category_id" example:"1"`
	SKU           string          `json:"sku" example:"PHONE-001"`
	Name          string          `json:"name" example:"智能手机"`
	Description   string          `json:"description" example:"旗舰机型"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"1999.00"`
	StockQuantity int             `json:"stock_quantity" example:"100"`
	Active        bool            `json:"active" example:"true"`
	Version       int64           `json:"version" example:"0"`
	CreatedAt     string          `json:"created_at" example:"2025-01-15 10:30:00"`
	UpdatedAt     string          `json:"updated_at" example:"2025-01-15 10:30:00"`
}

// SearchProductQuery HTTP产品搜索参数
type SearchProductQuery struct {
	Q        string `form:"q" binding:"omitempty,max=100"`
	SKU      string `form:"sku" binding:"omitempty,max=50"`
	Name     string `form:"name" binding:"omitempty,max=200"`
	Category string `form:"category" binding:"omitempty,max=100"`
}

// LowStockQuery HTTP低库存查询参数
type LowStockQuery struct {
	Threshold int `form:"threshold" binding:"omitempty,min=0" example:"10"`
}

// ListProductQuery HTTP产品列表参数
type ListProductQuery struct {
	SubCategoryID uint `form:"sub_category_id" binding:"omitempty,min=1"`
}

// ToProductResponse 领域实体 → HTTP响应
func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		SubCategoryID: p.SubCategoryID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt.Format(timeLayout),
		UpdatedAt:     p.UpdatedAt.Format(timeLayout),
	}
}

// ToProductResponses 批量转换
func ToProductResponses(products []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}
