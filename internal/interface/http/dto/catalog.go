package dto

import "github.com/xiebiao/crm/internal/domain/catalog"

// CategoryRequest HTTP大类创建/更新请求
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"电子产品"`
}

// CategoryResponse HTTP大类响应
type CategoryResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"电子产品"`
	CreatedAt string `json:"created_at" example:"2025-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2025-01-15 10:30:00"`
}

// SubCategoryRequest HTTP子类创建/更新请求
type SubCategoryRequest struct {
	Name       string `json:"name" binding:"required,max=100" example:"手机"`
	CategoryID uint   `json:"category_id" binding:"required,min=1" example:"1"`
}

// SubCategoryResponse HTTP子类响应
type SubCategoryResponse struct {
	ID         uint   `json:"id" example:"1"`
	Name       string `json:"name" example:"手机"`
	CategoryID uint   `json:"category_id" example:"1"`
	CreatedAt  string `json:"created_at" example:"2025-01-15 10:30:00"`
	UpdatedAt  string `json:"updated_at" example:"2025-01-15 10:30:00"`
}

// ToCategoryResponse 领域实体 → HTTP响应
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(timeLayout),
		UpdatedAt: c.UpdatedAt.Format(timeLayout),
	}
}

// ToCategoryResponses 批量转换
func ToCategoryResponses(categories []*catalog.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out
}

// ToSubCategoryResponse 领域实体 → HTTP响应
func ToSubCategoryResponse(sc *catalog.SubCategory) *SubCategoryResponse {
	return &SubCategoryResponse{
		ID:         sc.ID,
		Name:       sc.Name,
		CategoryID: sc.CategoryID,
		CreatedAt:  sc.CreatedAt.Format(timeLayout),
		UpdatedAt:  sc.UpdatedAt.Format(timeLayout),
	}
}

// ToSubCategoryResponses 批量转换
func ToSubCategoryResponses(subs []*catalog.SubCategory) []*SubCategoryResponse {
	out := make([]*SubCategoryResponse, len(subs))
	for i, sc := range subs {
		out[i] = ToSubCategoryResponse(sc)
	}
	return out
}
