package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/crm/internal/domain/order"
	apperrors "github.com/xiebiao/crm/pkg/errors"
)

// CreateOrderRequest HTTP下单请求
// OrderDate格式为yyyy-MM-dd,缺省为当天
type CreateOrderRequest struct {
	CustomerID uint                   `json:"customer_id" binding:"required,min=1" example:"1"`
	OrderDate  string                 `json:"order_date" binding:"omitempty" example:"2025-03-01"`
	Lines      []CreateOrderLineEntry `json:"lines" binding:"required,min=1,dive"`
}

// CreateOrderLineEntry HTTP订单明细项
type CreateOrderLineEntry struct {
	ProductID uint `json:"product_id" binding:"required,min=1" example:"1"`
	Quantity  int  `json:"quantity" binding:"required,min=1" example:"2"`
}

// ParseOrderDate 解析下单日期,空串返回零值
func (r CreateOrderRequest) ParseOrderDate() (time.Time, error) {
	if r.OrderDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, r.OrderDate)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "下单日期格式非法,应为yyyy-MM-dd")
	}
	return t, nil
}

// OrderLineResponse HTTP订单行响应
type OrderLineResponse struct {
	ID        uint            `json:"id" example:"1"`
	ProductID uint            `json:"product_id" example:"1"`
	Quantity  int             `json:"quantity" example:"2"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"1999.00"`
	LineTotal decimal.Decimal `json:"line_total" swaggertype:"string" example:"3998.00"`
}

// OrderResponse HTTP订单响应
type OrderResponse struct {
	ID          uint                 `json:"id" example:"1"`
	CustomerID  uint                 `json:"customer_id" example:"1"`
	OrderDate   string               `json:"order_date" example:"2025-03-01"`
	Status      string               `json:"status" example:"NEW"`
	TotalAmount decimal.Decimal      `json:"total_amount" swaggertype:"string" example:"3998.00"`
	Version     int64                `json:"version" example:"0"`
	Lines       []*OrderLineResponse `json:"lines"`
	CreatedAt   string               `json:"created_at" example:"2025-03-01 10:30:00"`
}

// SearchOrderQuery HTTP订单搜索参数
// from/to格式为yyyy-MM-dd,按下单日期过滤(含边界)
type SearchOrderQuery struct {
	CustomerID uint   `form:"customer_id" binding:"omitempty,min=1"`
	Status     string `form:"status" binding:"omitempty,oneof=NEW COMPLETED CANCELLED"`
	From       string `form:"from" binding:"omitempty"`
	To         string `form:"to" binding:"omitempty"`
}

// ToCriteria 转换为仓储搜索条件
func (q SearchOrderQuery) ToCriteria() (order.SearchParams, error) {
	criteria := order.SearchParams{
		CustomerID: q.CustomerID,
		Status:     q.Status,
	}

	if q.From != "" {
		from, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return criteria, apperrors.New(apperrors.ErrCodeInvalidParams, "起始日期格式非法,应为yyyy-MM-dd")
		}
		criteria.From = from
	}
	if q.To != "" {
		to, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return criteria, apperrors.New(apperrors.ErrCodeInvalidParams, "结束日期格式非法,应为yyyy-MM-dd")
		}
		// 含当天:推到当天最后一刻
		criteria.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	return criteria, nil
}

// ToOrderResponse 领域实体 → HTTP响应
func ToOrderResponse(o *order.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate.Format(dateLayout),
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Version:     o.Version,
		Lines:       make([]*OrderLineResponse, len(o.Lines)),
		CreatedAt:   o.CreatedAt.Format(timeLayout),
	}
	for i, line := range o.Lines {
		resp.Lines[i] = &OrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
	}
	return resp
}

// ToOrderResponses 批量转换
func ToOrderResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}
