package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// 订单状态
const (
	StatusNew       = "NEW"       // 新建
	StatusCompleted = "COMPLETED" // 已完成
	StatusCancelled = "CANCELLED" // 已取消
)

// ValidStatus 判断是否为合法订单状态
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order 订单聚合根
type Order struct {
	ID          uint            `json:"id"`
	CustomerID  uint            `json:"customer_id"`
	OrderDate   time.Time       `json:"order_date"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Version     int64           `json:"version"`
	Lines       []*Line         `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Line 订单行
// UnitPrice为下单时刻的产品价格快照,后续产品调价不影响历史订单
type Line struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Version   int64           `json:"version"`
}

// NewOrder 创建订单聚合(尚未持久化,金额由ComputeTotals计算)
func NewOrder(customerID uint, orderDate time.Time) *Order {
	return &Order{
		CustomerID:  customerID,
		OrderDate:   orderDate,
		Status:      StatusNew,
		TotalAmount: decimal.Zero,
	}
}

// AddLine 追加订单行,行金额=单价*数量
func (o *Order) AddLine(productID uint, quantity int, unitPrice decimal.Decimal) {
	line := &Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	o.Lines = append(o.Lines, line)
}

// ComputeTotals 重算各行金额与订单总额
func (o *Order) ComputeTotals() {
	total := decimal.Zero
	for _, line := range o.Lines {
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(line.LineTotal)
	}
	o.TotalAmount = total
}
