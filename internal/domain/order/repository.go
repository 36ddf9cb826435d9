package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListParams 分页与排序参数
type ListParams struct {
	Page     int    // 页码,从0开始
	PageSize int    // 每页大小
	SortBy   string // 排序字段
	SortDir  string // asc/desc
}

// SearchParams 订单搜索条件,零值字段不参与过滤
type SearchParams struct {
	CustomerID uint
	Status     string
	From       time.Time // 下单日期起(含)
	To         time.Time // 下单日期止(含)
}

// CategorySales 大类销售统计行
// Volume为销量(数量合计),Revenue为销售额(行金额合计)
type CategorySales struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Volume       int64           `json:"volume"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SubCategoryMonthSales 子类按月销售统计行
type SubCategoryMonthSales struct {
	SubCategoryID   uint            `json:"sub_category_id"`
	SubCategoryName string          `json:"sub_category_name"`
	CategoryName    string          `json:"category_name"`
	Month           string          `json:"month"` // 格式 yyyy-MM
	Volume          int64           `json:"volume"`
	Revenue         decimal.Decimal `json:"revenue"`
}

// Repository 订单仓储接口
type Repository interface {
	// Create 持久化订单头与全部订单行
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID获取订单(含订单行)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// Delete 删除订单及其订单行
	Delete(ctx context.Context, id uint) error

	// List 分页查询订单列表
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)

	// Search 按条件搜索订单
	Search(ctx context.Context, criteria SearchParams, params ListParams) ([]*Order, int64, error)

	// ExistsByCustomerID 客户是否存在订单
	ExistsByCustomerID(ctx context.Context, customerID uint) (bool, error)

	// ExistsByProductID 产品是否被订单行引用
	ExistsByProductID(ctx context.Context, productID uint) (bool, error)

	// SalesByCategory 按产品大类聚合日期区间内的销量与销售额
	// 无销售的大类也返回(销量/金额为0),按销售额降序
	SalesByCategory(ctx context.Context, from, to time.Time) ([]CategorySales, error)

	// SalesBySubCategoryMonth 按子类与月份聚合日期区间内的销量与销售额
	// category非空时按大类名过滤,仅返回有销售记录的行
	SalesBySubCategoryMonth(ctx context.Context, from, to time.Time, category string) ([]SubCategoryMonthSales, error)

	// SalesByCategoryYear 按产品大类聚合指定年份的销量与销售额
	// 无销售的大类也返回(销量/金额为0)
	SalesByCategoryYear(ctx context.Context, year int) ([]CategorySales, error)
}
