package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/crm/internal/domain/order"
)

// CategorySalesRow 大类销售报表行
type CategorySalesRow struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Volume       int64           `json:"volume"`     // 销量(数量合计)
	Revenue      decimal.Decimal `json:"revenue"`    // 销售额
	Percentage   decimal.Decimal `json:"percentage"` // 占总销售额百分比,保留2位小数
}

// CategorySalesReport 大类销售报表
type CategorySalesReport struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	Total decimal.Decimal    `json:"total"` // 全部大类销售额合计
	Rows  []CategorySalesRow `json:"rows"`  // 按销售额降序
}

// CategorySalesUseCase 按产品大类统计销售额用例
type CategorySalesUseCase struct {
	orderRepo order.Repository
	cache     ReportCache
	cacheTTL  time.Duration
}

// NewCategorySalesUseCase 创建大类销售统计用例,cache可为nil(禁用缓存)
func NewCategorySalesUseCase(orderRepo order.Repository, cache ReportCache, cacheTTL time.Duration) *CategorySalesUseCase {
	return &CategorySalesUseCase{orderRepo: orderRepo, cache: cache, cacheTTL: cacheTTL}
}

// Execute 生成日期区间内的大类销售报表
// 百分比 = 该大类销售额 / 总销售额 * 100,四舍五入保留2位小数
// 总销售额为0时全部百分比为0(避免除零)
func (uc *CategorySalesUseCase) Execute(ctx context.Context, from, to time.Time) (*CategorySalesReport, error) {
	cacheKey := fmt.Sprintf("stats:category_sales:%s:%s",
		from.Format(dateLayout), to.Format(dateLayout))

	var cached CategorySalesReport
	if loadCached(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := uc.orderRepo.SalesByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}

	report := &CategorySalesReport{
		From:  from.Format(dateLayout),
		To:    to.Format(dateLayout),
		Total: total,
		Rows:  make([]CategorySalesRow, 0, len(rows)),
	}
	hundred := decimal.NewFromInt(100)
	for _, r := range rows {
		row := CategorySalesRow{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Volume:       r.Volume,
			Revenue:      r.Revenue,
			Percentage:   decimal.Zero,
		}
		if total.IsPositive() {
			row.Percentage = r.Revenue.Div(total).Mul(hundred).Round(2)
		}
		report.Rows = append(report.Rows, row)
	}

	storeCached(ctx, uc.cache, cacheKey, report, uc.cacheTTL)
	return report, nil
}
