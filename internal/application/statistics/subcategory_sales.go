package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/crm/internal/domain/order"
)

// SubCategorySalesReport 子类按月销售报表
// 行按 子类名 -> 月份 升序排列(由SQL的ORDER BY保证)
type SubCategorySalesReport struct {
	From     string                        `json:"from"`
	To       string                        `json:"to"`
	Category string                        `json:"category,omitempty"` // 大类名过滤条件(如有)
	Rows     []order.SubCategoryMonthSales `json:"rows"`
}

// SubCategorySalesUseCase 按子类与月份统计销售额用例
type SubCategorySalesUseCase struct {
	orderRepo order.Repository
	cache     ReportCache
	cacheTTL  time.Duration
}

// NewSubCategorySalesUseCase 创建子类销售统计用例
func NewSubCategorySalesUseCase(orderRepo order.Repository, cache ReportCache, cacheTTL time.Duration) *SubCategorySalesUseCase {
	return &SubCategorySalesUseCase{orderRepo: orderRepo, cache: cache, cacheTTL: cacheTTL}
}

// Execute 生成日期区间内的子类按月销售报表,category非空时按大类名过滤
func (uc *SubCategorySalesUseCase) Execute(ctx context.Context, from, to time.Time, category string) (*SubCategorySalesReport, error) {
	cacheKey := fmt.Sprintf("stats:subcategory_sales:%s:%s:%s",
		from.Format(dateLayout), to.Format(dateLayout), category)

	var cached SubCategorySalesReport
	if loadCached(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := uc.orderRepo.SalesBySubCategoryMonth(ctx, from, to, category)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []order.SubCategoryMonthSales{}
	}

	report := &SubCategorySalesReport{
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Category: category,
		Rows:     rows,
	}

	storeCached(ctx, uc.cache, cacheKey, report, uc.cacheTTL)
	return report, nil
}
