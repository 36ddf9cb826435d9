package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/internal/application/statistics"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// StatisticsHandler 销售统计HTTP处理器
type StatisticsHandler struct {
	categorySalesUC    *statistics.CategorySalesUseCase
	subCategorySalesUC *statistics.SubCategorySalesUseCase
	yearComparisonUC   *statistics.YearComparisonUseCase
}

// NewStatisticsHandler 创建统计处理器
func NewStatisticsHandler(
	categorySalesUC *statistics.CategorySalesUseCase,
	subCategorySalesUC *statistics.SubCategorySalesUseCase,
	yearComparisonUC *statistics.YearComparisonUseCase,
) *StatisticsHandler {
	return &StatisticsHandler{
		categorySalesUC:    categorySalesUC,
		subCategorySalesUC: subCategorySalesUC,
		yearComparisonUC:   yearComparisonUC,
	}
}

// CategorySales 大类销售统计
// @Summary      按产品大类统计销售额
// @Description  日期区间内各大类销量、销售额及占比,含无销售的大类,按销售额降序
// @Tags         统计
// @Produce      json
// @Param        from query string true "起始日期(yyyy-MM-dd,含)"
// @Param        to query string true "结束日期(yyyy-MM-dd,含)"
// @Success      200 {object} response.Response{data=statistics.CategorySalesReport}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/statistics/category-sales [get]
func (h *StatisticsHandler) CategorySales(c *gin.Context) {
	var q dto.StatsRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	from, to, err := q.ParseRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.categorySalesUC.Execute(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, report)
}

// SubCategorySales 子类按月销售统计
// @Summary      按产品子类统计月度销售额
// @Description  日期区间内各子类分月销量与销售额,可按大类名过滤
// @Tags         统计
// @Produce      json
// @Param        from query string true "起始日期(yyyy-MM-dd,含)"
// @Param        to query string true "结束日期(yyyy-MM-dd,含)"
// @Param        category query string false "大类名称过滤(模糊匹配)"
// @Success      200 {object} response.Response{data=statistics.SubCategorySalesReport}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/statistics/subcategory-sales [get]
func (h *StatisticsHandler) SubCategorySales(c *gin.Context) {
	var q dto.SubCategoryStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	from, to, err := q.ParseRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.subCategorySalesUC.Execute(c.Request.Context(), from, to, q.Category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, report)
}

// YearComparison 年度销售对比
// @Summary      两个年份的大类销售对比
// @Description  各大类在两个年份的销量与销售额并排对比,含无销售的大类
// @Tags         统计
// @Produce      json
// @Param        yearA query int true "对比年份A"
// @Param        yearB query int true "对比年份B"
// @Success      200 {object} response.Response{data=statistics.YearComparisonReport}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/statistics/year-comparison [get]
func (h *StatisticsHandler) YearComparison(c *gin.Context) {
	var q dto.YearComparisonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	report, err := h.yearComparisonUC.Execute(c.Request.Context(), q.YearA, q.YearB)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, report)
}
