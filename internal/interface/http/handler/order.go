package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/crm/internal/application/order"
	"github.com/xiebiao/crm/internal/domain/order"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 写路径(下单/删除)走应用层用例,读路径直接走仓储
type OrderHandler struct {
	createUC  *apporder.CreateOrderUseCase
	deleteUC  *apporder.DeleteOrderUseCase
	orderRepo order.Repository
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUC *apporder.CreateOrderUseCase,
	deleteUC *apporder.DeleteOrderUseCase,
	orderRepo order.Repository,
) *OrderHandler {
	return &OrderHandler{
		createUC:  createUC,
		deleteUC:  deleteUC,
		orderRepo: orderRepo,
	}
}

// Create 创建订单
// @Summary      创建订单
// @Description  以数据库当前价格生成价格快照并原子扣减库存,库存不足时整单失败
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "客户或产品不存在"
// @Failure      409 {object} response.Response "产品已下架或库存不足"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	orderDate, err := req.ParseOrderDate()
	if err != nil {
		response.Error(c, err)
		return
	}

	lines := make([]apporder.CreateOrderLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = apporder.CreateOrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}

	o, err := h.createUC.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		CustomerID: req.CustomerID,
		OrderDate:  orderDate,
		Lines:      lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/orders/%d", o.ID), dto.ToOrderResponse(o))
}

// Get 获取订单详情
// @Summary      获取订单详情
// @Tags         订单
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	o, err := h.orderRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOrderResponse(o))
}

// Delete 删除订单
// @Summary      删除订单
// @Description  删除订单头与全部订单行,不回补库存
// @Tags         订单
// @Param        id path int true "订单ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 订单列表
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Param        sort query string false "排序,如 order_date,desc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	orders, total, err := h.orderRepo.List(c.Request.Context(), order.ListParams{
		Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToOrderResponses(orders), total, page, size)
}

// Search 搜索订单
// @Summary      搜索订单
// @Description  按客户/状态/下单日期区间过滤,条件AND组合
// @Tags         订单
// @Produce      json
// @Param        customer_id query int false "客户ID"
// @Param        status query string false "订单状态" Enums(NEW, COMPLETED, CANCELLED)
// @Param        from query string false "起始日期(yyyy-MM-dd,含)"
// @Param        to query string false "结束日期(yyyy-MM-dd,含)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders/search [get]
func (h *OrderHandler) Search(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var sq dto.SearchOrderQuery
	if err := c.ShouldBindQuery(&sq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	criteria, err := sq.ToCriteria()
	if err != nil {
		response.Error(c, err)
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	orders, total, err := h.orderRepo.Search(c.Request.Context(), criteria,
		order.ListParams{Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToOrderResponses(orders), total, page, size)
}
