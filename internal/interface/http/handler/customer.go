package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/internal/domain/customer"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	service customer.Service
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(service customer.Service) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create 创建客户
// @Summary      创建客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      201 {object} response.Response{data=dto.CustomerResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已被使用"
// @Router       /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cust, err := h.service.CreateCustomer(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.AddressID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/customers/%d", cust.ID), dto.ToCustomerResponse(cust))
}

// Get 获取客户详情
// @Summary      获取客户详情
// @Tags         客户
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cust, err := h.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCustomerResponse(cust))
}

// Update 更新客户
// @Summary      更新客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        id path int true "客户ID"
// @Param        request body dto.CustomerRequest true "客户信息"
// @Success      200 {object} response.Response{data=dto.CustomerResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Failure      409 {object} response.Response "邮箱已被使用"
// @Router       /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cust, err := h.service.UpdateCustomer(c.Request.Context(), id, req.FirstName, req.LastName, req.Email, req.AddressID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCustomerResponse(cust))
}

// Delete 删除客户
// @Summary      删除客户
// @Description  客户存在订单时拒绝删除
// @Tags         客户
// @Param        id path int true "客户ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "客户不存在"
// @Failure      409 {object} response.Response "客户存在订单"
// @Router       /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 客户列表
// @Summary      客户列表
// @Tags         客户
// @Produce      json
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Param        sort query string false "排序,如 last_name,asc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	customers, total, err := h.service.ListCustomers(c.Request.Context(), customer.ListParams{
		Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToCustomerResponses(customers), total, page, size)
}

// Search 搜索客户
// @Summary      搜索客户
// @Description  q为通用搜索词(优先);否则email/name/city过滤AND组合
// @Tags         客户
// @Produce      json
// @Param        q query string false "通用搜索词"
// @Param        email query string false "邮箱"
// @Param        name query string false "全名(名 姓)"
// @Param        city query string false "关联地址城市"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/customers/search [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var sq dto.SearchCustomerQuery
	if err := c.ShouldBindQuery(&sq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	customers, total, err := h.service.SearchCustomers(c.Request.Context(),
		customer.SearchParams{
			Term:  sq.Q,
			Email: sq.Email,
			Name:  sq.Name,
			City:  sq.City,
		},
		customer.ListParams{Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir},
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToCustomerResponses(customers), total, page, size)
}
