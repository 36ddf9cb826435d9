package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/internal/domain/address"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// AddressHandler 地址HTTP处理器
type AddressHandler struct {
	service address.Service
}

// NewAddressHandler 创建地址处理器
func NewAddressHandler(service address.Service) *AddressHandler {
	return &AddressHandler{service: service}
}

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID必须为正整数")
		return 0, false
	}
	return uint(id), true
}

// Create 创建地址
// @Summary      创建地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Param        request body dto.AddressRequest true "地址信息"
// @Success      201 {object} response.Response{data=dto.AddressResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	addr, err := h.service.CreateAddress(c.Request.Context(), req.Street, req.City, req.State, req.PostalCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/addresses/%d", addr.ID), dto.ToAddressResponse(addr))
}

// Get 获取地址详情
// @Summary      获取地址详情
// @Tags         地址
// @Produce      json
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	addr, err := h.service.GetAddressByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAddressResponse(addr))
}

// Update 更新地址
// @Summary      更新地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Param        id path int true "地址ID"
// @Param        request body dto.AddressRequest true "地址信息"
// @Success      200 {object} response.Response{data=dto.AddressResponse}
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	addr, err := h.service.UpdateAddress(c.Request.Context(), id, req.Street, req.City, req.State, req.PostalCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAddressResponse(addr))
}

// Delete 删除地址
// @Summary      删除地址
// @Tags         地址
// @Param        id path int true "地址ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /api/v1/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 地址列表
// @Summary      地址列表
// @Tags         地址
// @Produce      json
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Param        sort query string false "排序,如 city,desc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	addrs, total, err := h.service.ListAddresses(c.Request.Context(), address.ListParams{
		Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToAddressResponses(addrs), total, page, size)
}

// Search 搜索地址
// @Summary      搜索地址
// @Description  q为通用搜索词(优先);否则city/state/postal_code过滤AND组合
// @Tags         地址
// @Produce      json
// @Param        q query string false "通用搜索词"
// @Param        city query string false "城市"
// @Param        state query string false "省/州"
// @Param        postal_code query string false "邮编"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/addresses/search [get]
func (h *AddressHandler) Search(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var sq dto.SearchAddressQuery
	if err := c.ShouldBindQuery(&sq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	addrs, total, err := h.service.SearchAddresses(c.Request.Context(),
		address.SearchParams{
			Term:       sq.Q,
			City:       sq.City,
			State:      sq.State,
			PostalCode: sq.PostalCode,
		},
		address.ListParams{Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir},
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToAddressResponses(addrs), total, page, size)
}
