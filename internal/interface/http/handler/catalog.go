package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/internal/domain/catalog"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// CategoryHandler 产品大类HTTP处理器
type CategoryHandler struct {
	service catalog.CategoryService
}

// NewCategoryHandler 创建大类处理器
func NewCategoryHandler(service catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create 创建大类
// @Summary      创建产品大类
// @Tags         产品分类
// @Accept       json
// @Produce      json
// @Param        request body dto.CategoryRequest true "大类信息"
// @Success      201 {object} response.Response{data=dto.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/product-categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/product-categories/%d", cat.ID), dto.ToCategoryResponse(cat))
}

// Get 获取大类详情
// @Summary      获取产品大类详情
// @Tags         产品分类
// @Produce      json
// @Param        id path int true "大类ID"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "大类不存在"
// @Router       /api/v1/product-categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat, err := h.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCategoryResponse(cat))
}

// Update 更新大类
// @Summary      更新产品大类
// @Tags         产品分类
// @Accept       json
// @Produce      json
// @Param        id path int true "大类ID"
// @Param        request body dto.CategoryRequest true "大类信息"
// @Success      200 {object} response.Response{data=dto.CategoryResponse}
// @Failure      404 {object} response.Response "大类不存在"
// @Router       /api/v1/product-categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCategoryResponse(cat))
}

// Delete 删除大类
// @Summary      删除产品大类
// @Description  大类下存在子类时拒绝删除
// @Tags         产品分类
// @Param        id path int true "大类ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "大类不存在"
// @Failure      409 {object} response.Response "大类下存在子类"
// @Router       /api/v1/product-categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 大类列表
// @Summary      产品大类列表(全量,不分页)
// @Tags         产品分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router       /api/v1/product-categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCategoryResponses(categories))
}

// SubCategoryHandler 产品子类HTTP处理器
type SubCategoryHandler struct {
	service catalog.SubCategoryService
}

// NewSubCategoryHandler 创建子类处理器
func NewSubCategoryHandler(service catalog.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{service: service}
}

// Create 创建子类
// @Summary      创建产品子类
// @Tags         产品分类
// @Accept       json
// @Produce      json
// @Param        request body dto.SubCategoryRequest true "子类信息"
// @Success      201 {object} response.Response{data=dto.SubCategoryResponse}
// @Failure      404 {object} response.Response "所属大类不存在"
// @Router       /api/v1/product-subcategories [post]
func (h *SubCategoryHandler) Create(c *gin.Context) {
	var req dto.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	sub, err := h.service.CreateSubCategory(c.Request.Context(), req.Name, req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/product-subcategories/%d", sub.ID), dto.ToSubCategoryResponse(sub))
}

// Get 获取子类详情
// @Summary      获取产品子类详情
// @Tags         产品分类
// @Produce      json
// @Param        id path int true "子类ID"
// @Success      200 {object} response.Response{data=dto.SubCategoryResponse}
// @Failure      404 {object} response.Response "子类不存在"
// @Router       /api/v1/product-subcategories/{id} [get]
func (h *SubCategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sub, err := h.service.GetSubCategoryByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSubCategoryResponse(sub))
}

// Update 更新子类
// @Summary      更新产品子类
// @Tags         产品分类
// @Accept       json
// @Produce      json
// @Param        id path int true "子类ID"
// @Param        request body dto.SubCategoryRequest true "子类信息"
// @Success      200 {object} response.Response{data=dto.SubCategoryResponse}
// @Failure      404 {object} response.Response "子类或所属大类不存在"
// @Router       /api/v1/product-subcategories/{id} [put]
func (h *SubCategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	sub, err := h.service.UpdateSubCategory(c.Request.Context(), id, req.Name, req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSubCategoryResponse(sub))
}

// Delete 删除子类
// @Summary      删除产品子类
// @Description  子类下存在产品时拒绝删除
// @Tags         产品分类
// @Param        id path int true "子类ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "子类不存在"
// @Failure      409 {object} response.Response "子类下存在产品"
// @Router       /api/v1/product-subcategories/{id} [delete]
func (h *SubCategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSubCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 子类列表
// @Summary      产品子类列表
// @Tags         产品分类
// @Produce      json
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Param        sort query string false "排序,如 name,asc"
// @Param        category_id query int false "按大类过滤"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/product-subcategories [get]
func (h *SubCategoryHandler) List(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			response.BadRequest(c, "category_id必须为正整数")
			return
		}
		categoryID = uint(parsed)
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	subs, total, err := h.service.ListSubCategories(c.Request.Context(), categoryID, catalog.ListParams{
		Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToSubCategoryResponses(subs), total, page, size)
}

// ListByCategory 大类下的全部子类
// @Summary      大类下的子类列表(全量,不分页)
// @Tags         产品分类
// @Produce      json
// @Param        id path int true "大类ID"
// @Success      200 {object} response.Response{data=[]dto.SubCategoryResponse}
// @Router       /api/v1/product-categories/{id}/subcategories [get]
func (h *SubCategoryHandler) ListByCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	subs, err := h.service.ListByCategoryID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToSubCategoryResponses(subs))
}
