package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crm/internal/domain/product"
	"github.com/xiebiao/crm/internal/interface/http/dto"
	"github.com/xiebiao/crm/pkg/response"
)

// defaultLowStockThreshold 低库存默认阈值
const defaultLowStockThreshold = 10

// ProductHandler 产品HTTP处理器
type ProductHandler struct {
	service product.Service
}

// NewProductHandler 创建产品处理器
func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create 创建产品
// @Summary      创建产品
// @Tags         产品
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "产品信息"
// @Success      201 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "所属子类不存在"
// @Failure      409 {object} response.Response "SKU已存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(),
		req.SubCategoryID, req.SKU, req.Name, req.Description,
		req.Price, req.StockQuantity, req.IsActive())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/v1/products/%d", p.ID), dto.ToProductResponse(p))
}

// Get 获取产品详情
// @Summary      获取产品详情
// @Tags         产品
// @Produce      json
// @Param        id path int true "产品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "产品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := h.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProductResponse(p))
}

// Update 更新产品
// @Summary      更新产品
// @Description  携带读取时的version做乐观锁CAS,版本失配返回冲突,重新读取后可重试
// @Tags         产品
// @Accept       json
// @Produce      json
// @Param        id path int true "产品ID"
// @Param        request body dto.UpdateProductRequest true "产品信息(含version)"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "产品不存在"
// @Failure      409 {object} response.Response "版本冲突或SKU已存在"
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	p, err := h.service.UpdateProduct(c.Request.Context(),
		id, *req.Version, req.SubCategoryID, req.SKU, req.Name, req.Description,
		req.Price, req.StockQuantity, req.IsActive())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProductResponse(p))
}

// Delete 删除产品
// @Summary      删除产品
// @Description  产品被订单行引用时拒绝删除
// @Tags         产品
// @Param        id path int true "产品ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "产品不存在"
// @Failure      409 {object} response.Response "产品已被订单引用"
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List 产品列表
// @Summary      产品列表
// @Tags         产品
// @Produce      json
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Param        sort query string false "排序,如 price,desc"
// @Param        sub_category_id query int false "按子类过滤"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var lq dto.ListProductQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	products, total, err := h.service.ListProducts(c.Request.Context(), lq.SubCategoryID, product.ListParams{
		Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToProductResponses(products), total, page, size)
}

// Search 搜索产品
// @Summary      搜索产品
// @Description  q为通用搜索词(优先);否则sku/name/category过滤AND组合
// @Tags         产品
// @Produce      json
// @Param        q query string false "通用搜索词"
// @Param        sku query string false "SKU"
// @Param        name query string false "产品名称"
// @Param        category query string false "大类名称"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var pq dto.PageQuery
	if err := c.ShouldBindQuery(&pq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var sq dto.SearchProductQuery
	if err := c.ShouldBindQuery(&sq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	page, size := pq.Normalize()
	sortBy, sortDir := pq.SortParams()

	products, total, err := h.service.SearchProducts(c.Request.Context(),
		product.SearchParams{
			Term:     sq.Q,
			SKU:      sq.SKU,
			Name:     sq.Name,
			Category: sq.Category,
		},
		product.ListParams{Page: page, PageSize: size, SortBy: sortBy, SortDir: sortDir},
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToProductResponses(products), total, page, size)
}

// LowStock 低库存产品
// @Summary      低库存产品列表
// @Description  库存不高于阈值的在售产品,按库存升序
// @Tags         产品
// @Produce      json
// @Param        threshold query int false "库存阈值(默认10)"
// @Success      200 {object} response.Response{data=[]dto.ProductResponse}
// @Router       /api/v1/products/low-stock [get]
func (h *ProductHandler) LowStock(c *gin.Context) {
	var lq dto.LowStockQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, "参数错误: "+err.Error())
		return
	}

	threshold := lq.Threshold
	if threshold <= 0 && c.Query("threshold") == "" {
		threshold = defaultLowStockThreshold
	}

	products, err := h.service.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProductResponses(products))
}
