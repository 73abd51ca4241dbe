package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/gypsumstore/internal/application/catalog"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// CatalogHandler 分类、商品与搜索
type CatalogHandler struct {
	queries *appcatalog.QueryService
	admin   *appcatalog.AdminService
}

func NewCatalogHandler(queries *appcatalog.QueryService, admin *appcatalog.AdminService) *CatalogHandler {
	return &CatalogHandler{queries: queries, admin: admin}
}

// ListCategories 分类树
// @Summary      分类树
// @Tags         商品目录
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcatalog.CategoryView}
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	result, err := h.queries.ListCategories(c.Request.Context())
	respond(c, result, err)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         商品目录
// @Produce      json
// @Param        slug path string true "分类slug"
// @Success      200 {object} response.Response{data=appcatalog.CategoryView}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{slug} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	result, err := h.queries.GetCategory(c.Request.Context(), c.Param("slug"))
	respond(c, result, err)
}

// ListProducts 商品列表
// @Summary      商品列表
// @Description  支持分类（含子分类）、推荐、有货筛选与排序
// @Tags         商品目录
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        pageSize query int false "每页数量" default(12)
// @Param        category query string false "分类slug"
// @Param        featured query bool false "仅推荐商品"
// @Param        inStock query bool false "仅有货商品"
// @Param        sort query string false "排序" Enums(newest, price_asc, price_desc, name)
// @Success      200 {object} response.Response{data=appcatalog.ProductListResponse}
// @Router       /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req appcatalog.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return
	}

	result, err := h.queries.ListProducts(c.Request.Context(), req)
	respond(c, result, err)
}

// GetProduct 商品详情
// @Summary      商品详情
// @Tags         商品目录
// @Produce      json
// @Param        slug path string true "商品slug"
// @Success      200 {object} response.Response{data=appcatalog.ProductView}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	result, err := h.queries.GetProduct(c.Request.Context(), c.Param("slug"))
	respond(c, result, err)
}

// Search 商品搜索
// @Summary      商品搜索
// @Description  名称或描述包含关键词（不区分大小写），最多返回10条
// @Tags         商品目录
// @Produce      json
// @Param        q query string false "关键词"
// @Success      200 {object} response.Response{data=[]appcatalog.SearchResult}
// @Router       /api/v1/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	result, err := h.queries.Search(c.Request.Context(), c.Query("q"))
	respond(c, result, err)
}

// CreateProduct 新建商品
// @Summary      新建商品
// @Tags         后台-商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcatalog.ProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=appcatalog.ProductView}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/admin/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req appcatalog.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admin.CreateProduct(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateProduct 修改商品
// @Summary      修改商品
// @Tags         后台-商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "商品ID"
// @Param        request body appcatalog.ProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=appcatalog.ProductView}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req appcatalog.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admin.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeleteProduct 删除商品
// @Summary      删除商品
// @Description  已被订单引用的商品不能删除，商品评价一并删除
// @Tags         后台-商品
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "商品已被订单引用"
// @Router       /api/v1/admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	respondEmpty(c, h.admin.DeleteProduct(c.Request.Context(), c.Param("id")))
}

// CreateCategory 新建分类
// @Summary      新建分类
// @Tags         后台-分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcatalog.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcatalog.CategoryView}
// @Failure      409 {object} response.Response "slug已存在"
// @Router       /api/v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req appcatalog.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admin.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateCategory 修改分类
// @Summary      修改分类
// @Tags         后台-分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Param        request body appcatalog.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcatalog.CategoryView}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req appcatalog.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.admin.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Tags         后台-分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "分类下仍有商品或子分类"
// @Router       /api/v1/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	respondEmpty(c, h.admin.DeleteCategory(c.Request.Context(), c.Param("id")))
}
