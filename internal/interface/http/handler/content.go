package handler

import (
	"github.com/gin-gonic/gin"

	appcontent "github.com/xiebiao/gypsumstore/internal/application/content"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// ContentHandler 页面、文章与横幅
// 未发布的页面和文章只对管理员可见
type ContentHandler struct {
	content *appcontent.Service
}

func NewContentHandler(content *appcontent.Service) *ContentHandler {
	return &ContentHandler{content: content}
}

// GetPage 页面详情
// @Summary      页面详情
// @Tags         内容
// @Produce      json
// @Param        slug path string true "页面slug"
// @Success      200 {object} response.Response{data=appcontent.PageView}
// @Failure      404 {object} response.Response "页面不存在"
// @Router       /api/v1/pages/{slug} [get]
func (h *ContentHandler) GetPage(c *gin.Context) {
	result, err := h.content.GetPage(c.Request.Context(), c.Param("slug"))
	respond(c, result, err)
}

// ListPosts 已发布文章
// @Summary      文章列表
// @Description  不含正文
// @Tags         内容
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcontent.PostView}
// @Router       /api/v1/posts [get]
func (h *ContentHandler) ListPosts(c *gin.Context) {
	result, err := h.content.ListPosts(c.Request.Context())
	respond(c, result, err)
}

// GetPost 文章详情
// @Summary      文章详情
// @Tags         内容
// @Produce      json
// @Param        slug path string true "文章slug"
// @Success      200 {object} response.Response{data=appcontent.PostView}
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /api/v1/posts/{slug} [get]
func (h *ContentHandler) GetPost(c *gin.Context) {
	result, err := h.content.GetPost(c.Request.Context(), c.Param("slug"))
	respond(c, result, err)
}

// ListBanners 启用中的横幅
// @Summary      首页横幅
// @Tags         内容
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcontent.BannerView}
// @Router       /api/v1/banners [get]
func (h *ContentHandler) ListBanners(c *gin.Context) {
	result, err := h.content.ListBanners(c.Request.Context())
	respond(c, result, err)
}

// ListAllPages 全部页面
// @Summary      页面列表
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appcontent.PageView}
// @Router       /api/v1/admin/pages [get]
func (h *ContentHandler) ListAllPages(c *gin.Context) {
	result, err := h.content.ListPages(c.Request.Context())
	respond(c, result, err)
}

// CreatePage 新建页面
// @Summary      新建页面
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcontent.PageRequest true "页面内容"
// @Success      201 {object} response.Response{data=appcontent.PageView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/admin/pages [post]
func (h *ContentHandler) CreatePage(c *gin.Context) {
	var req appcontent.PageRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.CreatePage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePage 修改页面
// @Summary      修改页面
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "页面ID"
// @Param        request body appcontent.PageRequest true "页面内容"
// @Success      200 {object} response.Response{data=appcontent.PageView}
// @Failure      404 {object} response.Response "页面不存在"
// @Router       /api/v1/admin/pages/{id} [put]
func (h *ContentHandler) UpdatePage(c *gin.Context) {
	var req appcontent.PageRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.UpdatePage(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeletePage 删除页面
// @Summary      删除页面
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "页面ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/pages/{id} [delete]
func (h *ContentHandler) DeletePage(c *gin.Context) {
	respondEmpty(c, h.content.DeletePage(c.Request.Context(), c.Param("id")))
}

// ListAllPosts 全部文章
// @Summary      文章列表
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appcontent.PostView}
// @Router       /api/v1/admin/posts [get]
func (h *ContentHandler) ListAllPosts(c *gin.Context) {
	result, err := h.content.ListAllPosts(c.Request.Context())
	respond(c, result, err)
}

// CreatePost 新建文章
// @Summary      新建文章
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcontent.PostRequest true "文章内容"
// @Success      201 {object} response.Response{data=appcontent.PostView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/admin/posts [post]
func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req appcontent.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.CreatePost(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePost 修改文章
// @Summary      修改文章
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Param        request body appcontent.PostRequest true "文章内容"
// @Success      200 {object} response.Response{data=appcontent.PostView}
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /api/v1/admin/posts/{id} [put]
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	var req appcontent.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.UpdatePost(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeletePost 删除文章
// @Summary      删除文章
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/posts/{id} [delete]
func (h *ContentHandler) DeletePost(c *gin.Context) {
	respondEmpty(c, h.content.DeletePost(c.Request.Context(), c.Param("id")))
}

// ListAllBanners 全部横幅
// @Summary      横幅列表
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appcontent.BannerView}
// @Router       /api/v1/admin/banners [get]
func (h *ContentHandler) ListAllBanners(c *gin.Context) {
	result, err := h.content.ListAllBanners(c.Request.Context())
	respond(c, result, err)
}

// CreateBanner 新建横幅
// @Summary      新建横幅
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcontent.BannerRequest true "横幅内容"
// @Success      201 {object} response.Response{data=appcontent.BannerView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/admin/banners [post]
func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var req appcontent.BannerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.CreateBanner(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateBanner 修改横幅
// @Summary      修改横幅
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "横幅ID"
// @Param        request body appcontent.BannerRequest true "横幅内容"
// @Success      200 {object} response.Response{data=appcontent.BannerView}
// @Failure      404 {object} response.Response "横幅不存在"
// @Router       /api/v1/admin/banners/{id} [put]
func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	var req appcontent.BannerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.UpdateBanner(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeleteBanner 删除横幅
// @Summary      删除横幅
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "横幅ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/banners/{id} [delete]
func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	respondEmpty(c, h.content.DeleteBanner(c.Request.Context(), c.Param("id")))
}

// ListGallery 展示中的图库图片
// @Summary      作品图库
// @Tags         内容
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcontent.GalleryItemView}
// @Router       /api/v1/gallery [get]
func (h *ContentHandler) ListGallery(c *gin.Context) {
	result, err := h.content.ListGallery(c.Request.Context())
	respond(c, result, err)
}

// ListAllGallery 全部图库图片
// @Summary      图库列表
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appcontent.GalleryItemView}
// @Router       /api/v1/admin/gallery [get]
func (h *ContentHandler) ListAllGallery(c *gin.Context) {
	result, err := h.content.ListAllGallery(c.Request.Context())
	respond(c, result, err)
}

// CreateGalleryItem 上架图片
// @Summary      新建图库图片
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcontent.GalleryItemRequest true "图片信息"
// @Success      201 {object} response.Response{data=appcontent.GalleryItemView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/admin/gallery [post]
func (h *ContentHandler) CreateGalleryItem(c *gin.Context) {
	var req appcontent.GalleryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.CreateGalleryItem(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateGalleryItem 修改图片
// @Summary      修改图库图片
// @Tags         后台-内容
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Param        request body appcontent.GalleryItemRequest true "图片信息"
// @Success      200 {object} response.Response{data=appcontent.GalleryItemView}
// @Failure      404 {object} response.Response "图片不存在"
// @Router       /api/v1/admin/gallery/{id} [put]
func (h *ContentHandler) UpdateGalleryItem(c *gin.Context) {
	var req appcontent.GalleryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.content.UpdateGalleryItem(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeleteGalleryItem 删除图片
// @Summary      删除图库图片
// @Tags         后台-内容
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图片ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/gallery/{id} [delete]
func (h *ContentHandler) DeleteGalleryItem(c *gin.Context) {
	respondEmpty(c, h.content.DeleteGalleryItem(c.Request.Context(), c.Param("id")))
}
