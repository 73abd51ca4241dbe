package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/gypsumstore/internal/application/review"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// ReviewHandler 商品评价
type ReviewHandler struct {
	reviews *appreview.Service
}

func NewReviewHandler(reviews *appreview.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit 提交评价
// @Summary      提交评价
// @Description  评价需管理员审核后展示
// @Tags         评价
// @Accept       json
// @Produce      json
// @Param        request body appreview.SubmitRequest true "评价内容"
// @Success      201 {object} response.Response{data=appreview.ReviewView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req appreview.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviews.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListForProduct 商品的已审核评价
// @Summary      商品评价
// @Tags         评价
// @Produce      json
// @Param        slug path string true "商品slug"
// @Success      200 {object} response.Response{data=[]appreview.ReviewView}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{slug}/reviews [get]
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	result, err := h.reviews.ListApproved(c.Request.Context(), c.Param("slug"))
	respond(c, result, err)
}

// List 全部评价
// @Summary      评价列表
// @Tags         后台-评价
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appreview.ReviewView}
// @Router       /api/v1/admin/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	result, err := h.reviews.List(c.Request.Context())
	respond(c, result, err)
}

// Approve 审核通过
// @Summary      审核评价
// @Tags         后台-评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/admin/reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	respondEmpty(c, h.reviews.Approve(c.Request.Context(), c.Param("id")))
}

// Delete 删除评价
// @Summary      删除评价
// @Tags         后台-评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评价ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	respondEmpty(c, h.reviews.Delete(c.Request.Context(), c.Param("id")))
}
