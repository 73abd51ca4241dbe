package handler

import (
	"github.com/gin-gonic/gin"

	appcontact "github.com/xiebiao/gypsumstore/internal/application/contact"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// ContactHandler 联系留言
type ContactHandler struct {
	messages *appcontact.Service
}

func NewContactHandler(messages *appcontact.Service) *ContactHandler {
	return &ContactHandler{messages: messages}
}

// Submit 提交留言
// @Summary      联系我们
// @Tags         留言
// @Accept       json
// @Produce      json
// @Param        request body appcontact.SubmitRequest true "留言内容"
// @Success      201 {object} response.Response{data=appcontact.MessageView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req appcontact.SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.messages.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 留言列表
// @Summary      留言列表
// @Tags         后台-留言
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appcontact.MessageView}
// @Router       /api/v1/admin/messages [get]
func (h *ContactHandler) List(c *gin.Context) {
	result, err := h.messages.List(c.Request.Context())
	respond(c, result, err)
}

// MarkRead 标记已读
// @Summary      留言标记已读
// @Tags         后台-留言
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "留言ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "留言不存在"
// @Router       /api/v1/admin/messages/{id}/read [post]
func (h *ContactHandler) MarkRead(c *gin.Context) {
	respondEmpty(c, h.messages.MarkRead(c.Request.Context(), c.Param("id")))
}

// Delete 删除留言
// @Summary      删除留言
// @Tags         后台-留言
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "留言ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/messages/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	respondEmpty(c, h.messages.Delete(c.Request.Context(), c.Param("id")))
}
