package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/gypsumstore/internal/application/notification"
	"github.com/xiebiao/gypsumstore/internal/interface/http/dto"
)

// NotificationHandler 后台通知
type NotificationHandler struct {
	feed *appnotification.Feed
}

func NewNotificationHandler(feed *appnotification.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// Recent 最近通知
// @Summary      通知列表
// @Tags         后台-通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appnotification.NotificationView}
// @Router       /api/v1/admin/notifications [get]
func (h *NotificationHandler) Recent(c *gin.Context) {
	result, err := h.feed.Recent(c.Request.Context())
	respond(c, result, err)
}

// UnreadCount 未读数量
// @Summary      未读通知数
// @Tags         后台-通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CountResponse}
// @Router       /api/v1/admin/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.feed.UnreadCount(c.Request.Context())
	respond(c, dto.CountResponse{Count: count}, err)
}

// MarkRead 标记已读
// @Summary      通知标记已读
// @Tags         后台-通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "通知ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	respondEmpty(c, h.feed.MarkRead(c.Request.Context(), c.Param("id")))
}

// MarkAllRead 全部标记已读
// @Summary      全部通知标记已读
// @Tags         后台-通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	respondEmpty(c, h.feed.MarkAllRead(c.Request.Context()))
}

// Delete 删除通知
// @Summary      删除通知
// @Tags         后台-通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "通知ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	respondEmpty(c, h.feed.Delete(c.Request.Context(), c.Param("id")))
}
