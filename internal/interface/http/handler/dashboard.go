package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/xiebiao/gypsumstore/internal/application/dashboard"
)

// DashboardHandler 后台首页统计
type DashboardHandler struct {
	dashboard *appdashboard.Service
}

func NewDashboardHandler(dashboard *appdashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats 统计数据
// @Summary      后台统计
// @Tags         后台-首页
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appdashboard.Stats}
// @Router       /api/v1/admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	result, err := h.dashboard.Stats(c.Request.Context())
	respond(c, result, err)
}
