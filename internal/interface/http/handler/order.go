package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/gypsumstore/internal/application/order"
	"github.com/xiebiao/gypsumstore/internal/interface/http/dto"
	"github.com/xiebiao/gypsumstore/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	setStatusUseCase   *apporder.SetStatusUseCase
	queries            *apporder.QueryService
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	setStatusUseCase *apporder.SetStatusUseCase,
	queries *apporder.QueryService,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		setStatusUseCase:   setStatusUseCase,
		queries:            queries,
	}
}

// CreateOrder 结账
// @Summary      结账下单
// @Description  游客或登录用户提交购物车，金额由服务端重新计算
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body apporder.CreateOrderRequest true "结账表单"
// @Success      201 {object} dto.CheckoutResponse "下单成功"
// @Failure      400 {object} dto.CheckoutResponse "表单校验失败"
// @Failure      500 {object} dto.CheckoutResponse "保存失败"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.CheckoutResponse{
			Message: apperrors.ErrBindError.Message + ": " + err.Error(),
		})
		return
	}

	if p := middleware.Principal(c); p != nil {
		req.UserID = p.UserID
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		appErr := response.Resolve(c, err)
		c.JSON(apperrors.HTTPStatus(appErr.Code), dto.CheckoutResponse{Message: appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Success: true,
		OrderID: result.OrderID,
	})
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  按订单ID查询，用于下单成功页
// @Tags         订单
// @Produce      json
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	result, err := h.queries.GetOrder(c.Request.Context(), c.Param("id"))
	respond(c, result, err)
}

// ListMyOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/me/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	result, err := h.queries.ListMyOrders(c.Request.Context())
	respond(c, result, err)
}

// ListOrders 后台订单列表
// @Summary      订单列表
// @Description  全部订单，按创建时间倒序，附带下单用户
// @Tags         后台-订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	result, err := h.queries.ListOrders(c.Request.Context())
	respond(c, result, err)
}

// SetStatus 变更订单状态
// @Summary      变更订单状态
// @Description  任意状态之间可切换；SHIPPED必须带快递单号；version用于并发检测
// @Tags         后台-订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Param        request body apporder.SetStatusRequest true "新状态"
// @Success      200 {object} dto.StatusUpdateResponse "变更成功"
// @Failure      400 {object} dto.StatusUpdateResponse "参数错误"
// @Failure      409 {object} dto.StatusUpdateResponse "订单已被修改"
// @Router       /api/v1/admin/orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req apporder.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusUpdateResponse{
			Error: apperrors.ErrBindError.Message + ": " + err.Error(),
		})
		return
	}
	req.OrderID = c.Param("id")

	result, err := h.setStatusUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		appErr := response.Resolve(c, err)
		c.JSON(apperrors.HTTPStatus(appErr.Code), dto.StatusUpdateResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusOK, dto.StatusUpdateResponse{
		Success: "订单状态已更新为" + result.Status,
		Order:   result,
	})
}

// DeleteOrder 删除订单
// @Summary      删除订单
// @Tags         后台-订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/admin/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	respondEmpty(c, h.queries.DeleteOrder(c.Request.Context(), c.Param("id")))
}
