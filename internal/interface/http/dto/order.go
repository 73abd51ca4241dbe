// Package dto HTTP层专用的响应结构
//
// 结账和订单状态接口沿用店面前端约定的结构，不使用统一响应信封。
package dto

import (
	apporder "github.com/xiebiao/gypsumstore/internal/application/order"
)

// CheckoutResponse 结账结果
// 成功: {"success":true,"orderId":"..."}；失败: {"success":false,"message":"..."}
type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty" example:"3f2c6a9e-8d1b-4c2a-9a57-0e4b5d6f7a8b"`
	Message string `json:"message,omitempty"`
}

// StatusUpdateResponse 订单状态变更结果
// 成功: {"success":"订单状态已更新为SHIPPED","order":{...}}；失败: {"error":"..."}
type StatusUpdateResponse struct {
	Success string              `json:"success,omitempty" example:"订单状态已更新为SHIPPED"`
	Order   *apporder.OrderView `json:"order,omitempty"`
	Error   string              `json:"error,omitempty"`
}
