package order

import (
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidStatus 未知的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	// ErrInvalidStatusTransition 状态流转表不允许
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrTrackingNumberRequired 发货必须填写快递单号
	ErrTrackingNumberRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "发货状态必须填写快递单号")

	// ErrStaleOrder 订单已被其他管理员修改
	ErrStaleOrder = apperrors.ErrVersionConflict

	// ErrInvalidOrderItems 订单明细不能为空
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrProductUnavailable 明细引用的商品不存在
	ErrProductUnavailable = apperrors.New(apperrors.ErrCodeInvalidParams, "订单中包含不存在的商品")
)
