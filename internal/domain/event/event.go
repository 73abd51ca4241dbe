// Package event 领域事件，由已提交的操作产生，交给提交后处理器消费
package event

import (
	"context"

	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
)

// Event 领域事件，Name同时作为消息路由键
type Event interface {
	Name() string
}

// Handler 提交后处理器
// 处理失败只记录日志，不影响已提交的主操作
type Handler interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}

// OrderCreated 新订单已保存
type OrderCreated struct {
	Order *order.Order
}

func (OrderCreated) Name() string { return "order.created" }

// OrderStatusChanged 订单状态已变更
type OrderStatusChanged struct {
	Order *order.Order
	From  order.Status
}

func (OrderStatusChanged) Name() string { return "order.status_changed" }

// ReviewSubmitted 收到待审核评价
type ReviewSubmitted struct {
	Review      *review.Review
	ProductName string
}

func (ReviewSubmitted) Name() string { return "review.submitted" }

// ContactMessageReceived 收到联系留言
type ContactMessageReceived struct {
	Message *contact.Message
}

func (ContactMessageReceived) Name() string { return "contact.received" }
