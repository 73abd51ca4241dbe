package outbox

import (
	"context"
	"fmt"

	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
)

// =========================================
// 后台通知
// =========================================

// NotificationHandler 为订单、评价、留言事件写入后台通知
type NotificationHandler struct {
	notifications notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

func (h *NotificationHandler) Name() string { return "notification" }

func (h *NotificationHandler) Handle(ctx context.Context, e event.Event) error {
	n := notificationFor(e)
	if n == nil {
		return nil
	}
	_, err := h.notifications.Create(ctx, n.Type, n.Title, n.Message, n.Link)
	return err
}

func notificationFor(e event.Event) *notification.Notification {
	switch ev := e.(type) {
	case event.OrderCreated:
		o := ev.Order
		return notification.New(
			notification.TypeNewOrder,
			"New order",
			fmt.Sprintf("%s placed an order for %s (%d items)", o.Customer.Name, o.TotalAmount.StringFixed(2), len(o.Items)),
			"/admin/orders/"+o.ID,
		)
	case event.OrderStatusChanged:
		o := ev.Order
		msg := fmt.Sprintf("Order %s changed from %s to %s", o.ID, ev.From, o.Status)
		if o.Status == order.StatusShipped && o.TrackingNumber != "" {
			msg += ", tracking " + o.TrackingNumber
		}
		return notification.New(notification.TypeOrderStatus, "Order status updated", msg, "/admin/orders/"+o.ID)
	case event.ReviewSubmitted:
		r := ev.Review
		msg := fmt.Sprintf("%s rated %d/5", r.Name, r.Rating)
		if ev.ProductName != "" {
			msg += " for " + ev.ProductName
		}
		return notification.New(notification.TypeNewReview, "New review awaiting approval", msg, "/admin/reviews")
	case event.ContactMessageReceived:
		m := ev.Message
		subject := m.Subject
		if subject == "" {
			subject = "no subject"
		}
		return notification.New(notification.TypeNewMessage, "New contact message", fmt.Sprintf("%s: %s", m.Name, subject), "/admin/messages")
	default:
		return nil
	}
}

// =========================================
// 顾客邮件
// =========================================

// OrderMailer 订单邮件发送（mail.Mailer）
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
	SendStatusUpdate(ctx context.Context, o *order.Order) error
}

// EmailHandler 下单确认和状态变更邮件
type EmailHandler struct {
	mailer OrderMailer
}

func NewEmailHandler(mailer OrderMailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

func (h *EmailHandler) Name() string { return "email" }

func (h *EmailHandler) Handle(ctx context.Context, e event.Event) error {
	switch ev := e.(type) {
	case event.OrderCreated:
		return h.mailer.SendOrderConfirmation(ctx, ev.Order)
	case event.OrderStatusChanged:
		return h.mailer.SendStatusUpdate(ctx, ev.Order)
	default:
		return nil
	}
}
