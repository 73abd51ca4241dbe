// Package messaging 领域事件发布到RabbitMQ，供外部系统（ERP、快递对接）订阅
package messaging

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
)

// Publisher 消息发布（mq.Publisher）
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// EventPublisher 把领域事件转换为消息体，路由键为事件名
type EventPublisher struct {
	publisher Publisher
}

func NewEventPublisher(p Publisher) *EventPublisher {
	return &EventPublisher{publisher: p}
}

func (p *EventPublisher) Name() string { return "broker" }

// Handle 未知事件不发布
func (p *EventPublisher) Handle(ctx context.Context, e event.Event) error {
	payload := payloadFor(e)
	if payload == nil {
		return nil
	}

	if err := p.publisher.Publish(ctx, e.Name(), payload); err != nil {
		return err
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.publisher.Exchange(),
		"routing_key": e.Name(),
	})
	return nil
}

// OrderItemPayload 订单明细消息
type OrderItemPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// OrderPayload 订单消息
type OrderPayload struct {
	Event          string             `json:"event"`
	OrderID        string             `json:"order_id"`
	Status         string             `json:"status"`
	PreviousStatus string             `json:"previous_status,omitempty"`
	TrackingNumber string             `json:"tracking_number,omitempty"`
	CustomerEmail  string             `json:"customer_email"`
	Courier        string             `json:"courier"`
	TotalAmount    string             `json:"total_amount"`
	DeliveryFee    string             `json:"delivery_fee"`
	Items          []OrderItemPayload `json:"items,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// ReviewPayload 评价消息
type ReviewPayload struct {
	Event      string    `json:"event"`
	ReviewID   string    `json:"review_id"`
	ProductID  string    `json:"product_id,omitempty"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ContactPayload 留言消息
type ContactPayload struct {
	Event      string    `json:"event"`
	MessageID  string    `json:"message_id"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}

func payloadFor(e event.Event) interface{} {
	now := time.Now().UTC()
	switch ev := e.(type) {
	case event.OrderCreated:
		p := orderPayload(e.Name(), ev, now)
		for _, item := range ev.Order.Items {
			p.Items = append(p.Items, OrderItemPayload{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price.StringFixed(2),
			})
		}
		return p
	case event.OrderStatusChanged:
		p := orderPayload(e.Name(), event.OrderCreated{Order: ev.Order}, now)
		p.PreviousStatus = string(ev.From)
		return p
	case event.ReviewSubmitted:
		productID := ""
		if ev.Review.ProductID != nil {
			productID = *ev.Review.ProductID
		}
		return ReviewPayload{
			Event:      e.Name(),
			ReviewID:   ev.Review.ID,
			ProductID:  productID,
			Rating:     ev.Review.Rating,
			OccurredAt: now,
		}
	case event.ContactMessageReceived:
		return ContactPayload{
			Event:      e.Name(),
			MessageID:  ev.Message.ID,
			Email:      ev.Message.Email,
			Subject:    ev.Message.Subject,
			OccurredAt: now,
		}
	default:
		return nil
	}
}

func orderPayload(name string, ev event.OrderCreated, now time.Time) OrderPayload {
	o := ev.Order
	return OrderPayload{
		Event:          name,
		OrderID:        o.ID,
		Status:         string(o.Status),
		TrackingNumber: o.TrackingNumber,
		CustomerEmail:  o.Customer.Email,
		Courier:        string(o.Delivery.Courier),
		TotalAmount:    o.TotalAmount.StringFixed(2),
		DeliveryFee:    o.DeliveryFee.StringFixed(2),
		OccurredAt:     now,
	}
}
